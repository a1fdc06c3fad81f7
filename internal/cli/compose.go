package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/internal/recipe"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// composeResult is the --json output of compose.
type composeResult struct {
	Name    string   `json:"name"`
	Methods []string `json:"methods"`
	SavedID string   `json:"saved_id,omitempty"`
}

func newComposeCmd(a *app) *cobra.Command {
	var (
		strategies []string
		excludes   []string
		aliases    []string
		save       string
		file       string
	)
	cmd := &cobra.Command{
		Use:   "compose <trait> <trait>...",
		Short: "Compose traits and print the resulting methods",
		Long: "Compose the named traits or compositions left to right and print the method\n" +
			"names of the result. Conflicting methods need a strategy:\n\n" +
			"  --strategy recuperarse=conditional:>5\n" +
			"  --strategy ataque=inject:add\n" +
			"  --strategy defensa=arbitrary\n\n" +
			"Kinds: none, arbitrary, sequential, conditional:<op><value>,\n" +
			"inject:add|mul|max|min, fibonacci.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := buildComposition(args, strategies, excludes, aliases)
			if err != nil {
				return userError(err)
			}
			if save != "" {
				rec.Name = save
			}
			if err := rec.Validate(); err != nil {
				return userError(err)
			}
			if save != "" && file != "" {
				return userError(errors.New("--save needs the catalog; drop --file"))
			}

			return a.withAssembler(file, func(asm *recipe.Assembler, catalog types.Catalog) error {
				tr, err := asm.Compose(rec)
				if err != nil {
					return classify(err)
				}
				out := composeResult{Name: rec.Name, Methods: tr.Names()}
				if save != "" {
					tbl, err := catalog.GetTable(types.CompositionsTable)
					if err != nil {
						return classify(err)
					}
					if out.SavedID, err = tbl.Set("", rec); err != nil {
						return classify(err)
					}
				}

				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				for _, name := range out.Methods {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				if out.SavedID != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "saved composition %s (%s)\n", rec.Name, out.SavedID)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&strategies, "strategy", nil, "conflict strategy as name=kind[:arg] (repeatable)")
	cmd.Flags().StringArrayVar(&excludes, "exclude", nil, "exclude a method from an operand as trait:method (repeatable)")
	cmd.Flags().StringArrayVar(&aliases, "alias", nil, "alias a method of an operand as trait:old=new (repeatable)")
	cmd.Flags().StringVar(&save, "save", "", "store the composition under this name")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read operands from a YAML manifest instead of the catalog")
	return cmd
}

// buildComposition turns compose arguments and flags into a record. Each
// --exclude and --alias applies to every operand naming that trait.
func buildComposition(operands, strategies, excludes, aliases []string) (*types.CompositionRecord, error) {
	rec := &types.CompositionRecord{Name: strings.Join(operands, " + ")}

	for _, name := range operands {
		rec.Operands = append(rec.Operands, types.OperandSpec{Trait: name})
	}
	index := func(flag, trait string) ([]int, error) {
		var idx []int
		for i, op := range rec.Operands {
			if op.Trait == trait {
				idx = append(idx, i)
			}
		}
		if len(idx) == 0 {
			return nil, fmt.Errorf("--%s: %s is not an operand", flag, trait)
		}
		return idx, nil
	}

	for _, ex := range excludes {
		trait, method, ok := strings.Cut(ex, ":")
		if !ok || method == "" {
			return nil, fmt.Errorf("--exclude %q: want trait:method", ex)
		}
		idx, err := index("exclude", trait)
		if err != nil {
			return nil, err
		}
		for _, i := range idx {
			rec.Operands[i].Exclude = append(rec.Operands[i].Exclude, method)
		}
	}

	for _, al := range aliases {
		trait, pair, ok := strings.Cut(al, ":")
		from, to, ok2 := strings.Cut(pair, "=")
		if !ok || !ok2 || from == "" || to == "" {
			return nil, fmt.Errorf("--alias %q: want trait:old=new", al)
		}
		idx, err := index("alias", trait)
		if err != nil {
			return nil, err
		}
		for _, i := range idx {
			if rec.Operands[i].Alias == nil {
				rec.Operands[i].Alias = map[string]string{}
			}
			rec.Operands[i].Alias[from] = to
		}
	}

	for _, s := range strategies {
		name, spec, err := parseStrategy(s)
		if err != nil {
			return nil, err
		}
		if rec.Strategies == nil {
			rec.Strategies = map[string]types.StrategySpec{}
		}
		rec.Strategies[name] = spec
	}
	return rec, nil
}

// comparisons is ordered so two-character operators match first.
var comparisons = []string{">=", "<=", "==", "!=", ">", "<"}

// parseStrategy parses name=kind[:arg].
func parseStrategy(s string) (string, types.StrategySpec, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" || rest == "" {
		return "", types.StrategySpec{}, fmt.Errorf("--strategy %q: want name=kind[:arg]", s)
	}
	kind, arg, _ := strings.Cut(rest, ":")
	spec := types.StrategySpec{Kind: kind}

	switch kind {
	case types.StrategyConditional:
		for _, op := range comparisons {
			if v, found := strings.CutPrefix(arg, op); found {
				val, err := recipe.ParseValue(v)
				if err != nil {
					return "", spec, fmt.Errorf("--strategy %q: %w", s, err)
				}
				spec.Op, spec.Value = op, val
				break
			}
		}
	case types.StrategyInject:
		spec.Combiner = arg
	default:
		if arg != "" {
			return "", spec, fmt.Errorf("--strategy %q: %s takes no argument", s, kind)
		}
	}
	if err := spec.Validate(); err != nil {
		return "", spec, fmt.Errorf("--strategy %q: %w", s, err)
	}
	return name, spec, nil
}
