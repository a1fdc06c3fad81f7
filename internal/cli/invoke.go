package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/traits/internal/recipe"
	"github.com/mesh-intelligence/traits/pkg/traits"
	"github.com/mesh-intelligence/traits/pkg/types"
)

// invocation is one line of invoke output.
type invocation struct {
	Call   string `json:"call"`
	Result any    `json:"result"`
}

func newInvokeCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "invoke <trait-or-composition> <call>...",
		Short: "Bind a trait to a fresh class and send calls to one instance",
		Long: "Bind the named trait or composition to a new class, create one instance and\n" +
			"send each call in order, printing each result. Calls look like\n" +
			"ataque, ataque(5) or saludo(\"hola\", 2).",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			calls := make([]recipe.Call, 0, len(args)-1)
			for _, expr := range args[1:] {
				c, err := recipe.ParseCall(expr)
				if err != nil {
					return userError(err)
				}
				calls = append(calls, c)
			}

			return a.withAssembler(file, func(asm *recipe.Assembler, _ types.Catalog) error {
				tr, err := asm.Resolve(name)
				if err != nil {
					return classify(err)
				}
				self := traits.NewClass(name).Uses(tr).New()

				var out []invocation
				for _, c := range calls {
					result, err := self.Send(c.Method, c.Args...)
					if err != nil {
						return classify(fmt.Errorf("%s: %w", c, err))
					}
					a.logger.Debug("invoked",
						slog.String("trait", name),
						slog.String("call", c.String()))
					out = append(out, invocation{Call: c.String(), Result: result})
					if !a.jsonMode {
						fmt.Fprintf(cmd.OutOrStdout(), "%s => %v\n", c, result)
					}
				}
				if a.jsonMode {
					return writeJSON(cmd.OutOrStdout(), out)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read traits from a YAML manifest instead of the catalog")
	return cmd
}
