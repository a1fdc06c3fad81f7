package traits

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeDisjointTraits(t *testing.T) {
	f := newFixtures(t)

	tr, err := f.Atacante.Compose(f.Defensor, nil)
	require.NoError(t, err)

	guerrero := instanceUses(tr)
	assert.Equal(t, 10, send(t, guerrero, "ataque"))
	assert.Equal(t, 50, send(t, guerrero, "defensa"))
}

func TestComposeDisjointIsCommutative(t *testing.T) {
	f := newFixtures(t)

	ab, err := f.Atacante.Compose(f.Golondrina, nil)
	require.NoError(t, err)
	ba, err := f.Golondrina.Compose(f.Atacante, nil)
	require.NoError(t, err)

	assert.Equal(t, ab.Names(), ba.Names(), spew.Sdump(ab.Entries(), ba.Entries()))
	assert.Equal(t, []string{"ataque", "energia", "especie", "volar"}, ab.Names())
	for _, name := range ab.Names() {
		left, _ := ab.Method(name)
		right, _ := ba.Method(name)
		assert.Same(t, left, right, "method %s", name)
	}
}

func TestComposeDisjointIsAssociative(t *testing.T) {
	f := newFixtures(t)

	ab, err := f.Atacante.Compose(f.Defensor, nil)
	require.NoError(t, err)
	abc, err := ab.Compose(f.Golondrina, nil)
	require.NoError(t, err)

	bc, err := f.Defensor.Compose(f.Golondrina, nil)
	require.NoError(t, err)
	aBC, err := f.Atacante.Compose(bc, nil)
	require.NoError(t, err)

	assert.Equal(t, abc.Names(), aBC.Names())
}

func TestComposeWithItselfIsIdempotent(t *testing.T) {
	f := newFixtures(t)

	for _, tr := range []*Trait{f.Atacante, f.Golondrina, f.AtacanteRecuperable} {
		t.Run(tr.Name(), func(t *testing.T) {
			twice, err := tr.Compose(tr, nil)
			require.NoError(t, err)
			assert.Equal(t, tr.Names(), twice.Names())

			a, b := instanceUses(tr), instanceUses(twice)
			for _, name := range tr.Names() {
				assert.Equal(t, send(t, a, name), send(t, b, name), "method %s", name)
			}
		})
	}
}

func TestComposeSharedAncestorDoesNotConflict(t *testing.T) {
	f := newFixtures(t)

	atacante, err := f.Atacante.Compose(f.Recuperable, nil)
	require.NoError(t, err)
	defensor, err := f.Defensor.Compose(f.Recuperable, nil)
	require.NoError(t, err)

	tr, err := atacante.Compose(defensor, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, send(t, instanceUses(tr), "recuperarse"))
}

func TestComposeConflictWithoutStrategyFails(t *testing.T) {
	f := newFixtures(t)

	tr, err := f.AtacanteRecuperable.Compose(f.DefensorRecuperable, nil)
	assert.Nil(t, tr)
	require.ErrorIs(t, err, ErrUnresolvedConflict)

	var unresolved *UnresolvedConflictError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "recuperarse", unresolved.Name)
	assert.Equal(t, "Unresolved method conflict: recuperarse", err.Error())
}

func TestComposeConflictOnUnlistedNameFails(t *testing.T) {
	f := newFixtures(t)

	// A strategy for a different name does not cover recuperarse.
	_, err := f.AtacanteRecuperable.Compose(f.DefensorRecuperable, Strategies{"ataque": Arbitrary{}})
	assert.ErrorIs(t, err, ErrUnresolvedConflict)

	_, err = f.AtacanteRecuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": nil})
	assert.ErrorIs(t, err, ErrUnresolvedConflict, "nil strategy falls back to NoStrategy")
}

func TestComposeExclusionAvoidsConflict(t *testing.T) {
	f := newFixtures(t)

	right, err := f.DefensorRecuperable.Exclude("recuperarse")
	require.NoError(t, err)
	tr, err := f.AtacanteRecuperable.Compose(right, nil)
	require.NoError(t, err)

	guerrero := instanceUses(tr)
	assert.Equal(t, 5, send(t, guerrero, "recuperarse"))
	assert.Equal(t, 50, send(t, guerrero, "defensa"))
}

func TestComposeDoesNotMutateOperands(t *testing.T) {
	f := newFixtures(t)
	before := f.Recuperable.Names()
	body, _ := f.Recuperable.Method("recuperarse")

	_, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": Sequential{}})
	require.NoError(t, err)

	assert.Equal(t, before, f.Recuperable.Names())
	after, _ := f.Recuperable.Method("recuperarse")
	assert.Same(t, body, after)
}

func TestComposeResolvesEveryConflict(t *testing.T) {
	f := newFixtures(t)

	strategies := Strategies{
		"ataque":      NewInject(add),
		"recuperarse": Arbitrary{},
	}
	tr, err := f.AtacanteRecuperableMultiplicado.Compose(f.AtacanteRecuperableSumado, strategies)
	require.NoError(t, err)

	guerrero := instanceUses(tr)
	assert.Equal(t, 15, send(t, guerrero, "recuperarse", 3))
	assert.Equal(t, 65, send(t, guerrero, "ataque", 5))
}

func TestComposeStrategyErrorAborts(t *testing.T) {
	f := newFixtures(t)
	boom := errors.New("boom")

	failing := StrategyFunc(func([]Entry) (Entry, error) { return Entry{}, boom })
	tr, err := f.AtacanteRecuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": failing})
	assert.Nil(t, tr)
	assert.Same(t, boom, err, "strategy errors are returned unchanged")
}

func TestComposeRejectsNilResolution(t *testing.T) {
	f := newFixtures(t)

	empty := StrategyFunc(func([]Entry) (Entry, error) { return Entry{}, nil })
	_, err := f.AtacanteRecuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": empty})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestComposeResolvedEntryKeepsCollidingName(t *testing.T) {
	f := newFixtures(t)

	renaming := StrategyFunc(func(entries []Entry) (Entry, error) {
		return Entry{Name: "other", Body: entries[1].Body}, nil
	})
	tr, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": renaming})
	require.NoError(t, err)
	assert.Equal(t, []string{"defensa", "recuperarse"}, tr.Names())
	assert.Equal(t, 7, send(t, instanceUses(tr), "recuperarse"))
}

func TestComposeStrategyReceivesLeftThenRight(t *testing.T) {
	f := newFixtures(t)

	var seen []Entry
	spy := StrategyFunc(func(entries []Entry) (Entry, error) {
		seen = entries
		return entries[0], nil
	})
	_, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": spy})
	require.NoError(t, err)

	left, _ := f.Recuperable.Method("recuperarse")
	right, _ := f.DefensorRecuperable.Method("recuperarse")
	require.Len(t, seen, 2)
	assert.Same(t, left, seen[0].Body)
	assert.Same(t, right, seen[1].Body)
	assert.Equal(t, "recuperarse", seen[0].Name)
}

func TestCollisions(t *testing.T) {
	f := newFixtures(t)

	assert.Empty(t, f.Atacante.Collisions(f.Defensor))
	assert.Empty(t, f.Atacante.Collisions(f.Atacante))

	got := f.AtacanteRecuperable.Collisions(f.DefensorRecuperable)
	require.Len(t, got, 1)
	assert.Equal(t, "recuperarse", got[0].Name)

	got = f.AtacanteRecuperableMultiplicado.Collisions(f.AtacanteRecuperableSumado)
	require.Len(t, got, 2)
	assert.Equal(t, "ataque", got[0].Name)
	assert.Equal(t, "recuperarse", got[1].Name)
}

func TestComposeWithNilOperand(t *testing.T) {
	f := newFixtures(t)

	tr, err := f.Atacante.Compose(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, f.Atacante.Names(), tr.Names())
}

func TestChainedCompositionProvenance(t *testing.T) {
	f := newFixtures(t)

	// A synthesized resolution is a new owner.
	seq, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": Sequential{}})
	require.NoError(t, err)
	resolved, _ := seq.Method("recuperarse")
	original, _ := f.Recuperable.Method("recuperarse")
	assert.NotEqual(t, original.Owner(), resolved.Owner())

	// Composing the resolved trait with itself is still conflict-free.
	again, err := seq.Compose(seq, nil)
	require.NoError(t, err)
	assert.Equal(t, seq.Names(), again.Names())

	// Composing it back with an operand conflicts with the new provenance.
	_, err = seq.Compose(f.Recuperable, nil)
	assert.ErrorIs(t, err, ErrUnresolvedConflict)

	// Arbitrary keeps the winning entry's owner, so no new conflict appears.
	arb, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": Arbitrary{}})
	require.NoError(t, err)
	_, err = arb.Compose(f.Recuperable, nil)
	assert.NoError(t, err)

	// Two independent resolutions of the same name conflict.
	seq2, err := f.Recuperable.Compose(f.DefensorRecuperable, Strategies{"recuperarse": Sequential{}})
	require.NoError(t, err)
	_, err = seq.Compose(seq2, nil)
	assert.ErrorIs(t, err, ErrUnresolvedConflict)
}

func TestComposedName(t *testing.T) {
	f := newFixtures(t)

	tr, err := f.Atacante.Compose(f.Defensor, nil)
	require.NoError(t, err)
	assert.Equal(t, "(Atacante + Defensor)", tr.Name())
	assert.Equal(t, "(Atacante + Defensor){ataque, defensa}", tr.String())
}

func TestComposeNilTraitIsEmpty(t *testing.T) {
	f := newFixtures(t)
	var empty *Trait

	tests := []struct {
		name        string
		left, right *Trait
		want        []string
	}{
		{name: "nil right", left: f.Atacante, right: empty, want: f.Atacante.Names()},
		{name: "nil left", left: empty, right: f.Atacante, want: f.Atacante.Names()},
		{name: "both nil", left: empty, right: empty, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := tt.left.Compose(tt.right, nil)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, tr.Names())
		})
	}
}
