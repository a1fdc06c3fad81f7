package recipe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/traits/pkg/types"
)

func TestParseManifest(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		wantTraits int
		wantComps  int
		wantErr    error
	}{
		{name: "empty document", doc: "", wantTraits: 0},
		{name: "guerreros", doc: guerreros, wantTraits: 10, wantComps: 4},
		{
			name:    "unknown key",
			doc:     "traits:\n  - name: A\n    metodos: {}\n",
			wantErr: types.ErrInvalidRecipe,
		},
		{
			name:    "unknown op",
			doc:     "traits:\n  - name: A\n    methods:\n      a: {op: div}\n",
			wantErr: types.ErrInvalidRecipe,
		},
		{
			name:    "duplicate trait",
			doc:     "traits:\n  - name: A\n  - name: A\n",
			wantErr: types.ErrDuplicateName,
		},
		{
			name:    "composition without operands",
			doc:     "compositions:\n  - name: C\n",
			wantErr: types.ErrInvalidRecipe,
		},
		{
			name:    "not yaml",
			doc:     "traits: [",
			wantErr: types.ErrInvalidRecipe,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest([]byte(tt.doc))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, m.Traits, tt.wantTraits)
			assert.Len(t, m.Compositions, tt.wantComps)
		})
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guerreros.yaml")
	require.NoError(t, os.WriteFile(path, []byte(guerreros), 0o644))

	m, err := LoadManifest(path)
	require.NoError(t, err)

	rec, err := m.TraitRecord("AtacanteRecuperableMultiplicado")
	require.NoError(t, err)
	assert.Equal(t, types.MethodSpec{Op: types.OpMul, Value: 5, Default: 1}, rec.Methods["recuperarse"])

	comp, err := m.CompositionRecord("Contador")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, comp.TraitNames())

	_, err = m.TraitRecord("Nadie")
	assert.ErrorIs(t, err, types.ErrNotFound)

	_, err = LoadManifest(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
