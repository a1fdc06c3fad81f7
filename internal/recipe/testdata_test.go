package recipe

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// guerreros declares the traits and compositions used across the assembler
// tests.
const guerreros = `
traits:
  - name: Atacante
    methods:
      ataque: {op: const, value: 10}
  - name: Defensor
    methods:
      defensa: {op: const, value: 50}
  - name: Recuperable
    methods:
      recuperarse: {op: const, value: 5}
  - name: DefensorRecuperable
    methods:
      defensa: {op: const, value: 50}
      recuperarse: {op: const, value: 7}
  - name: AtacanteMultiplicado
    methods:
      ataque: {op: mul, value: 10}
  - name: AtacanteSumado
    methods:
      ataque: {op: add, value: 10}
  - name: AtacanteRecuperableMultiplicado
    methods:
      ataque: {op: mul, value: 10}
      recuperarse: {op: mul, value: 5, default: 1}
  - name: AtacanteRecuperableSumado
    methods:
      ataque: {op: add, value: 10}
      recuperarse: {op: add, value: 5, default: 1}
  - name: T1
    methods:
      count!: {op: incr, field: count}
      count: {op: get, field: count, value: 0}
  - name: T2
    methods:
      count!: {op: incr, field: count}
compositions:
  - name: Guerrero
    operands: [{trait: Atacante}, {trait: Defensor}]
  - name: Paladin
    operands: [{trait: Guerrero}, {trait: DefensorRecuperable, exclude: [defensa]}]
  - name: Contador
    operands: [{trait: T1}, {trait: T2}]
    strategies:
      count!: {kind: sequential}
  - name: Bucle
    operands: [{trait: Atacante}, {trait: Bucle}]
`

func loadGuerreros(t *testing.T) *Manifest {
	t.Helper()
	m, err := ParseManifest([]byte(guerreros))
	require.NoError(t, err)
	return m
}
