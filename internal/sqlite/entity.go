package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/traits/pkg/types"
)

// entity is the view the generic table code needs of a stored record.
type entity interface {
	id() string
	setID(id string)
	name() string
	stamp(created, updated time.Time)
	created() time.Time
	updated() time.Time
	validate() error
	value() any
}

// kind describes one table: its SQLite table, ID column, JSONL file and how
// records are wrapped and decoded.
type kind struct {
	table    string
	idColumn string
	file     string
	wrap     func(data any) (entity, bool)
	decode   func(raw []byte) (entity, error)
}

var kinds = []kind{
	{
		table:    types.TraitsTable,
		idColumn: "trait_id",
		file:     traitsJSONL,
		wrap: func(data any) (entity, bool) {
			rec, ok := data.(*types.TraitRecord)
			if !ok || rec == nil {
				return nil, false
			}
			return traitEntity{rec}, true
		},
		decode: func(raw []byte) (entity, error) {
			var rec types.TraitRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("decoding trait: %w", err)
			}
			return traitEntity{&rec}, nil
		},
	},
	{
		table:    types.CompositionsTable,
		idColumn: "composition_id",
		file:     compositionsJSONL,
		wrap: func(data any) (entity, bool) {
			rec, ok := data.(*types.CompositionRecord)
			if !ok || rec == nil {
				return nil, false
			}
			return compositionEntity{rec}, true
		},
		decode: func(raw []byte) (entity, error) {
			var rec types.CompositionRecord
			if err := json.Unmarshal(raw, &rec); err != nil {
				return nil, fmt.Errorf("decoding composition: %w", err)
			}
			return compositionEntity{&rec}, nil
		},
	},
}

type traitEntity struct{ *types.TraitRecord }

func (e traitEntity) id() string         { return e.TraitID }
func (e traitEntity) setID(id string)    { e.TraitID = id }
func (e traitEntity) name() string       { return e.Name }
func (e traitEntity) created() time.Time { return e.CreatedAt }
func (e traitEntity) updated() time.Time { return e.UpdatedAt }
func (e traitEntity) validate() error    { return e.Validate() }
func (e traitEntity) value() any         { return e.TraitRecord }

func (e traitEntity) stamp(created, updated time.Time) {
	e.CreatedAt, e.UpdatedAt = created, updated
}

type compositionEntity struct{ *types.CompositionRecord }

func (e compositionEntity) id() string         { return e.CompositionID }
func (e compositionEntity) setID(id string)    { e.CompositionID = id }
func (e compositionEntity) name() string       { return e.Name }
func (e compositionEntity) created() time.Time { return e.CreatedAt }
func (e compositionEntity) updated() time.Time { return e.UpdatedAt }
func (e compositionEntity) validate() error    { return e.Validate() }
func (e compositionEntity) value() any         { return e.CompositionRecord }

func (e compositionEntity) stamp(created, updated time.Time) {
	e.CreatedAt, e.UpdatedAt = created, updated
}
