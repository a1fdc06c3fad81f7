package sqlite

// Schema DDL. Each table keeps the full JSON record in body; the other
// columns exist for lookup and ordering.
const (
	createTraits = `CREATE TABLE traits (
    trait_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createCompositions = `CREATE TABLE compositions (
    composition_id TEXT PRIMARY KEY,
    name TEXT NOT NULL UNIQUE,
    body TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`
)

// Index DDL.
const (
	idxTraitsCreated       = `CREATE INDEX idx_traits_created ON traits(created_at);`
	idxCompositionsCreated = `CREATE INDEX idx_compositions_created ON compositions(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createTraits,
	createCompositions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxTraitsCreated,
	idxCompositionsCreated,
}
