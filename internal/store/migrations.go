package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations. The database is
// in-memory, so these run on every session start; versioning keeps the
// mechanism uniform anyway.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS deadlines (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	date       TEXT NOT NULL,
	type       TEXT NOT NULL,
	course     TEXT NOT NULL DEFAULT '',
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_deadlines_date ON deadlines(date);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
