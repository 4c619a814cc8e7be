package postgresql

// migrations returns the schema migrations keyed by version. Automations and
// executions are stored as JSONB documents with the columns queries filter
// and sort on extracted alongside.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS automations (
				id         TEXT PRIMARY KEY,
				owner      TEXT NOT NULL DEFAULT '',
				status     TEXT NOT NULL,
				name       TEXT NOT NULL,
				data       JSONB NOT NULL,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_automations_owner ON automations (owner);
			CREATE INDEX IF NOT EXISTS idx_automations_status ON automations (status);
		`,
		2: `
			CREATE TABLE IF NOT EXISTS executions (
				id            TEXT PRIMARY KEY,
				automation_id TEXT NOT NULL,
				status        TEXT NOT NULL,
				data          JSONB NOT NULL,
				started_at    TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX IF NOT EXISTS idx_executions_automation ON executions (automation_id);
			CREATE INDEX IF NOT EXISTS idx_executions_status ON executions (status);
		`,
	}
}
