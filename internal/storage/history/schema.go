package history

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS calls (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		tx_type    TEXT    NOT NULL,
		account    TEXT    NOT NULL,
		result     TEXT    NOT NULL,
		code       INTEGER NOT NULL,
		applied_at INTEGER NOT NULL,
		tx_json    TEXT    NOT NULL,
		meta       BLOB
	)`,
	`CREATE INDEX IF NOT EXISTS calls_account_idx ON calls (account)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS calls (
		id         BIGSERIAL PRIMARY KEY,
		tx_type    TEXT    NOT NULL,
		account    TEXT    NOT NULL,
		result     TEXT    NOT NULL,
		code       INTEGER NOT NULL,
		applied_at BIGINT  NOT NULL,
		tx_json    TEXT    NOT NULL,
		meta       BYTEA
	)`,
	`CREATE INDEX IF NOT EXISTS calls_account_idx ON calls (account)`,
}

const insertCall = `INSERT INTO calls (tx_type, account, result, code, applied_at, tx_json, meta)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

const selectCalls = `SELECT id, tx_type, account, result, code, applied_at, tx_json, meta FROM calls`
