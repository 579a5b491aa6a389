package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS responses (
    cache_key            TEXT PRIMARY KEY,
    payload              BLOB NOT NULL,
    stored_at            INTEGER NOT NULL,
    expires_at           INTEGER NOT NULL,
    hits                 INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_responses_expires ON responses(expires_at);
`
