package store

const createTableSQL = `
CREATE TABLE IF NOT EXISTS boards (
    id               TEXT PRIMARY KEY,
    form_factor      TEXT NOT NULL,
    component_count  INTEGER NOT NULL,
    kind_count       INTEGER NOT NULL,
    registered_at    TEXT NOT NULL,
    board_json       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_boards_form_factor ON boards(form_factor);
CREATE INDEX IF NOT EXISTS idx_boards_registered_at ON boards(registered_at);
`
