package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per prepare invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    input_path TEXT NOT NULL,
    seed TEXT NOT NULL,             -- uint64 does not fit INTEGER
    train_fraction REAL NOT NULL,
    min_count INTEGER NOT NULL,
    status TEXT NOT NULL,           -- running, succeeded, failed
    input_count INTEGER DEFAULT 0,
    train_count INTEGER DEFAULT 0,
    test_count INTEGER DEFAULT 0,
    train_path TEXT,
    test_path TEXT,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);

-- Stage transitions: every state a split passed through
CREATE TABLE IF NOT EXISTS stage_transitions (
    transition_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    split TEXT NOT NULL,
    stage TEXT NOT NULL,
    documents INTEGER NOT NULL,
    seq INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_transitions_run ON stage_transitions(run_id);

-- Rejections: documents blanked by a stage
CREATE TABLE IF NOT EXISTS rejections (
    rejection_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    split TEXT NOT NULL,
    doc_index INTEGER NOT NULL,
    reason TEXT NOT NULL,
    language TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_rejections_run ON rejections(run_id);
CREATE INDEX IF NOT EXISTS idx_rejections_reason ON rejections(reason);
`
