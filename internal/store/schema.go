package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS benchmarking_results (
    position               INTEGER PRIMARY KEY,
    request_id             TEXT NOT NULL DEFAULT '',
    prompt_text            TEXT NOT NULL DEFAULT '',
    generated_text         TEXT NOT NULL DEFAULT '',
    token_count            REAL,
    time_to_first_token    REAL,
    time_per_output_token  REAL,
    total_generation_time  REAL,
    timestamp              TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS import_tracker (
    source_path          TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    record_count         INTEGER NOT NULL,
    imported_at          TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_results_timestamp ON benchmarking_results(timestamp);
`
