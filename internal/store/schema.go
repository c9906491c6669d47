package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    name                 TEXT NOT NULL,
    compute              TEXT NOT NULL,
    blob                 TEXT NOT NULL,
    compute_monthly      REAL NOT NULL,
    storage_per_gb       REAL NOT NULL,
    egress_per_gb        REAL NOT NULL,
    token_price          REAL NOT NULL,
    stake                REAL NOT NULL,
    storage_gb           REAL NOT NULL,
    egress_gb            REAL NOT NULL,
    annual_reward_rate   REAL NOT NULL,
    week_count           INTEGER NOT NULL,
    final_net            REAL NOT NULL,
    created_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_weeks (
    run_id               INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    week                 INTEGER NOT NULL,
    earnings             REAL NOT NULL,
    infra_cost           REAL NOT NULL,
    net                  REAL NOT NULL,
    cumulative_net       REAL NOT NULL,
    PRIMARY KEY (run_id, week)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_name ON runs(name);
`
