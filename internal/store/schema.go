package store

const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	comparison_key TEXT NOT NULL,
	summary TEXT NOT NULL DEFAULT '',
	genres TEXT NOT NULL DEFAULT '[]',
	developer TEXT NOT NULL DEFAULT '',
	publisher TEXT NOT NULL DEFAULT '',
	first_release_year INTEGER NOT NULL DEFAULT 0,
	cover_url TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_games_comparison_key ON games(comparison_key);

CREATE TABLE IF NOT EXISTS releases (
	id TEXT PRIMARY KEY,
	game_id TEXT NOT NULL REFERENCES games(id),
	platform TEXT NOT NULL,
	display_title TEXT NOT NULL,
	cover_url TEXT NOT NULL DEFAULT '',
	platform_label TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- One release per platform edition of a game. This constraint is the
-- concurrency-control mechanism for racing resolver calls.
CREATE UNIQUE INDEX IF NOT EXISTS idx_releases_platform_game ON releases(platform, game_id);

CREATE TABLE IF NOT EXISTS external_ids (
	release_id TEXT NOT NULL REFERENCES releases(id),
	source TEXT NOT NULL,
	external_id TEXT NOT NULL,
	PRIMARY KEY (source, external_id)
);

CREATE INDEX IF NOT EXISTS idx_external_ids_release ON external_ids(release_id);

CREATE TABLE IF NOT EXISTS owned_games (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	release_id TEXT NOT NULL REFERENCES releases(id),
	source TEXT NOT NULL,
	added_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, release_id)
);

CREATE TABLE IF NOT EXISTS progress_entries (
	user_id TEXT NOT NULL,
	release_id TEXT NOT NULL REFERENCES releases(id),
	source TEXT NOT NULL,
	earned INTEGER NOT NULL DEFAULT 0,
	total INTEGER NOT NULL DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (user_id, release_id)
);

CREATE TABLE IF NOT EXISTS release_stats (
	release_id TEXT PRIMARY KEY REFERENCES releases(id),
	owner_count INTEGER NOT NULL DEFAULT 0,
	last_synced_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_jobs (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	source TEXT NOT NULL,
	status TEXT NOT NULL,
	processed INTEGER NOT NULL DEFAULT 0,
	imported INTEGER NOT NULL DEFAULT 0,
	mapped_existing INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	failed INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS sync_state (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS cache (
	key TEXT PRIMARY KEY,
	data BLOB,
	expires_at DATETIME
);
`
