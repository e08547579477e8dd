package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Readings table - one row per completed analysis
		`CREATE TABLE IF NOT EXISTS readings (
			id TEXT PRIMARY KEY,
			age TEXT NOT NULL,
			gender TEXT NOT NULL,
			focus TEXT NOT NULL,
			shape TEXT NOT NULL,
			source TEXT NOT NULL CHECK(source IN ('detected', 'simulated')),
			fallback TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Thumbnails table - small PNG previews of the uploaded palm
		`CREATE TABLE IF NOT EXISTS reading_thumbnails (
			reading_id TEXT PRIMARY KEY REFERENCES readings(id) ON DELETE CASCADE,
			data BLOB NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_readings_created_at ON readings(created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
