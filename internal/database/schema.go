package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(120) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               VARCHAR(2)   NOT NULL,
		address             VARCHAR(120) NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
		website             VARCHAR(120) NOT NULL DEFAULT '',
		genres              VARCHAR(500) NOT NULL DEFAULT '',
		seeking_talent      BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT ''
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS artists (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name                VARCHAR(120) NOT NULL,
		city                VARCHAR(120) NOT NULL,
		state               VARCHAR(2)   NOT NULL,
		phone               VARCHAR(120) NOT NULL DEFAULT '',
		genres              VARCHAR(500) NOT NULL DEFAULT '',
		image_link          VARCHAR(500) NOT NULL DEFAULT '',
		facebook_link       VARCHAR(120) NOT NULL DEFAULT '',
		website             VARCHAR(120) NOT NULL DEFAULT '',
		seeking_venue       BOOLEAN      NOT NULL DEFAULT FALSE,
		seeking_description VARCHAR(500) NOT NULL DEFAULT ''
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS shows (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		venue_id   BIGINT UNSIGNED NOT NULL,
		artist_id  BIGINT UNSIGNED NOT NULL,
		start_time DATETIME(3)     NOT NULL,
		KEY idx_shows_venue_start (venue_id, start_time),
		KEY idx_shows_artist_start (artist_id, start_time),
		CONSTRAINT fk_shows_venue FOREIGN KEY (venue_id) REFERENCES venues (id),
		CONSTRAINT fk_shows_artist FOREIGN KEY (artist_id) REFERENCES artists (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		name                TEXT    NOT NULL,
		city                TEXT    NOT NULL,
		state               TEXT    NOT NULL,
		address             TEXT    NOT NULL,
		phone               TEXT    NOT NULL DEFAULT '',
		image_link          TEXT    NOT NULL DEFAULT '',
		facebook_link       TEXT    NOT NULL DEFAULT '',
		website             TEXT    NOT NULL DEFAULT '',
		genres              TEXT    NOT NULL DEFAULT '',
		seeking_talent      INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS artists (
		id                  INTEGER PRIMARY KEY AUTOINCREMENT,
		name                TEXT    NOT NULL,
		city                TEXT    NOT NULL,
		state               TEXT    NOT NULL,
		phone               TEXT    NOT NULL DEFAULT '',
		genres              TEXT    NOT NULL DEFAULT '',
		image_link          TEXT    NOT NULL DEFAULT '',
		facebook_link       TEXT    NOT NULL DEFAULT '',
		website             TEXT    NOT NULL DEFAULT '',
		seeking_venue       INTEGER NOT NULL DEFAULT 0,
		seeking_description TEXT    NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS shows (
		id         INTEGER  PRIMARY KEY AUTOINCREMENT,
		venue_id   INTEGER  NOT NULL REFERENCES venues (id),
		artist_id  INTEGER  NOT NULL REFERENCES artists (id),
		start_time DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_venue_start ON shows (venue_id, start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_shows_artist_start ON shows (artist_id, start_time)`,
}

// Migrate creates the venues, artists and shows tables when missing.
// Statements run one at a time because the MySQL driver rejects
// multi-statement queries by default.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts := sqliteSchema
	if strings.EqualFold(driver, DriverMySQL) {
		stmts = mysqlSchema
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i+1, err)
		}
	}
	return nil
}
