package db

import (
	"database/sql"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

const (
	maxOpenConns = 50
	maxIdleConns = 10
	connMaxLife  = time.Minute * 15
)

func MustMigrate(db *sql.DB, migrationDir string) {
	driver, err := postgres.WithInstance(db, &postgres.Config{
		DatabaseName: "battleship",
	})
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationDir, "battleship", driver)
	if err != nil {
		panic(err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		panic(err)
	}
	if dirty {
		panic("database is dirty")
	}
	log.Info("migration version", "version", version)

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		panic(err)
	}
	log.Info("migration successful")
}

// MustConnectToDb opens the pool, pings it and runs the migrations
// found in migrationDir, e.g. "file://db/migration".
func MustConnectToDb(psqlUrl, migrationDir string) *sql.DB {
	// Open may just validate its arguments without creating a connection to the database
	db, err := sql.Open("postgres", psqlUrl)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)

	MustMigrate(db, migrationDir)
	return db
}
