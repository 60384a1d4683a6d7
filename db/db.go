package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

const (
	DriverPostgres = "postgres"
	DriverSqlite   = "sqlite3"
	DriverNone     = "none"
)

const (
	maxOpenConns = 300
	maxIdleConns = 100
	connMaxLife  = time.Minute * 15

	databaseName = "mech"
)

// MustConnect opens the hangar database for driver and migrates it with
// the files under migrationDir/<driver>. DriverNone returns nil.
func MustConnect(driver, url, migrationDir string) *sql.DB {
	var db *sql.DB
	switch driver {
	case DriverPostgres:
		db = MustConnectToDb(url)
	case DriverSqlite:
		db = MustOpenSqlite(url)
	case DriverNone, "":
		return nil
	default:
		panic(fmt.Sprintf("unsupported db driver: %s", driver))
	}

	MustMigrate(db, driver, "file://"+filepath.ToSlash(filepath.Join(migrationDir, driver)))
	return db
}

func MustConnectToDb(psqlUrl string) *sql.DB {
	// Open may just validate its arguments without creating a connection
	db, err := sql.Open(DriverPostgres, psqlUrl)
	if err != nil {
		panic(err)
	}

	if err := db.Ping(); err != nil {
		panic(err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLife)
	return db
}

// MustOpenSqlite opens (and creates) a local sqlite file for development.
func MustOpenSqlite(dsn string) *sql.DB {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			panic(err)
		}
	}

	db, err := sql.Open(DriverSqlite, dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		panic(err)
	}
	if err := db.Ping(); err != nil {
		panic(err)
	}

	// sqlite serialises writers anyway
	db.SetMaxOpenConns(1)
	return db
}

func MustMigrate(db *sql.DB, driverName, migrationUrl string) {
	var (
		driver database.Driver
		err    error
	)
	switch driverName {
	case DriverPostgres:
		driver, err = postgres.WithInstance(db, &postgres.Config{DatabaseName: databaseName})
	case DriverSqlite:
		driver, err = sqlite3.WithInstance(db, &sqlite3.Config{DatabaseName: databaseName})
	default:
		err = fmt.Errorf("no migration driver for %s", driverName)
	}
	if err != nil {
		panic(err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationUrl, databaseName, driver)
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
	log.Info().Uint("version", version).Str("driver", driverName).Msg("migration version")

	if err = m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			return
		}
		panic(err)
	}
	log.Info().Str("driver", driverName).Msg("migration successful")
}
