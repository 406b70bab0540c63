package db

import (
	"errors"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"xorm.io/xorm"
	"xorm.io/xorm/log"
	"xorm.io/xorm/names"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// Connection wraps the database engine that stores submissions and accounts.
type Connection struct {
	engine *xorm.Engine
}

// Close the database.
func (conn *Connection) Close() error {
	return conn.engine.Close()
}

// New returns a database connection for the sqlite db file at the given path.
// If it does not exist it is created.
func New(path string) (*Connection, error) {
	return Open("sqlite3", path)
}

// Open returns a database connection for the given driver ("sqlite3" or
// "postgres") and data source and creates or updates the tables.
func Open(driver, dsn string) (*Connection, error) {
	db, err := xorm.NewEngine(driver, dsn)
	if err != nil {
		return nil, err
	}
	db.Logger().SetLevel(log.LOG_WARNING)
	db.SetMapper(names.GonicMapper{})

	if err := db.Sync2(new(Submission), new(Account)); err != nil {
		db.Close()
		return nil, err
	}
	return &Connection{db}, nil
}
