package db

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/jinzhu/gorm"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
	ErrInvalid  = errors.New("invalid record")
)

const dbMaxOpenConns = 1

func DefaultOptions() url.Values {
	return url.Values{
		// with this, multiple connections share a single data and schema cache.
		// see https://www.sqlite.org/sharedcache.html
		"cache": {"shared"},
		// with this, the db sleeps for a little while when locked. can prevent
		// a SQLITE_BUSY. see https://www.sqlite.org/c3ref/busy_timeout.html
		"_busy_timeout": {"30000"},
		"_journal_mode": {"WAL"},
	}
}

func mockOptions() url.Values {
	// no shared cache here, every mock gets its own private in-memory db
	return url.Values{
		"_busy_timeout": {"30000"},
	}
}

type DB struct {
	*gorm.DB
}

func New(path string, options url.Values) (*DB, error) {
	pathAndArgs := fmt.Sprintf("%s?%s", path, options.Encode())
	db, err := gorm.Open("sqlite3", pathAndArgs)
	if err != nil {
		return nil, fmt.Errorf("with gorm: %w", err)
	}
	db.SetLogger(log.New(os.Stdout, "gorm ", 0))
	db.DB().SetMaxOpenConns(dbMaxOpenConns)
	return &DB{DB: db}, nil
}

func NewMock() (*DB, error) {
	return New(":memory:", mockOptions())
}

// WithTx runs cb in a single transaction. The transaction is committed if cb
// returns nil and rolled back otherwise, so every call is one unit of work.
func (db *DB) WithTx(cb func(tx *gorm.DB) error) (err error) {
	tx := db.Begin()
	if err := tx.Error; err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	if err := cb(tx); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Printf("error rolling back transaction: %v", rbErr)
		}
		return err
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// isDuplicateErr reports whether err is a primary key or unique violation.
// other constraint failures, like NOT NULL, are not duplicates
func isDuplicateErr(err error) bool {
	var errs gorm.Errors
	if errors.As(err, &errs) {
		for _, err := range errs {
			if isDuplicateErr(err) {
				return true
			}
		}
		return false
	}
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintPrimaryKey, sqlite3.ErrConstraintUnique:
		return true
	}
	return false
}
