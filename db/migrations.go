package db

import (
	"fmt"
	"log"

	"github.com/jinzhu/gorm"
	"gopkg.in/gormigrate.v1"
)

func (db *DB) Migrate() error {
	options := &gormigrate.Options{
		TableName:      "migrations",
		IDColumnName:   "id",
		IDColumnSize:   255,
		UseTransaction: false,
	}

	// $ date '+%Y%m%d%H%M'
	migrations := []*gormigrate.Migration{
		construct("202404021930", migrateInitSchema),
		construct("202404061115", migrateMusicAlbumIDX),
	}

	return gormigrate.
		New(db.DB, options, migrations).
		Migrate()
}

func construct(id string, f func(*gorm.DB) error) *gormigrate.Migration {
	return &gormigrate.Migration{
		ID: id,
		Migrate: func(db *gorm.DB) error {
			tx := db.Begin()
			if err := f(tx); err != nil {
				tx.Rollback()
				return fmt.Errorf("%q: %w", id, err)
			}
			if err := tx.Commit().Error; err != nil {
				return fmt.Errorf("%q: commit: %w", id, err)
			}
			log.Printf("migration '%s' finished", id)
			return nil
		},
		Rollback: func(*gorm.DB) error {
			return nil
		},
	}
}

func migrateInitSchema(tx *gorm.DB) error {
	return tx.AutoMigrate(
		Album{},
		Music{},
	).
		Error
}

func migrateMusicAlbumIDX(tx *gorm.DB) error {
	return tx.
		Model(Music{}).
		AddIndex("idx_music_album_id", "album_id").
		Error
}
