package db

import (
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

func (db *DB) CreateAlbum(album *Album) error {
	if album.ID == "" {
		return fmt.Errorf("%w: album id is empty", ErrInvalid)
	}
	return db.WithTx(func(tx *gorm.DB) error {
		return create(tx, album, "album", album.ID)
	})
}

func (db *DB) GetAlbum(id string) (*Album, error) {
	var album Album
	err := db.WithTx(func(tx *gorm.DB) error {
		return first(tx, &album, "album", id)
	})
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// UpdateAlbum applies the non nil fields of patch to album id, leaving every
// other column as it was.
func (db *DB) UpdateAlbum(id string, patch AlbumFields) (*Album, error) {
	var album Album
	err := db.WithTx(func(tx *gorm.DB) error {
		if err := first(tx, &album, "album", id); err != nil {
			return err
		}
		patch.Apply(&album)
		if err := tx.Save(&album).Error; err != nil {
			return fmt.Errorf("save album %q: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &album, nil
}

// DeleteAlbum removes album id. Music referencing it is not touched.
func (db *DB) DeleteAlbum(id string) error {
	return db.WithTx(func(tx *gorm.DB) error {
		var album Album
		if err := first(tx, &album, "album", id); err != nil {
			return err
		}
		if err := tx.Delete(&album).Error; err != nil {
			return fmt.Errorf("delete album %q: %w", id, err)
		}
		return nil
	})
}

func (db *DB) CreateMusic(music *Music) error {
	if music.ID == "" {
		return fmt.Errorf("%w: music id is empty", ErrInvalid)
	}
	if music.Title == "" {
		return fmt.Errorf("%w: music title is empty", ErrInvalid)
	}
	return db.WithTx(func(tx *gorm.DB) error {
		return create(tx, music, "music", music.ID)
	})
}

func (db *DB) GetMusic(id string) (*Music, error) {
	var music Music
	err := db.WithTx(func(tx *gorm.DB) error {
		return first(tx, &music, "music", id)
	})
	if err != nil {
		return nil, err
	}
	return &music, nil
}

// UpdateMusic applies the non nil fields of patch to music id, leaving every
// other column as it was.
func (db *DB) UpdateMusic(id string, patch MusicFields) (*Music, error) {
	if patch.Title != nil && *patch.Title == "" {
		return nil, fmt.Errorf("%w: music title is empty", ErrInvalid)
	}
	var music Music
	err := db.WithTx(func(tx *gorm.DB) error {
		if err := first(tx, &music, "music", id); err != nil {
			return err
		}
		patch.Apply(&music)
		if err := tx.Save(&music).Error; err != nil {
			return fmt.Errorf("save music %q: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &music, nil
}

func (db *DB) DeleteMusic(id string) error {
	return db.WithTx(func(tx *gorm.DB) error {
		var music Music
		if err := first(tx, &music, "music", id); err != nil {
			return err
		}
		if err := tx.Delete(&music).Error; err != nil {
			return fmt.Errorf("delete music %q: %w", id, err)
		}
		return nil
	})
}

// MusicByAlbum finds the music naming albumID, ordered by id. The album
// itself need not exist.
func (db *DB) MusicByAlbum(albumID string) ([]*Music, error) {
	var music []*Music
	err := db.WithTx(func(tx *gorm.DB) error {
		return tx.
			Where("album_id=?", albumID).
			Order("id").
			Find(&music).
			Error
	})
	if err != nil {
		return nil, fmt.Errorf("find music by album %q: %w", albumID, err)
	}
	return music, nil
}

func (db *DB) Stats() (Stats, error) {
	var stats Stats
	err := db.WithTx(func(tx *gorm.DB) error {
		if err := tx.Model(Album{}).Count(&stats.Albums).Error; err != nil {
			return fmt.Errorf("count albums: %w", err)
		}
		if err := tx.Model(Music{}).Count(&stats.Music).Error; err != nil {
			return fmt.Errorf("count music: %w", err)
		}
		err := tx.
			Model(Music{}).
			Joins("LEFT JOIN albums ON albums.id=music.album_id").
			Where("music.album_id IS NOT NULL AND albums.id IS NULL").
			Count(&stats.OrphanMusic).
			Error
		if err != nil {
			return fmt.Errorf("count orphan music: %w", err)
		}
		return nil
	})
	return stats, err
}

func create(tx *gorm.DB, value interface{}, kind, id string) error {
	err := tx.Create(value).Error
	if isDuplicateErr(err) {
		return fmt.Errorf("%w: %s %q", ErrConflict, kind, id)
	}
	if err != nil {
		return fmt.Errorf("create %s %q: %w", kind, id, err)
	}
	return nil
}

func first(tx *gorm.DB, out interface{}, kind, id string) error {
	err := tx.
		Where("id=?", id).
		First(out).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
	}
	if err != nil {
		return fmt.Errorf("find %s %q: %w", kind, id, err)
	}
	return nil
}
