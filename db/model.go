// Package db is the relational catalog of albums and music.
//
// Nullable columns are pointers. A nil pointer is SQL NULL.
package db

import "time"

// Album represents the albums table
type Album struct {
	ID            string `gorm:"primary_key"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	ReleasedAt    *int64
	Title         *string
	Length        *int
	ArtistName    *string
	CoverBlockKey *string
}

// AlbumFields is a partial album. Only non nil fields are applied.
type AlbumFields struct {
	ReleasedAt    *int64
	Title         *string
	Length        *int
	ArtistName    *string
	CoverBlockKey *string
}

func (f AlbumFields) Apply(album *Album) {
	if f.ReleasedAt != nil {
		album.ReleasedAt = f.ReleasedAt
	}
	if f.Title != nil {
		album.Title = f.Title
	}
	if f.Length != nil {
		album.Length = f.Length
	}
	if f.ArtistName != nil {
		album.ArtistName = f.ArtistName
	}
	if f.CoverBlockKey != nil {
		album.CoverBlockKey = f.CoverBlockKey
	}
}

// Music represents the music table. AlbumID names an album by id but is not
// a foreign key, removing an album leaves its music in place.
type Music struct {
	ID        string `gorm:"primary_key"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string  `gorm:"not null"`
	AlbumID   *string
	Length    *int
}

func (Music) TableName() string {
	return "music"
}

// MusicFields is a partial music. Only non nil fields are applied.
type MusicFields struct {
	Title   *string
	AlbumID *string
	Length  *int
}

func (f MusicFields) Apply(music *Music) {
	if f.Title != nil {
		music.Title = *f.Title
	}
	if f.AlbumID != nil {
		music.AlbumID = f.AlbumID
	}
	if f.Length != nil {
		music.Length = f.Length
	}
}

type Stats struct {
	Albums      int
	Music       int
	OrphanMusic int
}
