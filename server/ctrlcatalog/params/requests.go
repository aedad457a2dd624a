package params

import (
	"fmt"

	"go.bytecake.dev/pws/db"
)

type Album struct {
	ReleasedAt    *int64  `json:"released_at"`
	Title         *string `json:"title"`
	Length        *int    `json:"length"`
	ArtistName    *string `json:"artist_name"`
	CoverBlockKey *string `json:"cover_block_key"`
}

func (a Album) Validate() error {
	if a.Length != nil && *a.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrBadValue, *a.Length)
	}
	return nil
}

func (a Album) Fields() db.AlbumFields {
	return db.AlbumFields{
		ReleasedAt:    a.ReleasedAt,
		Title:         a.Title,
		Length:        a.Length,
		ArtistName:    a.ArtistName,
		CoverBlockKey: a.CoverBlockKey,
	}
}

type Music struct {
	Title   *string `json:"title"`
	AlbumID *string `json:"album_id"`
	Length  *int    `json:"length"`
}

// ValidateDefine checks a body for a new music, which needs a title.
func (m Music) ValidateDefine() error {
	if m.Title == nil {
		return fmt.Errorf("%w: title is required", ErrBadValue)
	}
	return m.Validate()
}

func (m Music) Validate() error {
	if m.Title != nil && *m.Title == "" {
		return fmt.Errorf("%w: empty title", ErrBadValue)
	}
	if m.Length != nil && *m.Length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrBadValue, *m.Length)
	}
	return nil
}

func (m Music) Fields() db.MusicFields {
	return db.MusicFields{
		Title:   m.Title,
		AlbumID: m.AlbumID,
		Length:  m.Length,
	}
}

const (
	TargetAll    = "all"
	TargetAlbum  = "album"
	TargetMusic  = "music"
	TargetArtist = "artist"

	DefaultBatchSize = 10
	MaxBatchSize     = 100
)

type Search struct {
	TargetTypes   []string `json:"target-types"`
	TargetKeyword *string  `json:"target-keyword"`
	BatchSize     *int     `json:"batch-size"`
	Offset        *int     `json:"offset"`
}

// Normalize fills in defaults and checks the search is well formed.
func (s *Search) Normalize() error {
	if len(s.TargetTypes) == 0 {
		s.TargetTypes = []string{TargetAll}
	}
	for _, target := range s.TargetTypes {
		switch target {
		case TargetAll, TargetAlbum, TargetMusic, TargetArtist:
		default:
			return fmt.Errorf("%w: unknown target type %q", ErrBadValue, target)
		}
	}
	if s.TargetKeyword == nil || *s.TargetKeyword == "" {
		return fmt.Errorf("%w: target-keyword is required", ErrBadValue)
	}
	if s.BatchSize == nil {
		batchSize := DefaultBatchSize
		s.BatchSize = &batchSize
	}
	if *s.BatchSize < 1 || *s.BatchSize > MaxBatchSize {
		return fmt.Errorf("%w: batch-size %d out of range", ErrBadValue, *s.BatchSize)
	}
	if s.Offset == nil {
		var offset int
		s.Offset = &offset
	}
	if *s.Offset < 0 {
		return fmt.Errorf("%w: negative offset %d", ErrBadValue, *s.Offset)
	}
	return nil
}
