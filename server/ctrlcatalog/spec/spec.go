package spec

import (
	"net/http"

	"go.bytecake.dev/pws/db"
)

// Response is what every catalog handler returns. Object, when set, is sent
// as the JSON body, otherwise the body is a Message carrying Detail.
type Response struct {
	Code   int
	Detail string
	Object interface{}
}

type Message struct {
	Detail string `json:"detail"`
}

func NewResponse(code int, detail string) *Response {
	return &Response{Code: code, Detail: detail}
}

func NewObject(object interface{}) *Response {
	return &Response{Code: http.StatusOK, Object: object}
}

// NewError is a failed response. Only the fixed catalog message is sent to
// the client, the cause is for the server log.
func NewError(code int, detail string) *Response {
	return &Response{Code: code, Detail: detail}
}

func (r *Response) Body() interface{} {
	if r.Object != nil {
		return r.Object
	}
	return Message{Detail: r.Detail}
}

type Album struct {
	ID            string   `json:"album_id"`
	ReleasedAt    *int64   `json:"released_at"`
	Title         *string  `json:"title"`
	Length        *int     `json:"length"`
	ArtistName    *string  `json:"artist_name"`
	CoverBlockKey *string  `json:"cover_block_key"`
	MusicIDs      []string `json:"music_ids"`
}

func NewAlbum(a *db.Album, music []*db.Music) *Album {
	ret := &Album{
		ID:            a.ID,
		ReleasedAt:    a.ReleasedAt,
		Title:         a.Title,
		Length:        a.Length,
		ArtistName:    a.ArtistName,
		CoverBlockKey: a.CoverBlockKey,
		MusicIDs:      make([]string, 0, len(music)),
	}
	for _, m := range music {
		ret.MusicIDs = append(ret.MusicIDs, m.ID)
	}
	return ret
}

type Music struct {
	ID      string  `json:"music_id"`
	Title   string  `json:"title"`
	AlbumID *string `json:"album_id"`
	Length  *int    `json:"length"`
}

func NewMusic(m *db.Music) *Music {
	return &Music{
		ID:      m.ID,
		Title:   m.Title,
		AlbumID: m.AlbumID,
		Length:  m.Length,
	}
}
