package ctrlcatalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/server/ctrlcatalog/params"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

func (c *Controller) ServeAlbumDefine(r *http.Request) *spec.Response {
	var req params.Album
	if err := params.Decode(r.Body, &req); err != nil {
		return errResponse(r, albumMessages, err)
	}
	if err := req.Validate(); err != nil {
		return errResponse(r, albumMessages, err)
	}

	album := &db.Album{ID: mux.Vars(r)["id"]}
	req.Fields().Apply(album)
	if err := c.DB.CreateAlbum(album); err != nil {
		return errResponse(r, albumMessages, err)
	}
	return spec.NewResponse(http.StatusCreated, spec.MsgAlbumDefined)
}

func (c *Controller) ServeAlbumInfo(r *http.Request) *spec.Response {
	album, err := c.DB.GetAlbum(mux.Vars(r)["id"])
	if err != nil {
		return errResponse(r, albumMessages, err)
	}
	music, err := c.DB.MusicByAlbum(album.ID)
	if err != nil {
		return errResponse(r, albumMessages, err)
	}
	return spec.NewObject(spec.NewAlbum(album, music))
}

func (c *Controller) ServeAlbumModify(r *http.Request) *spec.Response {
	var req params.Album
	if err := params.Decode(r.Body, &req); err != nil {
		return errResponse(r, albumMessages, err)
	}
	if err := req.Validate(); err != nil {
		return errResponse(r, albumMessages, err)
	}
	if _, err := c.DB.UpdateAlbum(mux.Vars(r)["id"], req.Fields()); err != nil {
		return errResponse(r, albumMessages, err)
	}
	return spec.NewResponse(http.StatusOK, spec.MsgAlbumModified)
}

func (c *Controller) ServeAlbumRemove(r *http.Request) *spec.Response {
	if err := c.DB.DeleteAlbum(mux.Vars(r)["id"]); err != nil {
		return errResponse(r, albumMessages, err)
	}
	return spec.NewResponse(http.StatusCreated, spec.MsgAlbumRemoved)
}
