package ctrlcatalog

import (
	"net/http"

	"github.com/gorilla/mux"

	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/server/ctrlcatalog/params"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

func (c *Controller) ServeMusicDefine(r *http.Request) *spec.Response {
	var req params.Music
	if err := params.Decode(r.Body, &req); err != nil {
		return errResponse(r, musicMessages, err)
	}
	if err := req.ValidateDefine(); err != nil {
		return errResponse(r, musicMessages, err)
	}

	music := &db.Music{ID: mux.Vars(r)["id"]}
	req.Fields().Apply(music)
	if err := c.DB.CreateMusic(music); err != nil {
		return errResponse(r, musicMessages, err)
	}
	return spec.NewResponse(http.StatusCreated, spec.MsgMusicDefined)
}

func (c *Controller) ServeMusicInfo(r *http.Request) *spec.Response {
	music, err := c.DB.GetMusic(mux.Vars(r)["id"])
	if err != nil {
		return errResponse(r, musicMessages, err)
	}
	return spec.NewObject(spec.NewMusic(music))
}

func (c *Controller) ServeMusicModify(r *http.Request) *spec.Response {
	var req params.Music
	if err := params.Decode(r.Body, &req); err != nil {
		return errResponse(r, musicMessages, err)
	}
	if err := req.Validate(); err != nil {
		return errResponse(r, musicMessages, err)
	}
	if _, err := c.DB.UpdateMusic(mux.Vars(r)["id"], req.Fields()); err != nil {
		return errResponse(r, musicMessages, err)
	}
	return spec.NewResponse(http.StatusOK, spec.MsgMusicModified)
}

func (c *Controller) ServeMusicRemove(r *http.Request) *spec.Response {
	if err := c.DB.DeleteMusic(mux.Vars(r)["id"]); err != nil {
		return errResponse(r, musicMessages, err)
	}
	return spec.NewResponse(http.StatusCreated, spec.MsgMusicRemoved)
}
