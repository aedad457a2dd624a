package ctrlcatalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/partition"
	"go.bytecake.dev/pws/server/ctrlbase"
	"go.bytecake.dev/pws/server/ctrlcatalog/params"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

type Controller struct {
	*ctrlbase.Controller
}

func New(base *ctrlbase.Controller) *Controller {
	return &Controller{
		Controller: base,
	}
}

func writeResp(w http.ResponseWriter, resp *spec.Response) error {
	data, err := json.Marshal(resp.Body())
	if err != nil {
		return fmt.Errorf("marshal to json: %w", err)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(resp.Code)
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

type handlerCatalog func(r *http.Request) *spec.Response

func (c *Controller) H(h handlerCatalog) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := h(r)
		if response == nil {
			log.Println("error: non raw catalog handler returned a nil response")
			return
		}
		if err := writeResp(w, response); err != nil {
			log.Printf("error writing catalog response (normal handler): %v\n", err)
		}
	})
}

type handlerCatalogRaw func(w http.ResponseWriter, r *http.Request) *spec.Response

// HR is for handlers which may write the body themselves, in which case they
// return nil.
func (c *Controller) HR(h handlerCatalogRaw) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := h(w, r)
		if response == nil {
			return
		}
		if err := writeResp(w, response); err != nil {
			log.Printf("error writing catalog response (raw handler): %v\n", err)
		}
	})
}

// catalogMessages is the detail sent for each failure of one kind of entity
type catalogMessages struct {
	exists   string
	notFound string
}

var (
	albumMessages     = catalogMessages{exists: spec.MsgAlbumExists, notFound: spec.MsgAlbumNotFound}
	musicMessages     = catalogMessages{exists: spec.MsgMusicExists, notFound: spec.MsgMusicNotFound}
	partitionMessages = catalogMessages{exists: spec.MsgPartitionExists, notFound: spec.MsgPartitionNotFound}
)

// errResponse maps a failed operation to its status and fixed message.
// anything unexpected is logged and reported as an internal error
func errResponse(r *http.Request, msgs catalogMessages, err error) *spec.Response {
	switch {
	case errors.Is(err, db.ErrConflict), errors.Is(err, partition.ErrAlreadyExists):
		return spec.NewError(http.StatusGone, msgs.exists)
	case errors.Is(err, db.ErrNotFound), errors.Is(err, partition.ErrNotFound):
		return spec.NewError(http.StatusNotFound, msgs.notFound)
	case errors.Is(err, db.ErrInvalid),
		errors.Is(err, partition.ErrInvalidID),
		errors.Is(err, params.ErrBadBody),
		errors.Is(err, params.ErrBadValue):
		return spec.NewError(http.StatusBadRequest, spec.MsgBadRequest)
	}
	log.Printf("error serving %s %s: %v", r.Method, r.URL.Path, err)
	return spec.NewError(http.StatusInternalServerError, spec.MsgInternal)
}
