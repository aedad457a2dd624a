package ctrlcatalog

import (
	"log"
	"net/http"
	"strings"

	"go.bytecake.dev/pws/server/ctrlcatalog/params"
	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

// ServeSearch checks the search request but there is no search index yet, so
// a well formed search is answered with 501.
func (c *Controller) ServeSearch(r *http.Request) *spec.Response {
	var req params.Search
	if err := params.Decode(r.Body, &req); err != nil {
		return errResponse(r, catalogMessages{}, err)
	}
	if err := req.Normalize(); err != nil {
		return errResponse(r, catalogMessages{}, err)
	}
	log.Printf("search for %q in %s (batch %d, offset %d) is not implemented",
		*req.TargetKeyword, strings.Join(req.TargetTypes, ","), *req.BatchSize, *req.Offset)
	return spec.NewError(http.StatusNotImplemented, spec.MsgNotImplemented)
}
