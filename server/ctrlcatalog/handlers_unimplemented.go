package ctrlcatalog

import (
	"net/http"

	"go.bytecake.dev/pws/server/ctrlcatalog/spec"
)

func (c *Controller) ServeRecommended(_ *http.Request) *spec.Response {
	return spec.NewError(http.StatusNotImplemented, spec.MsgNotImplemented)
}
