package ctrlcatalog

import (
	"net/http"

	"github.com/gorilla/mux"
)

// AddRoutes registers the catalog routes. OPTIONS is matched on every route
// so the CORS middleware gets to answer preflights.
func AddRoutes(c *Controller, r *mux.Router) {
	// album
	r.Handle("/album/{id}/define", c.H(c.ServeAlbumDefine)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/album/{id}/info", c.H(c.ServeAlbumInfo)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/album/{id}/modify", c.H(c.ServeAlbumModify)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/album/{id}/remove", c.H(c.ServeAlbumRemove)).Methods(http.MethodPost, http.MethodOptions)

	// music
	r.Handle("/music/{id}/define", c.H(c.ServeMusicDefine)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/music/{id}/info", c.H(c.ServeMusicInfo)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/music/{id}/modify", c.H(c.ServeMusicModify)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/music/{id}/remove", c.H(c.ServeMusicRemove)).Methods(http.MethodPost, http.MethodOptions)

	// partition
	r.Handle("/partition/{id}/read", c.HR(c.ServePartitionRead)).Methods(http.MethodGet, http.MethodHead, http.MethodOptions)
	r.Handle("/partition/{id}/write", c.H(c.ServePartitionWrite)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/partition/{id}/remove", c.H(c.ServePartitionRemove)).Methods(http.MethodPost, http.MethodOptions)

	// query
	r.Handle("/query/search", c.H(c.ServeSearch)).Methods(http.MethodPost, http.MethodOptions)
	r.Handle("/recommended/{id}/{kind:music|artist|album}", c.H(c.ServeRecommended)).Methods(http.MethodPost, http.MethodOptions)
}
