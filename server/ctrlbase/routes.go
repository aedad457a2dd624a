package ctrlbase

import (
	"expvar"
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"go.bytecake.dev/pws/handlerutil"
)

func AddRoutes(c *Controller, r *mux.Router, logHTTP bool) {
	var middlewares []handlerutil.Middleware
	if logHTTP {
		middlewares = append(middlewares, handlerutil.Log)
	}
	middlewares = append(middlewares,
		handlerutil.BasicCORS,
		handlers.RecoveryHandler(handlers.PrintRecoveryStack(true)),
	)
	r.Use(mux.MiddlewareFunc(handlerutil.Chain(middlewares...)))

	r.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "OK")
	})
}

// AddDebugRoutes serves expvar, including the catalog stats, on /debug/vars.
func AddDebugRoutes(c *Controller, r *mux.Router) {
	r.Handle("/debug/vars", expvar.Handler())
	expvar.Publish("stats", expvar.Func(func() any {
		return c.Stats()
	}))
}
