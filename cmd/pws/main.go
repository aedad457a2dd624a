//nolint:lll
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/oklog/run"
	"github.com/peterbourgon/ff"

	"go.bytecake.dev/pws"
	"go.bytecake.dev/pws/db"
	"go.bytecake.dev/pws/partition"
	"go.bytecake.dev/pws/paths"
	"go.bytecake.dev/pws/server/ctrlbase"
	"go.bytecake.dev/pws/server/ctrlcatalog"
)

func main() {
	set := flag.NewFlagSet(pws.Name, flag.ExitOnError)
	confListenAddr := set.String("listen-addr", "0.0.0.0:8000", "listen address (optional)")

	confTLSCert := set.String("tls-cert", "", "path to TLS certificate (optional)")
	confTLSKey := set.String("tls-key", "", "path to TLS private key (optional)")

	confDataPath := set.String("data-path", "", "path to the data dir holding the database and partitions. default ~/.pws-restapi-server (optional)")
	confDBPath := set.String("db-path", "", "path to database, overrides the one in the data dir (optional)")
	confPartitionsPath := set.String("partitions-path", "", "path to partitions, overrides the one in the data dir (optional)")

	confProxyPrefix := set.String("proxy-prefix", "", "url path prefix to use if behind proxy. eg '/pws' (optional)")
	confHTTPLog := set.Bool("http-log", true, "http request logging (optional)")
	confExpvar := set.Bool("expvar", false, "enable the /debug/vars endpoint (optional)")

	confShowVersion := set.Bool("version", false, "show pws version")
	_ = set.String("config-path", "", "path to config (optional)")

	if err := ff.Parse(set, os.Args[1:],
		ff.WithConfigFileFlag("config-path"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix(pws.NameUpper),
	); err != nil {
		log.Fatalf("error parsing args: %v\n", err)
	}

	if *confShowVersion {
		fmt.Printf("v%s\n", pws.Version)
		os.Exit(0)
	}

	if *confDataPath == "" {
		root, err := paths.DefaultRoot()
		if err != nil {
			log.Fatalf("error finding data dir: %v\n", err)
		}
		*confDataPath = root
	}
	layout := paths.New(*confDataPath, *confDBPath, *confPartitionsPath)
	if err := layout.Ensure(); err != nil {
		log.Fatalf("error creating data dirs: %v\n", err)
	}

	proxyPrefixExpr := regexp.MustCompile(`^\/*(.*?)\/*$`)
	*confProxyPrefix = proxyPrefixExpr.ReplaceAllString(*confProxyPrefix, `/$1`)

	log.Printf("starting pws v%s\n", pws.Version)
	log.Printf("provided config\n")
	set.VisitAll(func(f *flag.Flag) {
		value := strings.ReplaceAll(f.Value.String(), "\n", "")
		log.Printf("    %-25s %s\n", f.Name, value)
	})
	log.Printf("using %s\n", layout)

	dbc, err := db.New(layout.DB, db.DefaultOptions())
	if err != nil {
		log.Fatalf("error opening database: %v\n", err)
	}
	defer dbc.Close()

	if err := dbc.Migrate(); err != nil {
		log.Panicf("error migrating database: %v\n", err)
	}

	partitions, err := partition.NewStore(layout.Partitions)
	if err != nil {
		log.Panicf("error creating partition store: %v\n", err)
	}

	ctrlBase := &ctrlbase.Controller{
		DB:          dbc,
		Partitions:  partitions,
		ProxyPrefix: *confProxyPrefix,
	}
	ctrlCatalog := ctrlcatalog.New(ctrlBase)

	router := mux.NewRouter()
	routes := router
	if *confProxyPrefix != "/" {
		routes = router.PathPrefix(*confProxyPrefix).Subrouter()
	}
	ctrlbase.AddRoutes(ctrlBase, routes, *confHTTPLog)
	ctrlcatalog.AddRoutes(ctrlCatalog, routes)
	if *confExpvar {
		ctrlbase.AddDebugRoutes(ctrlBase, routes)
	}

	server := &http.Server{
		Addr:              *confListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       5 * time.Minute, // partition uploads
		WriteTimeout:      80 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var g run.Group
	g.Add(func() error {
		log.Printf("starting job 'http' on %s\n", ctrlBase.Path("/"))
		var err error
		if *confTLSCert != "" && *confTLSKey != "" {
			err = server.ListenAndServeTLS(*confTLSCert, *confTLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}, func(_ error) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("error shutting down http server: %v", err)
		}
	})

	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	err = g.Run()
	var signalErr run.SignalError
	if errors.As(err, &signalErr) {
		log.Printf("stopping on %s\n", signalErr.Signal)
		return
	}
	if err != nil {
		log.Panicf("error in job: %v", err)
	}
}
