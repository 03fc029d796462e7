package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	cs "github.com/webtor-io/common-services"

	"github.com/reelgrid-io/web-api/handlers/catalog"
	"github.com/reelgrid-io/web-api/handlers/item"
	"github.com/reelgrid-io/web-api/handlers/watchlist"
	"github.com/reelgrid-io/web-api/services/content"
	"github.com/reelgrid-io/web-api/services/recommender"
	"github.com/reelgrid-io/web-api/services/tmdb"
	w "github.com/reelgrid-io/web-api/services/web"
)

func makeServeCMD() cli.Command {
	serveCMD := cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serves web server",
		Action:  serve,
	}
	configureServe(&serveCMD)
	return serveCMD
}

func configureServe(c *cli.Command) {
	c.Flags = cs.RegisterPGFlags(c.Flags)
	c.Flags = cs.RegisterProbeFlags(c.Flags)
	c.Flags = cs.RegisterPprofFlags(c.Flags)
	c.Flags = tmdb.RegisterFlags(c.Flags)
	c.Flags = recommender.RegisterFlags(c.Flags)
	c.Flags = w.RegisterFlags(c.Flags)
}

func serve(c *cli.Context) error {
	// Setting HTTP Client
	cl := http.DefaultClient

	// Setting DB
	pg := cs.NewPG(c)
	defer pg.Close()

	// Setting Migrations
	err := pgMigrate(c)
	if err != nil {
		return err
	}

	var servers []cs.Servable
	// Setting Probe
	probe := cs.NewProbe(c)
	if probe != nil {
		servers = append(servers, probe)
		defer probe.Close()
	}

	// Setting Pprof
	pprof := cs.NewPprof(c)
	if pprof != nil {
		servers = append(servers, pprof)
		defer pprof.Close()
	}

	// Setting Gin
	r := gin.Default()
	r.RedirectTrailingSlash = false
	r.Use(cors.Default())

	// Setting TMDB Api
	mapi := tmdb.New(c, cl)
	if mapi == nil {
		return errors.New("tmdb api token is required")
	}

	// Setting Recommender Api
	rapi := recommender.New(c, cl)

	// Setting Fetcher
	fetcher := content.NewFetcher(mapi)

	// Setting Resolver
	resolver := content.NewResolver(rapi, fetcher)

	// Setting Aggregator
	aggregator := content.NewAggregator(rapi, resolver)

	// Setting CatalogHandler
	catalog.RegisterHandler(r, mapi)

	// Setting ItemHandler
	item.RegisterHandler(r, fetcher, resolver)

	// Setting WatchlistHandler
	watchlist.RegisterHandler(r, pg, aggregator)

	// Setting Web
	web := w.New(c, r)
	servers = append(servers, web)
	defer web.Close()

	// Setting Serve
	serve := cs.NewServe(servers...)

	// And SERVE!
	err = serve.Serve()
	if err != nil {
		log.WithError(err).Error("got server error")
	}
	return err
}
