package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/micromarket/app/jobs"
	"github.com/shashiranjanraj/micromarket/app/routes"
	"github.com/shashiranjanraj/micromarket/app/services"
	"github.com/shashiranjanraj/micromarket/config"
	"github.com/shashiranjanraj/micromarket/internal/server"
	"github.com/shashiranjanraj/micromarket/pkg/cache"
	"github.com/shashiranjanraj/micromarket/pkg/logger"
	"github.com/shashiranjanraj/micromarket/pkg/metrics"
	"github.com/shashiranjanraj/micromarket/pkg/middleware"
	"github.com/shashiranjanraj/micromarket/pkg/queue"
	"github.com/shashiranjanraj/micromarket/pkg/reqid"
	"github.com/shashiranjanraj/micromarket/pkg/router"
	"github.com/shashiranjanraj/micromarket/pkg/schedule"
	"github.com/shashiranjanraj/micromarket/pkg/storage"
)

// micromarket serve boots everything and starts the HTTP server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		if err := cache.Connect(); err != nil {
			logger.Warn("redis unavailable, caching disabled", "error", err)
		} else {
			queue.SetDriver(queue.NewRedisDriver(cache.RDB))
		}

		jobs.RegisterAll()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		queue.StartWorkers(ctx, queueWorkersFlag)

		carts := services.NewCartService(db)
		schedule.Daily().Name("carts:prune").WithoutOverlapping().Run(func() {
			n, err := carts.PruneStale(30 * 24 * time.Hour)
			if err != nil {
				logger.Error("cart prune failed", "error", err)
				return
			}
			if n > 0 {
				logger.Info("pruned stale carts", "count", n)
			}
		})
		schedule.Start(ctx)

		return server.Start(buildHandler(db))
	},
}

// buildHandler assembles the middleware stack and the full route table.
func buildHandler(db *gorm.DB) http.Handler {
	r := router.New()

	r.Use(reqid.Middleware())
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(300, time.Minute))
	r.Use(metrics.Middleware())

	routes.Register(r, routes.Deps{DB: db, Disks: storage.New()})
	r.HandleFunc("/metrics", metrics.Handler())

	return r.Handler()
}

// micromarket route:list prints all registered routes.
var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "List all registered named routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		r := router.New()
		routes.Register(r, routes.Deps{Disks: storage.New()})

		infos := r.Routes()
		if len(infos) == 0 {
			fmt.Println("No named routes registered.")
			return nil
		}

		sort.Slice(infos, func(i, j int) bool {
			if infos[i].Path != infos[j].Path {
				return infos[i].Path < infos[j].Path
			}
			return infos[i].Method < infos[j].Method
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH\tNAME")
		fmt.Fprintln(w, "------\t----\t----")
		for _, ri := range infos {
			fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
		}
		return w.Flush()
	},
}
