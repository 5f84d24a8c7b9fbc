package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gntaxa/internal/iodispatch"
	"github.com/gnames/gntaxa/internal/ioweb"
	"github.com/gnames/gntaxa/pkg/parserpool"
	"github.com/spf13/cobra"
)

func getServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run REST API over all operations",
		Long: `Run a web service that gives access to all operations over HTTP.

Endpoints:
  GET  /api/v1/ping
  GET  /api/v1/version
  GET  /api/v1/{operation}?source=&name=&id=&simplify=&rank=
  POST /api/v1/{operation}  {"source","names","ids","simplify","rank"}

Operations: ids, common, classification, children, downstream, bold,
dataobjects. Parameters name and id can be repeated, ids can also be
given as a comma-separated list.`,
		Example: `  gntaxa serve -p 8888
  curl 'http://localhost:8888/api/v1/common?source=itis&name=Pinus+contorta'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runServe(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
	cmd.Flags().IntP("port", "p", 0, "port of the web service")
	addConfigFlags(cmd)
	return cmd
}

func runServe(cmd *cobra.Command) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool := parserpool.NewPool(0, cfg.Code)
	defer pool.Close()

	taxa := iodispatch.NewWeb(cfg, pool)
	srv := ioweb.New(cfg,
		iodispatch.WithSimplify(taxa, false),
		iodispatch.WithSimplify(taxa, true),
	)

	gn.Info("Starting web service on port <em>%d</em>", cfg.ServerPort)
	return srv.Run(ctx)
}
