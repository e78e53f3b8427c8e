package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"coopdesk/internal/logging"
)

func main() {
	var (
		addr    string
		verbose bool
	)
	root := &cobra.Command{
		Use:          "mockapi",
		Short:        "In-memory cooperative API for local development",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{Verbose: verbose})
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			s := newServer(logger.Named("mockapi"))
			srv := &fasthttp.Server{
				Handler:            s.handle,
				Name:               "mockapi",
				MaxRequestBodySize: 32 << 20,
			}
			logger.Info("mockapi listening", zap.String("addr", addr))
			cmd.Printf("mockapi listening on %s\n", addr)
			return srv.ListenAndServe(addr)
		},
	}
	root.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every request")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
