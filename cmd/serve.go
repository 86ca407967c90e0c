package cmd

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/job-matcher/internal/logger"
	"github.com/job-matcher/internal/server"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const defaultListenAddr = ":8080"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the matching pipeline over an HTTP API",
	Run: func(cmd *cobra.Command, _ []string) {
		serve(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("listen", "l", "", "listen address. Default is :8080.")

	viper.BindPFlag("server.listen", serveCmd.Flags().Lookup("listen"))
}

func serve(_ *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	if config == nil {
		logger.Fatal("config is required")
	}

	source, err := buildJobSource(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the theirstack client", zap.Error(err))
	}

	if err := source.Ping(); err != nil {
		logger.Fatal("checking theirstack connectivity", zap.Error(err))
	}

	extractor, err := buildExtractor(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the resume extractor", zap.Error(err))
	}

	srv, err := server.New(extractor, source, config.Match, logger)
	if err != nil {
		logger.Fatal("building the server", zap.Error(err))
	}

	addr := viper.GetString("server.listen")
	if addr == "" && config.Server != nil {
		addr = config.Server.Listen
	}
	if addr == "" {
		addr = defaultListenAddr
	}

	if err := srv.Run(ctx, addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
