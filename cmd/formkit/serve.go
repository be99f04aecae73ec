package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/vango-dev/formkit/examples/signup"
	"github.com/vango-dev/formkit/internal/config"
	"github.com/vango-dev/formkit/pkg/server"
	"github.com/vango-dev/formkit/pkg/store"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo signup form",
		Long: `Serve the example signup form over HTTP and WebSocket.

Configuration is read from formkit.json in the current directory.
Submissions go to the configured S3 bucket, or to memory when no
bucket is set.

Examples:
  formkit serve
  formkit serve --addr :8080
  formkit serve --config ./deploy/formkit.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath, addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", config.ConfigFileName, "Path to configuration file")
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")

	return cmd
}

func runServe(configPath, addr string) error {
	printBanner()

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	factory, renderFn := signup.App(st, cfg.FormID)
	srv := server.New(server.Config{
		Addr:             cfg.Addr,
		Title:            cfg.Title,
		Pretty:           cfg.Pretty,
		ReadTimeout:      cfg.ReadTimeout(),
		MetricsNamespace: cfg.MetricsNamespace,
	}, factory, renderFn)

	info("Serving form %q on %s", cfg.FormID, cfg.Addr)
	info("Press Ctrl+C to stop")
	fmt.Println()

	return srv.Start(ctx)
}

// newStore builds the submission store the configuration asks for.
func newStore(ctx context.Context, cfg *config.Config) (store.SubmissionStore, error) {
	if cfg.S3.Bucket == "" {
		warn("No S3 bucket configured, keeping submissions in memory")
		return store.NewMemoryStore(), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	success("Storing submissions in s3://%s/%s", cfg.S3.Bucket, cfg.S3.Prefix)
	return store.NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3.Bucket, cfg.S3.Prefix), nil
}
