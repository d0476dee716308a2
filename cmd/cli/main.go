// Package main provides the store-context command-line tool.
//
//	store-context                      interactive prompt
//	store-context lookup Apple Store   one lookup
//	store-context batch -f stores.txt  many lookups, concurrently
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fleveque/store-context/internal/config"
	"github.com/fleveque/store-context/internal/console"
	"github.com/fleveque/store-context/internal/service"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "store-context",
		Short:        "Describe a store to help shoppers decide whether to trust it",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", os.Getenv("STORECTX_CONFIG_PATH"), "Path to a YAML config file")

	root.AddCommand(askCmd(&configPath), lookupCmd(&configPath), batchCmd(&configPath))
	return root
}

func askCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "ask",
		Short: "Prompt for store names interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, *configPath)
		},
	}
}

func lookupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <store name or URL>",
		Short: "Describe a single store",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			svc, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			result, err := svc.Lookup(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return console.Render(cmd.OutOrStdout(), result, time.Now())
		},
	}
}

func batchCmd(configPath *string) *cobra.Command {
	var (
		file        string
		parallelism int
	)

	cmd := &cobra.Command{
		Use:   "batch [store...]",
		Short: "Describe many stores concurrently (one per line from --file or stdin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			svc, logger, cfg, err := setupWithConfig(*configPath)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			identifiers := args
			if len(identifiers) == 0 {
				identifiers, err = readIdentifiers(cmd.InOrStdin(), file)
				if err != nil {
					return err
				}
			}
			if len(identifiers) == 0 {
				return fmt.Errorf("no stores given")
			}

			if parallelism <= 0 {
				parallelism = cfg.Batch.Parallelism
			}

			items, batchErr := svc.LookupMany(ctx, identifiers, parallelism)

			out := cmd.OutOrStdout()
			failed := 0
			for _, item := range items {
				if item.Err != nil {
					failed++
					_ = console.RenderError(out, fmt.Sprintf("%s: %v", item.Identifier, item.Err))
					continue
				}
				if err := console.Render(out, item.Result, time.Now()); err != nil {
					return err
				}
			}

			if batchErr != nil {
				return fmt.Errorf("batch interrupted: %w", batchErr)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(identifiers))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "File with one store per line (default: stdin)")
	cmd.Flags().IntVarP(&parallelism, "parallelism", "p", 0, "Concurrent lookups (default: batch.parallelism)")
	return cmd
}

func runInteractive(cmd *cobra.Command, configPath string) error {
	ctx, stop := signalContext()
	defer stop()

	svc, logger, err := setup(configPath)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return console.NewSession(svc, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Run(ctx)
}

func setup(configPath string) (*service.LookupService, *zap.Logger, error) {
	svc, logger, _, err := setupWithConfig(configPath)
	return svc, logger, err
}

// setupWithConfig loads config and builds the service. A missing API key
// fails here, before any lookup.
func setupWithConfig(configPath string) (*service.LookupService, *zap.Logger, *config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	// Development logging keeps output readable in a terminal; below warn
	// it would interleave with the interactive prompt.
	zcfg := zap.NewDevelopmentConfig()
	if cfg.Log.Level != "debug" {
		zcfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	return service.NewFromConfig(cfg, logger), logger, cfg, nil
}

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// readIdentifiers reads one identifier per non-blank line from path, or from
// stdin when path is empty.
func readIdentifiers(stdin io.Reader, path string) ([]string, error) {
	r := stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()
		r = f
	}

	var ids []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			ids = append(ids, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading stores: %w", err)
	}
	return ids, nil
}
