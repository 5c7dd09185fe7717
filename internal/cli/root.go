// Package cli implements hubctl, an operator tool that works on the record
// store directly.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joao-fontenele/msme-business-hub/internal/billing"
	"github.com/joao-fontenele/msme-business-hub/internal/config"
	"github.com/joao-fontenele/msme-business-hub/internal/hub"
	"github.com/joao-fontenele/msme-business-hub/internal/store"
)

// Session is an opened hub plus the settings commands need.
type Session struct {
	Hub      *hub.Hub
	Business billing.Business
	Close    func() error
}

// Opener builds a Session. envFile may be empty.
type Opener func(ctx context.Context, envFile string) (*Session, error)

// NewRootCommand returns the hubctl command tree.
func NewRootCommand(open Opener) *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:           "hubctl",
		Short:         "Inspect and maintain MSME business hub records",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "env file to load (default is ./.env)")

	withHub := func(run func(cmd *cobra.Command, args []string, s *Session) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			s, err := open(cmd.Context(), envFile)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()
			return run(cmd, args, s)
		}
	}

	root.AddCommand(
		newInventoryCommand(withHub),
		newBillsCommand(withHub),
		&cobra.Command{
			Use:   "stats",
			Short: "Print dashboard figures as JSON",
			Args:  cobra.NoArgs,
			RunE: withHub(func(cmd *cobra.Command, _ []string, s *Session) error {
				return printJSON(cmd.OutOrStdout(), s.Hub.Dashboard())
			}),
		},
	)

	return root
}

type hubRunner func(run func(cmd *cobra.Command, args []string, s *Session) error) func(*cobra.Command, []string) error

// OpenFromConfig loads configuration and opens the configured store.
func OpenFromConfig(ctx context.Context, envFile string) (*Session, error) {
	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	cfg, err := config.Load("", files...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger := config.NewLogger(os.Stderr, cfg.LogLevel, "text")

	kv, closeKV, err := store.OpenKV(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	h, err := hub.New(ctx, hub.Deps{
		Store:  store.New(kv, cfg.Store.Prefix, logger),
		Logger: logger,
	}, hub.DefaultConfig())
	if err != nil {
		_ = closeKV()
		return nil, err
	}

	return &Session{
		Hub: h,
		Business: billing.Business{
			Name:    cfg.Business.Name,
			Address: cfg.Business.Address,
			Phone:   cfg.Business.Phone,
		},
		Close: closeKV,
	}, nil
}

// Execute runs hubctl against the configured store.
func Execute() {
	if err := NewRootCommand(OpenFromConfig).ExecuteContext(context.Background()); err != nil {
		slog.Error("hubctl failed", "error", err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
