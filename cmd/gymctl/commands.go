package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"kw8/gym-app/internal/app"
	"kw8/gym-app/internal/config"
	"kw8/gym-app/internal/logging"
	"kw8/gym-app/internal/service"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "gymctl",
		Short:         "Operate the KW8 gym data service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", ".", "directory containing config.yaml")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log.level")

	cmd.AddCommand(
		newMigrateCmd(opts),
		newBackendCmd(opts),
		newCheckCmd(opts),
		newTokenCmd(opts),
	)
	return cmd
}

// open loads config and wires the app without background index creation.
func (o *rootOptions) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return app.New(ctx, cfg, logging.New(cfg.Log.Level), app.Options{SkipIndexes: true})
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	var preserveIDs bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Copy local folders, plans and users to the remote store",
		Long: "Copies every folder, plan and user from the local store to the remote store.\n" +
			"Without --preserve-ids each record gets a fresh remote id and a re-run creates duplicates.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Remote == nil {
				return service.ErrRemoteUnavailable
			}
			if !cmd.Flags().Changed("preserve-ids") {
				preserveIDs = a.Config.Migration.PreserveIDs
			}
			report, err := a.Remote.MigrateFromLocalStore(ctx, service.MigrationOptions{PreserveIDs: preserveIDs})
			if report != nil {
				_ = printJSON(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&preserveIDs, "preserve-ids", false, "upsert records under their local ids")
	return cmd
}

func newBackendCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "backend [local|remote]",
		Short:     "Show or switch the backend serving reads and writes",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"local", "remote"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if len(args) == 1 {
				var remote bool
				switch args[0] {
				case "local":
				case "remote":
					remote = true
				default:
					if remote, err = strconv.ParseBool(args[0]); err != nil {
						return fmt.Errorf("unknown backend %q, want local or remote", args[0])
					}
				}
				if err := a.Selector.Set(ctx, remote); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), map[string]bool{
				"remoteEnabled":    a.Selector.RemoteEnabled(ctx),
				"remoteConfigured": a.Remote != nil,
			})
		},
	}
	return cmd
}

func newCheckCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Run the local store self-test",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			result := a.Store.Check(ctx)
			if err := printJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
			if !result.Healthy() {
				return errors.New("local store is degraded")
			}
			return nil
		},
	}
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a JWT for an existing user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.Auth == nil {
				return errors.New("jwt.secret is not configured")
			}
			user, err := a.Users.GetByEmail(ctx, email)
			if err != nil {
				return fmt.Errorf("find user %s: %w", email, err)
			}
			token, err := a.Auth.IssueToken(user)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "user email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
