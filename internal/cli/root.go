// Package cli implements the s3tool command tree. Every operation command
// prints exactly one JSON value on stdout; logs go to stderr.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool"
	s3errors "github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/internal/config"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3tool/s3types"
)

// Connector opens a connection. s3tool.Connect is the default.
type Connector func(ctx context.Context, creds s3types.Credentials, opts ...s3types.Option) s3tool.ConnectionResult

// App carries the state shared by the commands of one invocation.
type App struct {
	stdout    io.Writer
	stderr    io.Writer
	connector Connector

	cfg    *config.Config
	logger *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithOutput sets the writers used for JSON output and logs.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(a *App) {
		a.stdout = stdout
		a.stderr = stderr
	}
}

// WithConnector replaces the function used to open connections.
func WithConnector(connector Connector) Option {
	return func(a *App) {
		a.connector = connector
	}
}

// NewRootCommand builds the s3tool command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &App{
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		connector: s3tool.Connect,
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "s3tool",
		Short: "Run single operations against an S3-compatible object store",
		Long: `s3tool connects to an S3-compatible object store with static credentials,
runs one operation and prints the result as JSON. Failed operations are
reported in the "message" field of the result and do not change the exit code.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(
		a.connectTestCmd(),
		a.lookupBucketCmd(),
		a.lookupKeyCmd(),
		a.listBucketsCmd(),
		a.listKeysCmd(),
		a.getACLCmd(),
		a.setACLCmd(),
		a.createBucketCmd(),
		a.deleteBucketCmd(),
		a.deleteKeysCmd(),
		a.downloadFileCmd(),
		a.downloadFilesCmd(),
		a.uploadFileCmd(),
		a.copyFileCmd(),
		a.generateURLCmd(),
		a.locationsCmd(),
		a.regionsCmd(),
	)
	return root
}

// Execute runs the command tree with the process arguments and returns
// the exit code.
func Execute(ctx context.Context) int {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		return 1
	}
	return 0
}

func (a *App) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	return nil
}

// connect opens the connection for an operation command. Settings that
// cannot be turned into credentials are reported as a failed connection.
func (a *App) connect(ctx context.Context) s3tool.ConnectionResult {
	creds, err := a.cfg.Credentials()
	if err != nil {
		a.logger.ErrorContext(ctx, "invalid connection settings", "error", err)
		return s3tool.ConnectionFailed(s3errors.NewConnectionError(err))
	}

	opts := []s3types.Option{s3tool.WithLogger(a.logger)}
	if a.cfg.MaxRetries > 0 {
		opts = append(opts, s3tool.WithMaxRetries(a.cfg.MaxRetries))
	}
	if a.cfg.Timeout > 0 {
		opts = append(opts, s3tool.WithTimeout(a.cfg.Timeout))
	}
	return a.connector(ctx, creds, opts...)
}

// print writes v as JSON indented with four spaces.
func (a *App) print(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return nil
}
