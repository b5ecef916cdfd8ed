// Command feedbackd receives voice feedback uploads, stores the audio,
// optionally transcribes short recordings and serves the listing.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicefeedback/auth/password"
	"github.com/kbukum/voicefeedback/bootstrap"
	"github.com/kbukum/voicefeedback/config"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/observability"
	"github.com/kbukum/voicefeedback/server"
	"github.com/kbukum/voicefeedback/storage"
	"github.com/kbukum/voicefeedback/version"

	_ "github.com/kbukum/voicefeedback/storage/local"
	_ "github.com/kbukum/voicefeedback/storage/memory"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:          serviceName,
		Short:        "Voice feedback service",
		SilenceUsage: true,
		Version:      version.Get().Short(),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			app, err := newApp(cfg)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to config.yml")

	root.AddCommand(newHashPasswordCommand(&configFile))
	return root
}

func loadConfig(path string) (*feedbackdConfig, error) {
	var cfg feedbackdConfig
	var opts []config.LoaderOption
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newApp assembles the service: storage, then the feedback API, then the
// HTTP server. Telemetry starts before the components serve traffic and is
// flushed on shutdown.
func newApp(cfg *feedbackdConfig) (*bootstrap.App[*feedbackdConfig], error) {
	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return nil, err
	}

	shutdownTelemetry, err := observability.Init(context.Background(), cfg.Observability, cfg.Name, version.Get().Short(), cfg.Environment)
	if err != nil {
		return nil, fmt.Errorf("observability: %w", err)
	}
	app.OnStop("telemetry", shutdownTelemetry)

	store := storage.NewComponent(cfg.Storage, app.Logger)
	srv := server.New(cfg.Server, app.Logger)
	srv.ApplyDefaults(cfg.Name, server.RegistryChecker(app.Components))

	if err := app.RegisterComponent(store); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(newAPIComponent(cfg, store, srv, app.Logger)); err != nil {
		return nil, err
	}
	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
		return nil, err
	}
	app.OnReady("announce", func(context.Context) error {
		app.Logger.Info("Accepting voice feedback", logger.Fields(
			"addr", srv.Addr(),
			"route", "POST "+feedback.PathVoice,
		))
		return nil
	})
	return app, nil
}

func newHashPasswordCommand(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password read from stdin for auth.users[].password_hash",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var pcfg password.Config
			if *configFile != "" {
				cfg, err := loadConfig(*configFile)
				if err != nil {
					return err
				}
				pcfg = cfg.Auth.Password
			}
			hash, err := hashPassword(pcfg, cmd.InOrStdin())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
}

// hashPassword hashes the first line of in.
func hashPassword(cfg password.Config, in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", fmt.Errorf("no password on stdin")
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	return password.NewHasher(cfg).Hash(secret)
}
