// Command voicefeedback records spoken feedback on a prediction and uploads
// it to feedbackd.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicefeedback/credential"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/version"
)

const msgLoginFirst = "Not logged in. Run `voicefeedback login` first."

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	configFile string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          appName,
		Short:        "Record and submit voice feedback on predictions",
		SilenceUsage: true,
		Version:      version.Get().Short(),
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "path to config.yml")

	root.AddCommand(
		newRecordCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newRecentCommand(opts),
		newVersionCommand(),
	)
	return root
}

// env bundles what every subcommand needs after config is loaded.
type env struct {
	cfg   *cliConfig
	store *credential.FileStore
	log   *logger.Logger
}

func (o *rootOptions) load() (*env, error) {
	cfg, err := loadConfig(o.configFile)
	if err != nil {
		return nil, err
	}
	store, err := newCredentialStore(cfg.Credential)
	if err != nil {
		return nil, fmt.Errorf("credential store: %w", err)
	}
	return &env{cfg: cfg, store: store, log: logger.New(&cfg.Logging, cfg.Name)}, nil
}

// requireLogin runs the auth gate; the redirect prints the login hint.
func requireLogin(ctx context.Context, src credential.Source, out io.Writer) error {
	_, err := credential.Require(ctx, src, func(context.Context) {
		fmt.Fprintln(out, msgLoginFirst)
	})
	return err
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Get().String())
			return err
		},
	}
}
