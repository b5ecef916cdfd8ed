package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicefeedback/bootstrap"
	"github.com/kbukum/voicefeedback/capture/portaudio"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/notify"
)

func newRecordCommand(opts *rootOptions) *cobra.Command {
	var predictionID string
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record voice feedback on a prediction and submit it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := requireLogin(cmd.Context(), e.store, out); err != nil {
				return err
			}

			app, err := bootstrap.NewApp(e.cfg)
			if err != nil {
				return err
			}
			host := portaudio.NewHost(e.cfg.Audio, app.Logger)
			if err := app.RegisterComponent(host); err != nil {
				return err
			}
			client, err := feedback.NewClient(e.cfg.Server, e.store, app.Logger)
			if err != nil {
				return err
			}

			notifiers := notify.Multi{notify.NewWriterNotifier(out), notify.NewLogNotifier(app.Logger)}
			if e.cfg.Notify.Desktop {
				notifiers = append(notifiers, notify.NewDesktopNotifier(appName, e.cfg.Notify.Icon))
			}

			ctrl := newController(predictionID, out, controllerDeps{
				Device:    host.Device(),
				Player:    host.Player(),
				Submitter: client,
				Recent:    client.Recent,
				Notifier:  notifiers,
				Log:       app.Logger,
			})
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				return ctrl.run(ctx, cmd.InOrStdin())
			})
		},
	}
	cmd.Flags().StringVarP(&predictionID, "prediction-id", "p", "", "prediction the feedback is about")
	_ = cmd.MarkFlagRequired("prediction-id")
	return cmd
}
