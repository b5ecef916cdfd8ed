// Package bootstrap orchestrates the lifecycle of the feedbackd service and
// the voicefeedback CLI.
//
// An App owns the typed config, the global logger and a component registry.
// Run blocks until SIGINT or SIGTERM for long-running services; RunTask wraps a
// finite workflow such as an interactive recording session.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//		return err
//	}
//	if err := app.RegisterComponent(server.NewComponent(srv)); err != nil {
//		return err
//	}
//	return app.Run(ctx)
package bootstrap
