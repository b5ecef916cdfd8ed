// Package capture implements the voice feedback recorder: a small state
// machine (Idle, Recording, Stopped) that owns the microphone while
// recording, assembles the captured audio into an artifact, and hands the
// artifact to a Submitter together with the id of the prediction it belongs
// to.
//
//	vc := capture.New(device,
//		capture.WithPlayer(player),
//		capture.WithSubmitter(client),
//		capture.WithNotifier(notifier),
//		capture.WithRefresh(reload),
//	)
//	_ = vc.Start(ctx)
//	_ = vc.Stop(ctx)
//	_ = vc.Submit(ctx, "42")
//
// Every failure is an *errors.AppError, logged and shown through the
// notifier: UnsupportedPlatform, PermissionDenied and SubmissionFailed, plus
// InvalidState and NoRecording for operations issued in the wrong state.
// None of them is fatal; the controller stays in Idle or Stopped.
package capture
