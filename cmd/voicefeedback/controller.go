package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/kbukum/voicefeedback/capture"
	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/logger"
	"github.com/kbukum/voicefeedback/notify"
	"github.com/kbukum/voicefeedback/util"
)

const helpText = `Commands:
  start   begin recording, replacing a stopped one
  stop    stop recording
  play    play the recording back
  submit  upload the recording
  cancel  discard the recording
  quit    close without submitting`

// recentFunc lists the feedback already stored for a prediction.
type recentFunc func(ctx context.Context, predictionID string) ([]feedback.Record, error)

// controller is the terminal capture UI: one line per command, state
// changes and notifications printed as they happen.
type controller struct {
	vc           *capture.VoiceCapture
	predictionID string
	out          io.Writer
	log          *logger.Logger

	mu        sync.Mutex
	done      chan struct{}
	closeOnce sync.Once
}

type controllerDeps struct {
	Device    capture.Device
	Player    capture.Player
	Submitter capture.Submitter
	Recent    recentFunc
	Notifier  notify.Notifier
	Log       *logger.Logger
}

func newController(predictionID string, out io.Writer, deps controllerDeps) *controller {
	c := &controller{
		predictionID: predictionID,
		out:          out,
		log:          deps.Log,
		done:         make(chan struct{}),
	}
	opts := []capture.Option{
		capture.WithSubmitter(deps.Submitter),
		capture.WithNotifier(deps.Notifier),
		capture.WithLogger(deps.Log),
		capture.WithStateListener(c.showState),
		capture.WithOnClose(c.close),
	}
	if deps.Player != nil {
		opts = append(opts, capture.WithPlayer(deps.Player))
	}
	if deps.Recent != nil {
		opts = append(opts, capture.WithRefresh(func(ctx context.Context) {
			c.refresh(ctx, deps.Recent)
		}))
	}
	c.vc = capture.New(deps.Device, opts...)
	return c
}

func (c *controller) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *controller) showState(s capture.State) {
	if text := s.StatusText(); text != "" {
		c.printf("%s\n", text)
	}
}

func (c *controller) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

func (c *controller) refresh(ctx context.Context, recent recentFunc) {
	records, err := recent(ctx, c.predictionID)
	if err != nil {
		c.log.Warn("Listing feedback failed", logger.ErrorFields("refresh", err))
		return
	}
	c.printf("Prediction %s now has %s voice feedback recording(s).\n",
		c.predictionID, util.FormatNumber(int64(len(records))))
}

// run reads commands from in until quit, a successful submit, EOF or ctx
// cancellation. Any open session is cancelled on the way out.
func (c *controller) run(ctx context.Context, in io.Reader) error {
	defer func() { _ = c.vc.Close(context.Background()) }()
	defer c.close()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-c.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	c.printf("Voice feedback for prediction %s.\n%s\n", c.predictionID, helpText)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-c.done:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if c.dispatch(ctx, line) {
				return nil
			}
		}
	}
}

// dispatch runs one command and reports whether the UI should close.
// Capture errors are already shown through the notifier.
func (c *controller) dispatch(ctx context.Context, line string) bool {
	switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
	case "":
	case "start":
		_ = c.vc.Start(ctx)
	case "stop":
		if err := c.vc.Stop(ctx); err != nil {
			return false
		}
		if a := c.vc.Artifact(); a != nil {
			c.printf("Captured %s (%s bytes).\n", util.FormatClock(a.Duration), util.FormatNumber(int64(a.Size())))
		}
	case "play":
		_ = c.vc.Playback(ctx)
	case "submit":
		_ = c.vc.Submit(ctx, c.predictionID)
	case "cancel":
		_ = c.vc.Cancel(ctx)
	case "quit", "exit", "close":
		return true
	case "help", "?":
		c.printf("%s\n", helpText)
	default:
		c.printf("Unknown command %q. Type help for the list.\n", cmd)
	}
	return false
}
