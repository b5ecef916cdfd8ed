package notify

import (
	"context"

	"github.com/kbukum/voicefeedback/logger"
)

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier returns a LogNotifier; a nil logger uses the global one.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &LogNotifier{log: log.WithComponent("notify")}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, note Notification) error {
	fields := map[string]interface{}{"severity": note.Level.String()}
	if note.Title != "" {
		fields["title"] = note.Title
	}
	l := n.log.WithContext(ctx)
	if note.Level == LevelError {
		l.Warn(note.Message, fields)
		return nil
	}
	l.Info(note.Message, fields)
	return nil
}
