package notify

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// WriterNotifier prints notifications as lines on a terminal or any writer.
type WriterNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterNotifier returns a WriterNotifier writing to w.
func NewWriterNotifier(w io.Writer) *WriterNotifier {
	return &WriterNotifier{w: w}
}

// Notify implements Notifier.
func (n *WriterNotifier) Notify(_ context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	prefix := "✓"
	if note.Level == LevelError {
		prefix = "✗"
	}
	_, err := fmt.Fprintf(n.w, "%s %s\n", prefix, note.Message)
	return err
}
