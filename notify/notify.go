// Package notify delivers short user-facing notifications (the toasts of the
// capture UI) to the log, the terminal or the desktop.
package notify

import (
	"context"
	"errors"
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "info"
}

// Notification is one message shown to the user.
type Notification struct {
	Level   Level
	Title   string
	Message string
}

// Info returns an info-level notification.
func Info(msg string) Notification { return Notification{Level: LevelInfo, Message: msg} }

// Error returns an error-level notification.
func Error(msg string) Notification { return Notification{Level: LevelError, Message: msg} }

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Func adapts a function to Notifier.
type Func func(ctx context.Context, n Notification) error

// Notify implements Notifier.
func (f Func) Notify(ctx context.Context, n Notification) error { return f(ctx, n) }

// Nop discards every notification.
var Nop Notifier = Func(func(context.Context, Notification) error { return nil })

// Multi fans a notification out to every notifier and joins their errors.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error
	for _, nt := range m {
		if nt == nil {
			continue
		}
		if err := nt.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
