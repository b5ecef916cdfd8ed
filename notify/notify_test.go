package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kbukum/voicefeedback/logger"
)

func TestWriterNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewWriterNotifier(&buf)
	ctx := context.Background()

	if err := n.Notify(ctx, Info("Voice feedback submitted successfully")); err != nil {
		t.Fatal(err)
	}
	if err := n.Notify(ctx, Error("Microphone access denied")); err != nil {
		t.Fatal(err)
	}

	want := "✓ Voice feedback submitted successfully\n✗ Microphone access denied\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "info", Format: "json"}, "test", &buf)
	n := NewLogNotifier(log)

	if err := n.Notify(context.Background(), Error("Failed to submit voice feedback")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, `"level":"warn"`) || !strings.Contains(out, "Failed to submit voice feedback") {
		t.Errorf("unexpected log line %q", out)
	}
}

func TestDesktopNotifierUsesAppNameAsDefaultTitle(t *testing.T) {
	n := NewDesktopNotifier("voicefeedback", "")
	var gotTitle, gotMsg string
	n.send = func(title, message, _ string) error {
		gotTitle, gotMsg = title, message
		return nil
	}

	_ = n.Notify(context.Background(), Info("Recording complete"))
	if gotTitle != "voicefeedback" || gotMsg != "Recording complete" {
		t.Errorf("got %q / %q", gotTitle, gotMsg)
	}

	_ = n.Notify(context.Background(), Notification{Title: "Upload", Message: "done"})
	if gotTitle != "Upload" {
		t.Errorf("explicit title not used, got %q", gotTitle)
	}
}

func TestMulti(t *testing.T) {
	var calls []string
	record := func(name string, err error) Notifier {
		return Func(func(_ context.Context, n Notification) error {
			calls = append(calls, name+":"+n.Message)
			return err
		})
	}
	boom := errors.New("no display")
	m := Multi{record("a", nil), nil, record("b", boom), record("c", nil)}

	err := m.Notify(context.Background(), Info("hi"))
	if !errors.Is(err, boom) {
		t.Errorf("expected joined error, got %v", err)
	}
	if strings.Join(calls, ",") != "a:hi,b:hi,c:hi" {
		t.Errorf("every notifier should be called, got %v", calls)
	}
}

func TestLevelString(t *testing.T) {
	if LevelInfo.String() != "info" || LevelError.String() != "error" {
		t.Error("unexpected level names")
	}
}
