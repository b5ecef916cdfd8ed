package component

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fake records lifecycle calls into a shared log.
type fake struct {
	name     string
	log      *[]string
	startErr error
	stopErr  error
	status   HealthStatus
}

func (f *fake) Name() string { return f.name }

func (f *fake) Start(context.Context) error {
	*f.log = append(*f.log, "start:"+f.name)
	return f.startErr
}

func (f *fake) Stop(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		*f.log = append(*f.log, "no-deadline:"+f.name)
	}
	*f.log = append(*f.log, "stop:"+f.name)
	return f.stopErr
}

func (f *fake) Health(context.Context) Health {
	return Health{Name: f.name, Status: f.status}
}

func register(t *testing.T, r *Registry, cs ...*fake) {
	t.Helper()
	for _, c := range cs {
		if err := r.Register(c); err != nil {
			t.Fatalf("Register(%s): %v", c.name, err)
		}
	}
}

func TestRegistryLifecycleOrder(t *testing.T) {
	var log []string
	r := NewRegistry()
	register(t, r, &fake{name: "storage", log: &log}, &fake{name: "api", log: &log}, &fake{name: "http", log: &log})

	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	// A second StartAll leaves running components alone.
	if err := r.StartAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	// Stopped components are not stopped twice.
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := "start:storage,start:api,start:http,stop:http,stop:api,stop:storage"
	if got := strings.Join(log, ","); got != want {
		t.Errorf("calls\n got %s\nwant %s", got, want)
	}
}

func TestRegistryStartFailure(t *testing.T) {
	var log []string
	r := NewRegistry()
	bind := errors.New("bind: address already in use")
	register(t, r,
		&fake{name: "storage", log: &log},
		&fake{name: "http", log: &log, startErr: bind},
		&fake{name: "late", log: &log},
	)

	err := r.StartAll(context.Background())
	if !errors.Is(err, bind) || !strings.Contains(err.Error(), "start http") {
		t.Fatalf("StartAll = %v", err)
	}
	if err := r.StopAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	want := "start:storage,start:http,stop:storage"
	if got := strings.Join(log, ","); got != want {
		t.Errorf("calls\n got %s\nwant %s", got, want)
	}
}

func TestRegistryStopJoinsErrors(t *testing.T) {
	var log []string
	r := NewRegistry()
	flush := errors.New("flush failed")
	closeErr := errors.New("close failed")
	register(t, r,
		&fake{name: "storage", log: &log, stopErr: closeErr},
		&fake{name: "telemetry", log: &log, stopErr: flush},
	)
	_ = r.StartAll(context.Background())

	err := r.StopAll(context.Background())
	if !errors.Is(err, flush) || !errors.Is(err, closeErr) {
		t.Errorf("StopAll = %v, want both failures", err)
	}
	if strings.Contains(strings.Join(log, ","), "no-deadline") {
		t.Error("Stop should run under a deadline")
	}
}

func TestRegistryLookup(t *testing.T) {
	var log []string
	r := NewRegistry()
	register(t, r, &fake{name: "storage", log: &log, status: StatusHealthy}, &fake{name: "audio", log: &log, status: StatusDegraded})

	if err := r.Register(&fake{name: "storage", log: &log}); err == nil {
		t.Error("duplicate name accepted")
	}
	if r.Get("audio") == nil || r.Get("missing") != nil {
		t.Error("Get mismatch")
	}

	all := r.All()
	if len(all) != 2 || all[0].Name() != "storage" || all[1].Name() != "audio" {
		t.Errorf("All() order wrong: %v", all)
	}
	health := r.HealthAll(context.Background())
	if len(health) != 2 || health[0].Status != StatusHealthy || health[1].Status != StatusDegraded {
		t.Errorf("HealthAll() = %+v", health)
	}
}

func TestLazyInitOnce(t *testing.T) {
	calls := 0
	l := NewLazy("portaudio", func(context.Context) error {
		calls++
		return nil
	})
	if l.Ready() {
		t.Fatal("ready before Init")
	}
	if err := l.Check(context.Background()); err == nil {
		t.Error("Check before Init should fail")
	}
	for i := 0; i < 3; i++ {
		if err := l.Init(context.Background()); err != nil {
			t.Fatalf("Init: %v", err)
		}
	}
	if calls != 1 || !l.Ready() {
		t.Errorf("calls=%d ready=%v", calls, l.Ready())
	}
}

func TestLazyCachesFailure(t *testing.T) {
	now := time.Unix(1000, 0)
	calls := 0
	l := NewLazy("portaudio", func(context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("no audio backend")
		}
		return nil
	}).WithRetryDelay(time.Second)
	l.now = func() time.Time { return now }

	if err := l.Init(context.Background()); err == nil || !strings.Contains(err.Error(), "portaudio: no audio backend") {
		t.Fatalf("first Init = %v", err)
	}
	if err := l.Init(context.Background()); err == nil || calls != 1 {
		t.Fatalf("Init within retry delay: err=%v calls=%d", err, calls)
	}
	if err := l.Check(context.Background()); err == nil {
		t.Error("Check should report the cached failure")
	}

	now = now.Add(2 * time.Second)
	if err := l.Init(context.Background()); err != nil || calls != 2 {
		t.Fatalf("Init after retry delay: err=%v calls=%d", err, calls)
	}
	if l.Err() != nil {
		t.Errorf("Err() = %v after success", l.Err())
	}
}

func TestLazyCheckAndClose(t *testing.T) {
	closed := 0
	l := NewLazy("portaudio", func(context.Context) error { return nil }).
		WithCheck(func(context.Context) error { return fmt.Errorf("no input device") }).
		WithClose(func() error {
			closed++
			return nil
		})

	if err := l.Close(); err != nil || closed != 0 {
		t.Fatalf("Close before Init: err=%v closed=%d", err, closed)
	}
	_ = l.Init(context.Background())
	if err := l.Check(context.Background()); err == nil {
		t.Error("expected probe error")
	}
	if err := l.Close(); err != nil || closed != 1 {
		t.Fatalf("Close: err=%v closed=%d", err, closed)
	}
	if l.Ready() {
		t.Error("ready after Close")
	}
}
