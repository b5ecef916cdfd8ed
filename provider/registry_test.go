package provider

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubProvider struct {
	name      string
	available bool
}

func (p *stubProvider) Name() string                     { return p.name }
func (p *stubProvider) IsAvailable(context.Context) bool { return p.available }

func stubFactory(available bool) Factory[*stubProvider] {
	return func(cfg map[string]any) (*stubProvider, error) {
		name, _ := cfg["name"].(string)
		return &stubProvider{name: name, available: available}, nil
	}
}

func TestRegistry_CreateCachesInstance(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	reg.RegisterFactory("whisper", stubFactory(true))

	p, err := reg.Create("whisper", map[string]any{"name": "sidecar"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if p.Name() != "sidecar" {
		t.Errorf("Name() = %q", p.Name())
	}
	got, ok := reg.Get("whisper")
	if !ok || got != p {
		t.Error("expected created instance to be cached")
	}
}

func TestRegistry_CreateUnknown(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	reg.RegisterFactory("whisper", stubFactory(true))

	_, err := reg.Create("vosk", nil)
	if err == nil || !strings.Contains(err.Error(), "whisper") {
		t.Fatalf("expected error listing known providers, got %v", err)
	}
}

func TestRegistry_CreateFactoryError(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	boom := errors.New("bad url")
	reg.RegisterFactory("whisper", func(map[string]any) (*stubProvider, error) { return nil, boom })

	if _, err := reg.Create("whisper", nil); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped factory error, got %v", err)
	}
	if _, ok := reg.Get("whisper"); ok {
		t.Error("failed create must not be cached")
	}
}

func TestRegistry_ListAndAvailable(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	reg.RegisterFactory("b-down", stubFactory(false))
	reg.RegisterFactory("a-up", stubFactory(true))

	if got := strings.Join(reg.List(), ","); got != "a-up,b-down" {
		t.Errorf("List() = %s", got)
	}

	_, _ = reg.Create("a-up", nil)
	_, _ = reg.Create("b-down", nil)
	avail := reg.Available(context.Background())
	if len(avail) != 1 || avail[0] != "a-up" {
		t.Errorf("Available() = %v", avail)
	}
}

func TestRegistry_UnknownIsSentinel(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	if _, err := reg.Create("vosk", nil); !errors.Is(err, ErrUnknown) {
		t.Fatalf("expected ErrUnknown, got %v", err)
	}
}

func TestRegistry_ReRegisterDropsInstance(t *testing.T) {
	reg := NewRegistry[*stubProvider]()
	reg.RegisterFactory("whisper", stubFactory(true))
	if _, err := reg.Create("whisper", nil); err != nil {
		t.Fatal(err)
	}
	reg.RegisterFactory("whisper", stubFactory(false))
	if _, ok := reg.Get("whisper"); ok {
		t.Error("instance from the replaced factory is still cached")
	}
}
