package authctx

import (
	"context"
	"errors"
	"testing"
)

type claims struct{ sub string }

func (c *claims) GetSubject() (string, error) { return c.sub, nil }

func TestSetGet(t *testing.T) {
	ctx := Set(context.Background(), &claims{sub: "analyst"})

	got, ok := Get[*claims](ctx)
	if !ok || got.sub != "analyst" {
		t.Fatalf("expected claims back, got %v %v", got, ok)
	}
	if _, ok := Get[string](ctx); ok {
		t.Error("expected wrong type lookup to fail")
	}
}

func TestGetOrError(t *testing.T) {
	if _, err := GetOrError[*claims](context.Background()); !errors.Is(err, ErrNoClaims) {
		t.Errorf("expected ErrNoClaims, got %v", err)
	}
}

func TestSubject(t *testing.T) {
	if got := Subject(context.Background()); got != "" {
		t.Errorf("expected empty subject, got %q", got)
	}
	ctx := Set(context.Background(), &claims{sub: "analyst"})
	if got := Subject(ctx); got != "analyst" {
		t.Errorf("expected analyst, got %q", got)
	}
	if got := Subject(Set(context.Background(), "opaque")); got != "" {
		t.Errorf("expected empty subject for opaque claims, got %q", got)
	}
}
