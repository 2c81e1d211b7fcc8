package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	if _, ok, _ := c.Get(ctx, "sheet1:Items"); ok {
		t.Fatalf("expected miss on empty cache")
	}

	if err := c.Set(ctx, "sheet1:Items", []byte("rows")); err != nil {
		t.Fatalf("set: %v", err)
	}
	value, ok, err := c.Get(ctx, "sheet1:Items")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || string(value) != "rows" {
		t.Fatalf("expected hit with stored value, got ok=%v value=%q", ok, value)
	}
}

func TestMemoryExpiresAfterTTL(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	now := time.Now()
	c.now = func() time.Time { return now }
	if err := c.Set(ctx, "sheet1:Items", []byte("rows")); err != nil {
		t.Fatalf("set: %v", err)
	}

	c.now = func() time.Time { return now.Add(59 * time.Second) }
	if _, ok, _ := c.Get(ctx, "sheet1:Items"); !ok {
		t.Fatalf("expected hit inside TTL window")
	}

	c.now = func() time.Time { return now.Add(61 * time.Second) }
	if _, ok, _ := c.Get(ctx, "sheet1:Items"); ok {
		t.Fatalf("expected miss after TTL")
	}
}

func TestMemoryInvalidate(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "sheet1:Items", []byte("a"))
	c.Set(ctx, "sheet1:Users", []byte("b"))

	if err := c.Invalidate(ctx, "sheet1:Items"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "sheet1:Items"); ok {
		t.Fatalf("expected invalidated key to miss")
	}
	if _, ok, _ := c.Get(ctx, "sheet1:Users"); !ok {
		t.Fatalf("expected untouched key to remain")
	}
}
