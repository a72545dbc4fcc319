package inmemory

import (
	"context"
	"testing"
)

func TestGetMissingKey(t *testing.T) {
	s := NewStore()

	data, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || data != nil {
		t.Errorf("Get(missing) = (%v, %v), want (nil, false)", data, ok)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get() = (%v, %v), want data", err, ok)
	}
	if string(data) != `{"a":1}` {
		t.Errorf("Get() = %q", data)
	}
}

func TestCallersCannotMutateStoredData(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	original := []byte("hello")
	s.Set(ctx, "k", original)
	original[0] = 'X'

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "hello" {
		t.Errorf("stored data changed to %q after mutating the input slice", got)
	}

	got[0] = 'Y'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "hello" {
		t.Errorf("stored data changed to %q after mutating a returned slice", again)
	}
}

func TestLastWriteWins(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	s.Set(ctx, "k", []byte("first"))
	s.Set(ctx, "k", []byte("second"))

	got, _, _ := s.Get(ctx, "k")
	if string(got) != "second" {
		t.Errorf("Get() = %q, want second", got)
	}
}
