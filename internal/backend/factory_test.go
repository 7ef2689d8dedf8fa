package backend

import (
	"context"
	"testing"
)

func TestCreateMemoryBackend(t *testing.T) {
	f := NewFactory(nil)
	result, err := f.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend(memory): %v", err)
	}
	if result.Store == nil {
		t.Fatal("Store is nil")
	}
	if result.Cleanup != nil {
		t.Error("memory backend should not need cleanup")
	}
}

func TestCreateBackendInvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "postgres"}); err == nil {
		t.Fatal("CreateBackend with invalid type succeeded")
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, tt := range []struct {
		t    Type
		want bool
	}{
		{MemoryBackend, true},
		{SQLiteBackend, true},
		{"", false},
		{"sheets", false},
	} {
		if got := tt.t.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.t, got, tt.want)
		}
	}
}
