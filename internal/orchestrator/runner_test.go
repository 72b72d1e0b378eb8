package orchestrator

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadPayload(t *testing.T) {
	d := t.TempDir()
	p := filepath.Join(d, "event.json")
	doc := `{"action":"created","issue":{"number":12,"title":"t","body":"b","user":{"login":"alice"}},"comment":{"body":"/spec-gardener","user":{"login":"bob"},"created_at":"2026-01-02T15:04:05Z"}}`
	if err := os.WriteFile(p, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	payload, err := loadPayload(p)
	if err != nil {
		t.Fatal(err)
	}
	if payload.Number() != 12 || payload.Comment == nil || payload.Comment.Body != "/spec-gardener" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestLoadPayloadMissingFile(t *testing.T) {
	if _, err := loadPayload(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing payload")
	}
}
