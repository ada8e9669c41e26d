package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/store"
)

type fakeBucket struct {
	exists bool
	err    error
}

func (f fakeBucket) BucketExists(context.Context) (bool, error) { return f.exists, f.err }

type downStore struct {
	store.Store
}

func (downStore) Ping(context.Context) error { return errors.New("server selection timeout") }

func TestStatusReportHealthy(t *testing.T) {
	mem := store.NewMemory("edusphere")
	_, _ = mem.InsertOne(context.Background(), models.CourseCollection, models.Course{})

	report := NewStatusService(mem, fakeBucket{exists: true}, true).Report(context.Background())

	if report.Backend != "Running" || report.Database != "Connected & Working" || report.ConnectionStatus != "Connected" {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.DatabaseURL != "Set" || report.DatabaseName != "edusphere" {
		t.Fatalf("unexpected database fields: %+v", report)
	}
	if len(report.Collections) != 1 || report.Collections[0] != models.CourseCollection {
		t.Fatalf("unexpected collections: %v", report.Collections)
	}
	if report.Storage != "Connected" {
		t.Fatalf("storage: got %q", report.Storage)
	}
}

func TestStatusReportFailures(t *testing.T) {
	report := NewStatusService(downStore{store.NewMemory("x")}, fakeBucket{err: errors.New("dial tcp")}, false).Report(context.Background())

	if report.ConnectionStatus != "Not Connected" {
		t.Fatalf("connection status: got %q", report.ConnectionStatus)
	}
	if report.Database != "Error: server selection timeout" {
		t.Fatalf("database: got %q", report.Database)
	}
	if report.DatabaseURL != "Not Set" {
		t.Fatalf("database url: got %q", report.DatabaseURL)
	}
	if report.Storage != "Error: dial tcp" {
		t.Fatalf("storage: got %q", report.Storage)
	}
	if report.Collections == nil {
		t.Fatal("collections must never be null")
	}
}

func TestStatusReportWithoutStorage(t *testing.T) {
	report := NewStatusService(store.NewMemory("x"), nil, false).Report(context.Background())
	if report.Storage != "Not Configured" {
		t.Fatalf("storage: got %q", report.Storage)
	}
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes, so byte 5 falls inside the third rune.
	got := truncate("ééééé", 5)
	if got != "éé" {
		t.Fatalf("got %q want %q", got, "éé")
	}
	if !utf8.ValidString(truncate(strings.Repeat("ü", 100), 80)) {
		t.Fatal("truncated string is not valid utf-8")
	}
	if got := truncate("short", 80); got != "short" {
		t.Fatalf("got %q", got)
	}
}
