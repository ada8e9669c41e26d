package services

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/arzan03/EduSphere/internal/store"
	"github.com/arzan03/EduSphere/internal/utils"
)

// BucketChecker reports whether the object storage bucket is reachable.
type BucketChecker interface {
	BucketExists(ctx context.Context) (bool, error)
}

type StatusReport struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
	Storage          string   `json:"storage"`
}

type StatusService struct {
	store       store.Store
	bucket      BucketChecker
	databaseURL bool
	timeout     time.Duration
}

// NewStatusService accepts a nil bucket when object storage is disabled.
func NewStatusService(s store.Store, bucket BucketChecker, databaseURLSet bool) *StatusService {
	return &StatusService{store: s, bucket: bucket, databaseURL: databaseURLSet, timeout: 5 * time.Second}
}

// Report probes the store and object storage concurrently. Failures end up
// in the report rather than as errors.
func (s *StatusService) Report(ctx context.Context) StatusReport {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report := StatusReport{
		Backend:          "Running",
		Database:         "Not Available",
		DatabaseURL:      "Not Set",
		DatabaseName:     s.store.Name(),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
		Storage:          "Not Configured",
	}
	if s.databaseURL {
		report.DatabaseURL = "Set"
	}

	utils.RunParallel(ctx, s.probeStore(&report), s.probeStorage(&report))
	return report
}

// Each probe writes only its own report fields.
func (s *StatusService) probeStore(report *StatusReport) utils.Task {
	return func(ctx context.Context) error {
		if err := s.store.Ping(ctx); err != nil {
			report.Database = "Error: " + truncate(err.Error(), 80)
			return err
		}
		report.Database = "Available"
		report.ConnectionStatus = "Connected"

		names, err := s.store.CollectionNames(ctx)
		if err != nil {
			report.Database = "Connected but Error: " + truncate(err.Error(), 80)
			return err
		}
		if len(names) > 10 {
			names = names[:10]
		}
		report.Collections = names
		report.Database = "Connected & Working"
		return nil
	}
}

func (s *StatusService) probeStorage(report *StatusReport) utils.Task {
	return func(ctx context.Context) error {
		if s.bucket == nil {
			return nil
		}

		exists, err := s.bucket.BucketExists(ctx)
		switch {
		case err != nil:
			report.Storage = "Error: " + truncate(err.Error(), 80)
			return err
		case !exists:
			report.Storage = "Bucket Missing"
		default:
			report.Storage = "Connected"
		}
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
