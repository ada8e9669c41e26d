package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arzan03/EduSphere/internal/models"
	"github.com/arzan03/EduSphere/internal/storage"
)

type fakeSigner struct {
	gotKey string
	gotTTL time.Duration
	err    error
}

func (f *fakeSigner) PresignedGetURL(_ context.Context, objectName string, expiry time.Duration) (string, error) {
	f.gotKey = objectName
	f.gotTTL = expiry
	if f.err != nil {
		return "", f.err
	}
	return "https://files.local/" + objectName + "?sig=x", nil
}

func strPtr(s string) *string { return &s }

func seedProduct(t *testing.T, products *ProductService, token string, fileURL *string) string {
	t.Helper()
	p, err := products.Create(context.Background(), token, models.Product{
		Title: "Workbook", Description: "PDF", Price: price(9), FileURL: fileURL,
	})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	return p.ID.Hex()
}

func TestDownloadPresignsObjectKey(t *testing.T) {
	auth, mem := newTestAuth(t)
	products := NewProductService(mem, auth)
	token := registerAndLogin(t, auth, "ada@example.com")
	signer := &fakeSigner{}
	downloads := NewDownloadService(products, signer, 10*time.Minute)

	id := seedProduct(t, products, token, strPtr("/books/workbook.pdf"))

	d, err := downloads.Download(context.Background(), id)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if signer.gotKey != "books/workbook.pdf" || signer.gotTTL != 10*time.Minute {
		t.Fatalf("signer called with %q %s", signer.gotKey, signer.gotTTL)
	}
	if d.URL == "" || d.ExpiresIn != "10m0s" {
		t.Fatalf("unexpected download: %+v", d)
	}
}

func TestDownloadPassesAbsoluteURLThrough(t *testing.T) {
	auth, mem := newTestAuth(t)
	products := NewProductService(mem, auth)
	token := registerAndLogin(t, auth, "ada@example.com")
	downloads := NewDownloadService(products, nil, time.Minute)

	id := seedProduct(t, products, token, strPtr("https://cdn.example.com/w.pdf"))

	d, err := downloads.Download(context.Background(), id)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if d.URL != "https://cdn.example.com/w.pdf" || d.ExpiresIn != "" {
		t.Fatalf("unexpected download: %+v", d)
	}
}

func TestDownloadUnavailable(t *testing.T) {
	auth, mem := newTestAuth(t)
	products := NewProductService(mem, auth)
	token := registerAndLogin(t, auth, "ada@example.com")
	ctx := context.Background()

	noFile := seedProduct(t, products, token, nil)
	keyed := seedProduct(t, products, token, strPtr("w.pdf"))

	if _, err := NewDownloadService(products, &fakeSigner{}, time.Minute).Download(ctx, noFile); !errors.Is(err, ErrFileUnavailable) {
		t.Fatalf("no file: expected ErrFileUnavailable, got %v", err)
	}
	if _, err := NewDownloadService(products, nil, time.Minute).Download(ctx, keyed); !errors.Is(err, ErrFileUnavailable) {
		t.Fatalf("no signer: expected ErrFileUnavailable, got %v", err)
	}

	missing := &fakeSigner{err: storage.ErrObjectNotFound}
	if _, err := NewDownloadService(products, missing, time.Minute).Download(ctx, keyed); !errors.Is(err, ErrFileUnavailable) {
		t.Fatalf("missing object: expected ErrFileUnavailable, got %v", err)
	}

	if _, err := NewDownloadService(products, nil, time.Minute).Download(ctx, "bad"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad id: expected ErrInvalidID, got %v", err)
	}
}
