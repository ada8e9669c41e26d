package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/arzan03/EduSphere/internal/storage"
)

// FileSigner issues time-limited read URLs for stored objects.
type FileSigner interface {
	PresignedGetURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

type Download struct {
	URL       string `json:"url"`
	ExpiresIn string `json:"expires_in,omitempty"`
}

type DownloadService struct {
	products *ProductService
	signer   FileSigner
	ttl      time.Duration
}

// NewDownloadService accepts a nil signer when object storage is not
// configured; only products with absolute file URLs are downloadable then.
func NewDownloadService(products *ProductService, signer FileSigner, ttl time.Duration) *DownloadService {
	return &DownloadService{products: products, signer: signer, ttl: ttl}
}

// Download resolves the file of a product. Absolute http(s) file URLs are
// returned as-is; anything else is an object key in the product bucket.
func (s *DownloadService) Download(ctx context.Context, productID string) (Download, error) {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return Download{}, err
	}

	if product.FileURL == nil || strings.TrimSpace(*product.FileURL) == "" {
		return Download{}, ErrFileUnavailable
	}
	key := strings.TrimSpace(*product.FileURL)

	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return Download{URL: key}, nil
	}
	if s.signer == nil {
		return Download{}, ErrFileUnavailable
	}

	url, err := s.signer.PresignedGetURL(ctx, strings.TrimPrefix(key, "/"), s.ttl)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return Download{}, ErrFileUnavailable
	}
	if err != nil {
		return Download{}, fmt.Errorf("presign %s: %w", key, err)
	}
	return Download{URL: url, ExpiresIn: s.ttl.String()}, nil
}
