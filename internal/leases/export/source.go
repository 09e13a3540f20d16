package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"landlord_portal_backend/internal/adapters/storage"
)

// maxTemplateBytes bounds a template download.
const maxTemplateBytes = 20 << 20

// TemplateSource fetches the contract template bytes.
type TemplateSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// HTTPTemplateSource downloads the template from a fixed URL.
type HTTPTemplateSource struct {
	url    string
	client *http.Client
}

// NewHTTPTemplateSource creates a source for url.
func NewHTTPTemplateSource(url string, timeout time.Duration) *HTTPTemplateSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPTemplateSource{url: url, client: &http.Client{Timeout: timeout}}
}

func (s *HTTPTemplateSource) Fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build template request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download template: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download template: unexpected status %d", resp.StatusCode)
	}

	return readLimited(resp.Body)
}

// ObjectTemplateSource reads the template from object storage.
type ObjectTemplateSource struct {
	storage storage.StorageService
	bucket  string
	key     string
}

// NewObjectTemplateSource creates a source for bucket/key.
func NewObjectTemplateSource(svc storage.StorageService, bucket, key string) *ObjectTemplateSource {
	return &ObjectTemplateSource{storage: svc, bucket: bucket, key: key}
}

func (s *ObjectTemplateSource) Fetch(ctx context.Context) ([]byte, error) {
	reader, err := s.storage.DownloadFile(ctx, s.bucket, s.key)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = reader.Close()
	}()

	return readLimited(reader)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxTemplateBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if len(data) > maxTemplateBytes {
		return nil, fmt.Errorf("template exceeds %d bytes", maxTemplateBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("template is empty")
	}
	return data, nil
}
