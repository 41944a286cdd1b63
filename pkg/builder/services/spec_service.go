package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ribo916/postman-builder/pkg/builder/models"
)

// SpecFetchError signals a non-2xx response while fetching a remote spec.
type SpecFetchError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *SpecFetchError) Error() string {
	return fmt.Sprintf("fetch %s failed: %s", e.URL, e.Status)
}

// SpecNotFoundError signals a missing local spec file.
type SpecNotFoundError struct {
	Path string
}

func (e *SpecNotFoundError) Error() string {
	return fmt.Sprintf("spec file not found: %s", e.Path)
}

// SpecService loads OpenAPI source text from a local path or a URL. A
// failure here is a configuration problem, so there is no retry at this
// layer; retry lives in the publish upload only.
type SpecService struct {
	httpClient *http.Client
}

// NewSpecService constructor.
func NewSpecService() *SpecService {
	return &SpecService{httpClient: &http.Client{Timeout: 30 * time.Second}}
}

// Load returns the spec text behind source, which is treated as a URL when
// it carries an http(s) scheme and as a local path otherwise.
func (s *SpecService) Load(ctx context.Context, source string) ([]byte, error) {
	if isRemote(source) {
		return s.fetch(ctx, strings.TrimSpace(source))
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, &SpecNotFoundError{Path: abs}
		}
		return nil, err
	}
	return os.ReadFile(abs)
}

// Resolve picks the spec bytes out of an OasInput; the URL wins when both
// fields are present.
func (s *SpecService) Resolve(ctx context.Context, in *models.OasInput) ([]byte, error) {
	if in == nil {
		return nil, ErrEmptySpec
	}
	if u := strings.TrimSpace(in.OasUrl); u != "" {
		return s.fetch(ctx, u)
	}
	if b := strings.TrimSpace(in.OasBody); b != "" {
		return []byte(b), nil
	}
	return nil, ErrEmptySpec
}

func isRemote(source string) bool {
	lower := strings.ToLower(strings.TrimSpace(source))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

func (s *SpecService) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &SpecFetchError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return io.ReadAll(resp.Body)
}
