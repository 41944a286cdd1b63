package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ribo916/postman-builder/pkg/builder/models"
)

// RetryPolicy bounds the upload retries. Backoff receives the number of
// retries still remaining and returns how long to wait before the next
// attempt.
type RetryPolicy struct {
	MaxRetries int
	Backoff    func(remaining int) time.Duration
}

// DefaultRetryPolicy retries three times with a linear 700ms step, counting
// down: 2100ms, 1400ms, 700ms.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		Backoff: func(remaining int) time.Duration {
			return time.Duration(remaining) * 700 * time.Millisecond
		},
	}
}

// PublishService names, serializes, and uploads the finished collection.
// Creation is create-only: every upload makes a new remote collection, and
// two runs on the same day yield two identically named ones.
type PublishService struct {
	httpClient *http.Client
	baseURL    string
	retry      RetryPolicy
	now        func() time.Time
}

// NewPublishService builds a publisher against the given Postman API base
// URL. The upload client keeps no connections alive and allows a single
// connection per host, so each attempt starts from a clean slate.
func NewPublishService(baseURL string) *PublishService {
	transport := &http.Transport{
		DisableKeepAlives: true,
		MaxConnsPerHost:   1,
	}
	return &PublishService{
		httpClient: &http.Client{Transport: transport},
		baseURL:    strings.TrimSuffix(strings.TrimSpace(baseURL), "/"),
		retry:      DefaultRetryPolicy(),
		now:        time.Now,
	}
}

// CollectionName stamps the product with today's date, so every run yields
// a distinctly named artifact.
func (s *PublishService) CollectionName(product string) string {
	return fmt.Sprintf("%s API %s", product, s.now().Format("2006-01-02"))
}

// WriteLocal pretty-prints the collection to path, replacing prior content.
func (s *PublishService) WriteLocal(col *models.Collection, path string) error {
	data, err := json.MarshalIndent(col, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize collection: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Upload re-reads the artifact from disk and creates a new collection in
// the given workspace. Reading the file back, rather than reusing the
// in-memory tree, guarantees that what lands remotely is exactly what was
// written locally.
func (s *PublishService) Upload(ctx context.Context, path, workspaceID, apiKey string) (*models.PublishResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(map[string]json.RawMessage{"collection": raw})
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/collections?workspace=%s", s.baseURL, url.QueryEscape(workspaceID))

	attempts := s.retry.MaxRetries + 1
	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			remaining := s.retry.MaxRetries - i + 1
			if s.retry.Backoff != nil {
				select {
				case <-ctx.Done():
					return nil, ctx.Err()
				case <-time.After(s.retry.Backoff(remaining)):
				}
			}
		}
		res, err := s.postCollection(ctx, endpoint, apiKey, payload)
		if err == nil {
			return res, nil
		}
		lastErr = err
		log.Printf("[publish] upload attempt %d/%d failed: %v", i+1, attempts, err)
	}
	return nil, fmt.Errorf("upload failed after %d attempts: %w", attempts, lastErr)
}

func (s *PublishService) postCollection(ctx context.Context, endpoint, apiKey string, payload []byte) (*models.PublishResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	log.Printf("[publish] postman response: %s", strings.TrimSpace(string(body)))

	var parsed struct {
		Collection struct {
			ID   string `json:"id"`
			Name string `json:"name"`
			UID  string `json:"uid"`
		} `json:"collection"`
	}
	_ = json.Unmarshal(body, &parsed)

	return &models.PublishResult{
		ID:        parsed.Collection.ID,
		UID:       parsed.Collection.UID,
		Name:      parsed.Collection.Name,
		CreatedAt: s.now(),
	}, nil
}
