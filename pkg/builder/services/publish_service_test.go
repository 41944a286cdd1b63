package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ribo916/postman-builder/pkg/builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC)
}

func writeArtifact(t *testing.T, svc *PublishService) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.postman_collection.json")
	col := &models.Collection{Info: models.Info{Name: "Sample API 2024-03-09", Schema: models.CollectionSchema}}
	require.NoError(t, svc.WriteLocal(col, path))
	return path
}

func TestCollectionNameCarriesDateStamp(t *testing.T) {
	svc := NewPublishService("https://api.getpostman.com")
	svc.now = fixedClock

	assert.Equal(t, "Acme API 2024-03-09", svc.CollectionName("Acme"))
}

func TestWriteLocalOverwritesPriorContent(t *testing.T) {
	svc := NewPublishService("https://api.getpostman.com")
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	col := &models.Collection{Info: models.Info{Name: "Fresh", Schema: models.CollectionSchema}}
	require.NoError(t, svc.WriteLocal(col, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var parsed models.Collection
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, "Fresh", parsed.Info.Name)
}

func TestUploadRetriesUntilSuccess(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 4 {
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"collection":{"id":"abc","name":"Sample API 2024-03-09","uid":"owner-abc"}}`))
	}))
	defer srv.Close()

	svc := NewPublishService(srv.URL)
	svc.retry = RetryPolicy{MaxRetries: 3, Backoff: func(int) time.Duration { return 0 }}
	path := writeArtifact(t, svc)

	res, err := svc.Upload(context.Background(), path, "ws-1", "key-1")
	require.NoError(t, err)
	assert.Equal(t, 4, calls)
	assert.Equal(t, "abc", res.ID)
	assert.Equal(t, "owner-abc", res.UID)
}

func TestUploadGivesUpAfterFourAttempts(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewPublishService(srv.URL)
	svc.retry = RetryPolicy{MaxRetries: 3, Backoff: func(int) time.Duration { return 0 }}
	path := writeArtifact(t, svc)

	_, err := svc.Upload(context.Background(), path, "ws-1", "key-1")
	require.Error(t, err)
	assert.Equal(t, 4, calls)
	assert.Contains(t, err.Error(), "boom")
	assert.Contains(t, err.Error(), "4 attempts")
}

func TestUploadSendsCredentialAndWorkspace(t *testing.T) {
	var gotKey, gotWorkspace, gotContentType string
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotWorkspace = r.URL.Query().Get("workspace")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"collection":{"id":"abc","uid":"u"}}`))
	}))
	defer srv.Close()

	svc := NewPublishService(srv.URL)
	path := writeArtifact(t, svc)

	_, err := svc.Upload(context.Background(), path, "ws-42", "secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "ws-42", gotWorkspace)
	require.Contains(t, gotBody, "collection")
}

func TestUploadMissingArtifact(t *testing.T) {
	svc := NewPublishService("https://api.getpostman.com")

	_, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.json"), "ws", "key")
	assert.Error(t, err)
}

func TestDefaultRetryPolicyCountsDown(t *testing.T) {
	policy := DefaultRetryPolicy()

	assert.Equal(t, 3, policy.MaxRetries)
	assert.Equal(t, 2100*time.Millisecond, policy.Backoff(3))
	assert.Equal(t, 1400*time.Millisecond, policy.Backoff(2))
	assert.Equal(t, 700*time.Millisecond, policy.Backoff(1))
}
