package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ribo916/postman-builder/pkg/builder/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.0"}`), 0o600))

	svc := NewSpecService()
	got, err := svc.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.0"}`, string(got))
}

func TestLoadMissingFileNamesResolvedPath(t *testing.T) {
	svc := NewSpecService()
	missing := filepath.Join(t.TempDir(), "nope.yaml")

	_, err := svc.Load(context.Background(), missing)
	require.Error(t, err)

	var nfe *SpecNotFoundError
	require.ErrorAs(t, err, &nfe)
	assert.True(t, filepath.IsAbs(nfe.Path))
	assert.Contains(t, err.Error(), "nope.yaml")
}

func TestLoadRemoteSpec(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("openapi: 3.0.0"))
	}))
	defer srv.Close()

	svc := NewSpecService()
	got, err := svc.Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "openapi: 3.0.0", string(got))
}

func TestLoadRemoteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewSpecService()
	_, err := svc.Load(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *SpecFetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Equal(t, srv.URL, fe.URL)
}

func TestIsRemoteMatchesSchemeCaseInsensitively(t *testing.T) {
	assert.True(t, isRemote("http://example.com/spec.json"))
	assert.True(t, isRemote("HTTPS://example.com/spec.json"))
	assert.True(t, isRemote("  https://example.com/spec.json"))
	assert.False(t, isRemote("./openapi.json"))
	assert.False(t, isRemote("/abs/openapi.yaml"))
	assert.False(t, isRemote("ftp://example.com/spec.json"))
}

func TestResolvePrefersURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("from-url"))
	}))
	defer srv.Close()

	svc := NewSpecService()
	got, err := svc.Resolve(context.Background(), &models.OasInput{OasUrl: srv.URL, OasBody: "from-body"})
	require.NoError(t, err)
	assert.Equal(t, "from-url", string(got))
}

func TestResolveFallsBackToBody(t *testing.T) {
	svc := NewSpecService()
	got, err := svc.Resolve(context.Background(), &models.OasInput{OasBody: `{"openapi":"3.0.0"}`})
	require.NoError(t, err)
	assert.Equal(t, `{"openapi":"3.0.0"}`, string(got))
}

func TestResolveEmptyInput(t *testing.T) {
	svc := NewSpecService()

	_, err := svc.Resolve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEmptySpec)

	_, err = svc.Resolve(context.Background(), &models.OasInput{})
	assert.ErrorIs(t, err, ErrEmptySpec)
}
