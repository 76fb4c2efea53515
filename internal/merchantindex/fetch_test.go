package merchantindex

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetch_OK(t *testing.T) {
	srv := serve(t, http.StatusOK, sampleJSON)
	ix, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
}

func TestFetch_BadStatus(t *testing.T) {
	srv := serve(t, http.StatusNotFound, "nope")
	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestLoad_URL(t *testing.T) {
	srv := serve(t, http.StatusOK, sampleJSON)
	ix := Load(context.Background(), srv.URL, time.Second, zerolog.Nop())
	assert.Equal(t, 3, ix.Len())
}

func TestLoad_DegradesOnFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	log := zerolog.New(buf)

	srv := serve(t, http.StatusInternalServerError, "")
	ix := Load(context.Background(), srv.URL, time.Second, log)
	require.NotNil(t, ix)
	assert.Equal(t, 0, ix.Len())
	assert.Contains(t, buf.String(), "merchant index unavailable")
}

func TestLoad_BadJSONDegrades(t *testing.T) {
	srv := serve(t, http.StatusOK, "<html>")
	ix := Load(context.Background(), srv.URL, time.Second, zerolog.Nop())
	assert.Equal(t, 0, ix.Len())
}

func TestLoad_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	ix := Load(context.Background(), srv.URL, 50*time.Millisecond, zerolog.Nop())
	assert.Equal(t, 0, ix.Len())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "merchants.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleJSON), 0o644))

	ix := Load(context.Background(), path, 0, zerolog.Nop())
	assert.Equal(t, 3, ix.Len())
}

func TestLoad_MissingFileDegrades(t *testing.T) {
	ix := Load(context.Background(), filepath.Join(t.TempDir(), "none.json"), 0, zerolog.Nop())
	assert.Equal(t, 0, ix.Len())
}

func TestLoad_Disabled(t *testing.T) {
	ix := Load(context.Background(), "", time.Second, zerolog.Nop())
	assert.Equal(t, 0, ix.Len())
}
