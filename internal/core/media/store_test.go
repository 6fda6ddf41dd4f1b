package media

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal payload carrying the PNG magic header so MIME
// sniffing recognizes it
var pngBytes = append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}, make([]byte, 32)...)

func TestDecodePayload_Base64(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	data, err := DecodePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestDecodePayload_DataURI(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("image-bytes"))

	data, err := DecodePayload(payload)

	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), data)
}

func TestDecodePayload_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"empty", ""},
		{"not base64", "!!!not-base64!!!"},
		{"data uri without comma", "data:image/png;base64"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodePayload(tc.payload)
			assert.Error(t, err)
		})
	}
}

func TestDeriveAssetID(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"https://cdn.example.com/img/abc123.png", "abc123"},
		{"https://cdn.example.com/img/abc123.png?w=200&h=200", "abc123"},
		{"https://cdn.example.com/img/archive.tar.gz", "archive.tar"},
		{"https://cdn.example.com/img/noext", "noext"},
		{"abc123.png", "abc123"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, DeriveAssetID(tc.url), "url %q", tc.url)
	}
}

func TestHTTPStore_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/upload", r.URL.Path)

		file, _, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"url":"https://cdn.example.com/img/abc123.png","id":"abc123"}`))
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL)

	asset, err := store.Upload(context.Background(), pngBytes)

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/abc123.png", asset.URL)
	assert.Equal(t, "abc123", asset.ID)
}

func TestHTTPStore_UploadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "storage full", http.StatusInternalServerError)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL)

	_, err := store.Upload(context.Background(), pngBytes)

	require.Error(t, err)
	assert.True(t, IsUploadError(err))
}

func TestHTTPStore_UploadRejectsNonImage(t *testing.T) {
	store := NewHTTPStore("http://unused.invalid")

	_, err := store.Upload(context.Background(), []byte("plain text, not an image"))

	require.Error(t, err)
	assert.True(t, IsUploadError(err))
}

func TestHTTPStore_UploadRejectsEmpty(t *testing.T) {
	store := NewHTTPStore("http://unused.invalid")

	_, err := store.Upload(context.Background(), nil)

	assert.ErrorIs(t, err, ErrEmptyData)
}

func TestHTTPStore_Delete(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL)

	require.NoError(t, store.Delete(context.Background(), "abc123"))
	assert.Equal(t, "/assets/abc123", gotPath)
}

func TestHTTPStore_DeleteMissingAssetIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	store := NewHTTPStore(server.URL)

	// The asset is gone either way
	assert.NoError(t, store.Delete(context.Background(), "ghost"))
}
