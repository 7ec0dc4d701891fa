package image

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kaleido-ai/kaleido/internal/config"
	"github.com/kaleido-ai/kaleido/internal/domain"
)

// pngHeader is the magic prefix http.DetectContentType keys on.
var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

func pngBytes(size int) []byte {
	data := make([]byte, size)
	copy(data, pngHeader)
	return data
}

func newFetcher(maxMB int) *Fetcher {
	return NewFetcher(&config.UploadConfig{MaxFileSizeMB: maxMB, FetchTimeout: 5})
}

func TestFetch_DownloadsValidImage(t *testing.T) {
	payload := pngBytes(64)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	got, err := newFetcher(1).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Equal(t, "image/png", got.ContentType)
	require.Equal(t, payload, got.Data)
}

func TestFetch_RejectsBadInputs(t *testing.T) {
	notImage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer notImage.Close()

	missing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer missing.Close()

	tests := []struct {
		name string
		url  string
	}{
		{name: "empty URL", url: ""},
		{name: "non-image content type", url: notImage.URL},
		{name: "missing resource", url: missing.URL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newFetcher(1).Fetch(context.Background(), tt.url)
			require.Error(t, err)
			require.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))
		})
	}
}

func TestReadLimited(t *testing.T) {
	t.Run("within limit", func(t *testing.T) {
		data, err := ReadLimited(strings.NewReader("abc"), 10)
		require.NoError(t, err)
		require.Equal(t, []byte("abc"), data)
	})

	t.Run("over limit", func(t *testing.T) {
		_, err := ReadLimited(bytes.NewReader(make([]byte, 11)), 10)
		require.Error(t, err)
		require.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))
	})

	t.Run("empty payload", func(t *testing.T) {
		_, err := ReadLimited(strings.NewReader(""), 10)
		require.Error(t, err)
	})
}

func TestSniff(t *testing.T) {
	contentType, err := Sniff(pngBytes(32))
	require.NoError(t, err)
	require.Equal(t, "image/png", contentType)

	_, err = Sniff([]byte("just some text, not an image"))
	require.Error(t, err)
	require.Equal(t, domain.ErrorKindInvalidInput, domain.KindOf(err))
}
