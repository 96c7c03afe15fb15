package yacy

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/queuewatch/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newPeer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", discardLogger())
}

func TestClient_GetQueue(t *testing.T) {
	client := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, QueuePath, r.URL.Path)
		w.Header().Set("Content-Type", "text/xml")
		_, _ = io.WriteString(w, queueXML)
	})

	entries, err := client.GetQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "abc123", entries[0].Hash)
	assert.True(t, entries[1].InProcess)
}

func TestClient_GetStatus(t *testing.T) {
	client := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, StatusPath, r.URL.Path)
		_, _ = io.WriteString(w, `<response><status><indexingqueue><size>1</size><max>9</max></indexingqueue><ppm>4.5</ppm></status></response>`)
	})

	status, err := client.GetStatus(context.Background())
	require.NoError(t, err)
	rate, ok := status.ProcessingRateValue()
	assert.True(t, ok)
	assert.InDelta(t, 4.5, rate, 0.0001)
}

func TestClient_MalformedBodyYieldsEmptyResult(t *testing.T) {
	client := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `<response><indexingqueue><entry>`)
	})

	entries, err := client.GetQueue(context.Background())
	require.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Empty(t, entries)
	assert.NotNil(t, entries)

	status, err := client.GetStatus(context.Background())
	require.ErrorIs(t, err, domain.ErrMalformedDocument)
	assert.Equal(t, domain.StatusSnapshot{}, status)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	entries, err := client.GetQueue(context.Background())
	require.ErrorIs(t, err, domain.ErrUnexpectedStatus)
	assert.False(t, domain.IsTransportError(err))
	assert.Empty(t, entries)
}

func TestClient_Offline(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(url, discardLogger())
	entries, err := client.GetQueue(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsTransportError(err))
	assert.Nil(t, entries)
}

func TestClient_DeleteEntry(t *testing.T) {
	var gotPath, gotQuery string
	client := newPeer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, "<html>ok</html>")
	})

	require.NoError(t, client.DeleteEntry(context.Background(), "abc123"))
	assert.Equal(t, "/"+DeletePage, gotPath)
	assert.Equal(t, "deleteEntry=abc123", gotQuery)

	assert.ErrorIs(t, client.DeleteEntry(context.Background(), ""), domain.ErrEmptyHash)
}
