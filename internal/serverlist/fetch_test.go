package serverlist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetch_Success(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(exampleList))
	}))
	defer server.Close()

	dir, err := NewFetcher(nil).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, dir, 2)
	assert.Equal(t, DefaultUserAgent, gotUA)

	name, ok := dir[1].Get("name")
	require.True(t, ok)
	assert.Equal(t, "Bar", Render(name))
}

func TestFetch_CustomListField(t *testing.T) {
	server := serve(t, http.StatusOK, `{"servers": [{"a": 1}], "list": 5}`)

	dir, err := NewFetcher(&Options{ListField: "servers"}).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, dir, 1)
}

func TestFetch_HTTPStatusIsTransportError(t *testing.T) {
	server := serve(t, http.StatusNotFound, "not here")

	_, err := NewFetcher(nil).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, http.StatusNotFound, te.Status)
	assert.Contains(t, err.Error(), "404")
}

func TestFetch_ConnectionFailureIsTransportError(t *testing.T) {
	server := serve(t, http.StatusOK, exampleList)
	addr := server.URL
	server.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), addr)
	var te *TransportError
	require.ErrorAs(t, err, &te)
	assert.Zero(t, te.Status)
	assert.Equal(t, addr, te.Address)
}

func TestFetch_InvalidAddressIsTransportError(t *testing.T) {
	_, err := NewFetcher(nil).Fetch(context.Background(), "://nope")
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestFetch_Timeout(t *testing.T) {
	done := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(done)

	_, err := NewFetcher(&Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), server.URL)
	var te *TransportError
	assert.ErrorAs(t, err, &te)
}

func TestFetch_BadBodyIsDecodeErrorWithAddress(t *testing.T) {
	server := serve(t, http.StatusOK, "<html></html>")

	_, err := NewFetcher(nil).Fetch(context.Background(), server.URL)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, server.URL, de.Address)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestDecode_Shapes(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		reason string
	}{
		{"not json", `{"list": [`, "not valid JSON"},
		{"top-level array", `[{"a": 1}]`, "not an object"},
		{"top-level string", `"list"`, "not an object"},
		{"missing field", `{"other": []}`, `missing field "list"`},
		{"field not array", `{"list": {"a": 1}}`, `field "list" is not an array`},
		{"non-object element", `{"list": [{"a": 1}, 2]}`, "list[1] is not an object"},
		{"null element", `{"list": [null]}`, "list[0] is not an object"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir, err := Decode([]byte(c.body), DefaultListField)
			assert.Nil(t, dir)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, err.Error(), c.reason)
		})
	}
}

func TestDecode_EmptyList(t *testing.T) {
	dir, err := Decode([]byte(`{"list": []}`), DefaultListField)
	require.NoError(t, err)
	assert.NotNil(t, dir)
	assert.Empty(t, dir)
}

func TestDecode_FieldNameWithPathSyntax(t *testing.T) {
	dir, err := Decode([]byte(`{"a.b": [{"x": 1}], "a": {"b": 3}}`), "a.b")
	require.NoError(t, err)
	assert.Len(t, dir, 1)
}
