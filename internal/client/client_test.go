package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/linksnap/linksnap/internal/client"
	"github.com/linksnap/linksnap/internal/history"
	"github.com/linksnap/linksnap/internal/history/blob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLongURL = "https://example.com/very/long/path"

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *history.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hist := history.NewStore(blob.NewMemory(), zap.NewNop())

	return client.New(srv.URL, srv.Client(), hist, zap.NewNop()), hist
}

func jsonHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestSubmit_Success(t *testing.T) {
	t.Run("server expiry wins over local derivation", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK,
			`{"short_url":"https://s/x","expires_at":1700000000000}`))

		result, err := cl.Submit(context.Background(), testLongURL, "", "")

		require.NoError(t, err)
		assert.Equal(t, "https://s/x", result.ShortURL)
		assert.Equal(t, int64(1700000000000), result.ExpiresAt)
	})

	t.Run("camelCase short url takes precedence", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK,
			`{"shortUrl":"https://s/camel","short_url":"https://s/snake","short":"https://s/short"}`))

		result, err := cl.Submit(context.Background(), testLongURL, "", "")

		require.NoError(t, err)
		assert.Equal(t, "https://s/camel", result.ShortURL)
	})

	t.Run("short key is accepted last", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"short":"https://s/short"}`))

		result, err := cl.Submit(context.Background(), testLongURL, "", "")

		require.NoError(t, err)
		assert.Equal(t, "https://s/short", result.ShortURL)
	})

	t.Run("missing expiry falls back to validity window", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"shortUrl":"https://s/x"}`))

		before := time.Now().UnixMilli()
		result, err := cl.Submit(context.Background(), testLongURL, "", "")
		after := time.Now().UnixMilli()

		require.NoError(t, err)
		assert.GreaterOrEqual(t, result.ExpiresAt, before+30*60_000)
		assert.LessOrEqual(t, result.ExpiresAt, after+30*60_000)
	})

	t.Run("records a history entry", func(t *testing.T) {
		cl, hist := newTestClient(t, jsonHandler(http.StatusOK,
			`{"shortUrl":"https://s/x","expiresAt":1700000000000}`))

		_, err := cl.Submit(context.Background(), "  "+testLongURL+"  ", "", "15")

		require.NoError(t, err)
		entries := hist.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, testLongURL, entries[0].LongURL)
		assert.Equal(t, "https://s/x", entries[0].ShortURL)
		assert.Equal(t, int64(1700000000000), entries[0].ExpiresAt)
		assert.Equal(t, 15, entries[0].ValidityMinutes)
		assert.NotZero(t, entries[0].CreatedAt)
	})
}

func TestSubmit_Payload(t *testing.T) {
	capture := func(t *testing.T) (*http.Request, *[]byte, http.Handler) {
		t.Helper()

		var (
			req  http.Request
			body []byte
		)

		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			data, _ := io.ReadAll(r.Body)
			body = data
			req = *r

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"shortUrl":"https://s/x"}`))
		})

		return &req, &body, handler
	}

	t.Run("posts JSON to /shorten", func(t *testing.T) {
		req, _, handler := capture(t)
		cl, _ := newTestClient(t, handler)

		_, err := cl.Submit(context.Background(), testLongURL, "", "")

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "/shorten", req.URL.Path)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		assert.NotEmpty(t, req.Header.Get("X-Request-ID"))
	})

	t.Run("omits alias when empty", func(t *testing.T) {
		_, body, handler := capture(t)
		cl, _ := newTestClient(t, handler)

		_, err := cl.Submit(context.Background(), testLongURL, "   ", "")
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(*body, &payload))
		assert.Equal(t, testLongURL, payload["url"])
		assert.Equal(t, float64(30), payload["validity"])
		assert.NotContains(t, payload, "alias")
	})

	t.Run("sends trimmed alias when set", func(t *testing.T) {
		_, body, handler := capture(t)
		cl, _ := newTestClient(t, handler)

		_, err := cl.Submit(context.Background(), testLongURL, "  mylink  ", "5")
		require.NoError(t, err)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(*body, &payload))
		assert.Equal(t, "mylink", payload["alias"])
		assert.Equal(t, float64(5), payload["validity"])
	})
}

func TestSubmit_ValidationFailures(t *testing.T) {
	t.Run("empty url never reaches the network", func(t *testing.T) {
		calls := 0
		cl, hist := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			calls++
		}))

		result, err := cl.Submit(context.Background(), "   ", "", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, client.ErrMissingURL)
		assert.Zero(t, calls)
		assert.Empty(t, hist.Entries())
	})

	t.Run("malformed url", func(t *testing.T) {
		calls := 0
		cl, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			calls++
		}))

		_, err := cl.Submit(context.Background(), "ftp://example.com", "", "")

		assert.ErrorIs(t, err, client.ErrInvalidURL)
		assert.Zero(t, calls)
	})

	t.Run("invalid validity", func(t *testing.T) {
		calls := 0
		cl, _ := newTestClient(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			calls++
		}))

		_, err := cl.Submit(context.Background(), testLongURL, "", "2.5")

		assert.ErrorIs(t, err, client.ErrInvalidValidity)
		assert.Zero(t, calls)
	})
}

func TestSubmit_ServiceFailures(t *testing.T) {
	t.Run("non-2xx body is the error message verbatim", func(t *testing.T) {
		cl, hist := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("alias taken"))
		}))

		_, err := cl.Submit(context.Background(), testLongURL, "mylink", "")

		require.Error(t, err)
		assert.Equal(t, "alias taken", err.Error())

		var httpErr *client.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusConflict, httpErr.Status)
		assert.Empty(t, hist.Entries())
	})

	t.Run("non-2xx empty body uses the generic message", func(t *testing.T) {
		cl, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		_, err := cl.Submit(context.Background(), testLongURL, "", "")

		require.Error(t, err)
		assert.Equal(t, "shortening failed with status 500", err.Error())
	})

	t.Run("2xx without a short url field", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK, `{"code":"abc"}`))

		_, err := cl.Submit(context.Background(), testLongURL, "", "")

		assert.ErrorIs(t, err, client.ErrUnexpectedResponse)
	})

	t.Run("2xx with a non-JSON body", func(t *testing.T) {
		cl, _ := newTestClient(t, jsonHandler(http.StatusOK, "not json"))

		_, err := cl.Submit(context.Background(), testLongURL, "", "")

		assert.Error(t, err)
	})

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()

		hist := history.NewStore(blob.NewMemory(), zap.NewNop())
		cl := client.New(srv.URL, nil, hist, zap.NewNop())

		_, err := cl.Submit(context.Background(), testLongURL, "", "")

		assert.Error(t, err)
		assert.False(t, errors.Is(err, client.ErrUnexpectedResponse))
		assert.Empty(t, hist.Entries())
	})
}
