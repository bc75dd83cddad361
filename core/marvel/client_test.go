package marvel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"comics-etl/core/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		PublicKey:      "pub",
		PrivateKey:     "priv",
		BaseURL:        srv.URL,
		TimeoutSeconds: 5,
	}, zap.NewNop())
	require.NoError(t, err)

	client.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return client
}

func TestNewClient_RequiresKeys(t *testing.T) {
	_, err := NewClient(Config{PrivateKey: "priv", BaseURL: "http://localhost"}, nil)
	assert.True(t, failure.Is(err, failure.KindConfig))

	_, err = NewClient(Config{PublicKey: "pub", BaseURL: "http://localhost"}, nil)
	assert.True(t, failure.Is(err, failure.KindConfig))
}

func TestListPage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/characters", r.URL.Path)
			q := r.URL.Query()
			assert.Equal(t, "2024-01-0203:04:05", q.Get("ts"))
			assert.Equal(t, "pub", q.Get("apikey"))
			assert.Equal(t, Sign("2024-01-0203:04:05", "pub", "priv"), q.Get("hash"))
			assert.Equal(t, "100", q.Get("limit"))
			assert.Equal(t, "200", q.Get("offset"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"code":200,"status":"Ok","data":{"offset":200,"limit":100,"total":250,"count":2,
				"results":[{"id":1,"name":"A"},{"id":2,"name":"B"}]}}`))
		})

		page, err := client.ListPage(context.Background(), KindCharacters, 200, 100)
		require.NoError(t, err)
		assert.Equal(t, 250, page.Total)
		assert.Equal(t, 200, page.Offset)
		assert.Equal(t, 2, page.Count)
		assert.Len(t, page.Results, 2)
		assert.JSONEq(t, `{"id":1,"name":"A"}`, string(page.Results[0]))
	})

	t.Run("HTTPError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":"InvalidCredentials","message":"bad hash"}`))
		})

		_, err := client.ListPage(context.Background(), KindComics, 0, 100)
		require.Error(t, err)
		assert.True(t, failure.Is(err, failure.KindNetwork))
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("MalformedJSON", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":`))
		})

		_, err := client.ListPage(context.Background(), KindComics, 0, 100)
		assert.True(t, failure.Is(err, failure.KindParse))
	})

	t.Run("MissingTotal", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"results":[]}}`))
		})

		_, err := client.ListPage(context.Background(), KindComics, 0, 100)
		assert.True(t, failure.Is(err, failure.KindShape))
		assert.Contains(t, err.Error(), "data.total")
	})

	t.Run("MissingData", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"code":200}`))
		})

		_, err := client.ListPage(context.Background(), KindComics, 0, 100)
		assert.True(t, failure.Is(err, failure.KindShape))
	})

	t.Run("Unreachable", func(t *testing.T) {
		client, err := NewClient(Config{PublicKey: "pub", PrivateKey: "priv", BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, nil)
		require.NoError(t, err)

		_, err = client.ListPage(context.Background(), KindCharacters, 0, 100)
		assert.True(t, failure.Is(err, failure.KindNetwork))
	})
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("comics")
	assert.NoError(t, err)
	assert.Equal(t, KindComics, k)
	assert.Equal(t, "/comics", k.Endpoint())

	_, err = ParseKind("series")
	assert.Error(t, err)
}
