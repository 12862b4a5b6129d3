package allanime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justchokingaround/aniseek/internal/config"
	"github.com/justchokingaround/aniseek/internal/httpclient"
	"github.com/justchokingaround/aniseek/pkg/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	hc := httpclient.NewClient(httpclient.ClientConfig{MaxRetries: -1})
	return NewClient(hc, config.APIConfig{BaseURL: "https://allanime.to", Endpoint: server.URL + "/"}, nil)
}

func edgesJSON(n int) string {
	edges := make([]string, n)
	for i := range edges {
		edges[i] = fmt.Sprintf(`{"_id":"id-%d","name":"Title %d","availableEpisodes":{"sub":%d,"dub":0,"raw":0}}`, i, i, i+1)
	}
	return `{"data":{"shows":{"edges":[` + strings.Join(edges, ",") + `]}}}`
}

func TestClient_Shows(t *testing.T) {
	t.Run("sends variables and decodes edges", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api", r.URL.Path)
			assert.Equal(t, "https://allanime.to", r.Header.Get("Referer"))
			assert.Contains(t, r.URL.Query().Get("query"), "shows(")

			var vars map[string]any
			require.NoError(t, json.Unmarshal([]byte(r.URL.Query().Get("variables")), &vars))
			assert.Equal(t, float64(2), vars["page"])
			assert.Equal(t, "naruto", vars["search"].(map[string]any)["query"])

			_, _ = w.Write([]byte(edgesJSON(3)))
		})

		titles, err := client.Shows(context.Background(), QueryBuilder{}.Search("naruto", 2))
		require.NoError(t, err)
		require.Len(t, titles, 3)
		assert.Equal(t, "id-0", titles[0].ID)
		assert.Equal(t, 3, titles[2].AvailableEpisodes.Sub)
	})

	t.Run("empty edges are not an error at this layer", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(edgesJSON(0)))
		})

		titles, err := client.Shows(context.Background(), QueryBuilder{}.Search("zzz", 1))
		require.NoError(t, err)
		assert.Empty(t, titles)
	})

	t.Run("http failure is a transport error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := client.Shows(context.Background(), QueryBuilder{}.Search("naruto", 1))

		var terr *TransportError
		require.True(t, errors.As(err, &terr), "got %v", err)
		assert.Equal(t, "search", terr.Query)
	})

	t.Run("malformed body is a transport error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>blocked</html>"))
		})

		_, err := client.Shows(context.Background(), QueryBuilder{}.New(1))

		var terr *TransportError
		require.ErrorAs(t, err, &terr)
		assert.Contains(t, err.Error(), "failed to parse response")
	})

	t.Run("graphql errors are surfaced", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"errors":[{"message":"PersistedQueryNotFound"}],"data":null}`))
		})

		_, err := client.Shows(context.Background(), QueryBuilder{}.Search("naruto", 1))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PersistedQueryNotFound")
	})
}

func TestClient_DoDiscard(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"queryPopular":{"total":0,"recommendations":[]}}}`))
	})

	assert.NoError(t, client.Do(context.Background(), QueryBuilder{}.Popular(1), nil))
}

func TestClient_Show(t *testing.T) {
	t.Run("decodes details", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Contains(t, r.URL.Query().Get("variables"), `"showId":"abc"`)
			_, _ = w.Write([]byte(`{"data":{"show":{"_id":"abc","name":"Naruto","description":"ninja<br>story","genres":["Action"],"availableEpisodes":{"sub":220,"dub":220,"raw":0}}}}`))
		})

		show, err := client.Show(context.Background(), "abc")
		require.NoError(t, err)
		assert.Equal(t, "abc", show.ID)
		assert.Equal(t, "ninja\nstory", show.Description)
		assert.Equal(t, []string{"Action"}, show.Genres)
	})

	t.Run("missing show", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"data":{"show":null}}`))
		})

		_, err := client.Show(context.Background(), "nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestQueryBuilder(t *testing.T) {
	b := QueryBuilder{PageSize: 40, Dub: true}

	q := b.ForKind(types.SearchText, "one piece", 3)
	assert.Equal(t, "search", q.Name)
	assert.Equal(t, 40, q.Variables["limit"])
	assert.Equal(t, 3, q.Variables["page"])
	assert.Equal(t, "dub", q.Variables["translationType"])

	// term is ignored outside text search
	q = b.ForKind(types.SearchNew, "ignored", 1)
	assert.Equal(t, "new", q.Name)
	assert.Equal(t, "Recent", q.Variables["search"].(map[string]any)["sortBy"])
	assert.NotContains(t, q.Variables["search"], "query")

	assert.Equal(t, "popular", b.ForKind(types.SearchPopular, "", 1).Name)
	assert.Equal(t, "random", b.ForKind(types.SearchRandom, "", 1).Name)

	assert.Equal(t, 20, QueryBuilder{}.Search("x", 1).Variables["limit"])
	assert.Equal(t, "sub", QueryBuilder{}.Search("x", 1).Variables["translationType"])
}

func TestTitleURL(t *testing.T) {
	assert.Equal(t, "https://allanime.to/anime/abc", TitleURL("https://allanime.to/", "abc"))
}
