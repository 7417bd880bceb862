package github_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/gitmigrate/internal/domain/entities"
	"github.com/rios0rios0/gitmigrate/internal/infrastructure/repositories/github"
)

func TestGitHubSourceRepository_ListProjects(t *testing.T) {
	t.Parallel()

	t.Run("should paginate, map into the namespaced shape, and sort", func(t *testing.T) {
		t.Parallel()

		// given
		requestCount := 0
		var server *httptest.Server
		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v3/user/repos", r.URL.Path)
			requestCount++
			w.Header().Set("Content-Type", "application/json")

			if r.URL.Query().Get("page") == "" {
				w.Header().Set("Link", fmt.Sprintf(`<%s/api/v3/user/repos?page=2>; rel="next"`, server.URL))
				fmt.Fprint(w, `[{"id":2,"name":"zeta","full_name":"me/zeta",`+
					`"owner":{"login":"me"},"clone_url":"https://github.example.com/me/zeta.git",`+
					`"private":true,"visibility":"private","description":"z"}]`)
				return
			}
			fmt.Fprint(w, `[{"id":1,"name":"alpha","full_name":"me/alpha",`+
				`"owner":{"login":"me"},"clone_url":"https://github.example.com/me/alpha.git",`+
				`"private":false,"visibility":"public","description":"a"}]`)
		}))
		defer server.Close()
		source := github.NewSourceRepository(server.URL, "src-token")

		// when
		projects, err := source.ListProjects(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, 2, requestCount)
		require.Len(t, projects, 2)
		assert.Equal(t, entities.Project{
			ID:                1,
			Name:              "alpha",
			NameWithNamespace: "me / alpha",
			Path:              "alpha",
			NamespacePath:     "me",
			PathWithNamespace: "me/alpha",
			HTTPURLToRepo:     "https://github.example.com/me/alpha.git",
			Description:       "a",
			Visibility:        "public",
		}, projects[0])
		assert.Equal(t, "me / zeta", projects[1].NameWithNamespace)
	})

	t.Run("should fail as upstream unavailable on an error status", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()
		source := github.NewSourceRepository(server.URL, "bad-token")

		// when
		projects, err := source.ListProjects(context.Background())

		// then
		require.Error(t, err)
		assert.Nil(t, projects)
		assert.ErrorIs(t, err, entities.ErrUpstreamUnavailable)
	})
}

func TestGitHubSourceRepository_ListDeployKeys(t *testing.T) {
	t.Parallel()

	t.Run("should map repository keys including the read-only flag", func(t *testing.T) {
		t.Parallel()

		// given
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/v3/repos/me/alpha/keys", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `[{"id":10,"title":"ci","key":"ssh-ed25519 AAAA","read_only":true},`+
				`{"id":11,"title":"push","key":"ssh-ed25519 BBBB","read_only":false}]`)
		}))
		defer server.Close()
		source := github.NewSourceRepository(server.URL, "src-token")
		project := entities.Project{ID: 1, Path: "alpha", NamespacePath: "me"}

		// when
		keys, err := source.ListDeployKeys(context.Background(), project)

		// then
		require.NoError(t, err)
		require.Len(t, keys, 2)
		assert.Equal(t, entities.DeployKey{ID: 10, Title: "ci", Key: "ssh-ed25519 AAAA", ReadOnly: true}, keys[0])
		assert.Equal(t, entities.DeployKey{ID: 11, Title: "push", Key: "ssh-ed25519 BBBB", ReadOnly: false}, keys[1])
	})
}
