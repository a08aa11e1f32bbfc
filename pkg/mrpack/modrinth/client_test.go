package modrinth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesainslie/mrpack/pkg/mrpack/modrinth"
)

func TestClient_VersionFiles(t *testing.T) {
	t.Parallel()

	var gotBody struct {
		Hashes    []string `json:"hashes"`
		Algorithm string   `json:"algorithm"`
	}
	var gotRequest *http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"abcd": {
				"project_id": "baz",
				"version_number": "1.2.3",
				"files": [
					{"hashes": {"sha512": "abcd"}},
					{"hashes": {"sha512": "wxyz"}}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := modrinth.New(
		modrinth.WithBaseURL(srv.URL),
		modrinth.WithUserAgent("mrpack/test"),
	)

	versions, err := client.VersionFiles(context.Background(), []string{"abcd", "fedc"})
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, gotRequest.Method)
	require.Equal(t, "/version_files", gotRequest.URL.Path)
	assert.Equal(t, "application/json", gotRequest.Header.Get("Content-Type"))
	assert.Equal(t, "mrpack/test", gotRequest.Header.Get("User-Agent"))
	assert.NotEmpty(t, gotRequest.Header.Get("X-Request-Id"))

	assert.Equal(t, []string{"abcd", "fedc"}, gotBody.Hashes)
	assert.Equal(t, "sha512", gotBody.Algorithm)

	require.Len(t, versions, 1)
	v := versions["abcd"]
	assert.Equal(t, "baz", v.ProjectID)
	assert.Equal(t, "1.2.3", v.VersionNumber)
	require.Len(t, v.Files, 2)
	assert.Equal(t, "abcd", v.Files[0].Hashes.SHA512)
	assert.Equal(t, "wxyz", v.Files[1].Hashes.SHA512)
}

func TestClient_VersionFiles_EmptyBatch(t *testing.T) {
	t.Parallel()

	var gotBody struct {
		Hashes    []string `json:"hashes"`
		Algorithm string   `json:"algorithm"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	versions, err := client.VersionFiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, versions)

	// A nil batch must still encode as an empty array, not null.
	assert.NotNil(t, gotBody.Hashes)
	assert.Empty(t, gotBody.Hashes)
}

func TestClient_Projects(t *testing.T) {
	t.Parallel()

	var gotRequest *http.Request

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequest = r.Clone(context.Background())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{
				"id": "baz",
				"title": "Foo",
				"slug": "foo",
				"game_versions": ["1.19.2", "1.20"]
			},
			{
				"id": "quux",
				"title": "Bar",
				"slug": "bar",
				"client_side": "optional",
				"server_side": "optional",
				"license": {"id": "MIT"},
				"source_url": "example.com",
				"issues_url": "example2.com",
				"game_versions": ["1.19.4"]
			}
		]`))
	}))
	defer srv.Close()

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	projects, err := client.Projects(context.Background(), []string{"baz", "quux"})
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, gotRequest.Method)
	require.Equal(t, "/projects", gotRequest.URL.Path)
	assert.Equal(t, `["baz","quux"]`, gotRequest.URL.Query().Get("ids"))
	assert.NotEmpty(t, gotRequest.Header.Get("X-Request-Id"))

	require.Len(t, projects, 2)

	assert.Equal(t, "baz", projects[0].ID)
	assert.Equal(t, "Foo", projects[0].Title)
	assert.Equal(t, "foo", projects[0].Slug)
	assert.Empty(t, projects[0].ClientSide)
	assert.Nil(t, projects[0].License)
	assert.Equal(t, []string{"1.19.2", "1.20"}, projects[0].GameVersions)

	assert.Equal(t, "quux", projects[1].ID)
	assert.Equal(t, "optional", projects[1].ClientSide)
	assert.Equal(t, "optional", projects[1].ServerSide)
	require.NotNil(t, projects[1].License)
	assert.Equal(t, "MIT", projects[1].License.ID)
	assert.Equal(t, "example.com", projects[1].SourceURL)
	assert.Equal(t, "example2.com", projects[1].IssuesURL)
}

func TestClient_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	_, err := client.VersionFiles(context.Background(), []string{"abcd"})
	require.Error(t, err)
	assert.ErrorIs(t, err, modrinth.ErrStatus)
	assert.Contains(t, err.Error(), "429")

	_, err = client.Projects(context.Background(), []string{"baz"})
	require.Error(t, err)
	assert.ErrorIs(t, err, modrinth.ErrStatus)
}

func TestClient_TransportError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close() // refuse connections

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	_, err := client.VersionFiles(context.Background(), []string{"abcd"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, modrinth.ErrStatus)
}

func TestClient_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Projects(ctx, []string{"baz"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestClient_MalformedResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"`))
	}))
	defer srv.Close()

	client := modrinth.New(modrinth.WithBaseURL(srv.URL))

	_, err := client.Projects(context.Background(), []string{"baz"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding projects response")
}
