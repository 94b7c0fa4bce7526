package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	gh "github.com/google/go-github/v68/github"
	"github.com/stretchr/testify/require"
)

var (
	mainSha    = strings.Repeat("a", 40)
	featureSha = strings.Repeat("b", 40)
	forkSha    = strings.Repeat("c", 40)
)

// writeJSON encodes v as JSON to the response writer. Panics on error (test only).
func writeJSON(w http.ResponseWriter, v interface{}) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		panic(err)
	}
}

// newTestServer creates a test HTTP server and a GitHub client pointed at it.
func newTestServer(t *testing.T, mux *http.ServeMux) *gh.Client {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	client, err := gh.NewClient(nil).WithEnterpriseURLs(server.URL+"/", server.URL+"/")
	require.NoError(t, err)
	return client
}

func commitJSON(sha string, parentCount int) map[string]interface{} {
	parents := make([]map[string]string, parentCount)
	for i := range parents {
		parents[i] = map[string]string{"sha": strings.Repeat("d", 40)}
	}
	return map[string]interface{}{"sha": sha, "parents": parents}
}

func TestResolve(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v3/repos/o/r/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, commitJSON(mainSha, 1))
	})
	mux.HandleFunc("/api/v3/repos/o/r/commits/feature-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, commitJSON(featureSha, 1))
	})

	mux.HandleFunc("/api/v3/repos/o/r/compare/"+mainSha+"..."+featureSha, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{
			"merge_base_commit": commitJSON(forkSha, 1),
			// Two regular commits and one merge; the merge is not counted.
			"commits": []interface{}{
				commitJSON(strings.Repeat("1", 40), 1),
				commitJSON(strings.Repeat("2", 40), 1),
				commitJSON(strings.Repeat("3", 40), 2),
			},
		})
	})
	mux.HandleFunc("/api/v3/repos/o/r/compare/"+featureSha+"..."+mainSha, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]interface{}{
			"merge_base_commit": commitJSON(forkSha, 1),
			"commits": []interface{}{
				commitJSON(strings.Repeat("4", 40), 1),
			},
		})
	})

	client := newTestServer(t, mux)
	resolver := NewRangeResolver(client, "o", "r")

	result, err := resolver.Resolve(context.Background(), "main", "feature-1")
	require.NoError(t, err)
	require.Equal(t, mainSha, result.Base)
	require.Equal(t, featureSha, result.Head)
	require.Equal(t, forkSha, result.MergeBase)
	require.Equal(t, 3, result.Depth) // max(2+1, 1+1)
}

func TestResolve_UnknownRef(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/repos/o/r/commits/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	client := newTestServer(t, mux)
	resolver := NewRangeResolver(client, "o", "r")

	_, err := resolver.Resolve(context.Background(), "missing", "missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "missing")
}

func TestNewClient_NoAuth(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_APP_ID", "")
	t.Setenv("GH_APP_PRIVATE_KEY", "")

	_, err := NewClient(ClientConfig{})
	require.Error(t, err)
}

func TestNewClient_TokenFromEnv(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_API_URL", "")

	client, err := NewClient(ClientConfig{})
	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestResolveBaseURL(t *testing.T) {
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3")

	require.Equal(t, "https://flag.example.com", ResolveBaseURL("https://flag.example.com"))
	require.Equal(t, "https://ghe.example.com/api/v3", ResolveBaseURL(""))
}
