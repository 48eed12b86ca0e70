// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/weblink-importer/internal/vault"
	"github.com/pdiddy/weblink-importer/internal/weblink"
	"github.com/pdiddy/weblink-importer/pkg/types"
)

// testCfg returns a run configuration with no throttle delay so tests never
// sleep for real.
func testCfg(root string) types.ImportConfig {
	return types.ImportConfig{
		APIKey:            "cap_token",
		SpaceID:           "space-uuid",
		VaultPath:         root,
		Glob:              "*.md",
		SleepSeconds:      0,
		AddFilenameHeader: true,
	}
}

func writeFile(t *testing.T, root, name, content string) string {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newClient(ts *httptest.Server) *weblink.Client {
	return &weblink.Client{
		HTTPClient: ts.Client(),
		BaseURL:    ts.URL,
		Token:      "cap_token",
	}
}

func TestRunCreatesAndSkips(t *testing.T) {
	root := t.TempDir()
	a := writeFile(t, root, "a.md", "alpha content")
	writeFile(t, root, "b.md", "   \n")
	c := writeFile(t, root, "c.md", "gamma content")

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"weblink-1"}`))
	}))
	defer ts.Close()

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := Run(context.Background(), newClient(ts), files, testCfg(root), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 3, res.Total())
	assert.False(t, res.HasFailures())
	// The empty file never reaches the network.
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	assert.Contains(t, out.String(), "skip empty: b.md")
	assert.Contains(t, out.String(), "weblink id: weblink-1")
	assert.Contains(t, out.String(), "Done. Created: 2 | Skipped: 1 | Failed: 0 | From: "+root)

	wantOutcomes := []types.FileOutcome{
		{Path: a, Action: types.ActionCreated, WeblinkID: "weblink-1"},
		{Path: filepath.Join(root, "b.md"), Action: types.ActionSkipped, Detail: "empty file"},
		{Path: c, Action: types.ActionCreated, WeblinkID: "weblink-1"},
	}
	assert.Equal(t, wantOutcomes, res.Files)
}

func TestRunMaxFilesProcessesFirstSorted(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "first")
	writeFile(t, root, "b.md", "second")
	writeFile(t, root, "c.md", "third")

	var titles []string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req types.WeblinkRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		titles = append(titles, req.TitleOverwrite)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	files, err := vault.List(root, "*.md", 2)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := Run(context.Background(), newClient(ts), files, testCfg(root), &out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Created)
	assert.Equal(t, []string{"a", "b"}, titles)
}

func TestRunHTTPFailureContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "first")
	writeFile(t, root, "b.md", "second")

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"error":"unknown tag"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"weblink-2"}`))
	}))
	defer ts.Close()

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := Run(context.Background(), newClient(ts), files, testCfg(root), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Failed)
	assert.True(t, res.HasFailures())
	assert.Contains(t, out.String(), "error: {\"error\":\"unknown tag\"}")
	assert.Contains(t, out.String(), "POST /save-weblink -> 422")
	require.Len(t, res.Files, 2)
	assert.Equal(t, "HTTP 422", res.Files[0].Detail)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestRunSuccessWithoutJSONBody(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "content")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := Run(context.Background(), newClient(ts), files, testCfg(root), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Created)
	assert.Contains(t, out.String(), "created (no JSON body)")
}

func TestRunTransportErrorAborts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "first")
	writeFile(t, root, "b.md", "second")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	client := &weblink.Client{HTTPClient: &http.Client{}, BaseURL: ts.URL, Token: "tok"}
	ts.Close()

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	res, err := Run(context.Background(), client, files, testCfg(root), &out)
	require.Error(t, err)

	// The remaining files are not attempted after a transport failure.
	assert.Equal(t, 0, res.Created)
	assert.NotContains(t, out.String(), "Done.")
}

func TestRunExhaustedWindowLogged(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "content")

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("RateLimit-Remaining", "0")
		w.Header().Set("RateLimit-Reset", "0")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = Run(context.Background(), newClient(ts), files, testCfg(root), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "rate limit reached")
}

func TestRunUnreadableFileSkipped(t *testing.T) {
	root := t.TempDir()
	bad := writeFile(t, root, "a.md", "secret")
	require.NoError(t, os.Chmod(bad, 0o000))
	t.Cleanup(func() { os.Chmod(bad, 0o644) })

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Error("unreadable file must not reach the network")
	}))
	defer ts.Close()

	var out bytes.Buffer
	res, err := Run(context.Background(), newClient(ts), []string{bad}, testCfg(root), &out)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, out.String(), "warning: could not read")
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.md", "content")
	writeFile(t, root, "b.md", "")

	files, err := vault.List(root, "*.md", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	res := Plan(files, testCfg(root), &out)

	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Contains(t, out.String(), `would create: title="a"`)
	assert.Contains(t, out.String(), "skip empty: b.md")
	assert.Contains(t, out.String(), "Plan: 1 to create, 1 skipped.")
}

func TestWriteReportRoundTrip(t *testing.T) {
	var res Result
	res.record("/vault/a.md", types.ActionCreated, "weblink-1", "")
	res.record("/vault/b.md", types.ActionSkipped, "", "empty file")
	res.record("/vault/c.md", types.ActionFailed, "", "HTTP 422")

	cfg := testCfg("/vault")
	started := time.Now().Add(-time.Minute).UTC().Truncate(time.Second)
	finished := time.Now().UTC().Truncate(time.Second)

	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, WriteReport(path, res.Report(cfg, started, finished)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got types.RunReport
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, "/vault", got.VaultPath)
	assert.Equal(t, 1, got.Created)
	assert.Equal(t, 1, got.Skipped)
	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Files, 3)
	assert.Equal(t, "weblink-1", got.Files[0].WeblinkID)
	assert.Equal(t, types.ActionFailed, got.Files[2].Action)
	assert.True(t, started.Equal(got.StartedAt))
}

func TestSnippetTruncates(t *testing.T) {
	long := bytes.Repeat([]byte("x"), errorSnippetLen+100)
	assert.Len(t, snippet(long), errorSnippetLen)
	assert.Equal(t, "short", snippet([]byte("short")))
}
