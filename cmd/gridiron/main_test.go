package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/gridiron/config"
)

func testCmdConfig() *config.Config {
	cfg := config.Load()
	cfg.Cache.MaxEntries = 0
	return cfg
}

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{"year=2024", " team = kan "})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"year": "2024", "team": "kan"}, got)

	_, err = parseParams([]string{"year"})
	assert.Error(t, err)
	_, err = parseParams([]string{"=2024"})
	assert.Error(t, err)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`jobs:
  - page: draft
    params:
      year: "2024"
  - page: hof
    max_age: 60000
    fetch_mode: http
webhook_url: https://example.test/hook
`), 0o644))

	req, err := loadManifest(path)
	require.NoError(t, err)
	require.Len(t, req.Jobs, 2)
	assert.Equal(t, "draft", req.Jobs[0].Page)
	assert.Equal(t, "2024", req.Jobs[0].Params["year"])
	assert.Equal(t, 60000, req.Jobs[1].MaxAge)
	assert.Equal(t, "http", req.Jobs[1].FetchMode)
	assert.Equal(t, "https://example.test/hook", req.WebhookURL)
}

func TestLoadManifest_Invalid(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("jobs: []\n"), 0o644))
	_, err := loadManifest(empty)
	assert.Error(t, err)

	noPage := filepath.Join(dir, "nopage.yaml")
	require.NoError(t, os.WriteFile(noPage, []byte("jobs:\n  - params: {year: \"2024\"}\n"), 0o644))
	_, err = loadManifest(noPage)
	assert.Error(t, err)

	_, err = loadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestTablesCmd_ListsHiddenTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body>
<table id="passing"><tbody><tr><td>1</td></tr></tbody></table>
<div id="all_defense"><!-- <table id="defense"><tbody><tr><td>1</td></tr><tr><td>2</td></tr></tbody></table> --></div>
</body></html>`), 0o644))

	var out bytes.Buffer
	cmd := newTablesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	require.NoError(t, cmd.Execute())

	assert.Regexp(t, `passing\s+1\s+false`, out.String())
	assert.Regexp(t, `defense\s+2\s+true`, out.String())
}

func TestPagesCmd(t *testing.T) {
	var out bytes.Buffer
	cmd := newPagesCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "/years/{year}/draft.htm")
}

func TestParseCmd_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "standings.html")
	require.NoError(t, os.WriteFile(path, []byte(`<html><body><table id="standings"><tbody>
<tr><th data-stat="ranker">1</th><td data-stat="team"><a href="/teams/pit/">Pittsburgh Steelers</a></td><td data-stat="g">8</td></tr>
</tbody></table></body></html>`), 0o644))

	cfg := testCmdConfig()
	var out bytes.Buffer
	cmd := newParseCmd(cfg)
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"superbowl_standings", "--file", path})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"success": true`)
	assert.Contains(t, out.String(), "Pittsburgh Steelers")
}
