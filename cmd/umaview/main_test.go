package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the root command with fresh flag values
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	verbose, configPath, dirFlag = false, "", ""
	fixViewer, autoConfirm = false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func tableServer(t *testing.T) {
	t.Helper()
	docs := map[string]string{
		"/skillnames_global.json": `{"200012": ["Right-Handed ◎"]}`,
		"/umas_global.json":       `{"1001": {"name": ["スペシャルウィーク", "Special Week"], "outfits": {"100101": "[Special Dreamer]"}}}`,
		"/text_data.json":         `{"147": {"101": "Speed", "2101": "Runner"}, "151": {"5": "Int Bonus"}}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		doc, ok := docs[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(doc))
	}))
	t.Cleanup(srv.Close)

	t.Setenv("UMAVIEW_SOURCE_SKILL_NAMES_GLOBAL", srv.URL+"/skillnames_global.json")
	t.Setenv("UMAVIEW_SOURCE_SKILL_NAMES_JP", srv.URL+"/missing.json")
	t.Setenv("UMAVIEW_SOURCE_SKILL_DATA", srv.URL+"/missing.json")
	t.Setenv("UMAVIEW_SOURCE_UMAS_GLOBAL", srv.URL+"/umas_global.json")
	t.Setenv("UMAVIEW_SOURCE_UMAS_FULL", srv.URL+"/missing.json")
	t.Setenv("UMAVIEW_SOURCE_TEXT_DATA", srv.URL+"/text_data.json")
}

func TestEnrichCommand(t *testing.T) {
	tableServer(t)
	dir := t.TempDir()
	data := `[{"card_id": 100101, "skill_array": [{"skill_id": 200012, "level": 4}],
		"factor_id_array": [101, 2101], "nickname_id_array": [5]}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.json"), []byte(data), 0o644))

	out, err := executeCommand(t, "", "enrich", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] Loaded 1 characters")
	assert.Contains(t, out, "[OK] 1/1 characters with skill names")
	assert.Contains(t, out, "chara_name_en: Special Week")
	assert.Contains(t, out, "- Right-Handed ◎ (Lv.4)")
	// corrections already applied during enrichment
	assert.Contains(t, out, "[OK] No localization issues found!")

	enriched, err := os.ReadFile(filepath.Join(dir, "enriched_data.json"))
	require.NoError(t, err)
	assert.Contains(t, string(enriched), `"card_name_en": "[Special Dreamer] Special Week"`)
	assert.Contains(t, string(enriched), `"spark_name_en": "Front Runner"`)
	assert.Contains(t, string(enriched), `"nickname_name_en": "Wit Bonus"`)
}

func TestEnrichCommand_Errors(t *testing.T) {
	tableServer(t)
	dir := t.TempDir()

	_, err := executeCommand(t, "", "enrich", filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "input file not found")

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"card_id": 1}`), 0o644))
	_, err = executeCommand(t, "", "enrich", bad)
	assert.ErrorContains(t, err, "expected array of characters")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	viewer := filepath.Join(dir, "viewer.html")
	require.NoError(t, os.WriteFile(viewer, []byte(`<span class="aptitude-label">Stalker</span>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enriched_data.json"),
		[]byte(`[{"spark_array_enriched": [{"spark_id": 2101, "spark_name_en": "Runner"}]}]`), 0o644))

	out, err := executeCommand(t, "", "validate", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, out, "[!] Found 2 localization issue(s)")
	assert.Contains(t, out, "viewer.html:1")
	assert.Contains(t, out, "Run with --fix")

	out, err = executeCommand(t, "", "validate", "--dir", dir, "--fix")
	require.Error(t, err, "enriched data issues remain")
	assert.Contains(t, out, "[OK] Fixed 1 issue(s) in viewer.html")

	fixed, err := os.ReadFile(viewer)
	require.NoError(t, err)
	assert.Equal(t, `<span class="aptitude-label">Pace Chaser</span>`, string(fixed))
}

func TestValidateCommand_Clean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "viewer.html"), []byte(`<span class="aptitude-label">Front Runner</span>`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enriched_data.json"), []byte(`[]`), 0o644))

	out, err := executeCommand(t, "", "validate", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[OK] No localization issues found!")
	assert.Contains(t, out, "OFFICIAL GLOBAL TERMINOLOGY REFERENCE")
}

func TestValidateCommand_NoViewer(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enriched_data.json"), []byte(`[]`), 0o644))

	out, err := executeCommand(t, "", "validate", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "[!] Warning: viewer.html not found")
	assert.NotContains(t, out, "File not found")
	assert.Contains(t, out, "[OK] No localization issues found!")

	// enriched data is still required
	require.NoError(t, os.Remove(filepath.Join(dir, "enriched_data.json")))
	out, err = executeCommand(t, "", "validate", "--dir", dir, "--fix")
	require.Error(t, err)
	assert.Contains(t, out, "enriched_data.json: File not found")
	assert.Contains(t, out, "Nothing to fix: viewer.html not found")
}

func TestExtractCommand_NotFound(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("UMAEXTRACTOR_PATH", filepath.Join(dir, "nowhere"))

	out, err := executeCommand(t, "", "extract", "--dir", filepath.Join(dir, "viewer"), "--yes")
	assert.ErrorContains(t, err, "UmaExtractor not found")
	assert.Contains(t, out, filepath.Join(dir, "nowhere"))
	assert.Contains(t, out, "https://github.com/FabulousCupcake/UmaExtractor")
}

func TestExtractCommand_Cancelled(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	install := filepath.Join(dir, "UmaExtractor")
	require.NoError(t, os.MkdirAll(install, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(install, "UmaExtractor.exe"), nil, 0o755))
	t.Setenv("UMAEXTRACTOR_PATH", install)

	out, err := executeCommand(t, "n\n", "extract", "--dir", dir)
	assert.ErrorContains(t, err, "extraction cancelled")
	assert.Contains(t, out, "Found UmaExtractor: "+filepath.Join(install, "UmaExtractor.exe"))
	assert.Contains(t, out, "Extraction cancelled.")
}

func TestChildCommands(t *testing.T) {
	cfg.Dir = "/data/uma"
	configPath = "/etc/umaview.yaml"
	t.Cleanup(func() { configPath = "" })

	cmds := childCommands()
	assert.Equal(t, []string{"extract", "--yes", "--dir", "/data/uma", "--config", "/etc/umaview.yaml"}, cmds["extract"])
	assert.Equal(t, []string{"enrich", "--dir", "/data/uma", "--config", "/etc/umaview.yaml"}, cmds["enrich"])
}
