package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jobdash/internal/testutil"
)

// execute runs the root command with args and captures both streams.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

// decode parses a JSON envelope.
func decode(t *testing.T, out string) CLIResponse {
	t.Helper()
	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp), "output: %s", out)
	return resp
}

func sampleSource(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, t.TempDir(), "listings.csv", testutil.SampleCSV)
}

func TestSummary_JSON(t *testing.T) {
	out, stderr, err := execute(t, "summary", "--source", sampleSource(t), "--format", "json")
	require.NoError(t, err)

	resp := decode(t, out)
	assert.Equal(t, "ok", resp.Status)
	data := resp.Data.(map[string]any)
	assert.Equal(t, 8.0, data["records"])
	assert.Equal(t, 7.0, data["salaried"])
	assert.Equal(t, 6.0, data["processed"])
	assert.Equal(t, 1.0, data["trimmed"])
	assert.Len(t, data["digest"], 64)

	assert.Contains(t, stderr, "snapshot built")
}

func TestSummary_Text(t *testing.T) {
	out, _, err := execute(t, "summary", "--source", sampleSource(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Records")
	assert.Contains(t, out, "Fences")
	assert.Contains(t, out, "[-47500, 232500]")
}

func TestSummary_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"no source", nil, ErrCodeNoSource},
		{"missing source", []string{"--source", filepath.Join(t.TempDir(), "missing.csv")}, ErrCodeSource},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, ErrCodeConfig},
		{"missing taxonomy", []string{"--source", "x.csv", "--taxonomy", filepath.Join(t.TempDir(), "t.yaml")}, ErrCodeTaxonomy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"summary", "--format", "json"}, tt.args...)
			out, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))

			resp := decode(t, out)
			assert.Equal(t, "error", resp.Status)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.code, resp.Error.Code)
		})
	}
}

func TestQuery_Platforms(t *testing.T) {
	out, _, err := execute(t, "query", "platforms", "--source", sampleSource(t))
	require.NoError(t, err)
	assert.Contains(t, out, "LinkedIn")
	assert.Contains(t, out, "ZipRecruiter")
}

func TestQuery_SelectedCategory(t *testing.T) {
	out, _, err := execute(t, "query", "categories",
		"--source", sampleSource(t),
		"--field", "level",
		"--category", "Senior Data Analysts",
		"--format", "json")
	require.NoError(t, err)

	resp := decode(t, out)
	points := resp.Data.([]any)
	require.Len(t, points, 3)
	assert.Equal(t, "Senior Data Analyst", points[0].(map[string]any)["label"])
}

func TestQuery_Bands(t *testing.T) {
	out, _, err := execute(t, "query", "bands", "--source", sampleSource(t), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"label":"<50k"`)
	assert.Contains(t, out, `"label":"200k+","value":1`)
}

func TestQuery_BandSalary(t *testing.T) {
	out, _, err := execute(t, "query", "bandsalary", "--source", sampleSource(t), "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `[{"label":"Other","value":320000},{"label":"Senior Data Analysts","value":115000},{"label":"Junior Data Analysts","value":57500}]`)
}

func TestQuery_Errors(t *testing.T) {
	src := sampleSource(t)

	out, _, err := execute(t, "query", "pie", "--source", src, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Equal(t, ErrCodeQuery, decode(t, out).Error.Code)

	out, _, err = execute(t, "query", "histogram", "--field", "salary", "--source", src, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ErrCodeQuery, decode(t, out).Error.Code)

	out, _, err = execute(t, "query", "histogram", "--field", "platform", "--source", src, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ErrCodeQuery, decode(t, out).Error.Code)

	out, _, err = execute(t, "query", "skills", "--category", "Lead Data Analysts", "--source", src, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ErrCodeSkills, decode(t, out).Error.Code)
}

func writeConfig(t *testing.T, skillsCSV string) string {
	t.Helper()
	dir := t.TempDir()
	src := testutil.WriteFile(t, dir, "listings.csv", testutil.SampleCSV)
	skills := testutil.WriteFile(t, dir, "skills.csv", skillsCSV)
	return testutil.WriteFile(t, dir, "jobdash.yaml", "source: "+src+"\n"+
		"skills:\n"+
		"  - path: "+skills+"\n"+
		"    key_column: des_category_level\n"+
		"top_n:\n"+
		"  platforms: 2\n")
}

func TestQuery_WithConfig(t *testing.T) {
	cfg := writeConfig(t, testutil.SampleSkillsCSV)

	out, _, err := execute(t, "query", "skills", "--config", cfg, "--category", "Junior Data Analysts")
	require.NoError(t, err)
	assert.Contains(t, out, "Junior Data Analysts (Skills)")
	assert.Contains(t, out, "SQL, Excel")

	out, _, err = execute(t, "query", "platforms", "--config", cfg, "--format", "json")
	require.NoError(t, err)
	assert.Len(t, decode(t, out).Data, 3, "top 2 platforms plus Others")
}

func TestQuery_OrphanSkills(t *testing.T) {
	cfg := writeConfig(t, "des_category_level,Top 1 Skills\nSenior Analysts,SQL\n")

	out, _, err := execute(t, "query", "bands", "--config", cfg, "--format", "json")
	require.Error(t, err)
	resp := decode(t, out)
	assert.Equal(t, ErrCodeSkills, resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "Senior Analysts")
}

func TestListings(t *testing.T) {
	src := sampleSource(t)

	out, _, err := execute(t, "listings", "--source", src, "--category", "Senior Data Analysts", "--limit", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Senior Data Analyst")
	assert.Contains(t, out, "Showing 2 of 3 listings")

	out, _, err = execute(t, "listings", "--source", src, "--location", "Austin, TX", "--format", "json")
	require.NoError(t, err)
	data := decode(t, out).Data.(map[string]any)
	assert.Equal(t, 2.0, data["total"])
	assert.Len(t, data["listings"], 2)

	out, _, err = execute(t, "listings", "--source", src, "--location", "Mars")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching listings.")
}

func TestValidate(t *testing.T) {
	out, _, err := execute(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "taxonomy: 3 level, 16 domain labels")
	assert.Contains(t, out, "All checks passed")

	out, _, err = execute(t, "validate", "--source", sampleSource(t), "--format", "json")
	require.NoError(t, err)
	data := decode(t, out).Data.(map[string]any)
	assert.Equal(t, true, data["valid"])
	assert.Equal(t, 8.0, data["records"])
	assert.Equal(t, 1.0, data["unmatched"])
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()
	overlap := testutil.WriteFile(t, dir, "taxonomy.yaml",
		"level:\n  Data Engineers: [senior]\ndomain:\n  Data Engineers: [engineer]\n")

	out, _, err := execute(t, "validate", "--taxonomy", overlap)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "[E003]")

	cfg := writeConfig(t, "des_category_level,Top 1 Skills\nSenior Analysts,SQL\n")
	out, _, err = execute(t, "validate", "--config", cfg, "--format", "json")
	require.Error(t, err)
	data := decode(t, out).Data.(map[string]any)
	assert.Equal(t, false, data["valid"])
	assert.Equal(t, []any{"Senior Analysts"}, data["skills"].(map[string]any)["orphans"])
}

func writeScenario(t *testing.T, dir string) string {
	t.Helper()
	testutil.WriteFile(t, dir, "listings.csv", testutil.SampleCSV)
	return testutil.WriteFile(t, dir, "scenarios/platforms.yaml", `name: platforms
description: Platform share over the sample export
source: ../listings.csv
queries:
  - query: platforms
    expect: { labels: [LinkedIn, Indeed, Glassdoor, ZipRecruiter], total: 8 }
`)
}

func TestTestCommand(t *testing.T) {
	dir := t.TempDir()
	scenario := writeScenario(t, dir)
	scenariosDir := filepath.Dir(scenario)

	out, _, err := execute(t, "test", scenariosDir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ platforms")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")

	out, _, err = execute(t, "test", scenariosDir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "golden updated")
	golden := filepath.Join(scenariosDir, "golden", "platforms.golden")
	require.FileExists(t, golden)

	_, _, err = execute(t, "test", scenariosDir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0o644))
	out, _, err = execute(t, "test", scenariosDir, "--format", "json")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	resp := decode(t, out)
	assert.Equal(t, "E_TEST_FAILED", resp.Error.Code)
}

func TestTestCommand_Filter(t *testing.T) {
	scenariosDir := filepath.Dir(writeScenario(t, t.TempDir()))

	out, _, err := execute(t, "test", scenariosDir, "--filter", "landing*")
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found")
}

func TestTestCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")

	_, _, err = execute(t, "test", "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "broken.yaml", "name: broken\n")
	out, _, err := execute(t, "test", dir)
	require.Error(t, err)
	assert.Contains(t, out, "failed to load scenario")
}
