package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	set, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []Label{"Junior Data Analysts", "Senior Data Analysts", "Lead Data Analysts"}, set.Level.Labels())
	require.Len(t, set.Domain.Entries, 16)
	assert.Equal(t, Label("BI Data Analysts"), set.Domain.Entries[0].Label)
	assert.Equal(t, Label("Excel expert"), set.Domain.Entries[15].Label)
	assert.Equal(t, []string{"google analytics", "ga4", "ga"}, set.Domain.Entries[1].Keywords)
	assert.Len(t, set.Labels(), 19)
}

func TestLoadYAMLPreservesOrder(t *testing.T) {
	path := writeFile(t, "tax.yaml", `
level:
  Zeta: [z]
  Alpha: [a, "no"]
domain:
  Mid: [m]
  Beta: [b]
`)
	set, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []Label{"Zeta", "Alpha"}, set.Level.Labels())
	assert.Equal(t, []Label{"Mid", "Beta"}, set.Domain.Labels())
	assert.Equal(t, []string{"a", "no"}, set.Level.Entries[1].Keywords)
	assert.Equal(t, NameLevel, set.Level.Name)
}

func TestLoadCUEPreservesOrder(t *testing.T) {
	path := writeFile(t, "tax.cue", `
level: {
	"Zeta Analysts": ["z"]
	Alpha: ["a", "aa"]
}
domain: {
	Mid: ["m"]
	Beta: ["b"]
}
`)
	set, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []Label{"Zeta Analysts", "Alpha"}, set.Level.Labels())
	assert.Equal(t, []Label{"Mid", "Beta"}, set.Domain.Labels())
	assert.Equal(t, []string{"a", "aa"}, set.Level.Entries[1].Keywords)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    string
	}{
		{"unknown key", "t.yaml", "level:\n  A: [a]\ndomain:\n  B: [b]\nskills:\n  C: [c]\n", ErrCodeUnknownKey},
		{"not a list", "t.yaml", "level:\n  A: a\ndomain:\n  B: [b]\n", ErrCodeShape},
		{"empty domain", "t.yaml", "level:\n  A: [a]\n", ErrCodeEmpty},
		{"duplicate", "t.yaml", "level:\n  A: [a]\n  A: [b]\ndomain:\n  B: [b]\n", ErrCodeDuplicate},
		{"no keywords", "t.yaml", "level:\n  A: []\ndomain:\n  B: [b]\n", ErrCodeNoKeywords},
		{"blank keyword", "t.yaml", "level:\n  A: [\" \"]\ndomain:\n  B: [b]\n", ErrCodeBlankKeyword},
		{"reserved label", "t.yaml", "level:\n  A: [a]\ndomain:\n  Other: [misc]\n", ErrCodeReserved},
		{"reserved label cue", "t.cue", "level: { Other: [\"a\"] }\ndomain: { B: [\"b\"] }\n", ErrCodeReserved},
		{"overlap", "t.yaml", "level:\n  A: [a]\ndomain:\n  A: [b]\n", ErrCodeOverlap},
		{"bad yaml", "t.yaml", "level: [unclosed\n", ErrCodeParse},
		{"scalar root", "t.yaml", "just text\n", ErrCodeShape},
		{"bad cue", "t.cue", "level: {\n", ErrCodeParse},
		{"cue not list", "t.cue", "level: { A: \"a\" }\ndomain: { B: [\"b\"] }\n", ErrCodeShape},
		{"format", "t.json", "{}", ErrCodeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			_, err := LoadFile(path)
			require.Error(t, err)

			var le *LoadError
			require.True(t, errors.As(err, &le), "want *LoadError, got %T", err)
			assert.Equal(t, tt.code, le.Code, le.Error())
			assert.Equal(t, path, le.Path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeRead, le.Code)
}

func TestLoadErrorFormat(t *testing.T) {
	assert.Equal(t, "T001: boom", (&LoadError{Code: "T001", Message: "boom"}).Error())
	assert.Equal(t, "a.yaml: T001: boom", (&LoadError{Code: "T001", Message: "boom", Path: "a.yaml"}).Error())
	assert.Equal(t, "a.yaml:3: T001: boom", (&LoadError{Code: "T001", Message: "boom", Path: "a.yaml", Line: 3}).Error())
}
