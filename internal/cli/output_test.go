package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jobdash/internal/listing"
	"github.com/roach88/jobdash/internal/source"
	"github.com/roach88/jobdash/internal/taxonomy"
)

func TestOutputFormatter_JSON(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}
		require.NoError(t, f.Success(map[string]int{"records": 8}))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Nil(t, resp.Error)
		assert.Equal(t, map[string]any{"records": 8.0}, resp.Data)
	})

	t.Run("error", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}
		require.NoError(t, f.Error(ErrCodeSource, "loading listings", map[string]string{"source": "x.csv"}))

		var resp CLIResponse
		require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Nil(t, resp.Data)
		require.NotNil(t, resp.Error)
		assert.Equal(t, ErrCodeSource, resp.Error.Code)
		assert.Equal(t, "loading listings", resp.Error.Message)
		assert.Equal(t, map[string]any{"source": "x.csv"}, resp.Error.Details)
	})

	t.Run("band labels unescaped", func(t *testing.T) {
		buf := &bytes.Buffer{}
		f := &OutputFormatter{Format: "json", Writer: buf}
		require.NoError(t, f.Success(listing.Series{{Label: "<50k", Value: 2}}))
		assert.Equal(t, `{"status":"ok","data":[{"label":"<50k","value":2}]}`+"\n", buf.String())
	})
}

func TestOutputFormatter_TextError(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		want    string
	}{
		{"quiet", false, "Error [E003]: parsing YAML\n"},
		{"verbose", true, "Error [E003]: parsing YAML\nDetails: map[path:taxonomy.yaml]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			f := &OutputFormatter{Format: "text", Writer: buf, Verbose: tt.verbose}
			require.NoError(t, f.Error(ErrCodeTaxonomy, "parsing YAML", map[string]string{"path": "taxonomy.yaml"}))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestOutputFormatter_TextSeries(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, f.Success(listing.Series{
		{Label: "Senior Data Analysts", Value: 115000},
		{Label: "Lead Data Analysts", Value: 50.5},
	}))
	assert.Equal(t, "Senior Data Analysts  115000\nLead Data Analysts    50.50\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	diag := &bytes.Buffer{}

	f := &OutputFormatter{Format: "json", Writer: out, ErrWriter: diag}
	f.VerboseLog("loading %s", "listings.csv")
	assert.Empty(t, diag.String())

	f.Verbose = true
	f.VerboseLog("loading %s", "listings.csv")
	assert.Equal(t, "loading listings.csv\n", diag.String())
	assert.Empty(t, out.String(), "diagnostics must not reach stdout")

	f.ErrWriter = nil
	f.VerboseLog("digest %s", "abc")
	assert.Equal(t, "digest abc\n", out.String())
}

func TestFail(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		err      error
		wantCode string
		details  any
	}{
		{
			name:     "load error code",
			err:      &LoadError{Code: ErrCodeConfig, Message: "loading config", Err: errors.New("boom")},
			wantCode: ErrCodeConfig,
		},
		{
			name:     "explicit code wins",
			code:     ErrCodeQuery,
			err:      &LoadError{Code: ErrCodeConfig, Message: "x"},
			wantCode: ErrCodeQuery,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			wantCode: ErrCodeGeneric,
		},
		{
			name: "source details",
			err: &LoadError{Code: ErrCodeSource, Message: "loading listings",
				Err: &source.LoadError{Code: source.ErrCodeMissingColumn, Source: "x.csv", Message: "missing column"}},
			wantCode: ErrCodeSource,
			details:  map[string]any{"source": "x.csv", "cause": source.ErrCodeMissingColumn},
		},
		{
			name: "taxonomy details",
			err: &LoadError{Code: ErrCodeTaxonomy, Message: "loading taxonomy",
				Err: &taxonomy.LoadError{Code: taxonomy.ErrCodeRead, Message: "bad", Path: "t.yaml", Line: 3}},
			wantCode: ErrCodeTaxonomy,
			details:  map[string]any{"cause": taxonomy.ErrCodeRead, "path": "t.yaml", "line": 3.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			f := &OutputFormatter{Format: "json", Writer: buf}

			err := f.Fail(ExitCommandError, tt.code, tt.err)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.ErrorIs(t, err, tt.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.details, resp.Error.Details)
		})
	}
}

func TestFail_TextMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	f := &OutputFormatter{Format: "text", Writer: buf}

	_ = f.Fail(ExitCommandError, "", &LoadError{Code: ErrCodeSource, Message: "loading listings", Err: errors.New("boom")})
	assert.Equal(t, "Error [E004]: loading listings: boom\n", buf.String())
}

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, ExitCommandError, GetExitCode(fmt.Errorf("wrapped: %w", NewExitError(ExitCommandError, "x"))))
}
