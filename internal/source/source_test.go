package source

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/jobdash/internal/store"
	"github.com/roach88/jobdash/internal/testutil"
)

func requireCode(t *testing.T, err error, code string) *LoadError {
	t.Helper()
	require.Error(t, err)
	var le *LoadError
	require.True(t, errors.As(err, &le), "want *LoadError, got %T: %v", err, err)
	assert.Equal(t, code, le.Code, "error: %v", err)
	return le
}

func TestLoad_CSVFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "listings.csv", testutil.SampleCSV)

	records, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	assert.Equal(t, testutil.SampleRaw(), records)
}

func TestLoad_HeaderCaseAndBOM(t *testing.T) {
	csv := "\ufeff Title ,SALARY,Location,Platform\nData Analyst,Not specified,Anywhere,Indeed\n"
	path := testutil.WriteFile(t, t.TempDir(), "listings.csv", csv)

	records, err := Load(context.Background(), path, Options{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Data Analyst", records[0].Title)
	assert.Nil(t, records[0].Extra)
}

func TestLoad_MissingColumn(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "listings.csv", "title,salary\nA,B\n")

	_, err := Load(context.Background(), path, Options{})
	le := requireCode(t, err, ErrCodeMissingColumn)
	assert.Equal(t, path, le.Source)
	assert.Contains(t, le.Message, "location, platform")
}

func TestLoad_FieldCountMismatch(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "listings.csv",
		"title,salary,location,platform\nA,B,C\n")

	_, err := Load(context.Background(), path, Options{})
	requireCode(t, err, ErrCodeParse)
}

func TestLoad_Failures(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		spec string
		code string
	}{
		{"blank spec", "  ", ErrCodeSpec},
		{"bare sqlite prefix", "sqlite:", ErrCodeSpec},
		{"missing file", filepath.Join(dir, "nope.csv"), ErrCodeOpen},
		{"header only", testutil.WriteFile(t, dir, "empty.csv", "title,salary,location,platform\n"), ErrCodeEmpty},
		{"no header", testutil.WriteFile(t, dir, "blank.csv", ""), ErrCodeNoHeader},
		{"missing database", "sqlite:" + filepath.Join(dir, "nope.db"), ErrCodeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Load(context.Background(), tt.spec, Options{})
			requireCode(t, err, tt.code)
			assert.Nil(t, records)
		})
	}
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/listings.csv" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(testutil.SampleCSV))
	}))
	defer srv.Close()

	records, err := Load(context.Background(), srv.URL+"/listings.csv", Options{Client: srv.Client()})
	require.NoError(t, err)
	assert.Len(t, records, 8)

	_, err = Load(context.Background(), srv.URL+"/missing.csv", Options{Client: srv.Client()})
	le := requireCode(t, err, ErrCodeFetch)
	assert.Contains(t, le.Error(), "404")
}

func TestLoad_HTTPCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testutil.SampleCSV))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, srv.URL, Options{Client: srv.Client()})
	le := requireCode(t, err, ErrCodeFetch)
	assert.True(t, errors.Is(le, context.Canceled))
}

func TestLoad_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.InsertListings(context.Background(), testutil.SampleRaw()))
	require.NoError(t, s.Close())

	records, err := Load(context.Background(), "sqlite:"+path, Options{})
	require.NoError(t, err)
	require.Len(t, records, 8)
	assert.Equal(t, "Senior Data Analyst", records[0].Title)
	assert.Equal(t, "Junior Data Analyst", records[7].Title)
}

func TestLoad_SQLiteEmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.db")
	s, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Load(context.Background(), "sqlite:"+path, Options{})
	requireCode(t, err, ErrCodeEmpty)
}

func TestLoad_SQLiteNoListingsTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE jobs (title TEXT)`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = Load(context.Background(), "sqlite:"+path, Options{})
	le := requireCode(t, err, ErrCodeDatabase)
	assert.ErrorIs(t, le, store.ErrNoListings)
}

func TestKind(t *testing.T) {
	assert.Equal(t, "sqlite", Kind("sqlite:x.db"))
	assert.Equal(t, "http", Kind("https://example.com/x.csv"))
	assert.Equal(t, "http", Kind("http://example.com/x.csv"))
	assert.Equal(t, "csv", Kind("data/x.csv"))
}

func TestReadTable_Index(t *testing.T) {
	table, err := ReadTable(strings.NewReader("A,b\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, table.Index(" a "))
	assert.Equal(t, 1, table.Index("B"))
	assert.Equal(t, -1, table.Index("c"))
	assert.Equal(t, [][]string{{"1", "2"}}, table.Rows)
}
