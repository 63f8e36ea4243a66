package kaggle

import (
	"archive/zip"
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goeda/internal"
)

func TestIsKaggleRef(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://www.kaggle.com/datasets/mirichoi0218/insurance", true},
		{"kaggle.com/datasets/owner/name", true},
		{"mirichoi0218/insurance", true},
		{"data/insurance.csv", true}, // owner/dataset shape, path does not exist
		{"/absolute/path.csv", false},
		{"insurance.csv", false},
		{"http://example.com/a", false},
		{"a/b/c", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsKaggleRef(tt.input), tt.input)
	}
}

func TestIsKaggleRef_ExistingLocalPathWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "insurance.csv"), []byte("a,b\n"), 0o644))
	t.Chdir(dir)

	// An owner/dataset lookalike that exists on disk is treated as a file.
	assert.False(t, IsKaggleRef("data/insurance.csv"))
}

func TestExtractDatasetID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain id", "mirichoi0218/insurance", "mirichoi0218/insurance", false},
		{"full url", "https://www.kaggle.com/datasets/mirichoi0218/insurance", "mirichoi0218/insurance", false},
		{"trailing slash", "https://www.kaggle.com/datasets/mirichoi0218/insurance/", "mirichoi0218/insurance", false},
		{"url with suffix path", "https://www.kaggle.com/datasets/owner/name/versions/2", "owner/name", false},
		{"missing dataset part", "justowner", "", true},
		{"empty segment", "owner/", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDatasetID(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestDownload_ExtractsFirstTabularFile(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"readme.md":     "# about",
		"insurance.csv": "age,charges\n25,1000\n",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mirichoi0218/insurance", r.URL.Path)
		_, _ = w.Write(archive)
	}))
	defer srv.Close()

	h := &Handler{
		client:  srv.Client(),
		log:     internal.NewLogger(internal.LogLevelError),
		baseURL: srv.URL + "/%s",
	}

	dest := t.TempDir()
	path, err := h.Download("mirichoi0218/insurance", dest)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dest, "insurance.csv"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "age,charges")
}

func TestDownload_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	h := &Handler{
		client:  srv.Client(),
		log:     internal.NewLogger(internal.LogLevelError),
		baseURL: srv.URL + "/%s",
	}

	_, err := h.Download("owner/private", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestHasTabularExt(t *testing.T) {
	assert.True(t, hasTabularExt("insurance.csv"))
	assert.True(t, hasTabularExt("DATA.XLSX"))
	assert.True(t, hasTabularExt("records.parquet"))
	assert.False(t, hasTabularExt("readme.md"))
	assert.False(t, hasTabularExt("archive.zip"))
}
