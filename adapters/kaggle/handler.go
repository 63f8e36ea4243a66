package kaggle

import (
	"archive/zip"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"goeda/internal"
	apperrors "goeda/internal/errors"
)

// downloadURL is the public dataset archive endpoint.
const downloadURL = "https://www.kaggle.com/api/v1/datasets/download/%s"

// tabularExtensions are the file types the pipeline can ingest, in
// preference order when a dataset archive holds several files.
var tabularExtensions = []string{".csv", ".xlsx", ".json", ".parquet"}

// Handler downloads Kaggle datasets and extracts the first tabular file.
type Handler struct {
	client  *http.Client
	log     *internal.Logger
	baseURL string
}

// NewHandler creates a Kaggle handler with a bounded-timeout HTTP client.
func NewHandler(log *internal.Logger) *Handler {
	return &Handler{
		client:  &http.Client{Timeout: 5 * time.Minute},
		log:     log,
		baseURL: downloadURL,
	}
}

// IsKaggleRef reports whether the input looks like a Kaggle dataset
// reference: a kaggle.com URL or an owner/dataset pair that is not an
// existing local path.
func IsKaggleRef(input string) bool {
	if strings.Contains(input, "kaggle.com") {
		return true
	}
	if strings.Count(input, "/") != 1 || strings.HasPrefix(input, "/") || strings.HasPrefix(input, "http") {
		return false
	}
	_, err := os.Stat(input)
	return os.IsNotExist(err)
}

// ExtractDatasetID normalizes a Kaggle URL or owner/dataset string into
// the owner/dataset identifier.
func ExtractDatasetID(input string) (string, error) {
	s := strings.TrimSuffix(strings.TrimSpace(input), "/")
	if idx := strings.Index(s, "kaggle.com/datasets/"); idx >= 0 {
		s = s[idx+len("kaggle.com/datasets/"):]
	}
	parts := strings.Split(s, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("not a valid Kaggle dataset reference: %s", input)
	}
	return parts[0] + "/" + parts[1], nil
}

// Download fetches the dataset archive into destDir, unzips it, and
// returns the path of the first tabular file found.
func (h *Handler) Download(ref, destDir string) (string, error) {
	id, err := ExtractDatasetID(ref)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", apperrors.Wrapf(err, "failed to create download directory %s", destDir)
	}

	h.log.Info("downloading Kaggle dataset %s", id)
	resp, err := h.client.Get(fmt.Sprintf(h.baseURL, id))
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to download Kaggle dataset %s", id)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Kaggle returned status %d for dataset %s", resp.StatusCode, id)
	}

	archivePath := filepath.Join(destDir, "dataset.zip")
	out, err := os.Create(archivePath)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to create archive file %s", archivePath)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return "", apperrors.Wrapf(err, "failed to save archive %s", archivePath)
	}
	out.Close()

	return h.extractFirstTabular(archivePath, destDir)
}

// extractFirstTabular unzips the archive and returns the first file with a
// recognized tabular extension.
func (h *Handler) extractFirstTabular(archivePath, destDir string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to open archive %s", archivePath)
	}
	defer zr.Close()

	var found string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		name := filepath.Base(f.Name)
		target := filepath.Join(destDir, name)
		if err := extractFile(f, target); err != nil {
			return "", err
		}
		if found == "" && hasTabularExt(name) {
			found = target
		}
	}
	if found == "" {
		return "", fmt.Errorf("no tabular file found in Kaggle archive %s", archivePath)
	}

	h.log.Info("extracted dataset file %s", found)
	return found, nil
}

func extractFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return apperrors.Wrapf(err, "failed to read archive entry %s", f.Name)
	}
	defer rc.Close()

	out, err := os.Create(target)
	if err != nil {
		return apperrors.Wrapf(err, "failed to create %s", target)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return apperrors.Wrapf(err, "failed to extract %s", f.Name)
	}
	return nil
}

func hasTabularExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range tabularExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
