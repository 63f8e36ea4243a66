package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"goeda/domain/core"
	"goeda/domain/dataset"
	apperrors "goeda/internal/errors"
)

// DataReader loads a tabular file into a Dataset, dispatching on the file
// extension. Recognized formats: .csv, .xlsx, .json, .parquet.
type DataReader struct {
	filePath string
	fileType string
}

// NewDataReader creates a reader for the given path.
func NewDataReader(filePath string) *DataReader {
	return &DataReader{
		filePath: filePath,
		fileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(filePath)), "."),
	}
}

// ReadData reads the file into a Dataset with inferred column kinds. An
// unrecognized extension is a configuration error, not a crash.
func (r *DataReader) ReadData() (*dataset.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, core.NewConfigurationError(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readExcel()
	case "json":
		return r.readJSON()
	case "parquet":
		return r.readParquet()
	default:
		return nil, fmt.Errorf("%w: .%s (use CSV, Excel, JSON, or Parquet)", core.ErrUnsupportedInput, r.fileType)
	}
}

func (r *DataReader) readCSV() (*dataset.Dataset, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open CSV file %s", r.filePath)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse CSV file %s", r.filePath)
	}
	if len(records) == 0 {
		return nil, core.NewConfigurationError(fmt.Sprintf("input file is empty: %s", r.filePath))
	}

	return dataset.New(records[0], records[1:]), nil
}

func (r *DataReader) readExcel() (*dataset.Dataset, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open Excel file %s", r.filePath)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, core.NewConfigurationError(fmt.Sprintf("Excel file has no sheets: %s", r.filePath))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read sheet %s", sheets[0])
	}
	if len(rows) == 0 {
		return nil, core.NewConfigurationError(fmt.Sprintf("input file is empty: %s", r.filePath))
	}

	return dataset.New(rows[0], rows[1:]), nil
}

// readJSON reads an array of flat records. Key order of the first record
// fixes the column order; later records may add columns, appended in
// first-seen order.
func (r *DataReader) readJSON() (*dataset.Dataset, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open JSON file %s", r.filePath)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to parse JSON file %s", r.filePath)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return nil, core.NewConfigurationError(fmt.Sprintf("JSON input must be an array of records: %s", r.filePath))
	}

	var headers []string
	index := make(map[string]int)
	var rows [][]string

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to parse JSON file %s", r.filePath)
		}
		if delim, ok := tok.(json.Delim); !ok || delim != '{' {
			return nil, core.NewConfigurationError("JSON records must be flat objects")
		}

		row := make([]string, len(headers))
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, apperrors.Wrapf(err, "failed to parse JSON file %s", r.filePath)
			}
			key := keyTok.(string)

			valTok, err := dec.Token()
			if err != nil {
				return nil, apperrors.Wrapf(err, "failed to parse JSON file %s", r.filePath)
			}
			if _, nested := valTok.(json.Delim); nested {
				return nil, core.NewConfigurationError(fmt.Sprintf("JSON field %q holds a nested value; records must be flat", key))
			}

			i, seen := index[key]
			if !seen {
				i = len(headers)
				index[key] = i
				headers = append(headers, key)
			}
			for len(row) <= i {
				row = append(row, "")
			}
			row[i] = jsonScalar(valTok)
		}
		if _, err := dec.Token(); err != nil { // consume '}'
			return nil, apperrors.Wrapf(err, "failed to parse JSON file %s", r.filePath)
		}
		rows = append(rows, row)
	}

	if len(headers) == 0 {
		return nil, core.NewConfigurationError(fmt.Sprintf("input file is empty: %s", r.filePath))
	}
	return dataset.New(headers, rows), nil
}

func jsonScalar(tok json.Token) string {
	switch v := tok.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
