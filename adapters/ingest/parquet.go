package ingest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/apache/arrow/go/v7/arrow"
	"github.com/apache/arrow/go/v7/arrow/array"
	"github.com/apache/arrow/go/v7/arrow/memory"
	"github.com/apache/arrow/go/v7/parquet/file"
	"github.com/apache/arrow/go/v7/parquet/pqarrow"

	"goeda/domain/dataset"
	apperrors "goeda/internal/errors"
)

// readParquet loads a Parquet file through the Arrow reader and flattens
// it to string cells; nulls become missing markers.
func (r *DataReader) readParquet() (*dataset.Dataset, error) {
	rdr, err := file.OpenParquetFile(r.filePath, false)
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open Parquet file %s", r.filePath)
	}
	defer rdr.Close()

	fr, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.NewGoAllocator())
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to build Arrow reader for %s", r.filePath)
	}
	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to read Parquet table %s", r.filePath)
	}
	defer tbl.Release()

	numCols := int(tbl.NumCols())
	numRows := int(tbl.NumRows())
	headers := make([]string, numCols)
	cells := make([][]string, numCols)

	for i := 0; i < numCols; i++ {
		headers[i] = tbl.Schema().Field(i).Name
		cells[i] = make([]string, 0, numRows)
		for _, chunk := range tbl.Column(i).Data().Chunks() {
			vals, err := chunkStrings(chunk)
			if err != nil {
				return nil, apperrors.Wrapf(err, "column %s of %s", headers[i], r.filePath)
			}
			cells[i] = append(cells[i], vals...)
		}
	}

	rows := make([][]string, numRows)
	for r := 0; r < numRows; r++ {
		rows[r] = make([]string, numCols)
		for c := 0; c < numCols; c++ {
			if r < len(cells[c]) {
				rows[r][c] = cells[c][r]
			}
		}
	}

	return dataset.New(headers, rows), nil
}

// chunkStrings converts one Arrow array chunk to string cells.
func chunkStrings(arr arrow.Array) ([]string, error) {
	out := make([]string, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		switch a := arr.(type) {
		case *array.Float64:
			out[i] = strconv.FormatFloat(a.Value(i), 'g', -1, 64)
		case *array.Float32:
			out[i] = strconv.FormatFloat(float64(a.Value(i)), 'g', -1, 32)
		case *array.Int64:
			out[i] = strconv.FormatInt(a.Value(i), 10)
		case *array.Int32:
			out[i] = strconv.FormatInt(int64(a.Value(i)), 10)
		case *array.Int16:
			out[i] = strconv.FormatInt(int64(a.Value(i)), 10)
		case *array.Int8:
			out[i] = strconv.FormatInt(int64(a.Value(i)), 10)
		case *array.Uint64:
			out[i] = strconv.FormatUint(a.Value(i), 10)
		case *array.Uint32:
			out[i] = strconv.FormatUint(uint64(a.Value(i)), 10)
		case *array.Boolean:
			out[i] = strconv.FormatBool(a.Value(i))
		case *array.String:
			out[i] = a.Value(i)
		default:
			return nil, fmt.Errorf("unsupported Parquet column type %s", arr.DataType().Name())
		}
	}
	return out, nil
}
