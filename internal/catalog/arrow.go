// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/ipc"
	"github.com/apache/arrow/go/v17/arrow/memory"
)

// ScoresColumn is the Arrow column holding one similarity row per record.
const ScoresColumn = "scores"

// readSimilarityArrow reads an Arrow IPC file whose "scores" column is a
// fixed_size_list (or list) of float32/float64, one row per movie, spread over
// any number of record batches.
func readSimilarityArrow(path string) (*SimilarityMatrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	reader, err := ipc.NewFileReader(f, ipc.WithAllocator(memory.NewGoAllocator()))
	if err != nil {
		return nil, fmt.Errorf("%w: not an Arrow IPC file: %v", ErrInvalidArtifact, err)
	}
	defer reader.Close()

	indices := reader.Schema().FieldIndices(ScoresColumn)
	if len(indices) == 0 {
		return nil, fmt.Errorf("%w: Arrow file has no %q column", ErrInvalidArtifact, ScoresColumn)
	}
	col := indices[0]

	var (
		n      = -1
		scores []float64
		row    int
	)

	for b := 0; b < reader.NumRecords(); b++ {
		rec, err := reader.Record(b)
		if err != nil {
			return nil, fmt.Errorf("%w: record batch %d: %v", ErrInvalidArtifact, b, err)
		}

		lists, ok := rec.Column(col).(array.ListLike)
		if !ok {
			return nil, fmt.Errorf("%w: column %q has type %s, want a list of floats",
				ErrInvalidArtifact, ScoresColumn, rec.Column(col).DataType())
		}

		values := lists.ListValues()
		for i := 0; i < lists.Len(); i++ {
			if lists.IsNull(i) {
				return nil, fmt.Errorf("%w: similarity row %d is null", ErrInvalidArtifact, row)
			}
			start, end := lists.ValueOffsets(i)
			width := int(end - start)

			if n < 0 {
				n = width
				if n == 0 {
					return nil, fmt.Errorf("%w: similarity rows are empty", ErrInvalidArtifact)
				}
				scores = make([]float64, 0, n*n)
			}
			if width != n {
				return nil, fmt.Errorf("%w: similarity row %d has %d entries, want %d",
					ErrInvalidArtifact, row, width, n)
			}
			if row >= n {
				return nil, fmt.Errorf("%w: similarity matrix has more than %d rows", ErrInvalidArtifact, n)
			}

			scores, err = appendFloats(scores, values, int(start), int(end), row)
			if err != nil {
				return nil, err
			}
			row++
		}
	}

	if n < 0 {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrInvalidArtifact)
	}
	if row != n {
		return nil, fmt.Errorf("%w: similarity matrix has %d rows, want %d", ErrInvalidArtifact, row, n)
	}

	return newFromFlat(n, scores), nil
}

// appendFloats copies values[start:end] into dst, widening float32 to float64.
func appendFloats(dst []float64, values arrow.Array, start, end, row int) ([]float64, error) {
	switch v := values.(type) {
	case *array.Float64:
		for j := start; j < end; j++ {
			f := v.Value(j)
			if v.IsNull(j) || math.IsNaN(f) {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is null or NaN", ErrInvalidArtifact, row, j-start)
			}
			dst = append(dst, f)
		}
	case *array.Float32:
		for j := start; j < end; j++ {
			f := float64(v.Value(j))
			if v.IsNull(j) || math.IsNaN(f) {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is null or NaN", ErrInvalidArtifact, row, j-start)
			}
			dst = append(dst, f)
		}
	default:
		return nil, fmt.Errorf("%w: similarity values have type %s, want float32 or float64",
			ErrInvalidArtifact, values.DataType())
	}
	return dst, nil
}

// WriteSimilarityArrow writes m as an Arrow IPC file with a single
// fixed_size_list<float64>[N] column named "scores".
func WriteSimilarityArrow(path string, m *SimilarityMatrix) (err error) {
	mem := memory.NewGoAllocator()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: ScoresColumn, Type: arrow.FixedSizeListOf(int32(m.Dim()), arrow.PrimitiveTypes.Float64)},
	}, nil)

	builder := array.NewRecordBuilder(mem, schema)
	defer builder.Release()

	lb, ok := builder.Field(0).(*array.FixedSizeListBuilder)
	if !ok {
		return errors.New("unexpected builder type for scores column")
	}
	vb, ok := lb.ValueBuilder().(*array.Float64Builder)
	if !ok {
		return errors.New("unexpected value builder type for scores column")
	}
	for i := 0; i < m.Dim(); i++ {
		lb.Append(true)
		vb.AppendValues(m.scores[i*m.n:(i+1)*m.n], nil)
	}

	rec := builder.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(schema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("failed to create Arrow writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("failed to write record batch: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to finalize Arrow file: %w", err)
	}
	return nil
}
