// ReelMatch - Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// Column names recognised in catalog artifacts, in priority order for ids.
const (
	titleColumn = "title"
)

var idColumns = []string{"movie_id", "id"}

// Format identifies an artifact encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatArrow Format = "arrow"
)

// DetectFormat picks the artifact format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".arrow", ".ipc", ".feather":
		return FormatArrow, nil
	default:
		return "", fmt.Errorf("%w: unsupported artifact extension %q (want .json or .arrow)",
			ErrInvalidArtifact, filepath.Ext(path))
	}
}

// Load reads both artifacts and checks that they describe the same movies.
func Load(catalogPath, similarityPath string) (*Catalog, *SimilarityMatrix, error) {
	start := time.Now()

	cat, err := LoadCatalog(catalogPath)
	if err != nil {
		return nil, nil, err
	}

	sim, err := LoadSimilarity(similarityPath)
	if err != nil {
		return nil, nil, err
	}

	if err := CheckAligned(cat, sim); err != nil {
		return nil, nil, fmt.Errorf("%s and %s: %w", catalogPath, similarityPath, err)
	}

	logging.Info().
		Int("movies", cat.Len()).
		Bool("external_ids", cat.HasExternalIDs()).
		Dur("duration", time.Since(start)).
		Msg("Artifacts loaded")

	return cat, sim, nil
}

// LoadCatalog reads a catalog artifact. Only JSON is supported for catalogs.
func LoadCatalog(path string) (*Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	if format != FormatJSON {
		return nil, fmt.Errorf("catalog %s: %w: catalogs must be JSON", path, ErrInvalidArtifact)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	records, err := DecodeCatalogJSON(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}

	cat, err := New(records)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}

// LoadSimilarity reads a similarity artifact, JSON or Arrow IPC by extension.
func LoadSimilarity(path string) (*SimilarityMatrix, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", path, err)
	}

	var sim *SimilarityMatrix
	switch format {
	case FormatArrow:
		sim, err = readSimilarityArrow(path)
	default:
		sim, err = readSimilarityJSON(path)
	}
	if err != nil {
		return nil, fmt.Errorf("similarity %s: %w", path, err)
	}
	return sim, nil
}

func readSimilarityJSON(path string) (*SimilarityMatrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read: %w", err)
	}
	return DecodeSimilarityJSON(data)
}

// DecodeSimilarityJSON decodes a nested-array matrix: [[1.0, 0.2], [0.2, 1.0]].
// A null cell is rejected rather than read as 0.
func DecodeSimilarityJSON(data []byte) (*SimilarityMatrix, error) {
	var cells [][]*float64
	if err := json.Unmarshal(data, &cells); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	rows := make([][]float64, len(cells))
	for i, row := range cells {
		if row == nil {
			return nil, fmt.Errorf("%w: similarity[%d] is null", ErrInvalidArtifact, i)
		}
		rows[i] = make([]float64, len(row))
		for j, v := range row {
			if v == nil {
				return nil, fmt.Errorf("%w: similarity[%d][%d] is null", ErrInvalidArtifact, i, j)
			}
			rows[i][j] = *v
		}
	}
	return NewSimilarityMatrix(rows)
}

// DecodeCatalogJSON decodes either a list of records
//
//	[{"title": "Avatar", "movie_id": 19995}, ...]
//
// or a column-oriented dataframe export
//
//	{"title": {"0": "Avatar", ...}, "movie_id": {"0": 19995, ...}}
//
// The id column is movie_id, falling back to id. Without either, every
// record gets NoExternalID.
func DecodeCatalogJSON(data []byte) ([]MovieRecord, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidArtifact)
	}

	switch trimmed[0] {
	case '[':
		return decodeRecordList(trimmed)
	case '{':
		return decodeColumns(trimmed)
	default:
		return nil, fmt.Errorf("%w: catalog must be a JSON array or object", ErrInvalidArtifact)
	}
}

func decodeRecordList(data []byte) ([]MovieRecord, error) {
	var rows []map[string]json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	idKey := ""
	for _, candidate := range idColumns {
		for _, row := range rows {
			if _, ok := row[candidate]; ok {
				idKey = candidate
				break
			}
		}
		if idKey != "" {
			break
		}
	}

	records := make([]MovieRecord, len(rows))
	for i, row := range rows {
		raw, ok := row[titleColumn]
		if !ok {
			return nil, fmt.Errorf("%w: record %d has no %q field", ErrInvalidArtifact, i, titleColumn)
		}
		title, err := parseTitle(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidArtifact, i, err)
		}

		id := NoExternalID
		if idKey != "" {
			if id, err = parseID(row[idKey]); err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidArtifact, i, err)
			}
		}

		records[i] = MovieRecord{Index: i, Title: title, ExternalID: id}
	}
	return records, nil
}

func decodeColumns(data []byte) ([]MovieRecord, error) {
	var cols map[string]json.RawMessage
	if err := json.Unmarshal(data, &cols); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}

	rawTitles, ok := cols[titleColumn]
	if !ok {
		return nil, fmt.Errorf("%w: catalog has no %q column", ErrInvalidArtifact, titleColumn)
	}
	titles, keys, err := decodeColumn(rawTitles)
	if err != nil {
		return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidArtifact, titleColumn, err)
	}

	var ids map[int]json.RawMessage
	for _, candidate := range idColumns {
		if raw, ok := cols[candidate]; ok {
			if ids, _, err = decodeColumn(raw); err != nil {
				return nil, fmt.Errorf("%w: column %q: %v", ErrInvalidArtifact, candidate, err)
			}
			break
		}
	}

	records := make([]MovieRecord, len(keys))
	for i, key := range keys {
		title, err := parseTitle(titles[key])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidArtifact, key, err)
		}

		id := NoExternalID
		if ids != nil {
			if id, err = parseID(ids[key]); err != nil {
				return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidArtifact, key, err)
			}
		}

		records[i] = MovieRecord{Index: i, Title: title, ExternalID: id}
	}
	return records, nil
}

// decodeColumn accepts a column as an array or as an object keyed by row number,
// and returns its cells with the row keys in ascending order.
func decodeColumn(raw json.RawMessage) (map[int]json.RawMessage, []int, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var cells []json.RawMessage
		if err := json.Unmarshal(trimmed, &cells); err != nil {
			return nil, nil, err
		}
		out := make(map[int]json.RawMessage, len(cells))
		keys := make([]int, len(cells))
		for i, c := range cells {
			out[i] = c
			keys[i] = i
		}
		return out, keys, nil
	}

	var byKey map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &byKey); err != nil {
		return nil, nil, err
	}
	out := make(map[int]json.RawMessage, len(byKey))
	keys := make([]int, 0, len(byKey))
	for k, v := range byKey {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, nil, fmt.Errorf("row key %q is not an integer", k)
		}
		out[n] = v
		keys = append(keys, n)
	}
	sort.Ints(keys)
	return out, keys, nil
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func parseTitle(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", fmt.Errorf("title is null")
	}
	var title string
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", fmt.Errorf("title is not a string: %s", bytes.TrimSpace(raw))
	}
	return title, nil
}

// parseID accepts integral numbers (19995 or 19995.0) and numeric strings.
// A missing or null id yields NoExternalID.
func parseID(raw json.RawMessage) (int, error) {
	if isNull(raw) {
		return NoExternalID, nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("invalid id %s: %v", bytes.TrimSpace(raw), err)
	}

	switch id := v.(type) {
	case float64:
		if id != math.Trunc(id) || math.Abs(id) > math.MaxInt32 {
			return 0, fmt.Errorf("id %v is not an integer", id)
		}
		return int(id), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(id))
		if err != nil {
			return 0, fmt.Errorf("id %q is not an integer", id)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("id has unsupported type %T", v)
	}
}
