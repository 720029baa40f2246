// Package dataset reads extracted snapshots from disk into the record form
// the load path consumes.
package dataset

import (
	"encoding/json"
	"os"

	"github.com/tigerroll/fantasyload/pkg/etl/core/record"
	"github.com/tigerroll/fantasyload/pkg/etl/support/exception"
)

const moduleName = "dataset"

// ReadFile parses a JSON snapshot file. The top level is an object keyed by
// entity type name, each value a list of records.
func ReadFile(path string) (map[string][]record.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, exception.NewLoadError(moduleName, "failed to read dataset file "+path, err, false, false)
	}
	return Parse(raw)
}

// Parse decodes a JSON snapshot from memory.
func Parse(raw []byte) (map[string][]record.Record, error) {
	var decoded map[string][]map[string]interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, exception.NewLoadError(moduleName, "failed to parse dataset JSON", err, false, false)
	}

	out := make(map[string][]record.Record, len(decoded))
	for name, rows := range decoded {
		records := make([]record.Record, 0, len(rows))
		for _, row := range rows {
			records = append(records, record.FromJSONMap(row))
		}
		out[name] = records
	}
	return out, nil
}
