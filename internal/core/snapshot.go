package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCorruptSnapshot marks a persisted payload that is not a sequence of
// startup records.
var ErrCorruptSnapshot = errors.New("corrupt startup snapshot")

// EncodeSnapshot serializes the collection as a JSON array of records.
func EncodeSnapshot(records []Startup) ([]byte, error) {
	if records == nil {
		records = []Startup{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot parses a payload written by EncodeSnapshot. Anything that is
// not an array of well-formed records with distinct non-empty ids is reported
// as ErrCorruptSnapshot. Keys outside the record's fields are ignored.
func DecodeSnapshot(payload []byte) ([]Startup, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: payload is not a list", ErrCorruptSnapshot)
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	records := make([]Startup, 0, len(raws))
	seen := make(map[string]struct{}, len(raws))
	for i, raw := range raws {
		record, err := decodeRecord(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrCorruptSnapshot, i, err)
		}
		if _, dup := seen[record.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrCorruptSnapshot, record.ID)
		}
		seen[record.ID] = struct{}{}
		records = append(records, record)
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) (Startup, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Startup{}, errors.New("not an object")
	}
	var record Startup
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return Startup{}, err
	}
	if record.ID == "" {
		return Startup{}, errors.New("missing id")
	}
	return record, nil
}
