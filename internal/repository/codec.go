package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

var (
	ErrCorruptRecord   = errors.New("corrupt stored record")
	ErrProjectNotFound = errors.New("project not found")
)

// CorruptRecordError reports a stored record that cannot be decoded.
type CorruptRecordError struct {
	Key string
	Err error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("%s %q: %v", ErrCorruptRecord, e.Key, e.Err)
}

func (e *CorruptRecordError) Unwrap() []error {
	return []error{ErrCorruptRecord, e.Err}
}

// decodeRecord strictly decodes a stored record into v. Unknown fields and
// trailing data are treated as corruption so records from another schema
// are never half-read.
func decodeRecord(key, raw string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &CorruptRecordError{Key: key, Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &CorruptRecordError{Key: key, Err: fmt.Errorf("unexpected data after record")}
	}
	return nil
}

func encodeRecord(key string, v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", key, err)
	}
	return string(data), nil
}
