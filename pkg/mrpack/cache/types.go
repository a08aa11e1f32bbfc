package cache

import (
	"bytes"
	"encoding/gob"
)

// keySeparator separates the record kind from the record id in cache
// keys.
const keySeparator = '\x00'

// Key prefixes partition the store by record kind.
var (
	versionKeyPrefix = []byte{'v', keySeparator}
	projectKeyPrefix = []byte{'p', keySeparator}
)

// versionKey builds the key for a version record looked up by file
// hash. Format: v\x00<sha512>
func versionKey(hash string) []byte {
	return append(append([]byte{}, versionKeyPrefix...), hash...)
}

// projectKey builds the key for a project record looked up by project
// id. Format: p\x00<project_id>
func projectKey(id string) []byte {
	return append(append([]byte{}, projectKeyPrefix...), id...)
}

// encode serializes a record to bytes using gob.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decode deserializes bytes into a record using gob.
func decode(data []byte, v any) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
