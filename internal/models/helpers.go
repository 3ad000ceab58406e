// Package models defines data structures for the lensa media query engine.
package models

import (
	"fmt"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// RecordIDString safely extracts the string ID from a SurrealDB RecordID.
// Returns an error if the ID is not a string type.
func RecordIDString(id surrealmodels.RecordID) (string, error) {
	s, ok := id.ID.(string)
	if !ok {
		return "", fmt.Errorf("unexpected ID type: %T (expected string)", id.ID)
	}
	return s, nil
}

// Key returns the record's stable identity for de-duplication: the URI when
// present, otherwise the string form of the store ID.
func (r MediaRecord) Key() string {
	if r.URI != "" {
		return r.URI
	}
	if s, err := RecordIDString(r.ID); err == nil {
		return s
	}
	return fmt.Sprintf("%v", r.ID.ID)
}
