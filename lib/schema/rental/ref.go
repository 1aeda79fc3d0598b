// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package rental

import (
	"encoding/json"
	"fmt"
)

// Ref is a reference to another record. The API serializes references
// as a bare ID string on some endpoints and as a populated sub-document
// on others (list endpoints typically populate, mutation responses do
// not). Ref decodes both: ID is always set when the reference is
// non-null, and Doc is non-nil only when the server populated it.
type Ref[T any] struct {
	ID  string
	Doc *T
}

// refID is the minimal shape needed to pull the ID out of a populated
// sub-document.
type refID struct {
	ID string `json:"_id"`
}

// UnmarshalJSON accepts null, a string ID, or a populated object.
func (ref *Ref[T]) UnmarshalJSON(data []byte) error {
	ref.ID = ""
	ref.Doc = nil

	if string(data) == "null" {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &ref.ID)
	}

	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("rental: decoding populated reference: %w", err)
	}
	ref.Doc = &doc

	var identified refID
	if err := json.Unmarshal(data, &identified); err == nil {
		ref.ID = identified.ID
	}
	return nil
}

// MarshalJSON writes the bare ID (the only form the API accepts on
// writes). A zero reference marshals as null so optional foreign keys
// round-trip cleanly.
func (ref Ref[T]) MarshalJSON() ([]byte, error) {
	if ref.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(ref.ID)
}

// IsZero reports whether the reference points at nothing.
func (ref Ref[T]) IsZero() bool {
	return ref.ID == "" && ref.Doc == nil
}
