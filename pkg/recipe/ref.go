// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recipe

import (
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	apperrors "github.com/mchmarny/recipebox/pkg/errors"
)

// Ref identifies a child entity in a submitted aggregate. The zero value is
// New: the entity has no identity and will be created. ExistingRef names a
// stored entity to be updated.
type Ref struct {
	id int64
}

// NewRef returns a Ref with no identity.
func NewRef() Ref {
	return Ref{}
}

// ExistingRef returns a Ref naming the stored entity with the given id.
func ExistingRef(id int64) Ref {
	return Ref{id: id}
}

// IsNew reports whether r carries no identity.
func (r Ref) IsNew() bool {
	return r.id == 0
}

// IsZero reports whether r is New. Used by encoding/json omitzero.
func (r Ref) IsZero() bool {
	return r.IsNew()
}

// ID returns the identity and true when r is Existing.
func (r Ref) ID() (int64, bool) {
	return r.id, r.id != 0
}

func (r Ref) String() string {
	if r.IsNew() {
		return "new"
	}
	return strconv.FormatInt(r.id, 10)
}

// MarshalJSON encodes New as null and Existing as its numeric id.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.IsNew() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(r.id, 10)), nil
}

// UnmarshalJSON decodes null to New and a positive integer to Existing.
func (r *Ref) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = NewRef()
		return nil
	}
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("identity must be an integer or null: %w", err)
	}
	if id <= 0 {
		return fmt.Errorf("identity must be positive, got %d", id)
	}
	*r = ExistingRef(id)
	return nil
}

// MarshalYAML encodes New as null and Existing as its numeric id.
func (r Ref) MarshalYAML() (any, error) {
	if r.IsNew() {
		return nil, nil
	}
	return r.id, nil
}

// UnmarshalYAML decodes null to New and a positive integer to Existing.
func (r *Ref) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*r = NewRef()
		return nil
	}
	var id int64
	if err := value.Decode(&id); err != nil {
		return fmt.Errorf("identity must be an integer or null: %w", err)
	}
	if id <= 0 {
		return fmt.Errorf("identity must be positive, got %d", id)
	}
	*r = ExistingRef(id)
	return nil
}

// ParseID parses a positive entity id from a path parameter.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest("invalid id: %q", s)
	}
	return id, nil
}
