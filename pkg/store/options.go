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

package store

// Entity names reported to an Observer.
const (
	EntityStep       = "step"
	EntityIngredient = "ingredient"
)

// Operations reported to an Observer.
const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Observer is notified after each successful child write.
type Observer func(entity, op string)

// Option configures an adapter.
type Option func(*options)

type options struct {
	observe Observer
}

// WithObserver registers a callback invoked after each successful write.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observe = o
	}
}

func newOptions(opts []Option) options {
	o := options{observe: func(string, string) {}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.observe == nil {
		o.observe = func(string, string) {}
	}
	return o
}
