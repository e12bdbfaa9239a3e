// This file is part of hdmicore.
//
// hdmicore is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// hdmicore is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with hdmicore.  If not, see <https://www.gnu.org/licenses/>.

package prefs

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/jetsetilly/hdmicore/curated"
)

// Sentinal error patterns.
const (
	UnknownKey   = "prefs: unknown key (%s)"
	DuplicateKey = "prefs: duplicate key (%s)"
)

// Registry is a collection of named preference values. Values are added with
// Add() and then set in bulk with Apply() or from the command line stack
// with ApplyCommandLine().
type Registry struct {
	entries map[string]pref
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]pref),
	}
}

// Add preference value to the registry. The key must be unique.
func (reg *Registry) Add(key string, p pref) error {
	if _, ok := reg.entries[key]; ok {
		return curated.Errorf(DuplicateKey, key)
	}
	reg.entries[key] = p
	return nil
}

// Get returns the current value for the named key.
func (reg *Registry) Get(key string) (Value, error) {
	p, ok := reg.entries[key]
	if !ok {
		return nil, curated.Errorf(UnknownKey, key)
	}
	return p.Get(), nil
}

// Set a single preference value by name.
func (reg *Registry) Set(key string, v Value) error {
	p, ok := reg.entries[key]
	if !ok {
		return curated.Errorf(UnknownKey, key)
	}
	if err := p.Set(v); err != nil {
		return curated.Errorf("prefs: %s: %v", key, err)
	}
	return nil
}

// Apply sets every value in the map. Keys that are not in the registry are
// an error. Keys are applied in sorted order so that hooks are called in a
// predictable sequence.
func (reg *Registry) Apply(values map[string]Value) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if err := reg.Set(k, values[k]); err != nil {
			return err
		}
	}
	return nil
}

// ApplyCommandLine sets any values that have been placed on the top of the
// command line stack. Values are removed from the stack as they are used.
func (reg *Registry) ApplyCommandLine() error {
	for _, k := range reg.Keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := reg.Set(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Reset every value in the registry.
func (reg *Registry) Reset() error {
	for _, k := range reg.Keys() {
		if err := reg.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

// Keys returns the list of keys in the registry in sorted order.
func (reg *Registry) Keys() []string {
	keys := make([]string, 0, len(reg.entries))
	for k := range reg.entries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Write a description of every value in the registry to io.Writer.
func (reg *Registry) Write(w io.Writer) {
	for _, k := range reg.Keys() {
		fmt.Fprintf(w, "%s :: %s\n", k, reg.entries[k])
	}
}

func (reg *Registry) String() string {
	s := &strings.Builder{}
	reg.Write(s)
	return s.String()
}
