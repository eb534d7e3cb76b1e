/**
 * Copyright (c) 2018, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package schema

import (
	"sync"
)

// ExtensionSpec declares the argument schema of a user extension. Field extensions outside the
// recognized internal set are validated against the catalog of registered specs.
type ExtensionSpec struct {
	Name string

	// Args declares the accepted arguments, their types and defaults.
	Args []ArgumentDefinition
}

// Registry is the mutable store of named type records. Each name appears exactly once; per-record
// mutation exclusivity is the caller's responsibility (composition partitions work by record
// name), while the registry's own maps are guarded here.
type Registry struct {
	mu sync.RWMutex

	records map[string]*TypeRecord

	// order preserves first-registration order for deterministic iteration. Replacing a record
	// keeps its position.
	order []string

	// retain names records that must survive even if nothing references them.
	retain map[string]struct{}

	extensions map[string]ExtensionSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records:    map[string]*TypeRecord{},
		retain:     map[string]struct{}{},
		extensions: map[string]ExtensionSpec{},
	}
}

// Lookup finds the record with the given name, or returns nil.
func (reg *Registry) Lookup(name string) *TypeRecord {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.records[name]
}

// TypeNames returns all record names in first-registration order.
func (reg *Registry) TypeNames() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return append([]string(nil), reg.order...)
}

// Len returns the number of records.
func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.records)
}

// register puts a record into the registry. A record with an already-known name replaces the
// previous one in place, keeping its iteration position; callers route through the merge
// resolver first when replacement is not intended.
func (reg *Registry) register(rec *TypeRecord) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.records[rec.name]; !exists {
		reg.order = append(reg.order, rec.name)
	}
	reg.records[rec.name] = rec
}

// remove drops the named record and its retain flag.
func (reg *Registry) remove(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, exists := reg.records[name]; !exists {
		return
	}
	delete(reg.records, name)
	delete(reg.retain, name)
	for i, n := range reg.order {
		if n == name {
			reg.order = append(reg.order[:i:i], reg.order[i+1:]...)
			break
		}
	}
}

// MustRetain flags the named record so later compaction cannot drop it for being unreferenced.
func (reg *Registry) MustRetain(name string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.retain[name] = struct{}{}
}

// Retained returns true if the named record carries the must-retain flag.
func (reg *Registry) Retained(name string) bool {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	_, ok := reg.retain[name]
	return ok
}

// RegisterExtension adds an extension-argument schema to the catalog, replacing any previous
// spec of the same name.
func (reg *Registry) RegisterExtension(spec ExtensionSpec) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.extensions[spec.Name] = spec
}

// ExtensionSpec finds the registered argument schema for the named extension.
func (reg *Registry) ExtensionSpec(name string) (ExtensionSpec, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	spec, ok := reg.extensions[name]
	return spec, ok
}
