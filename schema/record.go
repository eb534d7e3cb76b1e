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
	"context"
	"sort"
	"sync"

	"github.com/toanlv-dev/gatsby/nodes"
)

// Provenance records which intake path produced a type or a field. It decides safe-merge
// behavior and what a targeted rebuild strips before recomputing.
type Provenance string

// The intake paths.
const (
	ProvenanceSDL              Provenance = "sdl"
	ProvenanceTypeBuilder      Provenance = "typeBuilder"
	ProvenanceNativeObject     Provenance = "nativeObject"
	ProvenanceThirdPartySchema Provenance = "thirdPartySchema"

	// ProvenanceCreateResolvers tags fields added through the resolver-override extension point.
	ProvenanceCreateResolvers Provenance = "createResolvers"

	// ProvenanceDerived tags fields and auxiliary types generated by the composition pipeline.
	ProvenanceDerived Provenance = "derived"
)

// Deprecation contains information about deprecation for a field.
type Deprecation struct {
	// Reason provides a description of why the subject is deprecated.
	Reason string
}

// Defined returns true if the deprecation is active.
func (d *Deprecation) Defined() bool {
	return d != nil
}

// ResolveInfo carries per-invocation state into a FieldResolver.
type ResolveInfo struct {
	// FieldName names the field being resolved.
	FieldName string

	// Field is the definition of the field being resolved.
	Field *FieldDefinition

	// Args contains the coerced argument values for the invocation.
	Args map[string]interface{}

	// PreviousResolver is set when the invoked resolver was installed as an override; it gives the
	// override access to the resolver (or the default field resolver) it replaced.
	PreviousResolver FieldResolver
}

// FieldResolver resolves a field value. The source is the value resolved by the field's
// enclosing type.
type FieldResolver interface {
	Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)
}

// FieldResolverFunc is an adapter to allow the use of ordinary functions as FieldResolver.
type FieldResolverFunc func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error)

// FieldResolverFunc implements FieldResolver.
var _ FieldResolver = (FieldResolverFunc)(nil)

// Resolve calls f(ctx, source, info).
func (f FieldResolverFunc) Resolve(
	ctx context.Context,
	source interface{},
	info ResolveInfo) (interface{}, error) {
	return f(ctx, source, info)
}

// DefaultFieldResolver reads the named field from the source value. It understands content nodes
// and plain maps and yields nil for everything else.
var DefaultFieldResolver FieldResolver = FieldResolverFunc(
	func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
		switch source := source.(type) {
		case *nodes.Node:
			return source.Field(info.FieldName), nil
		case map[string]interface{}:
			return source[info.FieldName], nil
		}
		return nil, nil
	})

// ArgumentDefinition describes one argument accepted by a field or declared by an extension.
type ArgumentDefinition struct {
	Name string

	// Type of value taken by the argument.
	Type TypeRef

	// DefaultValue is assigned when no value is provided. It is only meaningful when HasDefault
	// is set.
	DefaultValue interface{}
	HasDefault   bool
}

// FieldDefinition describes one field of an object, interface or input record. Its type is a
// possibly-deferred reference resolved at compile time.
type FieldDefinition struct {
	Name string

	Description string

	// Type of value yielded by the field.
	Type TypeRef

	// Args specifies the arguments taken when querying this field.
	Args []ArgumentDefinition

	// Resolver determines the field value during execution; nil means the default field resolver.
	Resolver FieldResolver

	// Deprecation is non-nil when the field is tagged as deprecated.
	Deprecation *Deprecation

	// Extensions carries the field's behavioral metadata.
	Extensions Extensions
}

func (f *FieldDefinition) clone() *FieldDefinition {
	if f == nil {
		return nil
	}
	out := *f
	out.Args = append([]ArgumentDefinition(nil), f.Args...)
	out.Extensions = f.Extensions.clone()
	return &out
}

// TypeRecord is one named entry in the registry. A record is created once per unique name at
// intake time, mutated in place by merge, extension processing and the composition passes, and
// treated as immutable once the registry has been compiled.
//
// Every mutator takes the record's own lock. Composition work is additionally partitioned so
// that no two concurrent tasks mutate the same record.
type TypeRecord struct {
	mu sync.Mutex

	name        string
	kind        Kind
	description string

	interfaces   []string
	fields       map[string]*FieldDefinition
	enumValues   []string
	unionMembers []string

	extensions Extensions
}

// NewTypeRecord creates an empty record of the given kind.
func NewTypeRecord(name string, kind Kind) *TypeRecord {
	return &TypeRecord{
		name:   name,
		kind:   kind,
		fields: map[string]*FieldDefinition{},
	}
}

// Name of the record; unique within a registry.
func (rec *TypeRecord) Name() string {
	return rec.name
}

// Kind of the record.
func (rec *TypeRecord) Kind() Kind {
	return rec.kind
}

// Description documents the record.
func (rec *TypeRecord) Description() string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.description
}

// SetDescription sets the record documentation.
func (rec *TypeRecord) SetDescription(description string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.description = description
}

// Interfaces returns the names of interfaces the record implements, in declaration order.
func (rec *TypeRecord) Interfaces() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.interfaces...)
}

// Implements returns true if the record declares the named interface.
func (rec *TypeRecord) Implements(name string) bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, iface := range rec.interfaces {
		if iface == name {
			return true
		}
	}
	return false
}

// AddInterface appends the named interface unless it is already declared.
func (rec *TypeRecord) AddInterface(name string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	for _, iface := range rec.interfaces {
		if iface == name {
			return
		}
	}
	rec.interfaces = append(rec.interfaces, name)
}

// Field finds the named field, or returns nil.
func (rec *TypeRecord) Field(name string) *FieldDefinition {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.fields[name]
}

// FieldNames returns the record's field names in lexical order.
func (rec *TypeRecord) FieldNames() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	names := make([]string, 0, len(rec.fields))
	for name := range rec.fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumFields returns the number of fields on the record.
func (rec *TypeRecord) NumFields() int {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return len(rec.fields)
}

// AddField puts a field on the record, replacing any previous field of the same name.
func (rec *TypeRecord) AddField(field *FieldDefinition) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.fields[field.Name] = field
}

// RemoveField drops the named field if present.
func (rec *TypeRecord) RemoveField(name string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	delete(rec.fields, name)
}

// EnumValues returns the values of an enum record.
func (rec *TypeRecord) EnumValues() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.enumValues...)
}

// SetEnumValues sets the values of an enum record.
func (rec *TypeRecord) SetEnumValues(values []string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.enumValues = append([]string(nil), values...)
}

// UnionMembers returns the member type names of a union record.
func (rec *TypeRecord) UnionMembers() []string {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]string(nil), rec.unionMembers...)
}

// SetUnionMembers sets the member type names of a union record.
func (rec *TypeRecord) SetUnionMembers(members []string) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.unionMembers = append([]string(nil), members...)
}

// Extensions returns the record's type-level extensions. The returned pointer aliases the
// record; callers mutating it must hold the same single-writer discipline as any other record
// mutation.
func (rec *TypeRecord) Extensions() *Extensions {
	return &rec.extensions
}

// CreatedFrom returns the provenance stamped on the record.
func (rec *TypeRecord) CreatedFrom() Provenance {
	return rec.extensions.CreatedFrom
}

// Plugin returns the owning plugin name, or "" for site-owned records.
func (rec *TypeRecord) Plugin() string {
	return rec.extensions.Plugin
}

// String implements Type.
func (rec *TypeRecord) String() string {
	return rec.name
}

// compiledType implements Type.
func (rec *TypeRecord) compiledType() {}
