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
	"fmt"
)

// TypeDescriptor is a tagged type-builder descriptor: a programmatic way for plugins to
// contribute a type. The concrete descriptors are ObjectDescriptor, InterfaceDescriptor,
// UnionDescriptor, InputDescriptor, EnumDescriptor and ScalarDescriptor. Name-based
// cross-references (implemented interfaces, field types) stay symbolic until compile time, so
// forward references to not-yet-registered types succeed.
type TypeDescriptor interface {
	// DescriptorName returns the name of the described type.
	DescriptorName() string

	typeDescriptor()
}

// FieldDescriptor describes one field in a descriptor.
type FieldDescriptor struct {
	Description string

	// Type is a textual type reference. TypeRef may be set instead, for computed or deferred
	// references; when both are set TypeRef wins.
	Type    string
	TypeRef TypeRef

	Args     []ArgumentDefinition
	Resolver FieldResolver

	Deprecation *Deprecation

	// Extensions holds user extensions keyed by extension name.
	Extensions map[string]map[string]interface{}
}

// ObjectDescriptor describes an object type.
type ObjectDescriptor struct {
	Name        string
	Description string
	Interfaces  []string
	Fields      map[string]FieldDescriptor

	// Infer opts the type in or out of field inference; nil means the site default.
	Infer *bool

	// AddDefaultResolvers controls default resolvers on inferred fields.
	AddDefaultResolvers *bool

	MimeTypes []string
	ChildOf   *ChildOfSpec
}

// InterfaceDescriptor describes an interface type.
type InterfaceDescriptor struct {
	Name        string
	Description string
	Fields      map[string]FieldDescriptor

	// NodeInterface marks the interface as queryable.
	NodeInterface bool

	ChildOf *ChildOfSpec
}

// UnionDescriptor describes a union type.
type UnionDescriptor struct {
	Name        string
	Description string
	Members     []string
}

// InputDescriptor describes an input object type.
type InputDescriptor struct {
	Name        string
	Description string
	Fields      map[string]FieldDescriptor
}

// EnumDescriptor describes an enum type.
type EnumDescriptor struct {
	Name        string
	Description string
	Values      []string
}

// ScalarDescriptor describes a custom scalar type.
type ScalarDescriptor struct {
	Name        string
	Description string
}

func (d ObjectDescriptor) DescriptorName() string    { return d.Name }
func (ObjectDescriptor) typeDescriptor()             {}
func (d InterfaceDescriptor) DescriptorName() string { return d.Name }
func (InterfaceDescriptor) typeDescriptor()          {}
func (d UnionDescriptor) DescriptorName() string     { return d.Name }
func (UnionDescriptor) typeDescriptor()              {}
func (d InputDescriptor) DescriptorName() string     { return d.Name }
func (InputDescriptor) typeDescriptor()              {}
func (d EnumDescriptor) DescriptorName() string      { return d.Name }
func (EnumDescriptor) typeDescriptor()               {}
func (d ScalarDescriptor) DescriptorName() string    { return d.Name }
func (ScalarDescriptor) typeDescriptor()             {}

// convertDescriptor turns a descriptor into a registry record.
func convertDescriptor(d TypeDescriptor) (*TypeRecord, error) {
	switch d := d.(type) {
	case ObjectDescriptor:
		rec := NewTypeRecord(d.Name, Object)
		rec.SetDescription(d.Description)
		for _, iface := range d.Interfaces {
			rec.AddInterface(iface)
		}
		ext := rec.Extensions()
		ext.Infer = d.Infer
		ext.AddDefaultResolvers = d.AddDefaultResolvers
		ext.MimeTypes = append([]string(nil), d.MimeTypes...)
		ext.ChildOf = d.ChildOf.clone()
		return rec, addDescriptorFields(rec, d.Fields)

	case InterfaceDescriptor:
		rec := NewTypeRecord(d.Name, Interface)
		rec.SetDescription(d.Description)
		if err := addDescriptorFields(rec, d.Fields); err != nil {
			return nil, err
		}
		ext := rec.Extensions()
		ext.ChildOf = d.ChildOf.clone()
		if d.NodeInterface {
			// Same contract as the nodeInterface directive.
			if err := checkNodeInterface(rec); err != nil {
				return nil, err
			}
			ext.NodeInterface = true
		}
		return rec, nil

	case UnionDescriptor:
		rec := NewTypeRecord(d.Name, Union)
		rec.SetDescription(d.Description)
		rec.SetUnionMembers(d.Members)
		return rec, nil

	case InputDescriptor:
		rec := NewTypeRecord(d.Name, Input)
		rec.SetDescription(d.Description)
		return rec, addDescriptorFields(rec, d.Fields)

	case EnumDescriptor:
		rec := NewTypeRecord(d.Name, Enum)
		rec.SetDescription(d.Description)
		rec.SetEnumValues(d.Values)
		return rec, nil

	case ScalarDescriptor:
		rec := NewTypeRecord(d.Name, Scalar)
		rec.SetDescription(d.Description)
		return rec, nil
	}
	return nil, fmt.Errorf("unknown type descriptor %T", d)
}

func addDescriptorFields(rec *TypeRecord, fields map[string]FieldDescriptor) error {
	for name, fd := range fields {
		fieldType := fd.TypeRef
		if fieldType.IsZero() {
			parsed, err := ParseTypeRef(fd.Type)
			if err != nil {
				return fmt.Errorf("type %s, field %s: %s", rec.Name(), name, err)
			}
			fieldType = parsed
		}
		field := &FieldDefinition{
			Name:        name,
			Description: fd.Description,
			Type:        fieldType,
			Args:        append([]ArgumentDefinition(nil), fd.Args...),
			Resolver:    fd.Resolver,
			Deprecation: fd.Deprecation,
		}
		for extName, args := range fd.Extensions {
			field.Extensions.SetUser(extName, args)
		}
		rec.AddField(field)
	}
	return nil
}
