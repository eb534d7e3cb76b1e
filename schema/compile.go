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
	"sort"
	"strings"
)

// Type is a compiled type: a registry record, or a record wrapped in list/non-null modifiers.
type Type interface {
	fmt.Stringer

	// compiledType marks the closed set of compiled types.
	compiledType()
}

// ListType wraps a compiled type in a list modifier.
type ListType struct {
	OfType Type
}

func (t ListType) String() string { return "[" + t.OfType.String() + "]" }
func (ListType) compiledType()    {}

// NonNullType wraps a compiled type in a non-null modifier.
type NonNullType struct {
	OfType Type
}

func (t NonNullType) String() string { return t.OfType.String() + "!" }
func (NonNullType) compiledType()    {}

// Schema is the compiled, queryable result of a build. Its records are not mutated further
// until the owning Builder runs another build.
type Schema struct {
	types map[string]*TypeRecord
	query *TypeRecord
}

// QueryType returns the root query type.
func (s *Schema) QueryType() *TypeRecord {
	return s.query
}

// Type finds the named type, or returns nil.
func (s *Schema) Type(name string) *TypeRecord {
	return s.types[name]
}

// TypeNames returns all named types in lexical order.
func (s *Schema) TypeNames() []string {
	names := make([]string, 0, len(s.types))
	for name := range s.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ResolveRef resolves a symbolic reference against the compiled schema.
func (s *Schema) ResolveRef(ref TypeRef) (Type, error) {
	ref = ref.forced()
	switch ref.kind {
	case refNamed:
		rec := s.types[ref.name]
		if rec == nil {
			return nil, fmt.Errorf("unknown type %s", ref.name)
		}
		return rec, nil
	case refList:
		inner, err := s.ResolveRef(*ref.inner)
		if err != nil {
			return nil, err
		}
		return ListType{OfType: inner}, nil
	case refNonNull:
		inner, err := s.ResolveRef(*ref.inner)
		if err != nil {
			return nil, err
		}
		return NonNullType{OfType: inner}, nil
	}
	return nil, fmt.Errorf("cannot resolve the zero type reference")
}

// compile resolves every symbolic reference collected during intake and composition against the
// registry and freezes the result. A reference that never resolves fails compilation here, not
// at intake; all resolution failures are collected and reported together.
func (b *Builder) compile() (*Schema, error) {
	var problems []string
	problem := func(format string, args ...interface{}) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	types := map[string]*TypeRecord{}
	for _, name := range b.reg.TypeNames() {
		rec := b.reg.Lookup(name)
		types[name] = rec

		for _, iface := range rec.Interfaces() {
			target := b.reg.Lookup(iface)
			switch {
			case target == nil:
				problem("type %s implements unknown interface %s", name, iface)
			case target.Kind() != Interface:
				problem("type %s implements %s which is a %s type, not an interface",
					name, iface, target.Kind())
			}
		}

		for _, member := range rec.UnionMembers() {
			target := b.reg.Lookup(member)
			switch {
			case target == nil:
				problem("union %s includes unknown type %s", name, member)
			case target.Kind() != Object:
				problem("union %s includes %s which is a %s type, not an object",
					name, member, target.Kind())
			}
		}

		for _, fieldName := range rec.FieldNames() {
			field := rec.Field(fieldName)
			b.checkRefResolves(field.Type, name, fieldName, problem)
			for _, arg := range field.Args {
				b.checkRefResolves(arg.Type, name, fieldName+"("+arg.Name+")", problem)
			}
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, fmt.Errorf("schema failed to compile:\n  %s", strings.Join(problems, "\n  "))
	}

	return &Schema{
		types: types,
		query: b.reg.Lookup(b.queryTypeName()),
	}, nil
}

func (b *Builder) checkRefResolves(
	ref TypeRef, typeName, fieldName string, problem func(string, ...interface{})) {
	named := ref.NamedTypeName()
	if len(named) == 0 {
		problem("type %s, field %s has no type", typeName, fieldName)
		return
	}
	if b.reg.Lookup(named) == nil {
		problem("type %s, field %s references unknown type %s", typeName, fieldName, named)
	}
}
