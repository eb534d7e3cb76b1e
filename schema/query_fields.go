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

	"github.com/toanlv-dev/gatsby/internal/util"
)

// Root query field registration: every node-capable object type and every queryable interface T
// gets a singular field (camel-cased T, filter argument, finds exactly one matching node) and a
// plural field (camel-cased "all T", filter/sort/skip/limit arguments, finds a paginated set,
// result type non-null) on the root query type.

func (b *Builder) registerRootFields(rec *TypeRecord) {
	if rec == nil || (!b.isNodeType(rec) && !isQueryableInterface(rec)) {
		return
	}
	query := b.reg.Lookup(b.queryTypeName())
	if query == nil {
		return
	}

	filterInput := b.ensureFilterInput(rec, map[string]struct{}{})
	sortInput := b.ensureSortInput(rec)
	runner := b.runner()
	typeName := rec.Name()

	singularName := util.CamelCase(typeName)
	singular := &FieldDefinition{
		Name: singularName,
		Type: NamedRef(typeName),
		Args: []ArgumentDefinition{
			{Name: "filter", Type: NamedRef(filterInput.Name())},
		},
		Resolver: FieldResolverFunc(
			func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
				if runner == nil {
					return nil, nil
				}
				matched, err := runner.RunQuery(ctx, Query{
					Type:   typeName,
					Filter: mapArg(info.Args, "filter"),
					Limit:  1,
				})
				if err != nil || len(matched) == 0 {
					return nil, err
				}
				return matched[0], nil
			}),
	}
	singular.Extensions.CreatedFrom = ProvenanceDerived
	query.AddField(singular)

	pluralName := util.CamelCase("all", typeName)
	plural := &FieldDefinition{
		Name: pluralName,
		Type: NonNullOf(ListOf(NonNullOf(NamedRef(typeName)))),
		Args: []ArgumentDefinition{
			{Name: "filter", Type: NamedRef(filterInput.Name())},
			{Name: "sort", Type: NamedRef(sortInput.Name())},
			{Name: "skip", Type: NamedRef("Int")},
			{Name: "limit", Type: NamedRef("Int")},
		},
		Resolver: FieldResolverFunc(
			func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
				if runner == nil {
					return nil, nil
				}
				return runner.RunQuery(ctx, Query{
					Type:   typeName,
					Filter: mapArg(info.Args, "filter"),
					Sort:   sortArg(info.Args),
					Skip:   intArg(info.Args, "skip"),
					Limit:  intArg(info.Args, "limit"),
				})
			}),
	}
	plural.Extensions.CreatedFrom = ProvenanceDerived
	query.AddField(plural)

	b.queryFields[typeName] = []string{singularName, pluralName}
}

// ensureFilterInput materializes the generated filter input record for a type. Searchable leaf
// fields map to their own named type; nested object fields map to that type's filter input,
// recursively. The guard set breaks reference cycles.
func (b *Builder) ensureFilterInput(rec *TypeRecord, building map[string]struct{}) *TypeRecord {
	name := rec.Name() + filterInputSuffix
	if existing := b.reg.Lookup(name); existing != nil {
		return existing
	}
	if _, cycle := building[rec.Name()]; cycle {
		return nil
	}
	building[rec.Name()] = struct{}{}

	input := NewTypeRecord(name, Input)
	input.Extensions().CreatedFrom = ProvenanceDerived
	b.reg.register(input)

	for _, fieldName := range rec.FieldNames() {
		field := rec.Field(fieldName)
		if !field.Extensions.Searchable {
			continue
		}
		named := field.Type.NamedTypeName()
		target := b.reg.Lookup(named)

		var inputType TypeRef
		switch {
		case target == nil:
			if _, builtin := builtInScalarNames[named]; !builtin {
				continue
			}
			inputType = NamedRef(named)
		case target.Kind() == Scalar || target.Kind() == Enum:
			inputType = NamedRef(named)
		case target.Kind() == Object:
			nested := b.ensureFilterInput(target, building)
			if nested == nil {
				continue
			}
			inputType = NamedRef(nested.Name())
		default:
			continue
		}

		inputField := &FieldDefinition{Name: fieldName, Type: inputType}
		inputField.Extensions.CreatedFrom = ProvenanceDerived
		input.AddField(inputField)
	}
	return input
}

// ensureSortInput materializes the generated sort input record for a type.
func (b *Builder) ensureSortInput(rec *TypeRecord) *TypeRecord {
	name := rec.Name() + sortInputSuffix
	if existing := b.reg.Lookup(name); existing != nil {
		return existing
	}
	input := NewTypeRecord(name, Input)
	input.Extensions().CreatedFrom = ProvenanceDerived

	fields := &FieldDefinition{Name: "fields", Type: ListOf(NonNullOf(NamedRef("String")))}
	fields.Extensions.CreatedFrom = ProvenanceDerived
	input.AddField(fields)

	order := &FieldDefinition{Name: "order", Type: ListOf(NonNullOf(NamedRef(sortOrderEnumName)))}
	order.Extensions.CreatedFrom = ProvenanceDerived
	input.AddField(order)

	b.reg.register(input)
	return input
}

func mapArg(args map[string]interface{}, name string) map[string]interface{} {
	m, _ := args[name].(map[string]interface{})
	return m
}

func intArg(args map[string]interface{}, name string) int {
	switch v := args[name].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

func sortArg(args map[string]interface{}) *SortSpec {
	m := mapArg(args, "sort")
	if m == nil {
		return nil
	}
	spec := &SortSpec{}
	switch fields := m["fields"].(type) {
	case []string:
		spec.Fields = fields
	case []interface{}:
		for _, f := range fields {
			if s, ok := f.(string); ok {
				spec.Fields = append(spec.Fields, s)
			}
		}
	}
	switch order := m["order"].(type) {
	case []SortOrder:
		spec.Order = order
	case []interface{}:
		for _, o := range order {
			if s, ok := o.(string); ok {
				spec.Order = append(spec.Order, SortOrder(s))
			}
		}
	}
	return spec
}
