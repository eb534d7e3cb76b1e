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
	"fmt"
	"sort"
)

// The resolver-override extension point. The hook is invoked once per build with the schema
// compiled so far; it may call ApplyResolvers any number of times, synchronously or after
// awaiting other work.

// FieldOverride overrides parts of one field: any subset of type, arguments and resolver.
// Zero-valued parts leave the existing field part untouched.
type FieldOverride struct {
	// Type is a textual type reference for the field's new return type, or "" to keep the
	// existing one.
	Type string

	Args     []ArgumentDefinition
	Resolver FieldResolver
}

// ApplyResolversOptions tunes one ApplyResolvers call.
type ApplyResolversOptions struct {
	// IgnoreNonexistentTypes suppresses the warning for override targets that name an unknown
	// type.
	IgnoreNonexistentTypes bool
}

// ResolverOverrideContext is handed to the resolver-override hook.
type ResolverOverrideContext struct {
	builder *Builder

	// Intermediate is a snapshot of the schema compiled before overrides.
	Intermediate *Schema
}

// ResolverOverrideHook lets external code attach or override field behavior late in the build.
type ResolverOverrideHook func(ctx context.Context, overrides *ResolverOverrideContext) error

// ApplyResolvers applies a mapping of type name to field name to field override.
//
// For an existing target field the override is accepted only if it gives no new return type, or
// the given return type matches the existing one modulo nullability wrapping, or the target
// type was imported from a third-party schema (foreign printed type names do not always
// round-trip, so they get relaxed checking); otherwise the override is rejected with a warning
// and the field is left untouched. An accepted resolver is wrapped so its invocation can reach
// the prior resolver. Overrides for fields not previously present are accepted unconditionally
// and tagged so a rebuild can strip them.
func (roc *ResolverOverrideContext) ApplyResolvers(
	overrides map[string]map[string]FieldOverride, opts *ApplyResolversOptions) {
	b := roc.builder

	typeNames := make([]string, 0, len(overrides))
	for name := range overrides {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)

	for _, typeName := range typeNames {
		rec := b.reg.Lookup(typeName)
		if rec == nil {
			if opts == nil || !opts.IgnoreNonexistentTypes {
				b.rep.Warn(Report{
					Kind:     KindResolverOverride,
					Message:  fmt.Sprintf("resolvers were provided for unknown type %s", typeName),
					TypeName: typeName,
				})
			}
			continue
		}

		fieldOverrides := overrides[typeName]
		fieldNames := make([]string, 0, len(fieldOverrides))
		for name := range fieldOverrides {
			fieldNames = append(fieldNames, name)
		}
		sort.Strings(fieldNames)

		for _, fieldName := range fieldNames {
			b.applyFieldOverride(rec, fieldName, fieldOverrides[fieldName])
		}
	}
}

func (b *Builder) applyFieldOverride(rec *TypeRecord, fieldName string, ov FieldOverride) {
	var overrideType TypeRef
	if len(ov.Type) > 0 {
		parsed, err := ParseTypeRef(ov.Type)
		if err != nil {
			b.rep.Warn(Report{
				Kind:      KindResolverOverride,
				Message:   err.Error(),
				TypeName:  rec.Name(),
				FieldName: fieldName,
			})
			return
		}
		overrideType = parsed
	}

	existing := rec.Field(fieldName)
	if existing == nil {
		field := &FieldDefinition{
			Name:     fieldName,
			Type:     overrideType,
			Args:     append([]ArgumentDefinition(nil), ov.Args...),
			Resolver: ov.Resolver,
		}
		if field.Type.IsZero() {
			field.Type = NamedRef("JSON")
		}
		if field.Resolver != nil {
			field.Resolver = wrapResolver(field.Resolver, DefaultFieldResolver)
			field.Extensions.NeedsResolve = true
		}
		field.Extensions.CreatedFrom = ProvenanceCreateResolvers
		rec.AddField(field)
		return
	}

	foreign := rec.CreatedFrom() == ProvenanceThirdPartySchema
	compatible := overrideType.IsZero() ||
		refsLooselyEqual(overrideType, existing.Type) ||
		foreign
	if !compatible {
		b.rep.Warn(Report{
			Kind: KindResolverOverride,
			Message: fmt.Sprintf(
				"the override declares type %s but the field is of type %s; the override was skipped",
				overrideType, existing.Type),
			TypeName:  rec.Name(),
			FieldName: fieldName,
		})
		return
	}

	// Snapshot the pre-override configuration so the next rebuild restores it before overrides
	// are reapplied; for third-party fields the integrator additionally relies on it.
	if existing.Extensions.OriginalFieldConfig == nil {
		existing.Extensions.OriginalFieldConfig = existing.clone()
	}

	if !overrideType.IsZero() {
		existing.Type = overrideType
	}
	if ov.Args != nil {
		existing.Args = append([]ArgumentDefinition(nil), ov.Args...)
	}
	if ov.Resolver != nil {
		prev := existing.Resolver
		if prev == nil {
			prev = DefaultFieldResolver
		}
		existing.Resolver = wrapResolver(ov.Resolver, prev)
		existing.Extensions.NeedsResolve = true
	}
}

// wrapResolver arranges for next to see the resolver it replaced through
// ResolveInfo.PreviousResolver.
func wrapResolver(next, prev FieldResolver) FieldResolver {
	return FieldResolverFunc(
		func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			info.PreviousResolver = prev
			return next.Resolve(ctx, source, info)
		})
}

// resetResolverOverrides undoes the previous build's overrides across the whole registry:
// fields added by the override mechanism are removed and overridden fields are restored from
// their snapshots. It runs before the hook is (re)invoked so repeated builds and targeted
// rebuilds never stack overrides.
func (b *Builder) resetResolverOverrides() {
	for _, name := range b.reg.TypeNames() {
		rec := b.reg.Lookup(name)
		for _, fieldName := range rec.FieldNames() {
			field := rec.Field(fieldName)
			switch {
			case field.Extensions.CreatedFrom == ProvenanceCreateResolvers:
				rec.RemoveField(fieldName)
			case field.Extensions.OriginalFieldConfig != nil:
				rec.AddField(field.Extensions.OriginalFieldConfig.clone())
			}
		}
	}
}
