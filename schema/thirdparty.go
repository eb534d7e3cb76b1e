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
	"strings"
)

// ForeignSchema is an externally constructed schema imported wholesale. The integrator re-homes
// its root query fields onto this registry's query type, imports every other type tagged with
// thirdPartySchema provenance, and rewrites references to the foreign query type. The foreign
// records are adopted as-is (not copied), so resolver overrides mutate them in place; every
// (re)import therefore first resets prior mutations, or repeated rebuilds would accumulate stale
// fields.
type ForeignSchema struct {
	// QueryTypeName names the foreign schema's own root query type within Types.
	QueryTypeName string

	Types []*TypeRecord
}

func (fs *ForeignSchema) typeByName(name string) *TypeRecord {
	for _, rec := range fs.Types {
		if rec.Name() == name {
			return rec
		}
	}
	return nil
}

// importForeignSchemas runs on every (re)build, after composition and validation.
func (b *Builder) importForeignSchemas() {
	for _, fs := range b.config.ThirdPartySchemas {
		b.importForeignSchema(fs)
	}
}

func (b *Builder) importForeignSchema(fs *ForeignSchema) {
	resetOverrides(fs)

	queryName := b.queryTypeName()
	query := b.reg.Lookup(queryName)

	// Re-home the foreign root query fields.
	if foreignQuery := fs.typeByName(fs.QueryTypeName); foreignQuery != nil && query != nil {
		for _, name := range foreignQuery.FieldNames() {
			field := foreignQuery.Field(name).clone()
			rewriteFieldRefs(field, fs.QueryTypeName, queryName)
			field.Extensions.CreatedFrom = ProvenanceThirdPartySchema
			query.AddField(field)
		}
	}

	for _, rec := range fs.Types {
		if rec.Name() == fs.QueryTypeName || isStandardTypeName(rec.Name()) {
			continue
		}

		for _, name := range rec.FieldNames() {
			field := rec.Field(name)
			field.Type = rewriteNamed(field.Type, fs.QueryTypeName, queryName)
			for i := range field.Args {
				field.Args[i].Type = rewriteNamed(field.Args[i].Type, fs.QueryTypeName, queryName)
			}
		}
		b.stampProvenance(rec, ProvenanceThirdPartySchema, rec.Plugin())

		existing := b.reg.Lookup(rec.Name())
		switch {
		case existing == nil:
			b.reg.register(rec)
			b.reg.MustRetain(rec.Name())
		case existing == rec:
			// Re-import of an adopted record.
		case existing.CreatedFrom() == ProvenanceThirdPartySchema:
			b.reg.register(rec)
		default:
			b.mergeInto(existing, rec, rec.Plugin())
		}
	}
}

// resetOverrides removes fields previously added by the resolver-override mechanism and
// restores fields previously overridden back to their recorded original configuration.
func resetOverrides(fs *ForeignSchema) {
	for _, rec := range fs.Types {
		for _, name := range rec.FieldNames() {
			field := rec.Field(name)
			switch {
			case field.Extensions.CreatedFrom == ProvenanceCreateResolvers:
				rec.RemoveField(name)
			case field.Extensions.OriginalFieldConfig != nil:
				rec.AddField(field.Extensions.OriginalFieldConfig.clone())
			}
		}
	}
}

func rewriteFieldRefs(field *FieldDefinition, from, to string) {
	field.Type = rewriteNamed(field.Type, from, to)
	for i := range field.Args {
		field.Args[i].Type = rewriteNamed(field.Args[i].Type, from, to)
	}
}

// isStandardTypeName filters the built-in scalars and the introspection types out of a foreign
// schema import.
func isStandardTypeName(name string) bool {
	if _, ok := builtInScalarNames[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "__")
}
