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

	"golang.org/x/sync/errgroup"
)

// The field composition pipeline. Passes fan out across registry records; work is partitioned by
// record name so each concurrent task writes only its own record (auxiliary nested types carry
// their owner's name as a prefix and so belong to the same partition). The external hooks may
// perform arbitrary asynchronous work; the pipeline awaits each pass before starting the next
// ordered one and stops on the first hook failure.

// composeAll runs the composition passes over the named records.
func (b *Builder) composeAll(ctx context.Context, names []string) error {
	composable := b.filterComposable(names)

	// Node-capability fields and inference, concurrently per record.
	g, gctx := errgroup.WithContext(ctx)
	for _, name := range composable {
		rec := b.reg.Lookup(name)
		g.Go(func() error {
			b.addNodeFields(rec)
			return b.runInference(gctx, rec)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Child convenience fields. The childOf index is built sequentially (it reads every record),
	// then parents are processed concurrently.
	index := b.buildChildOfIndex()
	g, _ = errgroup.WithContext(ctx)
	for _, name := range composable {
		rec := b.reg.Lookup(name)
		g.Go(func() error {
			b.addImplicitChildFields(rec)
			b.addDeclaredChildFields(rec, index)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Searchable/sortable classification. Inference may have added auxiliary records under the
	// composed names; pick them up too.
	classify := b.withDerivedRecords(composable)
	g, _ = errgroup.WithContext(ctx)
	for _, name := range classify {
		rec := b.reg.Lookup(name)
		g.Go(func() error {
			b.classifyFields(rec)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Root query registration writes only the query record; run it sequentially in name order
	// for deterministic output.
	sorted := append([]string(nil), composable...)
	sort.Strings(sorted)
	for _, name := range sorted {
		b.registerRootFields(b.reg.Lookup(name))
	}
	return nil
}

// filterComposable keeps object and interface records, excluding the root query type.
func (b *Builder) filterComposable(names []string) []string {
	var out []string
	for _, name := range names {
		if name == b.queryTypeName() {
			continue
		}
		rec := b.reg.Lookup(name)
		if rec == nil {
			continue
		}
		switch rec.Kind() {
		case Object, Interface:
			out = append(out, name)
		}
	}
	return out
}

// withDerivedRecords extends names with derived auxiliary records owned by them (records whose
// name is prefixed by a composed record's name).
func (b *Builder) withDerivedRecords(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := append([]string(nil), names...)
	for _, name := range names {
		seen[name] = struct{}{}
	}
	for _, name := range b.reg.TypeNames() {
		if _, ok := seen[name]; ok {
			continue
		}
		rec := b.reg.Lookup(name)
		if rec.CreatedFrom() != ProvenanceDerived || rec.Kind() != Object {
			continue
		}
		for _, owner := range names {
			if len(name) > len(owner) && name[:len(owner)] == owner {
				out = append(out, name)
				break
			}
		}
	}
	return out
}

// isNodeType returns true for object records carrying the node capability.
func (b *Builder) isNodeType(rec *TypeRecord) bool {
	return rec.Kind() == Object && rec.Implements(NodeCapabilityName)
}

// isQueryableInterface returns true for interfaces carrying the nodeInterface extension.
func isQueryableInterface(rec *TypeRecord) bool {
	return rec.Kind() == Interface && rec.Extensions().NodeInterface
}

// classifyFields stamps every field with searchable/sortable flags and a needsResolve flag.
func (b *Builder) classifyFields(rec *TypeRecord) {
	for _, name := range rec.FieldNames() {
		field := rec.Field(name)
		ext := &field.Extensions

		_, hasFormatter := ext.UserArgs("dateformat")
		_, proxies := ext.UserArgs("proxy")

		switch {
		case field.Resolver != nil && hasFormatter:
			ext.Searchable = true
			ext.Sortable = true
			ext.NeedsResolve = proxies

		case field.Resolver != nil && len(field.Args) > 0:
			ext.Searchable = true
			ext.Sortable = true
			ext.NeedsResolve = true
			b.rep.Warn(Report{
				Kind: KindDeprecation,
				Message: "fields with arguments are included in filter and sort inputs " +
					"through a deprecated code path and will stop being searchable",
				TypeName:  rec.Name(),
				FieldName: name,
				Plugin:    rec.Plugin(),
			})

		case field.Resolver != nil:
			ext.Searchable = true
			ext.Sortable = true
			ext.NeedsResolve = true

		default:
			ext.Searchable = true
			ext.Sortable = true
			ext.NeedsResolve = false
		}
	}
}
