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

// mergeInto combines an incoming definition with the existing record of the same name, in place.
// Merging never fails: an ownership mismatch degrades to a warning naming both plugins and the
// merge proceeds regardless.
//
// Field rule: an incoming field fully replaces the type, arguments and resolver of an existing
// field of the same name (a shallow override); fields present on only one side are kept.
// Interface lists are unioned; extension maps are merged with the incoming side winning on
// collision. The caller restamps provenance and ownership from the incoming definition
// afterwards.
func (b *Builder) mergeInto(existing, incoming *TypeRecord, plugin string) {
	safe := len(plugin) == 0 ||
		plugin == b.config.DefaultOwner ||
		plugin == existing.Plugin()
	if !safe {
		existingOwner := existing.Plugin()
		if len(existingOwner) == 0 {
			existingOwner = "the site"
		}
		b.rep.Warn(Report{
			Kind: KindUnsafeMerge,
			Message: fmt.Sprintf(
				"plugin %s redefined type %s owned by %s; the definitions were merged",
				plugin, existing.Name(), existingOwner),
			TypeName: existing.Name(),
			Plugin:   plugin,
		})
	}

	for _, name := range incoming.FieldNames() {
		in := incoming.Field(name)
		if ex := existing.Field(name); ex != nil {
			ex.Type = in.Type
			ex.Args = append([]ArgumentDefinition(nil), in.Args...)
			ex.Resolver = in.Resolver
			ex.Extensions.merge(&in.Extensions)
			if in.Deprecation.Defined() {
				ex.Deprecation = in.Deprecation
			}
		} else {
			existing.AddField(in.clone())
		}
	}

	for _, iface := range incoming.Interfaces() {
		existing.AddInterface(iface)
	}

	if values := incoming.EnumValues(); len(values) > 0 {
		existing.SetEnumValues(values)
	}
	if members := incoming.UnionMembers(); len(members) > 0 {
		existing.SetUnionMembers(members)
	}
	if desc := incoming.Description(); len(desc) > 0 {
		existing.SetDescription(desc)
	}

	existing.Extensions().merge(incoming.Extensions())
}
