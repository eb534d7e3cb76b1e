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
	"regexp"
	"sort"
	"strings"
)

// NodeCapabilityName is the reserved name of the marker interface designating a type as an
// addressable, identity-bearing content record.
const NodeCapabilityName = "Node"

// Suffixes reserved for the auto-generated filter and sort input types.
const (
	filterInputSuffix = "FilterInput"
	sortInputSuffix   = "SortInput"
)

var builtInScalarNames = map[string]struct{}{
	"String":  {},
	"Int":     {},
	"Float":   {},
	"Boolean": {},
	"ID":      {},
	"Date":    {},
	"JSON":    {},
}

var nameRegexp = regexp.MustCompile(`^[_A-Za-z][_0-9A-Za-z]*$`)

// validateTypeName enforces the reserved-name rules at intake time, before any registration.
// Every violation is fatal to the whole build and names the offending type.
func validateTypeName(name string) error {
	if name == NodeCapabilityName {
		return fmt.Errorf("the type name %q is reserved for the node capability interface", name)
	}
	for _, suffix := range []string{filterInputSuffix, sortInputSuffix} {
		if strings.HasSuffix(name, suffix) && name != suffix {
			return fmt.Errorf(
				"the type name %q uses the suffix %q which is reserved for auto-generated input types",
				name, suffix)
		}
	}
	if _, ok := builtInScalarNames[name]; ok {
		return fmt.Errorf("the type name %q collides with a built-in scalar", name)
	}
	if !nameRegexp.MatchString(name) {
		return fmt.Errorf("the type name %q is not a valid identifier", name)
	}
	return nil
}

// validateInterfaceCapabilities runs once after full composition: every object type implementing
// a queryable interface must also carry the node capability. The scan collects all violations
// across the whole registry and reports them together as one fatal error.
func (b *Builder) validateInterfaceCapabilities() error {
	queryable := map[string]struct{}{}
	for _, name := range b.reg.TypeNames() {
		rec := b.reg.Lookup(name)
		if rec.Kind() == Interface && rec.Extensions().NodeInterface {
			queryable[name] = struct{}{}
		}
	}
	if len(queryable) == 0 {
		return nil
	}

	var violations []string
	for _, name := range b.reg.TypeNames() {
		rec := b.reg.Lookup(name)
		if rec.Kind() != Object {
			continue
		}
		for _, iface := range rec.Interfaces() {
			if _, ok := queryable[iface]; !ok {
				continue
			}
			if !rec.Implements(NodeCapabilityName) {
				violations = append(violations, fmt.Sprintf(
					"type %s implements the queryable interface %s but does not implement %s",
					name, iface, NodeCapabilityName))
			}
		}
	}
	if len(violations) == 0 {
		return nil
	}
	sort.Strings(violations)
	return fmt.Errorf("invalid schema:\n  %s", strings.Join(violations, "\n  "))
}
