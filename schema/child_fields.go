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

	"github.com/toanlv-dev/gatsby/nodes"
)

// Convenience child-relationship fields. The implicit path derives them from the observed
// distribution of children in the node store; the explicit path derives them from childOf
// declarations.

type childRelation struct {
	child string
	many  bool
}

type childOfIndex struct {
	byParent map[string][]childRelation
	byMime   map[string][]childRelation
}

// buildChildOfIndex scans the registry for childOf declarations and indexes them by declared
// parent type name and by declared mime type. A childOf on an interface that is not marked as a
// queryable node interface is an error and that child's relations are skipped; the build
// continues.
func (b *Builder) buildChildOfIndex() childOfIndex {
	index := childOfIndex{
		byParent: map[string][]childRelation{},
		byMime:   map[string][]childRelation{},
	}
	for _, name := range b.reg.TypeNames() {
		rec := b.reg.Lookup(name)
		spec := rec.Extensions().ChildOf
		if spec == nil {
			continue
		}
		if rec.Kind() != Object && rec.Kind() != Interface {
			b.rep.Error(Report{
				Kind:     KindChildOf,
				Message:  fmt.Sprintf("childOf cannot be declared on %s types", rec.Kind()),
				TypeName: name,
				Plugin:   rec.Plugin(),
			})
			continue
		}
		if rec.Kind() == Interface && !rec.Extensions().NodeInterface {
			b.rep.Error(Report{
				Kind: KindChildOf,
				Message: "childOf can only be declared on interfaces that are also marked " +
					"with nodeInterface",
				TypeName: name,
				Plugin:   rec.Plugin(),
			})
			continue
		}
		rel := childRelation{child: name, many: spec.Many}
		for _, parent := range spec.Types {
			index.byParent[parent] = append(index.byParent[parent], rel)
		}
		for _, mimeType := range spec.MimeTypes {
			index.byMime[mimeType] = append(index.byMime[mimeType], rel)
		}
	}
	return index
}

// addImplicitChildFields derives child convenience fields for one parent type from the children
// its nodes actually have. The singular/plural decision is made per child type from the full
// distribution across all parent nodes: the field is singular only when no parent node ever had
// more than one child of that type.
func (b *Builder) addImplicitChildFields(parent *TypeRecord) {
	if b.config.Store == nil || !b.isNodeType(parent) {
		return
	}

	maxPerParent := map[string]int{}
	for _, parentNode := range b.config.Store.NodesOfType(parent.Name()) {
		for childType, children := range nodes.ChildrenByType(b.config.Store, parentNode) {
			if len(children) > maxPerParent[childType] {
				maxPerParent[childType] = len(children)
			}
		}
	}
	if len(maxPerParent) == 0 {
		return
	}

	childTypes := make([]string, 0, len(maxPerParent))
	for childType := range maxPerParent {
		childTypes = append(childTypes, childType)
	}
	sort.Strings(childTypes)

	inferOptOut := parent.Extensions().Infer != nil && !*parent.Extensions().Infer
	for _, childType := range childTypes {
		childRec := b.reg.Lookup(childType)
		if childRec == nil {
			// Children of types never registered cannot be addressed in the schema; a field
			// referencing them would not survive compilation.
			continue
		}
		if childRec.Extensions().ChildOf != nil {
			// The explicit path owns this relation.
			continue
		}

		many := maxPerParent[childType] > 1
		fieldName := childFieldName(childType, many)
		if parent.Field(fieldName) != nil {
			continue
		}

		field := b.newChildField(childType, many)
		if inferOptOut {
			b.rep.Warn(Report{
				Kind: KindDeprecation,
				Message: fmt.Sprintf(
					"the %s field was added although %s opts out of inference; declare the "+
						"relation with childOf on %s to keep it",
					fieldName, parent.Name(), childType),
				TypeName:  parent.Name(),
				FieldName: fieldName,
			})
			field.Deprecation = &Deprecation{
				Reason: fmt.Sprintf("declare the relation with childOf on %s", childType),
			}
		}
		parent.AddField(field)
	}
}

// addDeclaredChildFields adds the convenience fields for childOf declarations targeting this
// parent, directly by type name or via the parent's mimeTypes extension.
func (b *Builder) addDeclaredChildFields(parent *TypeRecord, index childOfIndex) {
	if parent.Kind() != Object && parent.Kind() != Interface {
		return
	}

	relations := append([]childRelation(nil), index.byParent[parent.Name()]...)
	for _, mimeType := range parent.Extensions().MimeTypes {
		relations = append(relations, index.byMime[mimeType]...)
	}
	if len(relations) == 0 {
		return
	}

	seen := map[string]struct{}{}
	sort.Slice(relations, func(i, j int) bool { return relations[i].child < relations[j].child })
	for _, rel := range relations {
		if _, dup := seen[rel.child]; dup {
			continue
		}
		seen[rel.child] = struct{}{}
		parent.AddField(b.newChildField(rel.child, rel.many))
	}
}

func childFieldName(childType string, many bool) string {
	if many {
		return "children" + childType
	}
	return "child" + childType
}

// newChildField builds the singular or plural convenience field for a child type.
func (b *Builder) newChildField(childType string, many bool) *FieldDefinition {
	store := b.config.Store
	field := &FieldDefinition{
		Name: childFieldName(childType, many),
		Resolver: FieldResolverFunc(
			func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
				parentNode, ok := source.(*nodes.Node)
				if !ok || store == nil {
					if many {
						return []*nodes.Node{}, nil
					}
					return nil, nil
				}
				matched := []*nodes.Node{}
				for _, id := range parentNode.Children {
					if child := store.Node(id); child != nil && child.Internal.Type == childType {
						matched = append(matched, child)
					}
				}
				if many {
					return matched, nil
				}
				if len(matched) == 0 {
					return nil, nil
				}
				return matched[0], nil
			}),
	}
	if many {
		field.Type = NonNullOf(ListOf(NonNullOf(NamedRef(childType))))
	} else {
		field.Type = NamedRef(childType)
	}
	field.Extensions.CreatedFrom = ProvenanceDerived
	return field
}
