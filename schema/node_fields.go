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
	"strings"

	"github.com/toanlv-dev/gatsby/internal/util"
	"github.com/toanlv-dev/gatsby/nodes"
)

// addNodeFields injects the standard identity and internal-metadata fields every addressable
// content node must expose. Fields the type already declares are left alone.
func (b *Builder) addNodeFields(rec *TypeRecord) {
	if !b.isNodeType(rec) && !isQueryableInterface(rec) {
		return
	}

	inject := func(name string, fieldType TypeRef, resolver FieldResolver) {
		if rec.Field(name) != nil {
			return
		}
		field := &FieldDefinition{
			Name:     name,
			Type:     fieldType,
			Resolver: resolver,
		}
		field.Extensions.CreatedFrom = ProvenanceDerived
		rec.AddField(field)
	}

	store := b.config.Store
	inject("id", NonNullOf(NamedRef("ID")), FieldResolverFunc(
		func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			if node, ok := source.(*nodes.Node); ok {
				return node.ID, nil
			}
			return nil, nil
		}))
	inject("parent", NamedRef(NodeCapabilityName), FieldResolverFunc(
		func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			node, ok := source.(*nodes.Node)
			if !ok || len(node.Parent) == 0 || store == nil {
				return nil, nil
			}
			return store.Node(node.Parent), nil
		}))
	inject("children", NonNullOf(ListOf(NonNullOf(NamedRef(NodeCapabilityName)))), FieldResolverFunc(
		func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			node, ok := source.(*nodes.Node)
			if !ok || store == nil {
				return []*nodes.Node{}, nil
			}
			children := make([]*nodes.Node, 0, len(node.Children))
			for _, id := range node.Children {
				if child := store.Node(id); child != nil {
					children = append(children, child)
				}
			}
			return children, nil
		}))
	inject("internal", NonNullOf(NamedRef("Internal")), FieldResolverFunc(
		func(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
			if node, ok := source.(*nodes.Node); ok {
				return node.Internal, nil
			}
			return nil, nil
		}))
}

// InferFieldsRequest is handed to the node-field-extension hook.
type InferFieldsRequest struct {
	// TypeName of the record being composed.
	TypeName string

	// Nodes are the content records of that type.
	Nodes []*nodes.Node
}

// InferFieldsHook derives extra fields from raw content records. The returned map goes from a
// possibly dotted, nested field path to a textual type reference; an absent or empty result
// means no extra fields. The inference heuristics live outside this module.
type InferFieldsHook func(ctx context.Context, req InferFieldsRequest) (map[string]string, error)

// runInference invokes the inference hook for one node-capable record and grafts the returned
// field paths onto it. Declared fields are never overwritten. A hook failure stalls the build.
func (b *Builder) runInference(ctx context.Context, rec *TypeRecord) error {
	hook := b.config.InferFields
	if hook == nil || b.config.Store == nil || !b.isNodeType(rec) {
		return nil
	}
	if infer := rec.Extensions().Infer; infer != nil && !*infer {
		return nil
	}

	inferred, err := hook(ctx, InferFieldsRequest{
		TypeName: rec.Name(),
		Nodes:    b.config.Store.NodesOfType(rec.Name()),
	})
	if err != nil {
		return err
	}
	if len(inferred) == 0 {
		return nil
	}

	paths := make([]string, 0, len(inferred))
	for path := range inferred {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	for _, path := range paths {
		if err := b.addInferredField(rec, path, inferred[path]); err != nil {
			b.rep.Error(Report{
				Kind:      KindOther,
				Message:   err.Error(),
				TypeName:  rec.Name(),
				FieldName: path,
			})
		}
	}
	return nil
}

// addInferredField grafts one inferred field path onto the record, materializing auxiliary
// object records for the intermediate path segments. Auxiliary records are named by prefixing
// the owner's name, which keeps them in the owner's concurrency partition.
func (b *Builder) addInferredField(rec *TypeRecord, path, typeName string) error {
	head := path
	rest := ""
	if i := strings.IndexByte(path, '.'); i >= 0 {
		head, rest = path[:i], path[i+1:]
	}

	if len(rest) == 0 {
		if rec.Field(head) != nil {
			return nil
		}
		fieldType, err := ParseTypeRef(typeName)
		if err != nil {
			return err
		}
		field := &FieldDefinition{Name: head, Type: fieldType}
		field.Extensions.CreatedFrom = ProvenanceDerived
		if add := rec.Extensions().AddDefaultResolvers; add == nil || *add {
			field.Resolver = DefaultFieldResolver
		}
		rec.AddField(field)
		return nil
	}

	auxName := rec.Name() + util.UpperFirst(head)
	aux := b.reg.Lookup(auxName)
	if aux == nil {
		aux = NewTypeRecord(auxName, Object)
		aux.Extensions().CreatedFrom = ProvenanceDerived
		b.reg.register(aux)
	}
	if rec.Field(head) == nil {
		field := &FieldDefinition{Name: head, Type: NamedRef(auxName)}
		field.Extensions.CreatedFrom = ProvenanceDerived
		field.Resolver = DefaultFieldResolver
		rec.AddField(field)
	}
	return b.addInferredField(aux, rest, typeName)
}
