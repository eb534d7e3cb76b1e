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

// Package nodes defines the boundary to the content-node store. The schema composition engine
// reads nodes to infer convenience relationship fields and to serve generated root query fields;
// it never writes them. The persistent store lives outside this module and is accessed through
// the Store interface. MapStore is an in-memory implementation for tests and local builds.
package nodes

// Internal carries the bookkeeping metadata every content node exposes.
type Internal struct {
	// Type is the name of the schema type the node belongs to.
	Type string `json:"type"`

	// ContentDigest is a digest of the node content, used for change detection.
	ContentDigest string `json:"contentDigest"`

	// MediaType of the node's raw content, if any. Used to resolve childOf{mimeTypes}
	// associations.
	MediaType string `json:"mediaType,omitempty"`

	// Owner is the name of the plugin that created the node.
	Owner string `json:"owner,omitempty"`

	// Content optionally carries the raw content the node was created from.
	Content string `json:"content,omitempty"`

	// Description optionally documents the node.
	Description string `json:"description,omitempty"`
}

// Node is a single content record.
type Node struct {
	// ID uniquely identifies the node.
	ID string `json:"id"`

	// Parent is the ID of the node's parent, or empty for a root record.
	Parent string `json:"parent,omitempty"`

	// Children lists IDs of the node's direct children.
	Children []string `json:"children,omitempty"`

	// Internal carries node bookkeeping metadata.
	Internal Internal `json:"internal"`

	// Fields contains the record data keyed by field name.
	Fields map[string]interface{} `json:"fields,omitempty"`
}

// Field returns the value of the named data field, or nil if the node has no such field.
func (node *Node) Field(name string) interface{} {
	if node.Fields == nil {
		return nil
	}
	return node.Fields[name]
}

// Store provides read access to the content records a site has sourced.
type Store interface {
	// Node finds the node with the given ID, or returns nil.
	Node(id string) *Node

	// NodesOfType returns all nodes of the named type in insertion order.
	NodesOfType(typeName string) []*Node
}

// ChildrenByType groups the direct children of the given node by their type name. Children whose
// ID cannot be found in the store are skipped.
func ChildrenByType(store Store, node *Node) map[string][]*Node {
	if len(node.Children) == 0 {
		return nil
	}
	groups := make(map[string][]*Node)
	for _, id := range node.Children {
		child := store.Node(id)
		if child == nil {
			continue
		}
		groups[child.Internal.Type] = append(groups[child.Internal.Type], child)
	}
	return groups
}
