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

package nodes

import (
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// MapStore is an in-memory Store keyed by node ID. It is safe for concurrent readers and a
// concurrent writer.
type MapStore struct {
	mu     sync.RWMutex
	byID   map[string]*Node
	byType map[string][]*Node
}

var _ Store = (*MapStore)(nil)

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{
		byID:   map[string]*Node{},
		byType: map[string][]*Node{},
	}
}

// Add puts a node into the store. A node with the same ID replaces the previous one.
func (store *MapStore) Add(node *Node) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if prev, exists := store.byID[node.ID]; exists {
		typed := store.byType[prev.Internal.Type]
		for i, n := range typed {
			if n.ID == node.ID {
				store.byType[prev.Internal.Type] = append(typed[:i:i], typed[i+1:]...)
				break
			}
		}
	}
	store.byID[node.ID] = node
	store.byType[node.Internal.Type] = append(store.byType[node.Internal.Type], node)
}

// AddJSON decodes a raw JSON record into a Node and adds it to the store.
func (store *MapStore) AddJSON(data []byte) (*Node, error) {
	node := &Node{}
	if err := jsoniter.Unmarshal(data, node); err != nil {
		return nil, fmt.Errorf("nodes: cannot decode record: %s", err)
	}
	if len(node.ID) == 0 {
		return nil, fmt.Errorf("nodes: record is missing an id")
	}
	store.Add(node)
	return node, nil
}

// Node implements Store.
func (store *MapStore) Node(id string) *Node {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return store.byID[id]
}

// NodesOfType implements Store.
func (store *MapStore) NodesOfType(typeName string) []*Node {
	store.mu.RLock()
	defer store.mu.RUnlock()

	typed := store.byType[typeName]
	if len(typed) == 0 {
		return nil
	}
	result := make([]*Node, len(typed))
	copy(result, typed)
	return result
}
