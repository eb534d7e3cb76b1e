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
	"reflect"
	"sort"

	"github.com/toanlv-dev/gatsby/nodes"
)

// SortOrder is the direction of one sort field.
type SortOrder string

// Sort directions.
const (
	SortAscending  SortOrder = "ASC"
	SortDescending SortOrder = "DESC"
)

// SortSpec orders query results by the given fields. Order entries pair positionally with
// Fields; a missing entry means ascending.
type SortSpec struct {
	Fields []string
	Order  []SortOrder
}

// Query describes one node query issued by a generated root field.
type Query struct {
	// Type is the name of the node type queried.
	Type string

	// Filter matches node data fields by equality; nested maps match nested values.
	Filter map[string]interface{}

	Sort  *SortSpec
	Skip  int
	Limit int
}

// QueryRunner executes node queries on behalf of generated root fields. The production runner
// wraps the query-execution layer outside this module; NewStoreRunner provides one backed
// directly by a node store.
type QueryRunner interface {
	RunQuery(ctx context.Context, q Query) ([]*nodes.Node, error)
}

type storeRunner struct {
	store nodes.Store
}

// NewStoreRunner creates a QueryRunner that evaluates queries directly against a node store.
func NewStoreRunner(store nodes.Store) QueryRunner {
	return storeRunner{store: store}
}

// RunQuery implements QueryRunner.
func (r storeRunner) RunQuery(ctx context.Context, q Query) ([]*nodes.Node, error) {
	if len(q.Type) == 0 {
		return nil, fmt.Errorf("query has no type")
	}

	// The result feeds non-null list fields; it must never be a nil slice.
	matched := []*nodes.Node{}
	for _, node := range r.store.NodesOfType(q.Type) {
		if matchesFilter(node.Fields, q.Filter) {
			matched = append(matched, node)
		}
	}

	if q.Sort != nil && len(q.Sort.Fields) > 0 {
		sortNodes(matched, q.Sort)
	}
	if q.Skip > 0 {
		if q.Skip >= len(matched) {
			return []*nodes.Node{}, nil
		}
		matched = matched[q.Skip:]
	}
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func matchesFilter(fields map[string]interface{}, filter map[string]interface{}) bool {
	for name, want := range filter {
		got, present := fields[name]
		if !present {
			return false
		}
		if nested, ok := want.(map[string]interface{}); ok {
			nestedFields, ok := got.(map[string]interface{})
			if !ok || !matchesFilter(nestedFields, nested) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func sortNodes(matched []*nodes.Node, spec *SortSpec) {
	sort.SliceStable(matched, func(i, j int) bool {
		for k, field := range spec.Fields {
			order := SortAscending
			if k < len(spec.Order) {
				order = spec.Order[k]
			}
			cmp := compareValues(matched[i].Field(field), matched[j].Field(field))
			if cmp == 0 {
				continue
			}
			if order == SortDescending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

func compareValues(a, b interface{}) int {
	af, aNum := asFloat(a)
	bf, bNum := asFloat(b)
	if aNum && bNum {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		}
		return 0
	}
	as := fmt.Sprint(a)
	bs := fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func asFloat(v interface{}) (float64, bool) {
	switch v := v.(type) {
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}
