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
	"strings"
)

type refKind uint8

const (
	refZero refKind = iota
	refNamed
	refList
	refNonNull
	refThunk
)

// TypeRef is a symbolic, possibly-deferred reference to a type. References are collected during
// intake and resolved against the registry only at compile time, so types may freely refer to
// types that have not been registered yet. A reference never resolving fails compilation, not
// intake.
type TypeRef struct {
	kind  refKind
	name  string
	inner *TypeRef
	thunk func() TypeRef
}

// NamedRef references the type with the given name.
func NamedRef(name string) TypeRef {
	return TypeRef{kind: refNamed, name: name}
}

// ListOf wraps a reference in a list modifier.
func ListOf(ref TypeRef) TypeRef {
	return TypeRef{kind: refList, inner: &ref}
}

// NonNullOf wraps a reference in a non-null modifier.
func NonNullOf(ref TypeRef) TypeRef {
	return TypeRef{kind: refNonNull, inner: &ref}
}

// DeferredRef defers computation of a reference until it is first inspected. It allows
// type-builder descriptors to reference types by values that do not exist at descriptor
// construction time.
func DeferredRef(thunk func() TypeRef) TypeRef {
	return TypeRef{kind: refThunk, thunk: thunk}
}

// ParseTypeRef parses a textual type reference such as "String", "[BlogPost!]" or "[ID!]!".
func ParseTypeRef(s string) (TypeRef, error) {
	ref, err := parseTypeRef(strings.TrimSpace(s))
	if err != nil {
		return TypeRef{}, fmt.Errorf("invalid type reference %q: %s", s, err)
	}
	return ref, nil
}

// MustParseTypeRef is like ParseTypeRef but panics on a malformed reference. It is intended for
// references written as literals.
func MustParseTypeRef(s string) TypeRef {
	ref, err := ParseTypeRef(s)
	if err != nil {
		panic(err)
	}
	return ref
}

func parseTypeRef(s string) (TypeRef, error) {
	if len(s) == 0 {
		return TypeRef{}, fmt.Errorf("empty reference")
	}
	if strings.HasSuffix(s, "!") {
		inner, err := parseTypeRef(strings.TrimSpace(s[:len(s)-1]))
		if err != nil {
			return TypeRef{}, err
		}
		return NonNullOf(inner), nil
	}
	if strings.HasPrefix(s, "[") {
		if !strings.HasSuffix(s, "]") {
			return TypeRef{}, fmt.Errorf("unbalanced brackets")
		}
		inner, err := parseTypeRef(strings.TrimSpace(s[1 : len(s)-1]))
		if err != nil {
			return TypeRef{}, err
		}
		return ListOf(inner), nil
	}
	if !nameRegexp.MatchString(s) {
		return TypeRef{}, fmt.Errorf("%q is not a valid type name", s)
	}
	return NamedRef(s), nil
}

// IsZero returns true for the zero reference, which refers to nothing.
func (ref TypeRef) IsZero() bool {
	return ref.kind == refZero
}

// forced evaluates deferred references until a concrete reference is obtained.
func (ref TypeRef) forced() TypeRef {
	for ref.kind == refThunk {
		if ref.thunk == nil {
			return TypeRef{}
		}
		ref = ref.thunk()
	}
	return ref
}

// NamedTypeName returns the name of the innermost named type the reference points at, forcing
// deferred references along the way. It returns "" for the zero reference.
func (ref TypeRef) NamedTypeName() string {
	ref = ref.forced()
	for ref.inner != nil {
		ref = ref.inner.forced()
	}
	return ref.name
}

// String prints the reference in type-modifier notation.
func (ref TypeRef) String() string {
	switch ref = ref.forced(); ref.kind {
	case refNamed:
		return ref.name
	case refList:
		return "[" + ref.inner.String() + "]"
	case refNonNull:
		return ref.inner.String() + "!"
	}
	return "<nil>"
}

// refsEqual reports whether two references denote the same type, modifiers included.
func refsEqual(a, b TypeRef) bool {
	a, b = a.forced(), b.forced()
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case refNamed:
		return a.name == b.name
	case refList, refNonNull:
		return refsEqual(*a.inner, *b.inner)
	}
	return true
}

// refsLooselyEqual reports whether two references denote the same type once non-null modifiers
// are discarded at every nesting level, so "String" matches "String!" and "[Int!]" matches
// "[Int]!".
func refsLooselyEqual(a, b TypeRef) bool {
	a, b = stripNonNull(a), stripNonNull(b)
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case refNamed:
		return a.name == b.name
	case refList:
		return refsLooselyEqual(*a.inner, *b.inner)
	}
	return true
}

func stripNonNull(ref TypeRef) TypeRef {
	ref = ref.forced()
	for ref.kind == refNonNull {
		ref = ref.inner.forced()
	}
	return ref
}

// rewriteNamed returns ref with every occurrence of the named type "from" replaced by "to",
// preserving list and non-null wrapping.
func rewriteNamed(ref TypeRef, from, to string) TypeRef {
	ref = ref.forced()
	switch ref.kind {
	case refNamed:
		if ref.name == from {
			return NamedRef(to)
		}
		return ref
	case refList:
		return ListOf(rewriteNamed(*ref.inner, from, to))
	case refNonNull:
		return NonNullOf(rewriteNamed(*ref.inner, from, to))
	}
	return ref
}
