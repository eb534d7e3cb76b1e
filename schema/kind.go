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

// Kind enumerates the closed set of type kinds a TypeRecord can have. Every pass that dispatches
// on kind switches over this enumeration.
type Kind uint8

// The kinds. Object and Interface records carry fields; Union records carry members; Enum records
// carry values; Input records carry argument-position fields; Scalar records are leaves.
const (
	Object Kind = iota
	Interface
	Union
	Input
	Enum
	Scalar
)

func (k Kind) String() string {
	switch k {
	case Object:
		return "object"
	case Interface:
		return "interface"
	case Union:
		return "union"
	case Input:
		return "input"
	case Enum:
		return "enum"
	case Scalar:
		return "scalar"
	}
	return "unknown kind"
}
