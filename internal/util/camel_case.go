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

package util

import (
	"strings"
)

func upperFirstByte(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func lowerFirstByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// UpperFirst returns s of the form "/[_A-Za-z][_0-9A-Za-z]*/" [0] with its first letter
// upper-cased. The remainder of the string is kept as-is so interior casing such as "blogPost"
// survives as "BlogPost".
//
// [0]: https://graphql.github.io/graphql-spec/June2018/#Name
func UpperFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	first := upperFirstByte(s[0])
	if first == s[0] {
		return s
	}
	return string(first) + s[1:]
}

// LowerFirst returns s with its first letter lower-cased; the counterpart of UpperFirst.
func LowerFirst(s string) string {
	if len(s) == 0 {
		return s
	}
	first := lowerFirstByte(s[0])
	if first == s[0] {
		return s
	}
	return string(first) + s[1:]
}

// CamelCase joins the given words into a single camel-cased identifier: the first word has its
// first letter lower-cased and every subsequent word has its first letter upper-cased. Interior
// casing of each word is preserved, so CamelCase("all", "BlogPost") returns "allBlogPost".
func CamelCase(words ...string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return LowerFirst(words[0])
	}

	var buf strings.Builder
	for i, word := range words {
		if i == 0 {
			buf.WriteString(LowerFirst(word))
		} else {
			buf.WriteString(UpperFirst(word))
		}
	}
	return buf.String()
}
