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

package schema_test

import (
	"github.com/toanlv-dev/gatsby/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Type References", func() {
	It("parses named, list and non-null references", func() {
		for _, s := range []string{
			"BlogPost",
			"BlogPost!",
			"[BlogPost]",
			"[BlogPost!]!",
			"[[Int]]",
		} {
			ref, err := schema.ParseTypeRef(s)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(ref.String()).Should(Equal(s))
		}
	})

	It("reports the innermost named type", func() {
		ref := schema.MustParseTypeRef("[BlogPost!]!")
		Expect(ref.NamedTypeName()).Should(Equal("BlogPost"))
	})

	It("rejects malformed references", func() {
		for _, s := range []string{"", "!", "[]", "[Int", "Int]", "Blog Post"} {
			_, err := schema.ParseTypeRef(s)
			Expect(err).Should(HaveOccurred(), "expected %q to be rejected", s)
		}
	})

	It("panics in MustParseTypeRef on malformed input", func() {
		Expect(func() { schema.MustParseTypeRef("[Int") }).Should(Panic())
	})

	It("builds references programmatically", func() {
		ref := schema.NonNullOf(schema.ListOf(schema.NonNullOf(schema.NamedRef("BlogPost"))))
		Expect(ref.String()).Should(Equal("[BlogPost!]!"))
		Expect(ref.IsZero()).Should(BeFalse())
		Expect(schema.TypeRef{}.IsZero()).Should(BeTrue())
	})

	It("resolves deferred references lazily", func() {
		ref := schema.DeferredRef(func() schema.TypeRef {
			return schema.ListOf(schema.NamedRef("Author"))
		})
		Expect(ref.String()).Should(Equal("[Author]"))
		Expect(ref.NamedTypeName()).Should(Equal("Author"))
	})
})
