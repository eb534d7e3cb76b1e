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
	"context"

	"github.com/toanlv-dev/gatsby/nodes"
	"github.com/toanlv-dev/gatsby/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Targeted Rebuild", func() {
	It("rejects rebuilds of unknown types", func() {
		b := newBlogBuilder(newBlogStore())
		mustBuild(b)

		_, err := b.RebuildType(context.Background(), "Missing")
		Expect(err).Should(HaveOccurred())
	})

	It("re-derives the type and its dependents from the changed content", func() {
		store := newBlogStore()
		b := newBlogBuilder(store)
		mustBuild(b)

		author := b.Registry().Lookup("Author")
		Expect(author.Field("childAuthorBio")).ShouldNot(BeNil())

		// A second bio arrives; the convenience field must turn plural.
		store.Add(&nodes.Node{
			ID:       "author-1",
			Children: []string{"bio-1", "bio-2"},
			Internal: nodes.Internal{Type: "Author", ContentDigest: "a2", Owner: "blog-plugin"},
			Fields:   map[string]interface{}{"name": "Ada"},
		})
		store.Add(&nodes.Node{
			ID:       "bio-2",
			Parent:   "author-1",
			Internal: nodes.Internal{Type: "AuthorBio", ContentDigest: "b2", Owner: "blog-plugin"},
			Fields:   map[string]interface{}{"text": "programmer"},
		})

		s, err := b.RebuildType(context.Background(), "AuthorBio")
		Expect(err).ShouldNot(HaveOccurred())

		author = s.Type("Author")
		Expect(author.Field("childAuthorBio")).Should(BeNil())
		plural := author.Field("childrenAuthorBio")
		Expect(plural.Type.String()).Should(Equal("[AuthorBio!]!"))
		Expect(plural.Extensions.CreatedFrom).Should(Equal(schema.ProvenanceDerived))
	})

	It("matches a from-scratch build over the same inputs", func() {
		store := newBlogStore()
		b := newBlogBuilder(store)
		mustBuild(b)

		store.Add(&nodes.Node{
			ID:       "bio-2",
			Parent:   "author-1",
			Internal: nodes.Internal{Type: "AuthorBio", ContentDigest: "b2", Owner: "blog-plugin"},
			Fields:   map[string]interface{}{"text": "programmer"},
		})
		store.Add(&nodes.Node{
			ID:       "author-1",
			Children: []string{"bio-1", "bio-2"},
			Internal: nodes.Internal{Type: "Author", ContentDigest: "a2", Owner: "blog-plugin"},
			Fields:   map[string]interface{}{"name": "Ada"},
		})

		rebuilt, err := b.RebuildType(context.Background(), "AuthorBio")
		Expect(err).ShouldNot(HaveOccurred())

		fresh := mustBuild(newBlogBuilder(store))

		Expect(rebuilt.TypeNames()).Should(ConsistOf(fresh.TypeNames()))
		for _, name := range []string{"Author", "AuthorBio", "Query"} {
			Expect(rebuilt.Type(name).FieldNames()).
				Should(Equal(fresh.Type(name).FieldNames()), "fields of %s", name)
		}
	})

	It("keeps root query fields for untouched types intact", func() {
		b := newBlogBuilder(newBlogStore())
		mustBuild(b)

		s, err := b.RebuildType(context.Background(), "Author")
		Expect(err).ShouldNot(HaveOccurred())

		query := s.QueryType()
		for _, name := range []string{"author", "allAuthor", "blogPost", "allBlogPost"} {
			Expect(query.Field(name)).ShouldNot(BeNil(), "query field %s", name)
		}
	})
})
