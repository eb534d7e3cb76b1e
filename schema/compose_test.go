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

var _ = Describe("Field Composition", func() {
	Describe("node capability fields", func() {
		It("injects id, parent, children and internal on node types", func() {
			store := newBlogStore()
			b := newBlogBuilder(store)
			mustBuild(b)

			rec := b.Registry().Lookup("BlogPost")
			Expect(rec.Field("id").Type.String()).Should(Equal("ID!"))
			Expect(rec.Field("parent").Type.String()).Should(Equal("Node"))
			Expect(rec.Field("children").Type.String()).Should(Equal("[Node!]!"))
			Expect(rec.Field("internal").Type.String()).Should(Equal("Internal!"))
			Expect(rec.Field("id").Extensions.CreatedFrom).
				Should(Equal(schema.ProvenanceDerived))

			img := resolveField(rec.Field("children"), store.Node("post-2"), nil)
			Expect(img).Should(HaveLen(2))
		})

		It("leaves declared fields alone", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{Store: newBlogStore()})
			declared := schema.FieldResolverFunc(func(
				ctx context.Context, source interface{}, info schema.ResolveInfo,
			) (interface{}, error) {
				return "custom", nil
			})
			b.AddTypes(schema.DescriptorSource{
				Plugin: "blog-plugin",
				Descriptor: schema.ObjectDescriptor{
					Name:       "BlogPost",
					Interfaces: []string{"Node"},
					Fields: map[string]schema.FieldDescriptor{
						"id": {Type: "ID!", Resolver: declared},
					},
				},
			})
			mustBuild(b)

			field := b.Registry().Lookup("BlogPost").Field("id")
			Expect(field.Extensions.CreatedFrom).ShouldNot(Equal(schema.ProvenanceDerived))
			Expect(resolveField(field, nil, nil)).Should(Equal("custom"))
		})
	})

	Describe("child relationship fields", func() {
		It("derives plural and singular convenience fields from the content", func() {
			store := newBlogStore()
			b := newBlogBuilder(store)
			mustBuild(b)

			// post-2 has two images, so the field is plural for every post.
			post := b.Registry().Lookup("BlogPost")
			Expect(post.Field("childBlogImage")).Should(BeNil())
			plural := post.Field("childrenBlogImage")
			Expect(plural).ShouldNot(BeNil())
			Expect(plural.Type.String()).Should(Equal("[BlogImage!]!"))
			Expect(plural.Extensions.CreatedFrom).Should(Equal(schema.ProvenanceDerived))

			// No author node ever had more than one bio.
			author := b.Registry().Lookup("Author")
			Expect(author.Field("childrenAuthorBio")).Should(BeNil())
			Expect(author.Field("childAuthorBio").Type.String()).Should(Equal("AuthorBio"))

			children := resolveField(plural, store.Node("post-2"), nil)
			Expect(children).Should(HaveLen(2))
			bio := resolveField(author.Field("childAuthorBio"), store.Node("author-1"), nil)
			Expect(bio.(*nodes.Node).ID).Should(Equal("bio-1"))
		})

		It("ignores children whose type was never registered", func() {
			// The fixture's posts have BlogImage children, but no BlogImage type exists here; a
			// convenience field referencing it would not survive compilation.
			b := schema.NewBuilder(&schema.BuilderConfig{Store: newBlogStore()})
			b.AddTypes(blogSources()[0])
			s := mustBuild(b)

			post := s.Type("BlogPost")
			Expect(post.Field("childBlogImage")).Should(BeNil())
			Expect(post.Field("childrenBlogImage")).Should(BeNil())
		})

		It("keeps implicit fields under inference opt-out but deprecates them", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{Store: newBlogStore()})
			infer := false
			sources := blogSources()
			sources[2] = schema.DescriptorSource{
				Plugin: "blog-plugin",
				Descriptor: schema.ObjectDescriptor{
					Name:       "Author",
					Interfaces: []string{"Node"},
					Infer:      &infer,
					Fields: map[string]schema.FieldDescriptor{
						"name": {Type: "String"},
					},
				},
			}
			b.AddTypes(sources...)
			mustBuild(b)

			field := b.Registry().Lookup("Author").Field("childAuthorBio")
			Expect(field).ShouldNot(BeNil())
			Expect(field.Deprecation).ShouldNot(BeNil())

			var kinds []schema.ReportKind
			for _, w := range b.Reporter().Warnings() {
				kinds = append(kinds, w.Kind)
			}
			Expect(kinds).Should(ContainElement(schema.KindDeprecation))
		})

		It("prefers an explicit childOf declaration over the implicit field", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{Store: newBlogStore()})
			sources := blogSources()
			sources[1] = schema.DescriptorSource{
				Plugin: "image-plugin",
				Descriptor: schema.ObjectDescriptor{
					Name:       "BlogImage",
					Interfaces: []string{"Node"},
					ChildOf:    &schema.ChildOfSpec{Types: []string{"BlogPost"}, Many: true},
					Fields: map[string]schema.FieldDescriptor{
						"url": {Type: "String"},
					},
				},
			}
			b.AddTypes(sources...)
			mustBuild(b)

			post := b.Registry().Lookup("BlogPost")
			Expect(post.Field("childrenBlogImage")).ShouldNot(BeNil())
			Expect(post.Field("childBlogImage")).Should(BeNil())
			Expect(b.Reporter().Warnings()).Should(BeEmpty())
		})
	})

	Describe("field inference", func() {
		It("grafts inferred paths and materializes auxiliary records", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{
				Store: newBlogStore(),
				InferFields: func(ctx context.Context,
					req schema.InferFieldsRequest) (map[string]string, error) {
					if req.TypeName != "BlogPost" {
						return nil, nil
					}
					Expect(req.Nodes).Should(HaveLen(2))
					return map[string]string{
						"meta.rating": "Int",
						"subtitle":    "String",
					}, nil
				},
			})
			b.AddTypes(blogSources()...)
			s := mustBuild(b)

			post := s.Type("BlogPost")
			Expect(post.Field("subtitle").Type.String()).Should(Equal("String"))
			Expect(post.Field("meta").Type.NamedTypeName()).Should(Equal("BlogPostMeta"))

			aux := s.Type("BlogPostMeta")
			Expect(aux).ShouldNot(BeNil())
			Expect(aux.CreatedFrom()).Should(Equal(schema.ProvenanceDerived))
			Expect(aux.Field("rating").Type.String()).Should(Equal("Int"))
		})
	})

	Describe("root query fields", func() {
		It("registers singular and plural fields with generated inputs", func() {
			store := newBlogStore()
			b := newBlogBuilder(store)
			s := mustBuild(b)

			query := s.QueryType()
			Expect(query.Field("blogPost")).ShouldNot(BeNil())
			plural := query.Field("allBlogPost")
			Expect(plural).ShouldNot(BeNil())
			Expect(plural.Type.String()).Should(Equal("[BlogPost!]!"))

			filter := s.Type("BlogPostFilterInput")
			Expect(filter).ShouldNot(BeNil())
			Expect(filter.Kind()).Should(Equal(schema.Input))
			Expect(filter.CreatedFrom()).Should(Equal(schema.ProvenanceDerived))
			Expect(filter.Field("title")).ShouldNot(BeNil())
			Expect(s.Type("BlogPostSortInput")).ShouldNot(BeNil())

			match := resolveField(query.Field("blogPost"), nil, map[string]interface{}{
				"filter": map[string]interface{}{"title": "Hello"},
			})
			Expect(match.(*nodes.Node).ID).Should(Equal("post-1"))

			all := resolveField(plural, nil, nil)
			Expect(all).Should(HaveLen(2))
		})

		It("returns an empty list when skip exceeds the matches", func() {
			b := newBlogBuilder(newBlogStore())
			s := mustBuild(b)

			result := resolveField(s.QueryType().Field("allBlogPost"), nil, map[string]interface{}{
				"skip": 10,
			})
			list, ok := result.([]*nodes.Node)
			Expect(ok).Should(BeTrue())
			Expect(list).ShouldNot(BeNil())
			Expect(list).Should(BeEmpty())
		})

		It("registers root fields for queryable interfaces", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{Store: newBlogStore()})
			b.AddTypes(
				schema.DescriptorSource{
					Plugin: "blog-plugin",
					Descriptor: schema.InterfaceDescriptor{
						Name:          "Publication",
						NodeInterface: true,
						Fields: map[string]schema.FieldDescriptor{
							"id":    {Type: "ID!"},
							"title": {Type: "String!"},
						},
					},
				},
				schema.DescriptorSource{
					Plugin: "blog-plugin",
					Descriptor: schema.ObjectDescriptor{
						Name:       "BlogPost",
						Interfaces: []string{"Node", "Publication"},
						Fields: map[string]schema.FieldDescriptor{
							"title": {Type: "String!"},
						},
					},
				},
			)
			s := mustBuild(b)

			Expect(s.QueryType().Field("publication")).ShouldNot(BeNil())
			Expect(s.QueryType().Field("allPublication")).ShouldNot(BeNil())
		})
	})

	Describe("interface capability validation", func() {
		It("rejects implementors of queryable interfaces that are not nodes", func() {
			b := schema.NewBuilder(&schema.BuilderConfig{})
			b.AddTypes(
				schema.DescriptorSource{
					Plugin: "blog-plugin",
					Descriptor: schema.InterfaceDescriptor{
						Name:          "Publication",
						NodeInterface: true,
						Fields: map[string]schema.FieldDescriptor{
							"id": {Type: "ID!"},
						},
					},
				},
				schema.DescriptorSource{
					Plugin: "blog-plugin",
					Descriptor: schema.ObjectDescriptor{
						Name:       "Pamphlet",
						Interfaces: []string{"Publication"},
						Fields: map[string]schema.FieldDescriptor{
							"title": {Type: "String"},
						},
					},
				},
			)

			_, err := b.Build(context.Background())
			Expect(err).Should(HaveOccurred())
			Expect(err.Error()).Should(ContainSubstring("Pamphlet"))
			Expect(err.Error()).Should(ContainSubstring("Publication"))
		})
	})
})
