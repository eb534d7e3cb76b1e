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

var _ = Describe("Resolver Overrides", func() {
	prefixing := func(prefix string) schema.FieldResolver {
		return schema.FieldResolverFunc(func(
			ctx context.Context, source interface{}, info schema.ResolveInfo,
		) (interface{}, error) {
			prev, err := info.PreviousResolver.Resolve(ctx, source, info)
			if err != nil {
				return nil, err
			}
			return prefix + prev.(string), nil
		})
	}

	newOverridingBuilder := func(overrides map[string]map[string]schema.FieldOverride) *schema.Builder {
		b := schema.NewBuilder(&schema.BuilderConfig{
			Store: newBlogStore(),
			OverrideResolvers: func(ctx context.Context,
				roc *schema.ResolverOverrideContext) error {
				Expect(roc.Intermediate).ShouldNot(BeNil())
				roc.ApplyResolvers(overrides, nil)
				return nil
			},
		})
		b.AddTypes(blogSources()...)
		return b
	}

	It("wraps accepted resolvers over the prior resolver chain", func() {
		b := newOverridingBuilder(map[string]map[string]schema.FieldOverride{
			"BlogPost": {
				"title": {Type: "String", Resolver: prefixing("override:")},
			},
		})
		s := mustBuild(b)

		field := s.Type("BlogPost").Field("title")
		Expect(field.Type.String()).Should(Equal("String"))

		post := &nodes.Node{Fields: map[string]interface{}{"title": "Hello"}}
		Expect(resolveField(field, post, nil)).Should(Equal("override:Hello"))
	})

	It("rejects overrides whose declared type does not match", func() {
		b := newOverridingBuilder(map[string]map[string]schema.FieldOverride{
			"BlogPost": {
				"title": {Type: "Int", Resolver: prefixing("never:")},
			},
		})
		s := mustBuild(b)

		warnings := b.Reporter().Warnings()
		Expect(warnings).Should(HaveLen(1))
		Expect(warnings[0].Kind).Should(Equal(schema.KindResolverOverride))
		Expect(warnings[0].TypeName).Should(Equal("BlogPost"))
		Expect(warnings[0].FieldName).Should(Equal("title"))

		// Untouched.
		field := s.Type("BlogPost").Field("title")
		Expect(field.Type.String()).Should(Equal("String!"))
		Expect(field.Extensions.OriginalFieldConfig).Should(BeNil())
	})

	It("accepts new fields unconditionally and defaults their type", func() {
		b := newOverridingBuilder(map[string]map[string]schema.FieldOverride{
			"BlogPost": {
				"excerpt": {Resolver: schema.FieldResolverFunc(func(
					ctx context.Context, source interface{}, info schema.ResolveInfo,
				) (interface{}, error) {
					return "short", nil
				})},
			},
		})
		s := mustBuild(b)

		field := s.Type("BlogPost").Field("excerpt")
		Expect(field).ShouldNot(BeNil())
		Expect(field.Type.String()).Should(Equal("JSON"))
		Expect(field.Extensions.CreatedFrom).Should(Equal(schema.ProvenanceCreateResolvers))
		Expect(resolveField(field, nil, nil)).Should(Equal("short"))
	})

	It("warns on overrides for unknown types unless told not to", func() {
		b := schema.NewBuilder(&schema.BuilderConfig{
			Store: newBlogStore(),
			OverrideResolvers: func(ctx context.Context,
				roc *schema.ResolverOverrideContext) error {
				roc.ApplyResolvers(map[string]map[string]schema.FieldOverride{
					"Missing": {"field": {}},
				}, nil)
				roc.ApplyResolvers(map[string]map[string]schema.FieldOverride{
					"AlsoMissing": {"field": {}},
				}, &schema.ApplyResolversOptions{IgnoreNonexistentTypes: true})
				return nil
			},
		})
		b.AddTypes(blogSources()...)
		mustBuild(b)

		warnings := b.Reporter().Warnings()
		Expect(warnings).Should(HaveLen(1))
		Expect(warnings[0].TypeName).Should(Equal("Missing"))
	})

	It("restores overridden fields before reapplying on later builds", func() {
		b := newOverridingBuilder(map[string]map[string]schema.FieldOverride{
			"BlogPost": {
				"title": {Resolver: prefixing("X")},
			},
		})
		mustBuild(b)
		s := mustBuild(b)

		field := s.Type("BlogPost").Field("title")
		Expect(field.Extensions.OriginalFieldConfig).ShouldNot(BeNil())

		// A doubly wrapped resolver would prefix twice.
		post := &nodes.Node{Fields: map[string]interface{}{"title": "Hello"}}
		Expect(resolveField(field, post, nil)).Should(Equal("XHello"))
	})

	It("stalls the build when the override hook fails", func() {
		hookErr := context.DeadlineExceeded
		b := schema.NewBuilder(&schema.BuilderConfig{
			OverrideResolvers: func(ctx context.Context,
				roc *schema.ResolverOverrideContext) error {
				return hookErr
			},
		})
		b.AddTypes(blogSources()...)

		_, err := b.Build(context.Background())
		Expect(err).Should(Equal(hookErr))
	})
})
