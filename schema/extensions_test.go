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

	"github.com/toanlv-dev/gatsby/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type fakeParser struct {
	decls []schema.TypeDeclaration
}

func (p fakeParser) Parse(source string) ([]schema.TypeDeclaration, error) {
	return p.decls, nil
}

var _ = Describe("Directive Translation", func() {
	buildDecl := func(decl schema.TypeDeclaration) (*schema.Builder, error) {
		b := schema.NewBuilder(&schema.BuilderConfig{
			Parser: fakeParser{decls: []schema.TypeDeclaration{decl}},
		})
		b.AddTypes(schema.SDLSource{Text: "irrelevant", Plugin: "sdl-plugin"})
		_, err := b.Build(context.Background())
		return b, err
	}

	It("translates inference and relationship directives into typed extensions", func() {
		b, err := buildDecl(schema.TypeDeclaration{
			Name: "Frontmatter",
			Kind: schema.Object,
			Directives: []schema.DirectiveUse{
				{Name: "dontInfer", Args: map[string]interface{}{"noDefaultResolvers": true}},
				{Name: "childOf", Args: map[string]interface{}{
					"types": []interface{}{"MarkdownRemark"},
					"many":  true,
				}},
			},
		})
		Expect(err).ShouldNot(HaveOccurred())

		ext := b.Registry().Lookup("Frontmatter").Extensions()
		Expect(ext.Infer).ShouldNot(BeNil())
		Expect(*ext.Infer).Should(BeFalse())
		Expect(ext.AddDefaultResolvers).ShouldNot(BeNil())
		Expect(*ext.AddDefaultResolvers).Should(BeFalse())
		Expect(ext.ChildOf).ShouldNot(BeNil())
		Expect(ext.ChildOf.Types).Should(Equal([]string{"MarkdownRemark"}))
		Expect(ext.ChildOf.Many).Should(BeTrue())
	})

	It("rejects nodeInterface on non-interface types", func() {
		_, err := buildDecl(schema.TypeDeclaration{
			Name:       "Thing",
			Kind:       schema.Object,
			Directives: []schema.DirectiveUse{{Name: "nodeInterface"}},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("Thing"))
	})

	It("rejects nodeInterface without a non-null identity field", func() {
		_, err := buildDecl(schema.TypeDeclaration{
			Name: "Titled",
			Kind: schema.Interface,
			Fields: []schema.FieldDeclaration{
				{Name: "id", Type: "ID"},
			},
			Directives: []schema.DirectiveUse{{Name: "nodeInterface"}},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("id: ID!"))
	})
})

var _ = Describe("Extension Arguments", func() {
	buildField := func(b *schema.Builder, ext map[string]map[string]interface{}) *schema.FieldDefinition {
		b.AddTypes(schema.DescriptorSource{
			Plugin: "blog-plugin",
			Descriptor: schema.ObjectDescriptor{
				Name:       "BlogPost",
				Interfaces: []string{"Node"},
				Fields: map[string]schema.FieldDescriptor{
					"date": {Type: "Date", Extensions: ext},
				},
			},
		})
		mustBuild(b)
		return b.Registry().Lookup("BlogPost").Field("date")
	}

	extensionErrors := func(b *schema.Builder) []schema.Report {
		var out []schema.Report
		for _, r := range b.Reporter().Errors() {
			if r.Kind == schema.KindExtensionArgument {
				out = append(out, r)
			}
		}
		return out
	}

	It("accepts well-formed built-in extension arguments", func() {
		b := schema.NewBuilder(&schema.BuilderConfig{})
		buildField(b, map[string]map[string]interface{}{
			"dateformat": {"formatString": "YYYY-MM-DD", "locale": "en"},
		})
		Expect(extensionErrors(b)).Should(BeEmpty())
	})

	It("reports unregistered extensions and unknown arguments", func() {
		b := schema.NewBuilder(&schema.BuilderConfig{})
		buildField(b, map[string]map[string]interface{}{
			"frobnicate": {},
			"dateformat": {"format": "YYYY"},
		})

		errs := extensionErrors(b)
		Expect(errs).Should(HaveLen(2))
		Expect(errs[0].Message).Should(ContainSubstring("dateformat"))
		Expect(errs[0].Message).Should(ContainSubstring("format"))
		Expect(errs[1].Message).Should(ContainSubstring("frobnicate"))
	})

	It("checks argument values against their declared types", func() {
		b := schema.NewBuilder(&schema.BuilderConfig{})
		buildField(b, map[string]map[string]interface{}{
			"dateformat": {"formatString": 42},
			"proxy":      {"from": nil},
		})

		errs := extensionErrors(b)
		Expect(errs).Should(HaveLen(2))
		Expect(errs[0].Message).Should(ContainSubstring("formatString"))
		Expect(errs[1].Message).Should(ContainSubstring("from"))
	})

	It("back-fills declared defaults into the argument map", func() {
		b := schema.NewBuilder(&schema.BuilderConfig{})
		b.RegisterExtension(schema.ExtensionSpec{
			Name: "link",
			Args: []schema.ArgumentDefinition{
				{Name: "by", Type: schema.NamedRef("String"), DefaultValue: "id", HasDefault: true},
				{Name: "from", Type: schema.NamedRef("String")},
			},
		})
		field := buildField(b, map[string]map[string]interface{}{
			"link": {"from": "authorId"},
		})

		args, ok := field.Extensions.UserArgs("link")
		Expect(ok).Should(BeTrue())
		Expect(args).Should(HaveKeyWithValue("by", "id"))
		Expect(args).Should(HaveKeyWithValue("from", "authorId"))
	})

	It("coerces singletons where lists are declared and checks elements", func() {
		good := schema.NewBuilder(&schema.BuilderConfig{})
		good.RegisterExtension(schema.ExtensionSpec{
			Name: "tagged",
			Args: []schema.ArgumentDefinition{
				{Name: "tags", Type: schema.MustParseTypeRef("[String!]")},
			},
		})
		buildField(good, map[string]map[string]interface{}{
			"tagged": {"tags": "solo"},
		})
		Expect(extensionErrors(good)).Should(BeEmpty())

		bad := schema.NewBuilder(&schema.BuilderConfig{})
		bad.RegisterExtension(schema.ExtensionSpec{
			Name: "tagged",
			Args: []schema.ArgumentDefinition{
				{Name: "tags", Type: schema.MustParseTypeRef("[String!]")},
			},
		})
		buildField(bad, map[string]map[string]interface{}{
			"tagged": {"tags": []interface{}{"ok", 3}},
		})

		errs := extensionErrors(bad)
		Expect(errs).Should(HaveLen(1))
		Expect(errs[0].Message).Should(ContainSubstring("tags[1]"))
	})
})
