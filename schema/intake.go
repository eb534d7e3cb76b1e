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

// This file defines the intake boundary: the shapes type sources arrive in, the parser
// collaborator interface, and the sequential intake pass that routes each incoming declaration
// to registration or to the merge resolver.

// DirectiveUse is one directive attached to a declaration by the textual parser.
type DirectiveUse struct {
	Name string
	Args map[string]interface{}
}

// ArgumentDeclaration is one argument of a field declaration.
type ArgumentDeclaration struct {
	Name string

	// Type is a textual type reference such as "String!".
	Type string

	DefaultValue interface{}
	HasDefault   bool
}

// FieldDeclaration is one field of a type declaration.
type FieldDeclaration struct {
	Name string

	// Type is a textual type reference.
	Type string

	Args       []ArgumentDeclaration
	Directives []DirectiveUse
}

// TypeDeclaration is one type parsed out of a textual schema source.
type TypeDeclaration struct {
	Name        string
	Kind        Kind
	Description string
	Interfaces  []string
	Fields      []FieldDeclaration

	// EnumValues is set for enum declarations, UnionMembers for union declarations.
	EnumValues   []string
	UnionMembers []string

	// Directives attached at the type level.
	Directives []DirectiveUse
}

// Parser turns schema-language text into type declarations. The textual parser lives outside
// this module; the engine only sees its output.
type Parser interface {
	Parse(source string) ([]TypeDeclaration, error)
}

// TypeSource is one incoming type definition paired with its owning plugin. The three concrete
// shapes are SDLSource, DescriptorSource and RecordSource.
type TypeSource interface {
	sourcePlugin() string
	typeSource()
}

// SDLSource is schema-language text contributed by a plugin.
type SDLSource struct {
	Text   string
	Plugin string
}

// DescriptorSource is a programmatic type-builder descriptor contributed by a plugin.
type DescriptorSource struct {
	Descriptor TypeDescriptor
	Plugin     string
}

// RecordSource is a natively constructed type record contributed by a plugin.
type RecordSource struct {
	Record *TypeRecord
	Plugin string
}

func (src SDLSource) sourcePlugin() string        { return src.Plugin }
func (SDLSource) typeSource()                     {}
func (src DescriptorSource) sourcePlugin() string { return src.Plugin }
func (DescriptorSource) typeSource()              {}
func (src RecordSource) sourcePlugin() string     { return src.Plugin }
func (RecordSource) typeSource()                  {}

// intakeAll processes the queued sources in order. Ordering matters: later declarations may
// merge into earlier ones. Name-validation failures are fatal; parse failures skip the source
// and the build continues.
func (b *Builder) intakeAll() error {
	for i, src := range b.sources {
		produced, err := b.intakeSource(src)
		if err != nil {
			return err
		}
		b.sourceTypes[i] = produced
	}
	return nil
}

// intakeSource classifies one source and admits every type it declares. It returns the names of
// the types the source produced, for the targeted rebuild path.
func (b *Builder) intakeSource(src TypeSource) ([]string, error) {
	switch src := src.(type) {
	case SDLSource:
		return b.intakeSDL(src)

	case DescriptorSource:
		rec, err := convertDescriptor(src.Descriptor)
		if err != nil {
			return nil, err
		}
		if err := validateTypeName(rec.Name()); err != nil {
			return nil, err
		}
		target := b.admit(rec, src.Plugin)
		b.stampProvenance(target, ProvenanceTypeBuilder, src.Plugin)
		b.validateFieldExtensions(target, rec.FieldNames())
		return []string{target.Name()}, nil

	case RecordSource:
		if err := validateTypeName(src.Record.Name()); err != nil {
			return nil, err
		}
		contributed := src.Record.FieldNames()
		target := b.admit(src.Record, src.Plugin)
		b.stampProvenance(target, ProvenanceNativeObject, src.Plugin)
		b.validateFieldExtensions(target, contributed)
		return []string{target.Name()}, nil
	}
	return nil, nil
}

func (b *Builder) intakeSDL(src SDLSource) ([]string, error) {
	if b.config.Parser == nil {
		b.rep.Error(Report{
			Kind:    KindParse,
			Message: "a textual schema source was provided but no parser is configured",
			Plugin:  src.Plugin,
		})
		return nil, nil
	}

	decls, err := b.config.Parser.Parse(src.Text)
	if err != nil {
		b.rep.Error(Report{
			Kind:    KindParse,
			Message: err.Error(),
			Plugin:  src.Plugin,
		})
		return nil, nil
	}

	var produced []string
	for _, decl := range decls {
		if err := validateTypeName(decl.Name); err != nil {
			return nil, err
		}
		rec, err := recordFromDeclaration(decl)
		if err != nil {
			b.rep.Error(Report{
				Kind:     KindParse,
				Message:  err.Error(),
				TypeName: decl.Name,
				Plugin:   src.Plugin,
			})
			continue
		}
		target := b.admit(rec, src.Plugin)
		b.stampProvenance(target, ProvenanceSDL, src.Plugin)
		if err := b.translateTypeDirectives(target, decl); err != nil {
			return nil, err
		}
		b.validateFieldExtensions(target, rec.FieldNames())
		produced = append(produced, target.Name())
	}
	return produced, nil
}

// admit registers a new record or routes it to the merge resolver when the registry already has
// a record under the same name. The surviving record is returned.
func (b *Builder) admit(rec *TypeRecord, plugin string) *TypeRecord {
	if existing := b.reg.Lookup(rec.Name()); existing != nil && existing != rec {
		b.mergeInto(existing, rec, plugin)
		return existing
	}
	b.reg.register(rec)
	b.reg.MustRetain(rec.Name())
	return rec
}

// recordFromDeclaration builds a bare registry record from a parsed declaration. Field-level
// directives become user extensions; type-level directives are translated separately by the
// extension processor.
func recordFromDeclaration(decl TypeDeclaration) (*TypeRecord, error) {
	rec := NewTypeRecord(decl.Name, decl.Kind)
	rec.SetDescription(decl.Description)
	for _, iface := range decl.Interfaces {
		rec.AddInterface(iface)
	}
	rec.SetEnumValues(decl.EnumValues)
	rec.SetUnionMembers(decl.UnionMembers)

	for _, fieldDecl := range decl.Fields {
		fieldType, err := ParseTypeRef(fieldDecl.Type)
		if err != nil {
			return nil, err
		}
		field := &FieldDefinition{
			Name: fieldDecl.Name,
			Type: fieldType,
		}
		for _, argDecl := range fieldDecl.Args {
			argType, err := ParseTypeRef(argDecl.Type)
			if err != nil {
				return nil, err
			}
			field.Args = append(field.Args, ArgumentDefinition{
				Name:         argDecl.Name,
				Type:         argType,
				DefaultValue: argDecl.DefaultValue,
				HasDefault:   argDecl.HasDefault,
			})
		}
		for _, dir := range fieldDecl.Directives {
			field.Extensions.SetUser(dir.Name, dir.Args)
		}
		rec.AddField(field)
	}
	return rec, nil
}
