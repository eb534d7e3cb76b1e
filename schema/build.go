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
	"strings"
	"sync"

	"github.com/toanlv-dev/gatsby/nodes"
)

const sortOrderEnumName = "SortOrderEnum"

// BuilderConfig configures a Builder.
type BuilderConfig struct {
	// Store provides the content records used by inference and by the convenience
	// child-relationship passes. It may be nil, disabling both.
	Store nodes.Store

	// Parser parses textual schema sources. It may be nil if no SDL sources are added.
	Parser Parser

	// Runner executes node queries for the generated root fields. When nil and Store is set, a
	// store-backed runner is used.
	Runner QueryRunner

	// DefaultOwner is the site-level owner name; merges from it are always safe.
	DefaultOwner string

	// QueryTypeName overrides the name of the root query type. Defaults to "Query".
	QueryTypeName string

	// InferFields is the node-field-extension hook; nil disables inference.
	InferFields InferFieldsHook

	// OverrideResolvers is the resolver-override hook, invoked once per build.
	OverrideResolvers ResolverOverrideHook

	// ThirdPartySchemas are imported wholesale on every build.
	ThirdPartySchemas []*ForeignSchema
}

// Builder drives a registry through the build phases and compiles it into a Schema. Builds and
// targeted rebuilds of the same Builder are serialized; they must not run concurrently.
type Builder struct {
	mu sync.Mutex

	config BuilderConfig
	reg    *Registry
	rep    *Reporter

	sources []TypeSource

	// sourceTypes maps a source's queue position to the type names it produced, for the targeted
	// rebuild path.
	sourceTypes map[int][]string

	// queryFields maps a composed type name to the root query fields registered for it.
	queryFields map[string][]string
}

// NewBuilder creates a Builder with the built-in types and extension catalog installed.
func NewBuilder(config *BuilderConfig) *Builder {
	b := &Builder{
		config:      *config,
		reg:         NewRegistry(),
		rep:         &Reporter{},
		sourceTypes: map[int][]string{},
		queryFields: map[string][]string{},
	}
	if len(b.config.QueryTypeName) == 0 {
		b.config.QueryTypeName = "Query"
	}
	if b.config.Runner == nil && b.config.Store != nil {
		b.config.Runner = NewStoreRunner(b.config.Store)
	}
	b.installBuiltins()
	return b
}

// Registry exposes the underlying registry.
func (b *Builder) Registry() *Registry {
	return b.reg
}

// Reporter exposes the warnings and errors collected by the latest build.
func (b *Builder) Reporter() *Reporter {
	return b.rep
}

// AddTypes queues type sources for intake. Order is preserved: later declarations may merge
// into earlier ones.
func (b *Builder) AddTypes(sources ...TypeSource) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sources = append(b.sources, sources...)
}

// RegisterExtension adds an extension-argument schema to the catalog.
func (b *Builder) RegisterExtension(spec ExtensionSpec) {
	b.reg.RegisterExtension(spec)
}

// AddThirdPartySchema queues a foreign schema for import on the next build.
func (b *Builder) AddThirdPartySchema(fs *ForeignSchema) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.config.ThirdPartySchemas = append(b.config.ThirdPartySchemas, fs)
}

// Build runs the full pipeline: intake, merge, extension processing, field composition,
// validation, third-party integration, resolver overrides, and compilation. Locally recoverable
// problems are collected on the Reporter and the build produces a best-effort schema;
// structural violations abort with an error and no schema is produced.
func (b *Builder) Build(ctx context.Context) (*Schema, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rep.reset()
	if err := b.intakeAll(); err != nil {
		return nil, err
	}
	return b.finishBuild(ctx, b.reg.TypeNames())
}

// RebuildType re-runs intake, inference and composition for exactly one type and the types
// derived from it, after discarding their previously derived fields. The resulting registry
// state is the same as a from-scratch build over the same inputs. Rebuilds are serialized
// against other builds of the same Builder.
func (b *Builder) RebuildType(ctx context.Context, name string) (*Schema, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.reg.Lookup(name) == nil {
		return nil, fmt.Errorf("cannot rebuild unknown type %s", name)
	}
	b.rep.reset()

	affected := b.derivedClosure(name)
	b.stripDerived(affected)

	for i, src := range b.sources {
		if !containsName(b.sourceTypes[i], name) {
			continue
		}
		produced, err := b.intakeSource(src)
		if err != nil {
			return nil, err
		}
		b.sourceTypes[i] = produced
	}

	return b.finishBuild(ctx, affected)
}

// finishBuild runs the phases shared by Build and RebuildType, composing only the given
// records.
func (b *Builder) finishBuild(ctx context.Context, composeNames []string) (*Schema, error) {
	if err := b.composeAll(ctx, composeNames); err != nil {
		return nil, err
	}
	if err := b.validateInterfaceCapabilities(); err != nil {
		return nil, err
	}

	b.importForeignSchemas()
	b.resetResolverOverrides()

	intermediate, err := b.compile()
	if err != nil {
		return nil, err
	}

	hook := b.config.OverrideResolvers
	if hook == nil {
		return intermediate, nil
	}
	if err := hook(ctx, &ResolverOverrideContext{builder: b, Intermediate: intermediate}); err != nil {
		return nil, err
	}
	return b.compile()
}

// derivedClosure collects the type and every type carrying fields derived from it: parents that
// gained convenience child fields of this type. Auxiliary records and generated inputs are
// handled by stripDerived through their name prefixes.
func (b *Builder) derivedClosure(name string) []string {
	affected := []string{name}
	seen := map[string]struct{}{name: {}}

	for _, n := range b.reg.TypeNames() {
		if _, ok := seen[n]; ok {
			continue
		}
		// The query type collects derived fields for every composed type; its bookkeeping is
		// handled separately through queryFields.
		if n == b.queryTypeName() {
			continue
		}
		rec := b.reg.Lookup(n)
		if rec.Kind() != Object && rec.Kind() != Interface {
			continue
		}
		for _, fieldName := range rec.FieldNames() {
			field := rec.Field(fieldName)
			if field.Extensions.CreatedFrom == ProvenanceDerived &&
				field.Type.NamedTypeName() == name {
				affected = append(affected, n)
				seen[n] = struct{}{}
				break
			}
		}
	}
	return affected
}

// stripDerived discards the derived material of the affected types: derived fields on the
// records themselves, derived records generated under their names (auxiliary nested types and
// filter/sort inputs), and their root query fields.
func (b *Builder) stripDerived(affected []string) {
	query := b.reg.Lookup(b.queryTypeName())
	for _, base := range affected {
		for _, n := range b.reg.TypeNames() {
			if n == base || !strings.HasPrefix(n, base) {
				continue
			}
			rec := b.reg.Lookup(n)
			if rec == nil || rec.CreatedFrom() != ProvenanceDerived {
				continue
			}
			// A shared prefix is not enough: AuthorFilterInput belongs to Author, but so does
			// the prefix of AuthorBioFilterInput. Attribute each generated record to the
			// longest declared type name prefixing it.
			if b.derivedOwner(n) == base {
				b.reg.remove(n)
			}
		}

		if rec := b.reg.Lookup(base); rec != nil {
			for _, fieldName := range rec.FieldNames() {
				if rec.Field(fieldName).Extensions.CreatedFrom == ProvenanceDerived {
					rec.RemoveField(fieldName)
				}
			}
		}

		if query != nil {
			for _, fieldName := range b.queryFields[base] {
				query.RemoveField(fieldName)
			}
		}
		delete(b.queryFields, base)
	}
}

// derivedOwner returns the longest non-derived registered type name that strictly prefixes the
// given generated record's name. Generated records are named by prefixing their owner.
func (b *Builder) derivedOwner(name string) string {
	owner := ""
	for _, candidate := range b.reg.TypeNames() {
		if candidate == name || !strings.HasPrefix(name, candidate) {
			continue
		}
		if b.reg.Lookup(candidate).CreatedFrom() == ProvenanceDerived {
			continue
		}
		if len(candidate) > len(owner) {
			owner = candidate
		}
	}
	return owner
}

func (b *Builder) queryTypeName() string {
	return b.config.QueryTypeName
}

func (b *Builder) runner() QueryRunner {
	return b.config.Runner
}

// installBuiltins registers the built-in scalars, the node capability interface, the internal
// metadata type, the root query type, the sort order enum, and the built-in extension catalog.
// Built-ins bypass intake name validation on purpose: the reserved names are reserved for them.
func (b *Builder) installBuiltins() {
	for _, name := range []string{"String", "Int", "Float", "Boolean", "ID", "Date", "JSON"} {
		b.installBuiltin(NewTypeRecord(name, Scalar))
	}

	node := NewTypeRecord(NodeCapabilityName, Interface)
	node.SetDescription("Node Interface")
	node.AddField(&FieldDefinition{Name: "id", Type: NonNullOf(NamedRef("ID"))})
	node.AddField(&FieldDefinition{Name: "parent", Type: NamedRef(NodeCapabilityName)})
	node.AddField(&FieldDefinition{
		Name: "children",
		Type: NonNullOf(ListOf(NonNullOf(NamedRef(NodeCapabilityName)))),
	})
	node.AddField(&FieldDefinition{Name: "internal", Type: NonNullOf(NamedRef("Internal"))})
	b.installBuiltin(node)

	internal := NewTypeRecord("Internal", Object)
	internal.AddField(&FieldDefinition{Name: "type", Type: NonNullOf(NamedRef("String"))})
	internal.AddField(&FieldDefinition{Name: "contentDigest", Type: NonNullOf(NamedRef("String"))})
	internal.AddField(&FieldDefinition{Name: "mediaType", Type: NamedRef("String")})
	internal.AddField(&FieldDefinition{Name: "owner", Type: NamedRef("String")})
	internal.AddField(&FieldDefinition{Name: "content", Type: NamedRef("String")})
	internal.AddField(&FieldDefinition{Name: "description", Type: NamedRef("String")})
	b.installBuiltin(internal)

	b.installBuiltin(NewTypeRecord(b.queryTypeName(), Object))

	sortOrder := NewTypeRecord(sortOrderEnumName, Enum)
	sortOrder.SetEnumValues([]string{string(SortAscending), string(SortDescending)})
	b.installBuiltin(sortOrder)

	b.reg.RegisterExtension(ExtensionSpec{
		Name: "dateformat",
		Args: []ArgumentDefinition{
			{Name: "formatString", Type: NamedRef("String")},
			{Name: "locale", Type: NamedRef("String")},
			{Name: "fromNow", Type: NamedRef("Boolean")},
			{Name: "difference", Type: NamedRef("String")},
		},
	})
	b.reg.RegisterExtension(ExtensionSpec{
		Name: "proxy",
		Args: []ArgumentDefinition{
			{Name: "from", Type: NonNullOf(NamedRef("String"))},
		},
	})
	b.reg.RegisterExtension(ExtensionSpec{
		Name: "link",
		Args: []ArgumentDefinition{
			{Name: "by", Type: NamedRef("String"), DefaultValue: "id", HasDefault: true},
			{Name: "from", Type: NamedRef("String")},
		},
	})
}

func (b *Builder) installBuiltin(rec *TypeRecord) {
	b.reg.register(rec)
	b.reg.MustRetain(rec.Name())
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
