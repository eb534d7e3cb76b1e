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

// ChildOfSpec declares that a type's nodes are children of nodes of other types. Parents are
// named directly via Types and/or indirectly via MimeTypes, which selects every parent type whose
// MimeTypes extension covers one of the given media types. Many controls whether the generated
// convenience field on the parent is plural.
type ChildOfSpec struct {
	Types     []string
	MimeTypes []string
	Many      bool
}

func (spec *ChildOfSpec) clone() *ChildOfSpec {
	if spec == nil {
		return nil
	}
	out := &ChildOfSpec{Many: spec.Many}
	out.Types = append(out.Types, spec.Types...)
	out.MimeTypes = append(out.MimeTypes, spec.MimeTypes...)
	return out
}

// Extensions carries the behavioral metadata attached to a type or a field. The recognized
// entries are strongly typed; everything a user declares beyond them lives in the open User map
// and is validated against the extension catalog registered on the Builder.
type Extensions struct {
	// Infer controls whether fields are inferred from content records for this type. Unset means
	// the site default (inference on).
	Infer *bool

	// AddDefaultResolvers controls whether inferred fields get default resolvers attached.
	AddDefaultResolvers *bool

	// MimeTypes lists the media types the type is responsible for handling.
	MimeTypes []string

	// ChildOf declares parent associations for the type's nodes.
	ChildOf *ChildOfSpec

	// NodeInterface marks an interface as queryable: it gets its own root query fields and every
	// implementer must carry the Node capability.
	NodeInterface bool

	// CreatedFrom records which intake path produced the type or field.
	CreatedFrom Provenance

	// Plugin is the name of the owning plugin, or empty for site-owned definitions.
	Plugin string

	// Searchable, Sortable and NeedsResolve are stamped on fields by the classification pass.
	Searchable   bool
	Sortable     bool
	NeedsResolve bool

	// OriginalFieldConfig snapshots a field's pre-override definition so a later rebuild can
	// restore it before overrides are reapplied.
	OriginalFieldConfig *FieldDefinition

	// User holds user-declared extensions: extension name to argument values.
	User map[string]map[string]interface{}
}

// UserArgs returns the argument values of the named user extension.
func (ext *Extensions) UserArgs(name string) (map[string]interface{}, bool) {
	args, ok := ext.User[name]
	return args, ok
}

// SetUser attaches a user extension.
func (ext *Extensions) SetUser(name string, args map[string]interface{}) {
	if ext.User == nil {
		ext.User = map[string]map[string]interface{}{}
	}
	if args == nil {
		args = map[string]interface{}{}
	}
	ext.User[name] = args
}

// merge folds the incoming extensions into ext. Entries the incoming side carries win on
// collision; entries it leaves unset are kept.
func (ext *Extensions) merge(in *Extensions) {
	if in.Infer != nil {
		ext.Infer = in.Infer
	}
	if in.AddDefaultResolvers != nil {
		ext.AddDefaultResolvers = in.AddDefaultResolvers
	}
	if len(in.MimeTypes) > 0 {
		ext.MimeTypes = append([]string(nil), in.MimeTypes...)
	}
	if in.ChildOf != nil {
		ext.ChildOf = in.ChildOf.clone()
	}
	if in.NodeInterface {
		ext.NodeInterface = true
	}
	if len(in.CreatedFrom) > 0 {
		ext.CreatedFrom = in.CreatedFrom
	}
	if len(in.Plugin) > 0 {
		ext.Plugin = in.Plugin
	}
	if in.Searchable {
		ext.Searchable = true
	}
	if in.Sortable {
		ext.Sortable = true
	}
	if in.NeedsResolve {
		ext.NeedsResolve = true
	}
	if in.OriginalFieldConfig != nil {
		ext.OriginalFieldConfig = in.OriginalFieldConfig.clone()
	}
	for name, args := range in.User {
		ext.SetUser(name, copyArgValues(args))
	}
}

func (ext *Extensions) clone() Extensions {
	out := *ext
	out.MimeTypes = append([]string(nil), ext.MimeTypes...)
	out.ChildOf = ext.ChildOf.clone()
	out.OriginalFieldConfig = ext.OriginalFieldConfig.clone()
	if ext.User != nil {
		out.User = make(map[string]map[string]interface{}, len(ext.User))
		for name, args := range ext.User {
			out.User[name] = copyArgValues(args)
		}
	}
	return out
}

func copyArgValues(args map[string]interface{}) map[string]interface{} {
	if args == nil {
		return nil
	}
	out := make(map[string]interface{}, len(args))
	for name, value := range args {
		out[name] = copyValue(value)
	}
	return out
}

func copyValue(value interface{}) interface{} {
	switch value := value.(type) {
	case map[string]interface{}:
		return copyArgValues(value)
	case []interface{}:
		out := make([]interface{}, len(value))
		for i, elem := range value {
			out[i] = copyValue(elem)
		}
		return out
	default:
		return value
	}
}
