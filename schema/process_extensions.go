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
	"fmt"
	"sort"
)

// stampProvenance stamps createdFrom and plugin on the type and on every one of its fields,
// using the incoming definition's provenance and owner. After a merge this runs again so the
// incoming side's stamp wins.
func (b *Builder) stampProvenance(rec *TypeRecord, p Provenance, owner string) {
	ext := rec.Extensions()
	ext.CreatedFrom = p
	ext.Plugin = owner
	for _, name := range rec.FieldNames() {
		field := rec.Field(name)
		field.Extensions.CreatedFrom = p
		field.Extensions.Plugin = owner
	}
}

// translateTypeDirectives translates the type-level directives of a textual declaration into
// extension entries. A malformed nodeInterface declaration is a fatal configuration error.
func (b *Builder) translateTypeDirectives(rec *TypeRecord, decl TypeDeclaration) error {
	ext := rec.Extensions()
	for _, dir := range decl.Directives {
		switch dir.Name {
		case "infer":
			ext.Infer = boolPtr(true)
			translateDefaultResolvers(ext, dir)

		case "dontInfer":
			ext.Infer = boolPtr(false)
			translateDefaultResolvers(ext, dir)

		case "mimeTypes":
			ext.MimeTypes = stringSliceArg(dir.Args, "types")

		case "childOf":
			ext.ChildOf = &ChildOfSpec{
				Types:     stringSliceArg(dir.Args, "types"),
				MimeTypes: stringSliceArg(dir.Args, "mimeTypes"),
			}
			if many, ok := dir.Args["many"].(bool); ok {
				ext.ChildOf.Many = many
			}

		case "nodeInterface":
			if err := checkNodeInterface(rec); err != nil {
				return err
			}
			ext.NodeInterface = true

		default:
			ext.SetUser(dir.Name, dir.Args)
		}
	}
	return nil
}

func translateDefaultResolvers(ext *Extensions, dir DirectiveUse) {
	if noDefault, ok := dir.Args["noDefaultResolvers"].(bool); ok {
		ext.AddDefaultResolvers = boolPtr(!noDefault)
	}
}

// checkNodeInterface accepts the nodeInterface directive only on interface records declaring a
// required identity field of non-null identifier type.
func checkNodeInterface(rec *TypeRecord) error {
	if rec.Kind() != Interface {
		return fmt.Errorf(
			"type %s: nodeInterface can only be declared on interface types, not on %s types",
			rec.Name(), rec.Kind())
	}
	id := rec.Field("id")
	if id == nil || !refsEqual(id.Type, NonNullOf(NamedRef("ID"))) {
		return fmt.Errorf(
			"type %s: interfaces marked with nodeInterface must declare a field `id: ID!`",
			rec.Name())
	}
	return nil
}

// validateFieldExtensions checks every user-declared field extension on the record against the
// registered extension-argument catalog. Violations are reported as field-level errors and the
// extension is kept; arguments with declared defaults are back-filled.
// fieldNames limits the check to the fields the current source contributed, so a bad extension
// is reported once for the source that declared it rather than once per later merge into the
// same type.
func (b *Builder) validateFieldExtensions(rec *TypeRecord, fieldNames []string) {
	for _, fieldName := range fieldNames {
		field := rec.Field(fieldName)
		if field == nil || len(field.Extensions.User) == 0 {
			continue
		}

		extNames := make([]string, 0, len(field.Extensions.User))
		for name := range field.Extensions.User {
			extNames = append(extNames, name)
		}
		sort.Strings(extNames)

		for _, extName := range extNames {
			args := field.Extensions.User[extName]
			spec, ok := b.reg.ExtensionSpec(extName)
			if !ok {
				b.fieldExtensionError(rec, fieldName, fmt.Sprintf(
					"extension %q is not registered", extName))
				continue
			}

			declared := map[string]ArgumentDefinition{}
			for _, arg := range spec.Args {
				declared[arg.Name] = arg
			}

			argNames := make([]string, 0, len(args))
			for name := range args {
				argNames = append(argNames, name)
			}
			sort.Strings(argNames)
			for _, argName := range argNames {
				decl, known := declared[argName]
				if !known {
					b.fieldExtensionError(rec, fieldName, fmt.Sprintf(
						"extension %q does not accept an argument %q", extName, argName))
					continue
				}
				for _, violation := range b.checkExtensionValue(args[argName], decl.Type, argName) {
					b.fieldExtensionError(rec, fieldName, fmt.Sprintf(
						"extension %q: %s", extName, violation))
				}
			}

			for _, arg := range spec.Args {
				if _, present := args[arg.Name]; !present && arg.HasDefault {
					args[arg.Name] = arg.DefaultValue
				}
			}
		}
	}
}

func (b *Builder) fieldExtensionError(rec *TypeRecord, fieldName, message string) {
	b.rep.Error(Report{
		Kind:      KindExtensionArgument,
		Message:   message,
		TypeName:  rec.Name(),
		FieldName: fieldName,
		Plugin:    rec.Plugin(),
	})
}

// checkExtensionValue checks an argument value against its declared type, recursing through
// non-null and list wrapping. A bare value is accepted where a list is declared, matching input
// coercion of singletons.
func (b *Builder) checkExtensionValue(value interface{}, declType TypeRef, path string) []string {
	declType = declType.forced()
	switch declType.kind {
	case refNonNull:
		if value == nil {
			return []string{fmt.Sprintf("argument %q must not be null", path)}
		}
		return b.checkExtensionValue(value, *declType.inner, path)

	case refList:
		if value == nil {
			return nil
		}
		if list, ok := value.([]interface{}); ok {
			var violations []string
			for i, elem := range list {
				violations = append(violations,
					b.checkExtensionValue(elem, *declType.inner, fmt.Sprintf("%s[%d]", path, i))...)
			}
			return violations
		}
		return b.checkExtensionValue(value, *declType.inner, path)

	case refNamed:
		return b.checkNamedValue(value, declType.name, path)
	}
	return nil
}

func (b *Builder) checkNamedValue(value interface{}, typeName, path string) []string {
	if value == nil {
		return nil
	}
	mismatch := func() []string {
		return []string{fmt.Sprintf("argument %q expects a value of type %s", path, typeName)}
	}

	switch typeName {
	case "String", "ID", "Date":
		if _, ok := value.(string); !ok {
			return mismatch()
		}
		return nil

	case "Int":
		switch v := value.(type) {
		case int, int32, int64:
			return nil
		case float64:
			if v == float64(int64(v)) {
				return nil
			}
		}
		return mismatch()

	case "Float":
		switch value.(type) {
		case int, int32, int64, float32, float64:
			return nil
		}
		return mismatch()

	case "Boolean":
		if _, ok := value.(bool); !ok {
			return mismatch()
		}
		return nil

	case "JSON":
		return nil
	}

	rec := b.reg.Lookup(typeName)
	if rec == nil {
		return []string{fmt.Sprintf("argument %q references unknown type %s", path, typeName)}
	}
	switch rec.Kind() {
	case Enum:
		name, ok := value.(string)
		if !ok {
			return mismatch()
		}
		for _, ev := range rec.EnumValues() {
			if ev == name {
				return nil
			}
		}
		return []string{fmt.Sprintf("argument %q: %q is not a value of enum %s", path, name, typeName)}

	case Input:
		fields, ok := value.(map[string]interface{})
		if !ok {
			return mismatch()
		}
		var violations []string
		for _, fieldName := range rec.FieldNames() {
			field := rec.Field(fieldName)
			if fieldValue, present := fields[fieldName]; present {
				violations = append(violations,
					b.checkExtensionValue(fieldValue, field.Type, path+"."+fieldName)...)
			}
		}
		return violations
	}
	return nil
}

func boolPtr(v bool) *bool {
	return &v
}

func stringSliceArg(args map[string]interface{}, name string) []string {
	switch v := args[name].(type) {
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, elem := range v {
			if s, ok := elem.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		return []string{v}
	}
	return nil
}
