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

// Package schema composes type definitions arriving from multiple sources (schema-language text,
// type-builder descriptors, inferred-from-data fields, and native records) into one consistent,
// conflict-checked registry, attaches behavioral metadata to types and fields, generates the
// standard node and root query fields, and compiles the result into a queryable Schema.
//
// A Builder drives one registry through the build phases: intake (with in-place merging of
// redundant declarations), extension processing, the field composition pipeline, validation,
// third-party schema integration, resolver overrides, and finally compilation. A targeted rebuild
// of a single type and its derived types is available through Builder.RebuildType and produces
// the same registry state as a full build over the same inputs.
package schema
