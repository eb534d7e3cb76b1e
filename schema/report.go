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
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

// ReportKind classifies a non-fatal diagnostic.
type ReportKind uint8

// Enumeration of ReportKind.
const (
	KindOther             ReportKind = iota
	KindParse                        // the textual parser rejected a schema source
	KindUnsafeMerge                  // a merge combined definitions owned by different plugins
	KindExtensionArgument            // a field extension carried unknown or mistyped arguments
	KindChildOf                      // a childOf declaration was placed on an ineligible type
	KindResolverOverride             // a resolver override was rejected or mistargeted
	KindDeprecation                  // a deprecated code path was taken
)

func (k ReportKind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindUnsafeMerge:
		return "unsafe merge"
	case KindExtensionArgument:
		return "extension argument"
	case KindChildOf:
		return "childOf"
	case KindResolverOverride:
		return "resolver override"
	case KindDeprecation:
		return "deprecation"
	}
	return "other"
}

// MarshalText makes ReportKind serialize as its name.
func (k ReportKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Report is one structured diagnostic emitted during a build. Warnings and errors are both
// non-fatal; fatal conditions abort the build with an error instead.
type Report struct {
	Kind      ReportKind `json:"kind"`
	Message   string     `json:"message"`
	TypeName  string     `json:"type,omitempty"`
	FieldName string     `json:"field,omitempty"`
	Plugin    string     `json:"plugin,omitempty"`
}

func (r Report) String() string {
	var buf strings.Builder
	buf.WriteString(r.Kind.String())
	if len(r.TypeName) > 0 {
		buf.WriteString(": type ")
		buf.WriteString(r.TypeName)
		if len(r.FieldName) > 0 {
			buf.WriteString(", field ")
			buf.WriteString(r.FieldName)
		}
	}
	buf.WriteString(": ")
	buf.WriteString(r.Message)
	return buf.String()
}

// Reporter collects the structured warnings and errors of one build. It is safe for concurrent
// use by the composition fan-out.
type Reporter struct {
	mu       sync.Mutex
	warnings []Report
	errors   []Report
}

// Warn records a warning.
func (rep *Reporter) Warn(r Report) {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	rep.warnings = append(rep.warnings, r)
}

// Error records a non-fatal error.
func (rep *Reporter) Error(r Report) {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	rep.errors = append(rep.errors, r)
}

// Warnings returns the warnings recorded so far.
func (rep *Reporter) Warnings() []Report {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	return append([]Report(nil), rep.warnings...)
}

// Errors returns the non-fatal errors recorded so far.
func (rep *Reporter) Errors() []Report {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	return append([]Report(nil), rep.errors...)
}

// JSON serializes the collected diagnostics.
func (rep *Reporter) JSON() ([]byte, error) {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	return jsoniter.Marshal(struct {
		Warnings []Report `json:"warnings"`
		Errors   []Report `json:"errors"`
	}{rep.warnings, rep.errors})
}

func (rep *Reporter) reset() {
	rep.mu.Lock()
	defer rep.mu.Unlock()
	rep.warnings = nil
	rep.errors = nil
}
