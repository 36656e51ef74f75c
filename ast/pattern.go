// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ast

import "github.com/loom-lang/loomc/source"

// PatternKind discriminates the variants folded into Pattern.
type PatternKind uint8

const (
	PatternInvalid PatternKind = iota
	PatternWildcard             // _
	PatternBinding               // name, or name @ subpattern
	PatternLiteral               // an int/float/string/char/bool/null literal
	PatternTuple                 // (a, b, c)
	PatternStruct                // Path { field: pat, .. }
	PatternEnumVariant           // Path(pat, pat) or Path { field: pat }
	PatternOr                    // pat | pat | pat
	PatternRange                 // lo..hi or lo..=hi
	PatternReference             // &pat or &mut pat
)

// FieldPattern is one `name: pattern` entry of a struct pattern.
type FieldPattern struct {
	Name    Ident
	Pattern PatternID
}

// Pattern is every pattern node, tagged by Kind.
type Pattern struct {
	Kind PatternKind
	Span source.Span

	// PatternBinding (Mut below marks a `mut` binding).
	// PatternReference also uses Sub, for the referenced pattern.
	Name Ident
	Sub  PatternID // the `@` subpattern, nil if absent

	// PatternLiteral: reuses the literal payload shape of Expr by
	// pointing at the literal expression node that was parsed, rather
	// than duplicating the literal-kind discrimination here.
	Literal ExprID

	// PatternTuple, PatternOr: the element/alternative patterns.
	Elems []PatternID

	// PatternStruct, PatternEnumVariant.
	Path      Path
	Fields    []FieldPattern
	RestField bool // struct pattern ends with `..`

	// PatternRange.
	RangeStart     ExprID
	RangeEnd       ExprID
	RangeInclusive bool

	// PatternReference, PatternBinding.
	Mut bool
}
