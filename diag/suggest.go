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

package diag

import "github.com/hbollon/go-edlib"

// maxSuggestionDistance bounds how far a misspelling may be from a
// vocabulary entry before Suggest gives up, so that wildly different
// identifiers don't generate noisy "did you mean" text.
const maxSuggestionDistance = 2

// Suggest returns the entry in vocabulary closest to got by Levenshtein
// distance, if that distance is within maxSuggestionDistance, and "" with
// ok == false otherwise.
//
// This only augments a diagnostic's message text; it never changes
// whether an error is reported, or the span/severity it carries.
func Suggest(got string, vocabulary []string) (closest string, ok bool) {
	if got == "" || len(vocabulary) == 0 {
		return "", false
	}

	best := maxSuggestionDistance + 1
	for _, candidate := range vocabulary {
		dist := edlib.LevenshteinDistance(got, candidate)
		if dist < best {
			best = dist
			closest = candidate
		}
	}
	if best > maxSuggestionDistance {
		return "", false
	}
	return closest, true
}

// SuggestMessage formats a "did you mean %q?" clause to append to a
// diagnostic message, or "" if no close match was found.
func SuggestMessage(got string, vocabulary []string) string {
	closest, ok := Suggest(got, vocabulary)
	if !ok {
		return ""
	}
	return " (did you mean \"" + closest + "\"?)"
}
