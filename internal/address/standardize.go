// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package address

import (
	"strings"
	"unicode"
)

// NYC street-name variations seen in the complaint data. "ST" vs "STREET",
// "AVE" vs "AVENUE" and friends; both sides of a comparison are reduced to
// the short form before an edit distance is taken.
var abbreviations = map[string]string{
	"avenue":     "ave",
	"boulevard":  "blvd",
	"court":      "ct",
	"drive":      "dr",
	"expressway": "expy",
	"lane":       "ln",
	"parkway":    "pkwy",
	"place":      "pl",
	"road":       "rd",
	"square":     "sq",
	"street":     "st",
	"terrace":    "ter",
	"north":      "n",
	"south":      "s",
	"east":       "e",
	"west":       "w",
}

var ordinalSuffixes = []string{"st", "nd", "rd", "th"}

// Standardize lower-cases a street address, strips punctuation and ordinal
// suffixes on numbers ("5th" -> "5"), collapses whitespace and abbreviates
// common suffix words. Used to normalize addresses before comparison in the
// nearest-neighbor fallback.
func Standardize(street string) string {
	street = strings.ToLower(strings.TrimSpace(street))

	street = strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, street)

	words := strings.Fields(street)
	for i, word := range words {
		word = stripOrdinal(word)
		if abbr, ok := abbreviations[word]; ok {
			word = abbr
		}
		words[i] = word
	}

	return strings.Join(words, " ")
}

// stripOrdinal turns "5th", "1st", "2nd", "3rd" into "5", "1", "2", "3".
func stripOrdinal(word string) string {
	for _, suffix := range ordinalSuffixes {
		trimmed := strings.TrimSuffix(word, suffix)
		if trimmed != word && trimmed != "" && isNumeric(trimmed) {
			return trimmed
		}
	}
	return word
}

// isNumeric checks if a string contains only numeric characters
func isNumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}
