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

// Package address turns free-text search queries into structured
// (house number, street name, borough) triples.
package address

import (
	"fmt"
	"regexp"
	"strings"
)

// Boroughs are the five NYC administrative divisions, upper-cased as they
// appear in the complaint data.
var Boroughs = []string{"MANHATTAN", "BROOKLYN", "QUEENS", "BRONX", "STATEN ISLAND"}

// IsBorough reports whether s names one of the five boroughs,
// case-insensitively.
func IsBorough(s string) bool {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for _, b := range Boroughs {
		if b == upper {
			return true
		}
	}
	return false
}

// leading digit run, then everything up to the first comma
var addressPattern = regexp.MustCompile(`^(\d+)\s+(.+?)(?:,|$)`)

// ParsedAddress is a structured query. Borough is empty when the query
// carried none. Raw preserves the original text for display.
type ParsedAddress struct {
	HouseNumber string
	StreetName  string
	Borough     string
	Raw         string
}

// ParseError indicates the query could not be decomposed into house number,
// street name and borough. No partial result accompanies it.
type ParseError struct {
	Query  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse address %q: %s", e.Query, e.Reason)
}

// IsParseError checks if the error is a parse error
func IsParseError(err error) bool {
	_, ok := err.(*ParseError)
	return ok
}

// ParseStreet extracts a leading digit run as the house number and the
// remainder up to the first comma as the street name. It does not require a
// borough; callers that receive the borough separately use this form.
func ParseStreet(query string) (ParsedAddress, error) {
	raw := strings.TrimSpace(query)
	m := addressPattern.FindStringSubmatch(strings.ToLower(raw))
	if m == nil {
		return ParsedAddress{}, &ParseError{Query: query, Reason: "no leading house number"}
	}
	street := strings.TrimSpace(m[2])
	if street == "" {
		return ParsedAddress{}, &ParseError{Query: query, Reason: "no street name"}
	}
	return ParsedAddress{
		HouseNumber: m[1],
		StreetName:  street,
		Raw:         raw,
	}, nil
}

// Parse requires the full "<number> <street>, <borough>" form: exactly one
// comma separating the street address from the borough. The borough is
// upper-cased, trimmed, and must name one of the five boroughs.
func Parse(query string) (ParsedAddress, error) {
	raw := strings.TrimSpace(query)
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return ParsedAddress{}, &ParseError{
			Query:  query,
			Reason: `expected "<number> <street>, <borough>"`,
		}
	}

	parsed, err := ParseStreet(parts[0])
	if err != nil {
		return ParsedAddress{}, err
	}

	borough := strings.ToUpper(strings.TrimSpace(parts[1]))
	if borough == "" {
		return ParsedAddress{}, &ParseError{Query: query, Reason: "empty borough"}
	}
	if !IsBorough(borough) {
		return ParsedAddress{}, &ParseError{Query: query, Reason: fmt.Sprintf("unknown borough %q", borough)}
	}

	parsed.Borough = borough
	parsed.Raw = raw
	return parsed, nil
}
