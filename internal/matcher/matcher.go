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

// Package matcher finds the building that best fits a parsed address query
// and aggregates its complaint records.
package matcher

import (
	"context"
	"fmt"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"

	"github.com/TFMV/BuildingCheck/internal/address"
	"github.com/TFMV/BuildingCheck/pkg/db"
)

// Source is the complaint-query surface the matcher runs against. The
// production implementation is db.Store; tests substitute a fake.
type Source interface {
	SearchExact(ctx context.Context, houseNumber, streetName, borough string, limit int) ([]db.ComplaintRecord, error)
	SearchFuzzy(ctx context.Context, houseNumber, streetName string, limit int) ([]db.ComplaintRecord, error)
	SearchAtAddress(ctx context.Context, houseNumber, streetName string, limit int) ([]db.ComplaintRecord, error)
	AddressesInBorough(ctx context.Context, borough string, limit int) ([]db.CandidateAddress, error)
}

const (
	defaultPageLimit      = 100
	defaultCandidateLimit = 2000
)

// Matcher runs up to three search strategies in strict order, stopping at the
// first that yields records.
type Matcher struct {
	source         Source
	pageLimit      int
	candidateLimit int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithPageLimit caps the number of rows returned by the exact and fuzzy
// queries.
func WithPageLimit(n int) Option {
	return func(m *Matcher) { m.pageLimit = n }
}

// WithCandidateLimit caps the borough-wide candidate scan used by the
// nearest-neighbor fallback.
func WithCandidateLimit(n int) Option {
	return func(m *Matcher) { m.candidateLimit = n }
}

func New(source Source, opts ...Option) *Matcher {
	m := &Matcher{
		source:         source,
		pageLimit:      defaultPageLimit,
		candidateLimit: defaultCandidateLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Match resolves a parsed address to complaint records: exact query first,
// then fuzzy, then the nearest-neighbor fallback. An empty result after all
// three strategies is not an error.
func (m *Matcher) Match(ctx context.Context, parsed address.ParsedAddress) ([]db.ComplaintRecord, error) {
	records, err := m.source.SearchExact(ctx, parsed.HouseNumber, parsed.StreetName, parsed.Borough, m.pageLimit)
	if err != nil {
		return nil, NewSourceError("exact search", err)
	}
	if len(records) > 0 {
		log.Debug().Int("records", len(records)).Str("strategy", "exact").Msg("match found")
		return records, nil
	}

	records, err = m.source.SearchFuzzy(ctx, parsed.HouseNumber, parsed.StreetName, m.pageLimit)
	if err != nil {
		return nil, NewSourceError("fuzzy search", err)
	}
	if len(records) > 0 {
		log.Debug().Int("records", len(records)).Str("strategy", "fuzzy").Msg("match found")
		return records, nil
	}

	// The fallback scans one borough; without one there is nothing to scan.
	if parsed.Borough == "" {
		return nil, nil
	}
	return m.nearestByEditDistance(ctx, parsed)
}

// nearestByEditDistance fetches candidate addresses in the query's borough,
// picks the one with the smallest Levenshtein distance to the standardized
// query address, and re-queries full records at that address. Ties resolve to
// the lexicographically smallest candidate.
func (m *Matcher) nearestByEditDistance(ctx context.Context, parsed address.ParsedAddress) ([]db.ComplaintRecord, error) {
	candidates, err := m.source.AddressesInBorough(ctx, parsed.Borough, m.candidateLimit)
	if err != nil {
		return nil, NewSourceError("borough candidate scan", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	target := address.Standardize(fmt.Sprintf("%s %s", parsed.HouseNumber, parsed.StreetName))

	var best db.CandidateAddress
	var bestKey string
	bestDist := -1
	seen := make(map[string]bool, len(candidates))

	for _, c := range candidates {
		key := fmt.Sprintf("%s %s", c.HouseNumber, c.StreetName)
		if seen[key] {
			continue
		}
		seen[key] = true

		dist := editDistance(target, address.Standardize(key))
		if bestDist < 0 || dist < bestDist || (dist == bestDist && key < bestKey) {
			best = c
			bestKey = key
			bestDist = dist
		}
	}

	log.Debug().
		Str("query", target).
		Str("candidate", bestKey).
		Int("distance", bestDist).
		Msg("nearest-neighbor fallback selected")

	records, err := m.source.SearchAtAddress(ctx, best.HouseNumber, best.StreetName, m.pageLimit)
	if err != nil {
		return nil, NewSourceError("fallback address search", err)
	}
	return records, nil
}

// editDistance is the Levenshtein distance between two standardized address
// strings.
func editDistance(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}
