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

package matcher

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/TFMV/BuildingCheck/pkg/db"
)

// BuildingData is the result of one successful search: the best-matching
// building and every complaint record grouped under it.
type BuildingData struct {
	Borough         string               `json:"borough"`
	Address         string               `json:"address"`
	HousingIssues   []db.ComplaintRecord `json:"housing_issues"`
	BuildingID      string               `json:"building_id,omitempty"`
	TotalComplaints int                  `json:"total_complaints"`
}

var numericToken = regexp.MustCompile(`^\d+$`)

// BuildingKey returns the normalized grouping key for a record:
// "{house number} {street name}, {borough}", upper-cased and trimmed.
func BuildingKey(rec db.ComplaintRecord) string {
	key := fmt.Sprintf("%s %s, %s", rec.HouseNumber, rec.StreetName, rec.Borough)
	return strings.ToUpper(strings.TrimSpace(key))
}

// GroupByBuilding buckets records by their normalized building key.
func GroupByBuilding(records []db.ComplaintRecord) map[string][]db.ComplaintRecord {
	groups := make(map[string][]db.ComplaintRecord)
	for _, rec := range records {
		key := BuildingKey(rec)
		groups[key] = append(groups[key], rec)
	}
	return groups
}

// ScoreAddress rates how well a candidate building key matches a search
// query. Both strings are upper-cased and trimmed before comparison. The
// scale is additive: an exact match short-circuits at 100; otherwise a
// matching house-number token is worth 50, each shared word 10, the key
// appearing inside the query 30, and the query appearing inside the key 20.
func ScoreAddress(candidate, query string) int {
	addr := strings.ToUpper(strings.TrimSpace(candidate))
	q := strings.ToUpper(strings.TrimSpace(query))

	if addr == q {
		return 100
	}

	score := 0
	addrParts := strings.Fields(addr)
	queryParts := strings.Fields(q)

	addrHouse := firstNumericToken(addrParts)
	queryHouse := firstNumericToken(queryParts)
	if addrHouse != "" && queryHouse != "" && addrHouse == queryHouse {
		score += 50
	}

	queryWords := make(map[string]bool, len(queryParts))
	for _, w := range queryParts {
		queryWords[w] = true
	}
	for _, w := range addrParts {
		if queryWords[w] {
			score += 10
		}
	}

	if strings.Contains(q, addr) {
		score += 30
	}
	if strings.Contains(addr, q) {
		score += 20
	}

	return score
}

func firstNumericToken(parts []string) string {
	for _, p := range parts {
		if numericToken.MatchString(p) {
			return p
		}
	}
	return ""
}

// Aggregate groups records into buildings and picks the one whose key best
// matches the original query. An empty record set yields the canonical
// no-results value, not an error. Candidate keys are visited in sorted order
// so score ties resolve deterministically to the smallest key.
func Aggregate(records []db.ComplaintRecord, originalQuery string) BuildingData {
	groups := GroupByBuilding(records)

	if len(groups) == 0 {
		return BuildingData{
			Borough:         "Unknown",
			Address:         originalQuery,
			HousingIssues:   []db.ComplaintRecord{},
			TotalComplaints: 0,
		}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bestKey := keys[0]
	bestScore := ScoreAddress(bestKey, originalQuery)
	for _, key := range keys[1:] {
		if score := ScoreAddress(key, originalQuery); score > bestScore {
			bestKey = key
			bestScore = score
		}
	}

	issues := groups[bestKey]
	log.Debug().
		Str("address", bestKey).
		Int("score", bestScore).
		Int("issues", len(issues)).
		Msg("selected best matching building")

	first := issues[0]
	borough := first.Borough
	if borough == "" {
		borough = "Unknown"
	}

	return BuildingData{
		Borough:         borough,
		Address:         bestKey,
		HousingIssues:   issues,
		BuildingID:      first.BuildingID,
		TotalComplaints: len(issues),
	}
}
