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

// Package report computes the deterministic building analysis: livability
// scores, cost estimates, category breakdowns and complaint trends, straight
// from the raw records. It is the fallback when narrative generation is
// unavailable, and the source of truth for the numeric fields either way.
package report

import (
	"fmt"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/TFMV/BuildingCheck/pkg/db"
)

// Main categories scored for livability.
var mainCategories = []string{
	"HEAT/HOT WATER",
	"PLUMBING",
	"ELECTRIC",
	"GENERAL CONSTRUCTION",
	"ELEVATOR",
	"PAINT/PLASTER",
	"SAFETY",
}

// Repair cost ranges per issue category, in USD.
var costEstimates = map[string]CostRange{
	"HEAT/HOT WATER":       {Min: 500, Max: 5000},
	"PLUMBING":             {Min: 150, Max: 3000},
	"ELECTRIC":             {Min: 200, Max: 2500},
	"PAINT/PLASTER":        {Min: 400, Max: 2000},
	"GENERAL CONSTRUCTION": {Min: 500, Max: 10000},
	"DOOR/WINDOW":          {Min: 200, Max: 1500},
	"ELEVATOR":             {Min: 1000, Max: 15000},
	"OUTSIDE BUILDING":     {Min: 400, Max: 8000},
	"SAFETY":               {Min: 300, Max: 3000},
}

var defaultCostEstimate = CostRange{Min: 200, Max: 1000}

// Trend labels for the monthly complaint fit.
const (
	TrendRising  = "rising"
	TrendFalling = "falling"
	TrendStable  = "stable"
)

type CostRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type CategoryCost struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

// Analysis is the schema shared by the deterministic computation and the
// narrative endpoint.
type Analysis struct {
	LivabilityScore float64            `json:"livability_score"`
	CategoryScores  map[string]float64 `json:"category_scores"`
	Rating          string             `json:"rating"`
	Categories      []CategoryCount    `json:"categories"`
	CostEstimate    CostRange          `json:"cost_estimate"`
	CategoryCosts   []CategoryCost     `json:"category_costs"`
	Trend           string             `json:"trend"`
	Summary         string             `json:"summary"`
}

// CategoryBreakdown counts issues per major category, sorted by descending
// count, ties by name.
func CategoryBreakdown(issues []db.ComplaintRecord) []CategoryCount {
	counts := countByCategory(issues)

	breakdown := make([]CategoryCount, 0, len(counts))
	for name, count := range counts {
		breakdown = append(breakdown, CategoryCount{Name: name, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if breakdown[i].Count != breakdown[j].Count {
			return breakdown[i].Count > breakdown[j].Count
		}
		return breakdown[i].Name < breakdown[j].Name
	})
	return breakdown
}

// LivabilityScore deducts from a perfect 10 per category: zero issues scores
// 10, ten or more scores 0. The overall score is the mean across the main
// categories, rounded to one decimal.
func LivabilityScore(issues []db.ComplaintRecord) (float64, map[string]float64) {
	counts := countByCategory(issues)

	categoryScores := make(map[string]float64, len(mainCategories))
	for _, category := range mainCategories {
		count := counts[category]
		if count > 10 {
			count = 10
		}
		categoryScores[category] = float64(10 - count)
	}

	var sum float64
	for _, score := range categoryScores {
		sum += score
	}
	overall := math.Round(sum/float64(len(mainCategories))*10) / 10

	return overall, categoryScores
}

// Rating buckets an overall livability score into a label.
func Rating(score float64) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 5:
		return "Average"
	default:
		return "Poor"
	}
}

// EstimateCosts scales each category's cost range by the square root of its
// issue count, assuming diminishing marginal cost for repeated issues of the
// same type, and sums the ranges into a building total.
func EstimateCosts(issues []db.ComplaintRecord) (CostRange, []CategoryCost) {
	counts := countByCategory(issues)

	var total CostRange
	costs := make([]CategoryCost, 0, len(counts))
	for category, count := range counts {
		base, ok := costEstimates[category]
		if !ok {
			base = defaultCostEstimate
		}
		scale := math.Sqrt(float64(count))
		cc := CategoryCost{
			Name:  category,
			Count: count,
			Min:   int(math.Round(float64(base.Min) * scale)),
			Max:   int(math.Round(float64(base.Max) * scale)),
		}
		costs = append(costs, cc)
		total.Min += cc.Min
		total.Max += cc.Max
	}

	sort.Slice(costs, func(i, j int) bool {
		if costs[i].Max != costs[j].Max {
			return costs[i].Max > costs[j].Max
		}
		return costs[i].Name < costs[j].Name
	})
	return total, costs
}

// Trend fits a least-squares line through monthly complaint counts and
// classifies the slope. Records with unparseable received dates are ignored;
// fewer than three distinct months is reported stable.
func Trend(issues []db.ComplaintRecord) string {
	buckets := make(map[string]int)
	var minMonth, maxMonth time.Time

	for _, issue := range issues {
		received, ok := parseReceivedDate(issue.ReceivedDate)
		if !ok {
			continue
		}
		month := time.Date(received.Year(), received.Month(), 1, 0, 0, 0, 0, time.UTC)
		buckets[month.Format("2006-01")]++
		if minMonth.IsZero() || month.Before(minMonth) {
			minMonth = month
		}
		if maxMonth.IsZero() || month.After(maxMonth) {
			maxMonth = month
		}
	}

	if minMonth.IsZero() {
		return TrendStable
	}

	// Months without complaints count as zero so gaps pull the fit down.
	var xs, ys []float64
	for month := minMonth; !month.After(maxMonth); month = month.AddDate(0, 1, 0) {
		xs = append(xs, float64(len(xs)))
		ys = append(ys, float64(buckets[month.Format("2006-01")]))
	}
	if len(xs) < 3 {
		return TrendStable
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	switch {
	case slope > 0.1:
		return TrendRising
	case slope < -0.1:
		return TrendFalling
	default:
		return TrendStable
	}
}

// Build computes the full deterministic analysis for a building's issues.
func Build(address string, issues []db.ComplaintRecord) Analysis {
	overall, categoryScores := LivabilityScore(issues)
	breakdown := CategoryBreakdown(issues)
	total, categoryCosts := EstimateCosts(issues)
	trend := Trend(issues)

	return Analysis{
		LivabilityScore: overall,
		CategoryScores:  categoryScores,
		Rating:          Rating(overall),
		Categories:      breakdown,
		CostEstimate:    total,
		CategoryCosts:   categoryCosts,
		Trend:           trend,
		Summary:         summarize(address, issues, breakdown, overall, total, trend),
	}
}

func summarize(address string, issues []db.ComplaintRecord, breakdown []CategoryCount, overall float64, total CostRange, trend string) string {
	if len(issues) == 0 {
		return fmt.Sprintf("No housing-code complaints are on record for %s.", address)
	}
	top := breakdown[0]
	return fmt.Sprintf(
		"%s has %d reported housing-code issues; the most frequent category is %s (%d). "+
			"The building scores %.1f/10 (%s) for livability, with an estimated repair exposure of $%d-$%d. "+
			"Complaint volume is %s.",
		address, len(issues), top.Name, top.Count,
		overall, Rating(overall), total.Min, total.Max, trend,
	)
}

func countByCategory(issues []db.ComplaintRecord) map[string]int {
	counts := make(map[string]int)
	for _, issue := range issues {
		category := issue.MajorCategory
		if category == "" {
			category = "OTHER"
		}
		counts[category]++
	}
	return counts
}

// parseReceivedDate accepts the ISO form used by the hosted table and the
// MM/DD/YYYY form used by the raw city export.
func parseReceivedDate(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "01/02/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
