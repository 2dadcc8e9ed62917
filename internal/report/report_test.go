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

package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/BuildingCheck/internal/report"
	"github.com/TFMV/BuildingCheck/pkg/db"
)

func issues(categories ...string) []db.ComplaintRecord {
	records := make([]db.ComplaintRecord, len(categories))
	for i, c := range categories {
		records[i] = db.ComplaintRecord{MajorCategory: c}
	}
	return records
}

func TestLivabilityScoreNoIssues(t *testing.T) {
	overall, scores := report.LivabilityScore(nil)
	assert.Equal(t, 10.0, overall)
	for category, score := range scores {
		assert.Equalf(t, 10.0, score, "category %s", category)
	}
}

func TestLivabilityScoreDeductions(t *testing.T) {
	// three heat complaints: HEAT/HOT WATER drops to 7, the other six
	// categories stay at 10. Mean = 67/7 = 9.571..., rounded to 9.6.
	overall, scores := report.LivabilityScore(issues(
		"HEAT/HOT WATER", "HEAT/HOT WATER", "HEAT/HOT WATER",
	))
	assert.Equal(t, 7.0, scores["HEAT/HOT WATER"])
	assert.Equal(t, 10.0, scores["PLUMBING"])
	assert.Equal(t, 9.6, overall)
}

func TestLivabilityScoreFlooredAtZero(t *testing.T) {
	many := make([]string, 50)
	for i := range many {
		many[i] = "ELECTRIC"
	}
	_, scores := report.LivabilityScore(issues(many...))
	assert.Equal(t, 0.0, scores["ELECTRIC"])
}

func TestRating(t *testing.T) {
	assert.Equal(t, "Excellent", report.Rating(10))
	assert.Equal(t, "Excellent", report.Rating(8))
	assert.Equal(t, "Average", report.Rating(7.9))
	assert.Equal(t, "Average", report.Rating(5))
	assert.Equal(t, "Poor", report.Rating(4.9))
	assert.Equal(t, "Poor", report.Rating(0))
}

func TestCategoryBreakdown(t *testing.T) {
	breakdown := report.CategoryBreakdown(issues(
		"PLUMBING", "HEAT/HOT WATER", "PLUMBING", "ELECTRIC", "PLUMBING", "ELECTRIC",
	))

	require.Len(t, breakdown, 3)
	assert.Equal(t, report.CategoryCount{Name: "PLUMBING", Count: 3}, breakdown[0])
	assert.Equal(t, report.CategoryCount{Name: "ELECTRIC", Count: 2}, breakdown[1])
	assert.Equal(t, report.CategoryCount{Name: "HEAT/HOT WATER", Count: 1}, breakdown[2])
}

func TestCategoryBreakdownTiesByName(t *testing.T) {
	breakdown := report.CategoryBreakdown(issues("SAFETY", "ELEVATOR"))
	require.Len(t, breakdown, 2)
	assert.Equal(t, "ELEVATOR", breakdown[0].Name)
	assert.Equal(t, "SAFETY", breakdown[1].Name)
}

func TestCategoryBreakdownBucketsBlankCategory(t *testing.T) {
	breakdown := report.CategoryBreakdown(issues("", ""))
	require.Len(t, breakdown, 1)
	assert.Equal(t, "OTHER", breakdown[0].Name)
	assert.Equal(t, 2, breakdown[0].Count)
}

func TestEstimateCostsSingleIssue(t *testing.T) {
	total, costs := report.EstimateCosts(issues("HEAT/HOT WATER"))
	require.Len(t, costs, 1)
	assert.Equal(t, report.CostRange{Min: 500, Max: 5000}, total)
}

func TestEstimateCostsSqrtScaling(t *testing.T) {
	// four plumbing issues scale the 150-3000 base by sqrt(4) = 2
	total, costs := report.EstimateCosts(issues(
		"PLUMBING", "PLUMBING", "PLUMBING", "PLUMBING",
	))
	require.Len(t, costs, 1)
	assert.Equal(t, 300, costs[0].Min)
	assert.Equal(t, 6000, costs[0].Max)
	assert.Equal(t, report.CostRange{Min: 300, Max: 6000}, total)
}

func TestEstimateCostsUnknownCategoryUsesDefault(t *testing.T) {
	total, _ := report.EstimateCosts(issues("MOLD"))
	assert.Equal(t, report.CostRange{Min: 200, Max: 1000}, total)
}

func TestEstimateCostsSortedByMaxDescending(t *testing.T) {
	_, costs := report.EstimateCosts(issues("PLUMBING", "ELEVATOR", "ELECTRIC"))
	require.Len(t, costs, 3)
	assert.Equal(t, "ELEVATOR", costs[0].Name)
	assert.Equal(t, "PLUMBING", costs[1].Name)
	assert.Equal(t, "ELECTRIC", costs[2].Name)
}

func dated(category, received string) db.ComplaintRecord {
	return db.ComplaintRecord{MajorCategory: category, ReceivedDate: received}
}

func TestTrendRising(t *testing.T) {
	records := []db.ComplaintRecord{
		dated("PLUMBING", "2024-01-15"),
		dated("PLUMBING", "2024-02-10"),
		dated("PLUMBING", "2024-02-20"),
		dated("PLUMBING", "2024-03-01"),
		dated("PLUMBING", "2024-03-12"),
		dated("PLUMBING", "2024-03-28"),
	}
	assert.Equal(t, report.TrendRising, report.Trend(records))
}

func TestTrendFalling(t *testing.T) {
	records := []db.ComplaintRecord{
		dated("PLUMBING", "2024-01-05"),
		dated("PLUMBING", "2024-01-15"),
		dated("PLUMBING", "2024-01-25"),
		dated("PLUMBING", "2024-02-10"),
		dated("PLUMBING", "2024-02-20"),
		dated("PLUMBING", "2024-03-01"),
	}
	assert.Equal(t, report.TrendFalling, report.Trend(records))
}

func TestTrendTooFewMonths(t *testing.T) {
	records := []db.ComplaintRecord{
		dated("PLUMBING", "2024-01-05"),
		dated("PLUMBING", "2024-02-10"),
	}
	assert.Equal(t, report.TrendStable, report.Trend(records))
}

func TestTrendIgnoresUnparseableDates(t *testing.T) {
	records := []db.ComplaintRecord{
		dated("PLUMBING", "not a date"),
		dated("PLUMBING", ""),
	}
	assert.Equal(t, report.TrendStable, report.Trend(records))
}

func TestTrendAcceptsSlashDates(t *testing.T) {
	records := []db.ComplaintRecord{
		dated("PLUMBING", "01/15/2024"),
		dated("PLUMBING", "02/10/2024"),
		dated("PLUMBING", "02/20/2024"),
		dated("PLUMBING", "03/01/2024"),
		dated("PLUMBING", "03/12/2024"),
		dated("PLUMBING", "03/28/2024"),
	}
	assert.Equal(t, report.TrendRising, report.Trend(records))
}

func TestBuildEmpty(t *testing.T) {
	analysis := report.Build("123 MAIN ST, BROOKLYN", nil)
	assert.Equal(t, 10.0, analysis.LivabilityScore)
	assert.Equal(t, "Excellent", analysis.Rating)
	assert.Empty(t, analysis.Categories)
	assert.Equal(t, report.TrendStable, analysis.Trend)
	assert.Contains(t, analysis.Summary, "No housing-code complaints")
	assert.Contains(t, analysis.Summary, "123 MAIN ST, BROOKLYN")
}

func TestBuild(t *testing.T) {
	analysis := report.Build("123 MAIN ST, BROOKLYN", issues(
		"HEAT/HOT WATER", "HEAT/HOT WATER", "PLUMBING",
	))

	assert.Equal(t, "Excellent", analysis.Rating)
	require.NotEmpty(t, analysis.Categories)
	assert.Equal(t, "HEAT/HOT WATER", analysis.Categories[0].Name)
	assert.NotEmpty(t, analysis.Summary)
	assert.Contains(t, analysis.Summary, "HEAT/HOT WATER")
	assert.Greater(t, analysis.CostEstimate.Max, analysis.CostEstimate.Min)
}
