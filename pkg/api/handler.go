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

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TFMV/BuildingCheck/internal/address"
	"github.com/TFMV/BuildingCheck/internal/matcher"
	"github.com/TFMV/BuildingCheck/internal/report"
)

// Sampler lists example addresses for the search box.
type Sampler interface {
	SampleAddresses(ctx context.Context, limit int) ([]string, error)
}

// Analyzer produces a building analysis, possibly via the narrative API.
// *narrative.Client implements it; when narrative generation is disabled the
// handler computes the deterministic analysis directly.
type Analyzer interface {
	Analyze(ctx context.Context, building matcher.BuildingData) report.Analysis
}

// Handler holds the search pipeline's dependencies. Everything is injected;
// there are no package-level clients.
type Handler struct {
	Matcher     *matcher.Matcher
	Sampler     Sampler
	Analyzer    Analyzer
	SampleLimit int
	MapToken    string
}

// SearchResponse is the full payload for one building search.
type SearchResponse struct {
	Building matcher.BuildingData `json:"building"`
	Analysis report.Analysis      `json:"analysis"`
}

// SearchHandler runs the full pipeline: parse, match, aggregate, analyze.
// A borough query parameter selects the parser variant that does not expect
// a borough suffix inside the address itself.
func (h *Handler) SearchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("address"))
		borough := strings.TrimSpace(c.Query("borough"))
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "address parameter is required"})
			return
		}

		var parsed address.ParsedAddress
		var err error
		displayQuery := query
		if borough != "" {
			if !address.IsBorough(borough) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown borough %q", borough)})
				return
			}
			parsed, err = address.ParseStreet(query)
			if err == nil {
				parsed.Borough = strings.ToUpper(borough)
				displayQuery = fmt.Sprintf("%s, %s", query, borough)
			}
		} else {
			parsed, err = address.Parse(query)
		}
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		records, err := h.Matcher.Match(c.Request.Context(), parsed)
		if err != nil {
			log.Error().Err(err).Str("query", query).Msg("building search failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch building data"})
			return
		}

		// Zero records is the no-results state, not an error.
		building := matcher.Aggregate(records, displayQuery)

		var analysis report.Analysis
		if h.Analyzer != nil && building.TotalComplaints > 0 {
			analysis = h.Analyzer.Analyze(c.Request.Context(), building)
		} else {
			analysis = report.Build(building.Address, building.HousingIssues)
		}

		c.JSON(http.StatusOK, SearchResponse{Building: building, Analysis: analysis})
	}
}

// SampleAddressesHandler returns example addresses for the search box.
func (h *Handler) SampleAddressesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := h.SampleLimit
		if raw := c.Query("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
				limit = n
			}
		}

		addresses, err := h.Sampler.SampleAddresses(c.Request.Context(), limit)
		if err != nil {
			log.Error().Err(err).Msg("sample address query failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch sample addresses"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"addresses": addresses})
	}
}

// MapTokenHandler hands the configured map-provider access token to the
// frontend.
func (h *Handler) MapTokenHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.MapToken == "" {
			c.JSON(http.StatusNotFound, gin.H{"error": "no map token configured"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": h.MapToken})
	}
}

// HealthCheckHandler handles health check requests
func HealthCheckHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		zuluTime := time.Now().UTC().Format(time.RFC3339)
		c.JSON(http.StatusOK, gin.H{
			"status":   "OK",
			"zuluTime": zuluTime,
		})
	}
}
