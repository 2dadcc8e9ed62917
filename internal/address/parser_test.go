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

package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TFMV/BuildingCheck/internal/address"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		houseNumber string
		streetName  string
		borough     string
	}{
		{
			name:        "simple address",
			query:       "123 Main St, Brooklyn",
			houseNumber: "123",
			streetName:  "main st",
			borough:     "BROOKLYN",
		},
		{
			name:        "numbered avenue",
			query:       "350 5th Ave, Manhattan",
			houseNumber: "350",
			streetName:  "5th ave",
			borough:     "MANHATTAN",
		},
		{
			name:        "borough needs trimming",
			query:       "1 Centre St,   manhattan  ",
			houseNumber: "1",
			streetName:  "centre st",
			borough:     "MANHATTAN",
		},
		{
			name:        "multi-word street",
			query:       "2880 Grand Concourse, Bronx",
			houseNumber: "2880",
			streetName:  "grand concourse",
			borough:     "BRONX",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := address.Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.houseNumber, parsed.HouseNumber)
			assert.Equal(t, tt.streetName, parsed.StreetName)
			assert.Equal(t, tt.borough, parsed.Borough)
		})
	}
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"no comma", "123 Main St"},
		{"two commas", "123 Main St, Apt 4, Brooklyn"},
		{"no house number", "Main St, Brooklyn"},
		{"empty borough", "123 Main St,"},
		{"unknown borough", "123 Main St, Springfield"},
		{"empty query", ""},
		{"borough only", "Brooklyn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := address.Parse(tt.query)
			require.Error(t, err)
			assert.True(t, address.IsParseError(err))
			// failure carries no partial result
			assert.Equal(t, address.ParsedAddress{}, parsed)
		})
	}
}

func TestParseStreet(t *testing.T) {
	parsed, err := address.ParseStreet("456 Ocean Parkway")
	require.NoError(t, err)
	assert.Equal(t, "456", parsed.HouseNumber)
	assert.Equal(t, "ocean parkway", parsed.StreetName)
	assert.Empty(t, parsed.Borough)

	// everything after the first comma is ignored
	parsed, err = address.ParseStreet("456 Ocean Parkway, rear unit")
	require.NoError(t, err)
	assert.Equal(t, "ocean parkway", parsed.StreetName)

	_, err = address.ParseStreet("Ocean Parkway")
	require.Error(t, err)
	assert.True(t, address.IsParseError(err))
}

func TestParsePreservesRaw(t *testing.T) {
	parsed, err := address.Parse("  350 5th Ave, Manhattan ")
	require.NoError(t, err)
	assert.Equal(t, "350 5th Ave, Manhattan", parsed.Raw)
}

func TestIsBorough(t *testing.T) {
	assert.True(t, address.IsBorough("brooklyn"))
	assert.True(t, address.IsBorough(" Staten Island "))
	assert.False(t, address.IsBorough("Jersey City"))
	assert.False(t, address.IsBorough(""))
}
