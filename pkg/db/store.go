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

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ComplaintRecord is one row of the nyc_housing_data table. All columns are
// text in the source export; administrative identifiers are carried through
// unmodified.
type ComplaintRecord struct {
	ID                  int64  `json:"id"`
	UniqueKey           string `json:"unique_key"`
	ComplaintID         string `json:"complaint_id"`
	BuildingID          string `json:"building_id"`
	Borough             string `json:"borough"`
	HouseNumber         string `json:"house_number"`
	StreetName          string `json:"street_name"`
	PostCode            string `json:"post_code"`
	Apartment           string `json:"apartment"`
	BBL                 string `json:"bbl"`
	BIN                 string `json:"bin"`
	Block               string `json:"block"`
	Lot                 string `json:"lot"`
	CommunityBoard      string `json:"community_board"`
	CouncilDistrict     string `json:"council_district"`
	MajorCategory       string `json:"major_category"`
	MinorCategory       string `json:"minor_category"`
	ProblemCode         string `json:"problem_code"`
	ComplaintStatus     string `json:"complaint_status"`
	ComplaintStatusDate string `json:"complaint_status_date"`
	StatusDescription   string `json:"status_description"`
	ReceivedDate        string `json:"received_date"`
	Latitude            string `json:"latitude"`
	Longitude           string `json:"longitude"`
}

// CandidateAddress is a distinct (house number, street name) pair used by the
// nearest-neighbor fallback.
type CandidateAddress struct {
	HouseNumber string
	StreetName  string
}

const complaintColumns = `id, unique_key, complaint_id, building_id, borough, house_number,
	street_name, post_code, apartment, bbl, bin, block, lot, community_board,
	council_district, major_category, minor_category, problem_code,
	complaint_status, complaint_status_date, status_description, received_date,
	latitude, longitude`

// Store runs complaint queries against a connection pool. It is the single
// configured client shared by all call sites; callers receive it as an
// explicit dependency so tests can substitute a fake.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SearchExact filters on house-number equality and a case-insensitive street
// pattern match, optionally constrained by borough.
func (s *Store) SearchExact(ctx context.Context, houseNumber, streetName, borough string, limit int) ([]ComplaintRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM nyc_housing_data
		WHERE house_number = $1 AND street_name ILIKE $2`, complaintColumns)
	args := []interface{}{houseNumber, streetName}
	if borough != "" {
		query += " AND UPPER(borough) = $3"
		args = append(args, borough)
	}
	query += fmt.Sprintf(" LIMIT %d", limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("exact search failed: %w", err)
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// SearchFuzzy relaxes the filter to house-number equality OR street-name
// substring match.
func (s *Store) SearchFuzzy(ctx context.Context, houseNumber, streetName string, limit int) ([]ComplaintRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM nyc_housing_data
		WHERE house_number = $1 OR street_name ILIKE '%%' || $2 || '%%'
		LIMIT %d`, complaintColumns, limit)

	rows, err := s.pool.Query(ctx, query, houseNumber, streetName)
	if err != nil {
		return nil, fmt.Errorf("fuzzy search failed: %w", err)
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// SearchAtAddress re-queries full records at a known address.
func (s *Store) SearchAtAddress(ctx context.Context, houseNumber, streetName string, limit int) ([]ComplaintRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM nyc_housing_data
		WHERE house_number = $1 AND street_name ILIKE $2
		LIMIT %d`, complaintColumns, limit)

	rows, err := s.pool.Query(ctx, query, houseNumber, streetName)
	if err != nil {
		return nil, fmt.Errorf("address search failed: %w", err)
	}
	defer rows.Close()
	return scanComplaints(rows)
}

// AddressesInBorough returns distinct candidate addresses in the borough with
// non-empty house number and street name.
func (s *Store) AddressesInBorough(ctx context.Context, borough string, limit int) ([]CandidateAddress, error) {
	query := fmt.Sprintf(`SELECT DISTINCT house_number, street_name
		FROM nyc_housing_data
		WHERE UPPER(borough) = $1
		  AND house_number IS NOT NULL AND house_number <> ''
		  AND street_name IS NOT NULL AND street_name <> ''
		LIMIT %d`, limit)

	rows, err := s.pool.Query(ctx, query, borough)
	if err != nil {
		return nil, fmt.Errorf("borough candidate query failed: %w", err)
	}
	defer rows.Close()

	var candidates []CandidateAddress
	for rows.Next() {
		var house, street pgtype.Text
		if err := rows.Scan(&house, &street); err != nil {
			return nil, err
		}
		candidates = append(candidates, CandidateAddress{
			HouseNumber: house.String,
			StreetName:  street.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return candidates, nil
}

// SampleAddresses returns formatted addresses for the search box placeholder.
func (s *Store) SampleAddresses(ctx context.Context, limit int) ([]string, error) {
	query := fmt.Sprintf(`SELECT house_number, street_name, borough
		FROM nyc_housing_data
		WHERE house_number IS NOT NULL AND street_name IS NOT NULL
		LIMIT %d`, limit)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sample address query failed: %w", err)
	}
	defer rows.Close()

	var addresses []string
	for rows.Next() {
		var house, street, borough pgtype.Text
		if err := rows.Scan(&house, &street, &borough); err != nil {
			return nil, err
		}
		addresses = append(addresses, fmt.Sprintf("%s %s, %s", house.String, street.String, borough.String))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return addresses, nil
}

func scanComplaints(rows pgx.Rows) ([]ComplaintRecord, error) {
	var records []ComplaintRecord
	for rows.Next() {
		var rec ComplaintRecord
		var uniqueKey, complaintID, buildingID, borough, houseNumber, streetName pgtype.Text
		var postCode, apartment, bbl, bin, block, lot, communityBoard, councilDistrict pgtype.Text
		var majorCategory, minorCategory, problemCode, complaintStatus, complaintStatusDate pgtype.Text
		var statusDescription, receivedDate, latitude, longitude pgtype.Text

		if err := rows.Scan(
			&rec.ID,
			&uniqueKey,
			&complaintID,
			&buildingID,
			&borough,
			&houseNumber,
			&streetName,
			&postCode,
			&apartment,
			&bbl,
			&bin,
			&block,
			&lot,
			&communityBoard,
			&councilDistrict,
			&majorCategory,
			&minorCategory,
			&problemCode,
			&complaintStatus,
			&complaintStatusDate,
			&statusDescription,
			&receivedDate,
			&latitude,
			&longitude,
		); err != nil {
			return nil, err
		}

		rec.UniqueKey = uniqueKey.String
		rec.ComplaintID = complaintID.String
		rec.BuildingID = buildingID.String
		rec.Borough = borough.String
		rec.HouseNumber = houseNumber.String
		rec.StreetName = streetName.String
		rec.PostCode = postCode.String
		rec.Apartment = apartment.String
		rec.BBL = bbl.String
		rec.BIN = bin.String
		rec.Block = block.String
		rec.Lot = lot.String
		rec.CommunityBoard = communityBoard.String
		rec.CouncilDistrict = councilDistrict.String
		rec.MajorCategory = majorCategory.String
		rec.MinorCategory = minorCategory.String
		rec.ProblemCode = problemCode.String
		rec.ComplaintStatus = complaintStatus.String
		rec.ComplaintStatusDate = complaintStatusDate.String
		rec.StatusDescription = statusDescription.String
		rec.ReceivedDate = receivedDate.String
		rec.Latitude = latitude.String
		rec.Longitude = longitude.String

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
