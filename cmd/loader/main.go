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

// Loads the NYC housing complaint CSV export into the nyc_housing_data table.
package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"flag"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/TFMV/BuildingCheck/pkg/config"
	"github.com/TFMV/BuildingCheck/pkg/db"
)

// CsvSource implements the pgx.CopyFromSource interface
type CsvSource struct {
	reader *csv.Reader
	cols   []string
}

func (s *CsvSource) Next() bool {
	record, err := s.reader.Read()
	if err != nil {
		return false
	}
	s.cols = record
	return true
}

func (s *CsvSource) Values() ([]interface{}, error) {
	values := make([]interface{}, len(s.cols))
	for i, col := range s.cols {
		values[i] = col
	}
	return values, nil
}

func (s *CsvSource) Err() error {
	return nil
}

func main() {
	start := time.Now()

	csvFilePath := flag.String("csv", "", "Path to the CSV file")
	flag.Parse()
	if *csvFilePath == "" {
		log.Fatal().Msg("CSV file path is required")
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	pool, err := db.NewConnection(context.Background(), db.DBCreds{
		Host:     cfg.DBCreds.Host,
		Port:     cfg.DBCreds.Port,
		Username: cfg.DBCreds.Username,
		Password: cfg.DBCreds.Password,
		Database: cfg.DBCreds.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("unable to create connection pool")
	}
	defer pool.Close()

	conn, err := pool.Acquire(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("unable to acquire a connection")
	}
	defer conn.Release()

	file, err := os.Open(*csvFilePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *csvFilePath).Msg("error opening file")
	}
	defer file.Close()

	reader := csv.NewReader(bufio.NewReader(file))
	headers, err := reader.Read()
	if err != nil {
		log.Fatal().Err(err).Msg("error reading CSV header")
	}

	csvSource := &CsvSource{reader: reader}

	copyCount, err := conn.Conn().CopyFrom(
		context.Background(),
		pgx.Identifier{cfg.DBCreds.LoadTable},
		headers,
		csvSource,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error copying data to database")
	}

	log.Info().
		Int64("rows", copyCount).
		Str("table", cfg.DBCreds.LoadTable).
		Dur("elapsed", time.Since(start)).
		Msg("load complete")
}
