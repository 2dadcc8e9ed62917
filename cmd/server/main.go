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

package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/TFMV/BuildingCheck/internal/matcher"
	"github.com/TFMV/BuildingCheck/internal/narrative"
	"github.com/TFMV/BuildingCheck/pkg/api"
	"github.com/TFMV/BuildingCheck/pkg/config"
	"github.com/TFMV/BuildingCheck/pkg/db"
)

func main() {
	zerolog.DurationFieldUnit = time.Millisecond
	if os.Getenv("DEBUG") != "" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
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
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	store := db.NewStore(pool)
	m := matcher.New(store,
		matcher.WithPageLimit(cfg.Search.PageLimit),
		matcher.WithCandidateLimit(cfg.Search.CandidateLimit),
	)

	handler := &api.Handler{
		Matcher:     m,
		Sampler:     store,
		SampleLimit: cfg.Search.SampleLimit,
		MapToken:    cfg.Map.AccessToken,
	}
	if cfg.Narrative.APIKey != "" {
		handler.Analyzer = narrative.NewClient(narrative.Config{
			BaseURL:      cfg.Narrative.BaseURL,
			APIKey:       cfg.Narrative.APIKey,
			Model:        cfg.Narrative.Model,
			Temperature:  &cfg.Narrative.Temperature,
			MaxTokens:    cfg.Narrative.MaxTokens,
			MaxAttempts:  cfg.Narrative.MaxAttempts,
			InitialDelay: time.Duration(cfg.Narrative.InitialDelaySeconds) * time.Second,
			Timeout:      time.Duration(cfg.Narrative.TimeoutSeconds) * time.Second,
			SampleSize:   cfg.Narrative.SampleSize,
		})
	} else {
		log.Warn().Msg("no narrative API key configured, using deterministic analysis only")
	}

	// Set up the HTTP server
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, handler)

	log.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
