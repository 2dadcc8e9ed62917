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

package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	DBCreds struct {
		Host      string `yaml:"host"`
		Port      string `yaml:"port"`
		Username  string `yaml:"username"`
		Password  string `yaml:"password"`
		Database  string `yaml:"database"`
		LoadTable string `yaml:"load_table"`
	} `yaml:"db_creds"`

	Search struct {
		PageLimit      int `yaml:"page_limit"`
		CandidateLimit int `yaml:"candidate_limit"`
		SampleLimit    int `yaml:"sample_limit"`
	} `yaml:"search"`

	Narrative struct {
		BaseURL             string  `yaml:"base_url"`
		APIKey              string  `yaml:"api_key"`
		Model               string  `yaml:"model"`
		Temperature         float32 `yaml:"temperature"`
		MaxTokens           int     `yaml:"max_tokens"`
		MaxAttempts         int     `yaml:"max_attempts"`
		InitialDelaySeconds int     `yaml:"initial_delay_seconds"`
		TimeoutSeconds      int     `yaml:"timeout_seconds"`
		SampleSize          int     `yaml:"sample_size"`
	} `yaml:"narrative"`

	Map struct {
		AccessToken string `yaml:"access_token"`
	} `yaml:"map"`
}

// LoadConfig loads the configuration from a YAML file. A .env file, when
// present, and process environment variables override credentials so they
// stay out of the config file.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %v", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config file: %v", err)
	}

	config.applyEnv()
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.DBCreds.Password = v
	}
	if v := os.Getenv("NARRATIVE_API_KEY"); v != "" {
		c.Narrative.APIKey = v
	}
	if v := os.Getenv("NARRATIVE_BASE_URL"); v != "" {
		c.Narrative.BaseURL = v
	}
	if v := os.Getenv("MAP_ACCESS_TOKEN"); v != "" {
		c.Map.AccessToken = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Search.PageLimit == 0 {
		c.Search.PageLimit = 100
	}
	if c.Search.CandidateLimit == 0 {
		c.Search.CandidateLimit = 2000
	}
	if c.Search.SampleLimit == 0 {
		c.Search.SampleLimit = 10
	}
	if c.Narrative.Model == "" {
		c.Narrative.Model = "deepseek-chat"
	}
	if c.Narrative.Temperature == 0 {
		c.Narrative.Temperature = 0.7
	}
	if c.Narrative.MaxTokens == 0 {
		c.Narrative.MaxTokens = 500
	}
	if c.Narrative.MaxAttempts == 0 {
		c.Narrative.MaxAttempts = 3
	}
	if c.Narrative.InitialDelaySeconds == 0 {
		c.Narrative.InitialDelaySeconds = 1
	}
	if c.Narrative.TimeoutSeconds == 0 {
		c.Narrative.TimeoutSeconds = 120
	}
	if c.Narrative.SampleSize == 0 {
		c.Narrative.SampleSize = 20
	}
	if c.DBCreds.LoadTable == "" {
		c.DBCreds.LoadTable = "nyc_housing_data"
	}
}
