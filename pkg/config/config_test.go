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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  addr: ":9090"
db_creds:
  host: "db.example.com"
  port: "5432"
  username: "reader"
  password: "secret"
  database: "housing"
search:
  page_limit: 50
narrative:
  base_url: "https://api.deepseek.com/v1"
  model: "deepseek-chat"
map:
  access_token: "pk.token"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, "db.example.com", cfg.DBCreds.Host)
	assert.Equal(t, "reader", cfg.DBCreds.Username)
	assert.Equal(t, 50, cfg.Search.PageLimit)
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.Narrative.BaseURL)
	assert.Equal(t, "pk.token", cfg.Map.AccessToken)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
db_creds:
  host: "localhost"
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 100, cfg.Search.PageLimit)
	assert.Equal(t, 2000, cfg.Search.CandidateLimit)
	assert.Equal(t, 10, cfg.Search.SampleLimit)
	assert.Equal(t, "deepseek-chat", cfg.Narrative.Model)
	assert.Equal(t, float32(0.7), cfg.Narrative.Temperature)
	assert.Equal(t, 500, cfg.Narrative.MaxTokens)
	assert.Equal(t, 3, cfg.Narrative.MaxAttempts)
	assert.Equal(t, 1, cfg.Narrative.InitialDelaySeconds)
	assert.Equal(t, 120, cfg.Narrative.TimeoutSeconds)
	assert.Equal(t, 20, cfg.Narrative.SampleSize)
	assert.Equal(t, "nyc_housing_data", cfg.DBCreds.LoadTable)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("NARRATIVE_API_KEY", "sk-env")
	t.Setenv("MAP_ACCESS_TOKEN", "pk.env")

	cfg, err := LoadConfig(writeConfig(t, `
db_creds:
  password: "from-file"
narrative:
  api_key: "sk-file"
`))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.DBCreds.Password)
	assert.Equal(t, "sk-env", cfg.Narrative.APIKey)
	assert.Equal(t, "pk.env", cfg.Map.AccessToken)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "server: [not: valid"))
	assert.Error(t, err)
}
