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

// Package narrative augments a building report with an AI-generated analysis
// from an OpenAI-compatible chat-completions endpoint. Every failure path
// lands on the deterministic analysis in internal/report.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/TFMV/BuildingCheck/internal/matcher"
	"github.com/TFMV/BuildingCheck/internal/report"
)

const (
	defaultModel        = "deepseek-chat"
	defaultTemperature  = 0.7
	defaultMaxTokens    = 500
	defaultMaxAttempts  = 3
	defaultInitialDelay = time.Second
	defaultTimeout      = 120 * time.Second
	defaultSampleSize   = 20
)

// Config holds narrative endpoint settings. BaseURL points at any
// OpenAI-compatible completion API; the default model targets DeepSeek.
// Temperature is a pointer so an explicit zero is distinguishable from
// unset.
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  *float32
	MaxTokens    int
	MaxAttempts  int
	InitialDelay time.Duration
	Timeout      time.Duration
	SampleSize   int
}

// Client calls the completion endpoint with bounded retry and exponential
// backoff.
type Client struct {
	api *openai.Client
	cfg Config
}

func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Temperature == nil {
		t := float32(defaultTemperature)
		cfg.Temperature = &t
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.InitialDelay == 0 {
		cfg.InitialDelay = defaultInitialDelay
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.SampleSize == 0 {
		cfg.SampleSize = defaultSampleSize
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	return &Client{
		api: openai.NewClientWithConfig(apiConfig),
		cfg: cfg,
	}
}

// Analyze asks the completion endpoint for a JSON analysis of the building.
// On API failure, timeout or unparseable content, it returns the
// deterministic analysis instead; it never returns an error to the caller.
func (c *Client) Analyze(ctx context.Context, building matcher.BuildingData) report.Analysis {
	fallback := report.Build(building.Address, building.HousingIssues)

	content, err := c.complete(ctx, systemPrompt, c.buildPrompt(building, fallback))
	if err != nil {
		log.Warn().Err(err).Str("address", building.Address).
			Msg("narrative generation failed, using deterministic analysis")
		return fallback
	}

	analysis, err := parseAnalysis(content)
	if err != nil {
		log.Warn().Err(err).Str("address", building.Address).
			Msg("narrative response unparseable, using deterministic analysis")
		return fallback
	}
	return analysis
}

// complete issues the chat-completion request, retrying up to MaxAttempts
// times with a doubling delay. The overall timeout spans all attempts.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	delay := c.cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
			Model:       c.cfg.Model,
			Temperature: *c.cfg.Temperature,
			MaxTokens:   c.cfg.MaxTokens,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: system},
				{Role: openai.ChatMessageRoleUser, Content: user},
			},
		})
		if err == nil {
			if len(resp.Choices) == 0 {
				lastErr = errors.New("no response choices")
			} else {
				return resp.Choices[0].Message.Content, nil
			}
		} else {
			lastErr = err
		}

		if attempt < c.cfg.MaxAttempts {
			log.Warn().Err(lastErr).Int("attempt", attempt).Msg("narrative request failed, retrying")
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", NewAPIError("request timed out", ctx.Err())
			case <-timer.C:
			}
			delay *= 2
		}
	}

	return "", NewAPIError("retries exhausted", lastErr)
}

const systemPrompt = "You are an expert in NYC real estate and building conditions. " +
	"Your job is to analyze building issue data and provide clear, factual summaries " +
	"to help potential tenants make informed decisions."

// buildPrompt samples up to SampleSize records and asks for a JSON object in
// the analysis schema.
func (c *Client) buildPrompt(building matcher.BuildingData, computed report.Analysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Analyze the NYC apartment building at %s.\n\n", building.Address)
	fmt.Fprintf(&b, "The building has %d reported issues in total, broken down as:\n", building.TotalComplaints)
	for _, cat := range computed.Categories {
		fmt.Fprintf(&b, "- %s: %d issues\n", cat.Name, cat.Count)
	}

	sample := building.HousingIssues
	if len(sample) > c.cfg.SampleSize {
		sample = sample[:c.cfg.SampleSize]
	}
	b.WriteString("\nRecent issues include:\n")
	for _, issue := range sample {
		fmt.Fprintf(&b, "- %s: %s (%s, received %s)\n",
			issue.MajorCategory, issue.MinorCategory, issue.ComplaintStatus, issue.ReceivedDate)
	}

	fmt.Fprintf(&b, `
Respond with a single JSON object, no surrounding prose, with these fields:
  "livability_score": number 0-10,
  "category_scores": object mapping category name to a 0-10 score,
  "rating": "Excellent", "Average" or "Poor",
  "categories": array of {"name", "count"},
  "cost_estimate": {"min", "max"} in USD,
  "category_costs": array of {"name", "count", "min", "max"},
  "trend": "rising", "falling" or "stable",
  "summary": a balanced two-paragraph assessment under 300 words for a
  potential tenant.
`)

	return b.String()
}

// parseAnalysis strips any code-fence wrapping and decodes the analysis
// schema. Prose responses fail decoding and fall through to the
// deterministic computation.
func parseAnalysis(content string) (report.Analysis, error) {
	cleaned := stripFences(content)

	var analysis report.Analysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		return report.Analysis{}, fmt.Errorf("decoding analysis: %w", err)
	}
	if analysis.Summary == "" {
		return report.Analysis{}, errors.New("analysis missing summary")
	}
	return analysis, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
