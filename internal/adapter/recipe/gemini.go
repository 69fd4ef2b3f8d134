// Package recipe resolves free-text dish names to ingredient lists: a
// generative-model client as the primary source, and a fixed local table
// as the deterministic fallback.
package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/freshcart/freshcart-api/internal/usecase"
)

const model = "gemini-1.5-flash"

var ErrNoIngredients = errors.New("model returned no ingredients")

// GeminiSource asks the generateContent endpoint for a comma-separated
// ingredient list. Calls run through a circuit breaker so a flapping
// model endpoint degrades to the fallback quickly instead of stalling
// every request on a timeout.
type GeminiSource struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	cb      *gobreaker.CircuitBreaker[[]string]
}

func NewGeminiSource(baseURL, apiKey string, timeout time.Duration) *GeminiSource {
	cb := gobreaker.NewCircuitBreaker[[]string](gobreaker.Settings{
		Name:    "gemini",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
	return &GeminiSource{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: timeout},
		cb:      cb,
	}
}

type generateReq struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type generateResp struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (s *GeminiSource) Ingredients(ctx context.Context, dish string) ([]string, error) {
	return s.cb.Execute(func() ([]string, error) {
		return s.call(ctx, dish)
	})
}

func (s *GeminiSource) call(ctx context.Context, dish string) ([]string, error) {
	var req generateReq
	req.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	req.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: fmt.Sprintf(
		"List all the ingredients needed to make %s. Respond with a simple comma-separated list only. No extra text.",
		dish)}}
	req.GenerationConfig.Temperature = 0.2
	req.GenerationConfig.MaxOutputTokens = 1024

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/models/%s:generateContent?key=%s", s.baseURL, model, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.hc.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model endpoint returned %d", resp.StatusCode)
	}

	var out generateResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, ErrNoIngredients
	}

	ingredients := parseList(out.Candidates[0].Content.Parts[0].Text)
	if len(ingredients) == 0 {
		return nil, ErrNoIngredients
	}
	return ingredients, nil
}

func parseList(text string) []string {
	var out []string
	for _, part := range strings.Split(text, ",") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

var _ usecase.IngredientSource = (*GeminiSource)(nil)
