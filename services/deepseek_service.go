package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// ChatClient produces one completion for a system/user instruction pair.
// PlannerService depends on this rather than on the concrete DeepSeek client
// so tests can feed canned completions.
type ChatClient interface {
	ChatComplete(ctx context.Context, system, user string) (string, error)
}

// DeepSeekService calls the DeepSeek chat-completions endpoint. It is the
// only collaborator whose output is unstructured text; everything it returns
// goes through ParseRecord before touching a plan.
type DeepSeekService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewDeepSeekService() *DeepSeekService {
	base := os.Getenv("DEEPSEEK_BASE_URL")
	if base == "" {
		base = "https://api.deepseek.com"
	}
	return &DeepSeekService{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(base, "/"),
		apiKey:  os.Getenv("DEEPSEEK_API_KEY"),
		model:   "deepseek-chat",
	}
}

func (s *DeepSeekService) ChatComplete(ctx context.Context, system, user string) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("DEEPSEEK_API_KEY not set")
	}

	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
		"temperature": 0.7,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat request error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	// Non-200 => surface the exact API error body; it usually carries a
	// structured message, but fall back to the raw bytes.
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("deepseek api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("deepseek api error (%d): %s", resp.StatusCode, string(respBytes))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBytes, &out); err != nil {
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return "", fmt.Errorf("decode chat response: %v | body: %s", err, preview)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty completion from deepseek")
	}
	return out.Choices[0].Message.Content, nil
}
