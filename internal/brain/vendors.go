package brain

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

const (
	openAIURL   = "https://api.openai.com/v1/chat/completions"
	claudeURL   = "https://api.anthropic.com/v1/messages"
	ollamaHost  = "http://localhost:11434"
	openAIModel = "gpt-3.5-turbo"
	claudeModel = "claude-sonnet-4-5-20250929"
)

// NewOpenAI returns a provider for the OpenAI chat completions API.
func NewOpenAI(key, model string, opts ...Option) *ChatProvider {
	if model == "" {
		model = openAIModel
	}
	return newChatProvider("openai", openAIURL, key, model, openAIDialect{}, opts)
}

// NewClaude returns a provider for the Anthropic messages API.
func NewClaude(key, model string, opts ...Option) *ChatProvider {
	if model == "" {
		model = claudeModel
	}
	return newChatProvider("claude", claudeURL, key, model, claudeDialect{}, opts)
}

// NewOllama returns a provider for a local Ollama server. An empty model is
// picked from the server's installed models; if that fails the provider is
// unavailable.
func NewOllama(host, model string, opts ...Option) *ChatProvider {
	if host == "" {
		host = ollamaHost
	}
	host = strings.TrimRight(host, "/")
	p := newChatProvider("ollama", host+"/api/generate", "", model, ollamaDialect{}, opts)
	if p.model == "" {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		p.model = installedOllamaModel(ctx, p.client, host)
	}
	return p
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OpenAI

type openAIDialect struct{}

type openAIRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (openAIDialect) needsKey() bool { return true }

func (openAIDialect) authorize(h http.Header, key string) {
	h.Set("Authorization", "Bearer "+key)
}

func (openAIDialect) encode(model string, req Request) any {
	msgs := make([]chatMessage, 0, 2)
	if req.SystemPrompt != "" {
		msgs = append(msgs, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	msgs = append(msgs, chatMessage{Role: "user", Content: req.UserPrompt})
	return openAIRequest{Model: model, Messages: msgs, MaxTokens: maxTokens(req), Temperature: req.Temperature}
}

func (openAIDialect) decode(body []byte) (string, string, error) {
	var resp openAIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	if len(resp.Choices) == 0 {
		return "", resp.Model, nil
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}

// Claude

type claudeDialect struct{}

type claudeRequest struct {
	Model       string        `json:"model"`
	System      string        `json:"system,omitempty"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature,omitempty"`
}

type claudeResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (claudeDialect) needsKey() bool { return true }

func (claudeDialect) authorize(h http.Header, key string) {
	h.Set("x-api-key", key)
	h.Set("anthropic-version", "2023-06-01")
}

func (claudeDialect) encode(model string, req Request) any {
	return claudeRequest{
		Model:       model,
		System:      req.SystemPrompt,
		Messages:    []chatMessage{{Role: "user", Content: req.UserPrompt}},
		MaxTokens:   maxTokens(req),
		Temperature: req.Temperature,
	}
}

// decode joins the text blocks; tool and other block types are ignored.
func (claudeDialect) decode(body []byte) (string, string, error) {
	var resp claudeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	var texts []string
	for _, c := range resp.Content {
		if c.Type == "text" {
			texts = append(texts, c.Text)
		}
	}
	return strings.Join(texts, "\n\n"), resp.Model, nil
}

// Ollama

type ollamaDialect struct{}

type ollamaRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

func (ollamaDialect) needsKey() bool { return false }

func (ollamaDialect) authorize(http.Header, string) {}

// encode folds the system prompt into the single prompt /api/generate takes.
func (ollamaDialect) encode(model string, req Request) any {
	prompt := req.UserPrompt
	if req.SystemPrompt != "" {
		prompt = req.SystemPrompt + "\n\n" + req.UserPrompt
	}
	out := ollamaRequest{Model: model, Prompt: prompt}
	if req.Temperature > 0 {
		out.Options = &ollamaOptions{Temperature: req.Temperature}
	}
	return out
}

func (ollamaDialect) decode(body []byte) (string, string, error) {
	var resp ollamaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", "", err
	}
	return resp.Response, resp.Model, nil
}

// installedOllamaModel lists the server's models and prefers an instruct
// variant. Empty on any failure.
func installedOllamaModel(ctx context.Context, client *http.Client, host string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, host+"/api/tags", nil)
	if err != nil {
		return ""
	}
	resp, err := client.Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if resp.StatusCode != http.StatusOK || json.NewDecoder(resp.Body).Decode(&tags) != nil || len(tags.Models) == 0 {
		return ""
	}
	for _, m := range tags.Models {
		if strings.Contains(strings.ToLower(m.Name), "instruct") {
			return m.Name
		}
	}
	return tags.Models[0].Name
}
