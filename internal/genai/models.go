package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// ModelInfo describes an available model in display form.
type ModelInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	OriginalName string `json:"original_name"`
}

// defaultModels is the fallback list when the provider's model listing is
// unavailable.
var defaultModels = []string{"claude-3-5-sonnet", "gpt-4", "gpt-3.5-turbo"}

type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// ListModels fetches the raw model IDs the provider offers. On failure it
// returns a default list rather than an error, so the UI always has
// something to show.
func (c *Client) ListModels(ctx context.Context) []string {
	ids, err := c.fetchModelIDs(ctx)
	if err != nil || len(ids) == 0 {
		return append([]string(nil), defaultModels...)
	}
	return ids
}

// AvailableModels fetches, filters and formats the models usable for
// translation and summarization.
func (c *Client) AvailableModels(ctx context.Context) ([]ModelInfo, error) {
	ids, err := c.fetchModelIDs(ctx)
	if err != nil {
		return nil, err
	}

	var models []ModelInfo
	for _, id := range ids {
		if !IsSupportedModel(id) {
			continue
		}
		models = append(models, ModelInfo{
			ID:           id,
			Name:         FormatModelName(id),
			OriginalName: id,
		})
	}
	sort.Slice(models, func(i, j int) bool { return models[i].Name < models[j].Name })
	return models, nil
}

func (c *Client) fetchModelIDs(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL("models"), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("models api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("models api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var listResp modelsResponse
	if err := json.Unmarshal(body, &listResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	ids := make([]string, 0, len(listResp.Data))
	for _, m := range listResp.Data {
		if m.ID != "" {
			ids = append(ids, m.ID)
		}
	}
	return ids, nil
}

// ValidateCredentials checks whether an API key and URL pair can reach the
// provider's model listing.
func ValidateCredentials(ctx context.Context, apiURL, apiKey string) bool {
	c := &Client{
		baseURL:    strings.TrimRight(apiURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	defer c.Close()

	_, err := c.fetchModelIDs(ctx)
	return err == nil
}

// IsSupportedModel reports whether a model can be used for translation and
// summarization. Claude and Llama families are supported.
func IsSupportedModel(modelID string) bool {
	return strings.HasPrefix(modelID, "claude-") || strings.HasPrefix(modelID, "llama")
}

// FormatModelName turns a model ID into a human-readable name.
//
// Examples:
//
//	claude-3-5-sonnet -> Claude 3.5 Sonnet
//	llama3-1-405b     -> Llama 3.1 405B
//	llama4-maverick-17b -> Llama 4 Maverick 17B
func FormatModelName(modelID string) string {
	if strings.HasPrefix(modelID, "claude-") {
		parts := strings.Split(strings.TrimPrefix(modelID, "claude-"), "-")

		i := 0
		for i < len(parts) && isDigits(parts[i]) {
			i++
		}
		versionParts := parts[:i]
		variantParts := parts[i:]

		result := "Claude"
		if len(versionParts) > 0 {
			result += " " + strings.Join(versionParts, ".")
		}
		if len(variantParts) > 0 {
			capitalized := make([]string, len(variantParts))
			for j, p := range variantParts {
				capitalized[j] = capitalize(p)
			}
			result += " " + strings.Join(capitalized, " ")
		}
		return result
	}

	if strings.HasPrefix(modelID, "llama") {
		parts := strings.Split(strings.TrimPrefix(modelID, "llama"), "-")

		result := "Llama"
		var versionParts, otherParts []string
		for _, p := range parts {
			switch {
			case p == "":
			case isDigits(p):
				versionParts = append(versionParts, p)
			case p[len(p)-1] == 'b' && isDigits(strings.ReplaceAll(p[:len(p)-1], ".", "")):
				// Parameter-count suffix like 405b or 17b.
				otherParts = append(otherParts, strings.ToUpper(p))
			default:
				otherParts = append(otherParts, capitalize(p))
			}
		}
		if len(versionParts) > 0 {
			result += " " + strings.Join(versionParts, ".")
		}
		if len(otherParts) > 0 {
			result += " " + strings.Join(otherParts, " ")
		}
		return result
	}

	words := strings.Split(modelID, "-")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
