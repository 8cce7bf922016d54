package vision

import (
	"Produce-Scan-Backend/domain"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://openrouter.ai/api/v1"

// analysisPrompt is the versioned instruction sent with every produce image.
// The model is told to answer with bare JSON; fence stripping below covers the
// models that wrap it anyway.
const analysisPrompt = `You are an expert food scientist analyzing produce freshness from images.

Analyze the produce in this image and return a JSON response with EXACTLY this structure:
{
    "produce_name": "name of the produce identified",
    "shelf_life_days": estimated days until expiration (integer, minimum 0),
    "is_expiring_soon": true if 3 days or less remaining, false otherwise,
    "is_expired": true if 0 or fewer days, false otherwise,
    "notes": "brief assessment of freshness based on visual appearance"
}

Rules:
- shelf_life_days must be an integer between 0 and 30
- is_expiring_soon is true when shelf_life_days <= 3
- is_expired is true when shelf_life_days <= 0
- Analyze based on color, texture, visible damage, ripeness level
- Provide realistic estimates based on typical produce shelf lives
- Return ONLY valid JSON, no additional text`

const storageTipsPrompt = `As a food storage expert, provide brief storage recommendations for %s.
Keep response to 2-3 sentences maximum.
Focus on: optimal temperature, humidity, container type, and any special handling.`

type (
	Client interface {
		Analyze(ctx context.Context, imageData string) (domain.ProduceAnalysis, error)
		AnalyzeBatch(ctx context.Context, images []string) (domain.BatchAnalysis, error)
		RecommendStorage(ctx context.Context, produceName string) (string, error)
	}

	client struct {
		apiKey          string
		model           string
		baseURL         string
		trustModelFlags bool
		httpClient      *http.Client
	}

	message struct {
		Role    string `json:"role"`
		Content any    `json:"content"`
	}

	textContent struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}

	imageURL struct {
		URL string `json:"url"`
	}

	imageContent struct {
		Type     string   `json:"type"`
		ImageURL imageURL `json:"image_url"`
	}

	chatRequest struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		Temperature float64   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
	}

	chatResponse struct {
		Choices []struct {
			Message struct {
				Content any `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
)

func NewClient(apiKey, model, baseURL string, trustModelFlags bool) Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &client{
		apiKey:          apiKey,
		model:           model,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		trustModelFlags: trustModelFlags,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *client) Analyze(ctx context.Context, imageData string) (domain.ProduceAnalysis, error) {
	// Accept both raw base64 and data-URI payloads
	if idx := strings.Index(imageData, ","); idx >= 0 {
		imageData = imageData[idx+1:]
	}

	msg := message{
		Role: "user",
		Content: []any{
			imageContent{
				Type:     "image_url",
				ImageURL: imageURL{URL: "data:image/jpeg;base64," + imageData},
			},
			textContent{
				Type: "text",
				Text: analysisPrompt,
			},
		},
	}

	content, err := c.complete(ctx, []message{msg})
	if err != nil {
		return domain.ProduceAnalysis{}, fmt.Errorf("error analyzing produce image: %w", err)
	}

	analysis, err := c.parseAnalysis(content)
	if err != nil {
		return domain.ProduceAnalysis{}, fmt.Errorf("error analyzing produce image: %w", err)
	}
	return analysis, nil
}

func (c *client) AnalyzeBatch(ctx context.Context, images []string) (domain.BatchAnalysis, error) {
	results := make([]domain.ProduceAnalysis, 0, len(images))
	expiringSoonCount := 0
	expiredCount := 0

	for _, imageData := range images {
		analysis, err := c.Analyze(ctx, imageData)
		if err != nil {
			// Keep batch cardinality: substitute a sentinel and keep going.
			// Failed images count as expiring soon for safety.
			analysis = domain.ProduceAnalysis{
				ProduceName:    "Unknown",
				ShelfLifeDays:  0,
				IsExpiringSoon: true,
				IsExpired:      false,
				Notes:          fmt.Sprintf("Error analyzing image: %s", err.Error()),
			}
		}
		results = append(results, analysis)

		if analysis.IsExpiringSoon {
			expiringSoonCount++
		}
		if analysis.IsExpired {
			expiredCount++
		}
	}

	return domain.BatchAnalysis{
		Results: results,
		Summary: domain.BatchSummary{
			TotalScanned:      len(images),
			ExpiringSoonCount: expiringSoonCount,
			ExpiredCount:      expiredCount,
		},
	}, nil
}

func (c *client) RecommendStorage(ctx context.Context, produceName string) (string, error) {
	msg := message{
		Role:    "user",
		Content: fmt.Sprintf(storageTipsPrompt, produceName),
	}

	content, err := c.complete(ctx, []message{msg})
	if err != nil {
		// Storage tips are best effort, return a readable fallback
		return fmt.Sprintf("Could not retrieve storage recommendations: %s", err.Error()), nil
	}
	return content, nil
}

func (c *client) complete(ctx context.Context, messages []message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   2000,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("vision API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", domain.ErrVisionProcessingFailed
	}

	content, ok := chatResp.Choices[0].Message.Content.(string)
	if !ok {
		return "", fmt.Errorf("invalid response from AI model: content is not a string")
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return "", domain.ErrEmptyModelResponse
	}
	return content, nil
}

// parseAnalysis validates raw model text into a ProduceAnalysis: fence
// stripping, field presence check, shelf life clamp, flag derivation.
func (c *client) parseAnalysis(content string) (domain.ProduceAnalysis, error) {
	content = stripCodeFences(content)

	var fields map[string]any
	if err := json.Unmarshal([]byte(content), &fields); err != nil {
		preview := content
		if len(preview) > 500 {
			preview = preview[:500]
		}
		return domain.ProduceAnalysis{}, fmt.Errorf("AI response is not valid JSON. Response: %s", preview)
	}

	for _, field := range []string{"produce_name", "shelf_life_days", "is_expiring_soon", "is_expired", "notes"} {
		if _, ok := fields[field]; !ok {
			return domain.ProduceAnalysis{}, fmt.Errorf("missing required field %q in AI response", field)
		}
	}

	days, err := coerceInt(fields["shelf_life_days"])
	if err != nil {
		return domain.ProduceAnalysis{}, fmt.Errorf("invalid shelf_life_days in AI response: %w", err)
	}
	if days < 0 {
		days = 0
	}
	if days > 30 {
		days = 30
	}

	analysis := domain.ProduceAnalysis{
		ProduceName:   fmt.Sprintf("%v", fields["produce_name"]),
		ShelfLifeDays: days,
		Notes:         fmt.Sprintf("%v", fields["notes"]),
	}

	if c.trustModelFlags {
		analysis.IsExpiringSoon, _ = fields["is_expiring_soon"].(bool)
		analysis.IsExpired, _ = fields["is_expired"].(bool)
	} else {
		// Rederive from the clamped value so flags can never contradict it
		analysis.IsExpired = days <= 0
		analysis.IsExpiringSoon = days <= 3
	}

	return analysis, nil
}

func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimPrefix(content, "json")
		content = strings.TrimSpace(content)
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
