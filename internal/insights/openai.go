package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	"taxdash/internal/logger"
	"taxdash/internal/models"
)

const systemPrompt = `You are an operations analyst for a tax-filing platform.
Given aggregate session and job statistics, write a short operations commentary
in markdown: 2-4 bullet points on notable trends, backlogs or failure rates.
Be factual and concise; do not invent numbers that are not in the data.`

// Client generates a short operations commentary from the latest summary
// payload. Optional: the dashboard works without it.
type Client struct {
	client *openai.Client
	model  string
	log    *logger.Logger
}

// NewClient creates an insights client. Returns nil when no API key is
// configured, which disables the commentary panel.
func NewClient(apiKey, model string) *Client {
	if apiKey == "" {
		return nil
	}
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    logger.GetGlobalLogger().WithComponent("insights"),
	}
}

// GenerateCommentary produces markdown commentary for the given payload
func (c *Client) GenerateCommentary(ctx context.Context, payload *models.SummaryPayload) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("insights client not initialized")
	}
	if payload == nil {
		return "", fmt.Errorf("payload is required")
	}

	prompt, err := c.buildPrompt(payload)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   800,
			Temperature: 0.3,
		},
	)

	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}

	commentary := resp.Choices[0].Message.Content
	c.log.Debugf("generated commentary with %d characters", len(commentary))
	return commentary, nil
}

func (c *Client) buildPrompt(payload *models.SummaryPayload) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}
	return fmt.Sprintf("Latest operations summary as of %s:\n\n```json\n%s\n```",
		time.Now().UTC().Format("2006-01-02 15:04 MST"), string(data)), nil
}
