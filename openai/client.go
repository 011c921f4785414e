package openai

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"medwiki-backend/config"
)

// Client envuelve el cliente de OpenAI con el modelo y los parámetros de
// generación fijados al arranque.
type Client struct {
	api         *openai.Client
	Model       string
	Temperature float32
	MaxTokens   int
}

// NewClient recibe la configuración ya validada (la key nunca llega vacía
// aquí: config.Load aborta el arranque si falta).
func NewClient(cfg config.Config) *Client {
	return &Client{
		api:         openai.NewClient(cfg.OpenAIKey),
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

// Complete hace una petición de chat sin streaming (system + user) y
// devuelve el contenido de la primera elección.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.Model,
		Temperature: c.Temperature,
		MaxTokens:   c.MaxTokens,
		Stream:      false,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("respuesta sin choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
