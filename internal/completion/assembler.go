package completion

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/pbrown/gptcli/internal/models"
)

// BuildRequest assembles the chat-completion request for the current
// settings: the selected model and the whole transcript, oldest turn first.
// No windowing is applied; every request resends the full history.
func BuildRequest(s *models.Settings) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(s.Transcript))
	for _, turn := range s.Transcript {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(turn.Role),
			Content: turn.Content,
		})
	}
	return openai.ChatCompletionRequest{
		Model:    s.ModelID,
		Messages: messages,
	}
}

// recordFrom converts the SDK response into the persisted record shape.
func recordFrom(resp openai.ChatCompletionResponse) *models.CompletionRecord {
	record := &models.CompletionRecord{
		ID:      resp.ID,
		Object:  resp.Object,
		Created: resp.Created,
		Model:   resp.Model,
		Choices: make([]models.Choice, 0, len(resp.Choices)),
		Usage: models.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	for _, c := range resp.Choices {
		record.Choices = append(record.Choices, models.Choice{
			Index: c.Index,
			Message: models.Turn{
				Role:    models.Role(c.Message.Role),
				Content: c.Message.Content,
			},
			FinishReason: string(c.FinishReason),
		})
	}
	return record
}
