package service

import (
	"context"
	"fmt"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"thinkeep_backend/internals/features/quizzes/quiz/dto"
)

// QuizGenerator turns a seed into a three-choice recall quiz. Implementations
// must return exactly three choices including the canonical answer.
type QuizGenerator interface {
	Generate(ctx context.Context, seed dto.QuestionSeed) (*dto.GeneratedQuiz, error)
}

// OpenAIQuizGenerator calls the chat-completions API. The caller is expected
// to bound ctx with a timeout; a timeout surfaces as an upstream failure.
type OpenAIQuizGenerator struct {
	client *openai.Client
	model  string
}

func NewOpenAIQuizGenerator(apiKey, model string) *OpenAIQuizGenerator {
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIQuizGenerator{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (g *OpenAIQuizGenerator) Generate(ctx context.Context, seed dto.QuestionSeed) (*dto.GeneratedQuiz, error) {
	prompt, err := buildQuizPrompt(seed)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		log.Printf("[ERROR] quiz generation request failed: record=%d type=%s err=%v",
			seed.RecordID, seed.QuestionType, err)
		return nil, fmt.Errorf("quiz generation request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("quiz generation returned no choices")
	}

	return parseGeneratedQuiz(resp.Choices[0].Message.Content, seed)
}
