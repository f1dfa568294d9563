package service

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"

	"thinkeep_backend/internals/features/quizzes/quiz/dto"
)

var jsonBlockRe = regexp.MustCompile(`\{[\s\S]*?\}`)

type generatedQuizJSON struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Choices  []string `json:"choices"`
}

// parseGeneratedQuiz extracts the first JSON block from the model's reply and
// validates it. If the choice list does not contain the canonical answer the
// answer is injected so the quiz stays solvable.
func parseGeneratedQuiz(content string, seed dto.QuestionSeed) (*dto.GeneratedQuiz, error) {
	block := jsonBlockRe.FindString(content)
	if block == "" {
		log.Printf("[ERROR] quiz parse: no JSON block: record=%d type=%s", seed.RecordID, seed.QuestionType)
		return nil, fmt.Errorf("no JSON block in generator response")
	}

	var parsed generatedQuizJSON
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		log.Printf("[ERROR] quiz parse: invalid JSON: record=%d type=%s err=%v", seed.RecordID, seed.QuestionType, err)
		return nil, fmt.Errorf("invalid JSON in generator response: %w", err)
	}
	if strings.TrimSpace(parsed.Question) == "" || strings.TrimSpace(parsed.Answer) == "" {
		return nil, fmt.Errorf("generator response missing question or answer")
	}

	choices := parsed.Choices
	if !containsChoice(choices, parsed.Answer) {
		log.Printf("[WARN] quiz parse: answer missing from choices, injecting: answer=%q", parsed.Answer)
		choices = append(choices, parsed.Answer)
	}
	rand.Shuffle(len(choices), func(i, j int) {
		choices[i], choices[j] = choices[j], choices[i]
	})

	return &dto.GeneratedQuiz{
		Question: parsed.Question,
		Answer:   parsed.Answer,
		Choices:  choices,
	}, nil
}

func containsChoice(choices []string, answer string) bool {
	for _, c := range choices {
		if c == answer {
			return true
		}
	}
	return false
}
