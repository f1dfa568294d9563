package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thinkeep_backend/internals/features/quizzes/quiz/dto"
	"thinkeep_backend/internals/features/quizzes/quiz/model"
)

var parserSeed = dto.QuestionSeed{
	QuestionType: model.QuestionTypeQ3,
	Question:     "무엇을 먹었나요?",
	Answer:       "김치찌개",
	RecordID:     1,
}

func TestParseGeneratedQuiz_PlainJSON(t *testing.T) {
	content := `{"question":"어제 무엇을 드셨나요?","answer":"김치찌개","choices":["김치찌개","된장찌개","라면","비빔밥"]}`

	quiz, err := parseGeneratedQuiz(content, parserSeed)
	require.NoError(t, err)
	assert.Equal(t, "어제 무엇을 드셨나요?", quiz.Question)
	assert.Equal(t, "김치찌개", quiz.Answer)
	assert.Len(t, quiz.Choices, 4)
	assert.Contains(t, quiz.Choices, "김치찌개")
}

func TestParseGeneratedQuiz_JSONEmbeddedInProse(t *testing.T) {
	content := "물론입니다! 요청하신 퀴즈입니다:\n" +
		`{"question":"어제 무엇을 드셨나요?","answer":"김치찌개","choices":["김치찌개","라면"]}` +
		"\n더 필요하시면 말씀해주세요."

	quiz, err := parseGeneratedQuiz(content, parserSeed)
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", quiz.Answer)
}

func TestParseGeneratedQuiz_InjectsMissingAnswer(t *testing.T) {
	content := `{"question":"어제 무엇을 드셨나요?","answer":"김치찌개","choices":["라면","비빔밥"]}`

	quiz, err := parseGeneratedQuiz(content, parserSeed)
	require.NoError(t, err)
	assert.Len(t, quiz.Choices, 3)
	assert.Contains(t, quiz.Choices, "김치찌개")
}

func TestParseGeneratedQuiz_NoJSONBlock(t *testing.T) {
	_, err := parseGeneratedQuiz("죄송합니다, 퀴즈를 만들 수 없습니다.", parserSeed)
	require.Error(t, err)
}

func TestParseGeneratedQuiz_MalformedJSON(t *testing.T) {
	_, err := parseGeneratedQuiz(`{"question": "incomplete`, parserSeed)
	require.Error(t, err)
}

func TestParseGeneratedQuiz_MissingFields(t *testing.T) {
	_, err := parseGeneratedQuiz(`{"question":"","answer":"김치찌개"}`, parserSeed)
	require.Error(t, err)

	_, err = parseGeneratedQuiz(`{"question":"어제 무엇을 드셨나요?","answer":"  "}`, parserSeed)
	require.Error(t, err)
}
