package constants

// The four daily diary prompts. Every record stores one answer per key.
const (
	QuestionQ1 = "Q1" // 오늘 하루는 어땠나요? (how was your day)
	QuestionQ2 = "Q2" // 누구와 시간을 보냈나요? (who did you spend time with)
	QuestionQ3 = "Q3" // 무엇을 먹었나요? (what did you eat)
	QuestionQ4 = "Q4" // 기억에 남는 일은 무엇인가요? (what was memorable)
)

// RequiredQuestions is the full answer set a complete record must carry.
var RequiredQuestions = []string{QuestionQ1, QuestionQ2, QuestionQ3, QuestionQ4}

// QuizQuestions are the prompts recall quizzes are seeded from (Q1 is excluded:
// a general mood answer makes a poor multiple-choice question).
var QuizQuestions = []string{QuestionQ2, QuestionQ3, QuestionQ4}

// QuestionText maps a question id to the prompt shown to the user.
var QuestionText = map[string]string{
	QuestionQ1: "오늘 하루는 어땠나요?",
	QuestionQ2: "누구와 시간을 보냈나요?",
	QuestionQ3: "무엇을 먹었나요?",
	QuestionQ4: "기억에 남는 일은 무엇인가요?",
}
