package constants

// StreakBadgeRule maps a streak length to the badge unlocked at that length.
type StreakBadgeRule struct {
	Threshold int
	BadgeID   uint
}

// DefaultStreakBadgeRules is the fixed threshold table: 3/7/14/30 consecutive
// days unlock badges 1..4. Ordered ascending; injected into the streak service
// so tests can override it.
var DefaultStreakBadgeRules = []StreakBadgeRule{
	{Threshold: 3, BadgeID: 1},
	{Threshold: 7, BadgeID: 2},
	{Threshold: 14, BadgeID: 3},
	{Threshold: 30, BadgeID: 4},
}

// MaxDailySkips caps how many quizzes a user may skip per day.
const MaxDailySkips = 2

// MaxDailyQuizzes caps how many quizzes one generation call may create.
const MaxDailyQuizzes = 2

// QuizSeedWindowDays is the look-back window for quiz seeds (yesterday back to
// three days ago; today is excluded).
const QuizSeedWindowDays = 3
