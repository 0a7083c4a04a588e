package util

const (
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const MimePDF = "application/pdf"

// Generation sources reported alongside a generated quiz.
const (
	SourceBank     = "bank"
	SourceAI       = "ai"
	SourceFallback = "fallback"
)

const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// QuizLockKey is the lock key guarding history reads and appends for one user and role.
func QuizLockKey(userID uint, role string) string {
	return "quiz:" + UintToString(userID) + ":" + role
}
