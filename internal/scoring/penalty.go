package scoring

import (
	"math"

	"github.com/bandscore/bandscore-api/internal/models"
)

// WordCountPenalty returns the deduction for an under-length essay: 0.5
// points for every 25 words short of the task minimum, capped at 2.0.
func WordCountPenalty(wordCount int, taskType models.TaskType) float64 {
	minWords := taskType.MinWords()
	if wordCount >= minWords {
		return 0.0
	}

	penalty := float64(minWords-wordCount) / 25.0 * 0.5
	return math.Min(penalty, 2.0)
}

// TimePenalty returns the deduction for exceeding the task time limit: 0.1
// points per minute over, capped at 1.0. A missing elapsed time incurs no
// penalty.
func TimePenalty(timeSpentSeconds *int, taskType models.TaskType) float64 {
	if timeSpentSeconds == nil || *timeSpentSeconds == 0 {
		return 0.0
	}

	limitSeconds := int(taskType.TimeLimit().Seconds())
	if *timeSpentSeconds <= limitSeconds {
		return 0.0
	}

	minutesOver := float64(*timeSpentSeconds-limitSeconds) / 60.0
	return math.Min(minutesOver*0.1, 1.0)
}
