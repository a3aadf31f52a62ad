package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bandscore/bandscore-api/internal/models"
)

func TestWordCountPenalty(t *testing.T) {
	require.Equal(t, 0.0, WordCountPenalty(150, models.TaskType1))
	require.Equal(t, 0.0, WordCountPenalty(320, models.TaskType2))

	// 50 words short of 150 at 0.5 per 25 words.
	require.InDelta(t, 1.0, WordCountPenalty(100, models.TaskType1), 1e-9)
	require.InDelta(t, 0.5, WordCountPenalty(225, models.TaskType2), 1e-9)

	// Shortfall beyond the cap is clamped to 2.0.
	require.InDelta(t, 2.0, WordCountPenalty(0, models.TaskType1), 1e-9)
	require.InDelta(t, 2.0, WordCountPenalty(10, models.TaskType2), 1e-9)
}

func TestTimePenalty(t *testing.T) {
	require.Equal(t, 0.0, TimePenalty(nil, models.TaskType1))

	within := 1200
	require.Equal(t, 0.0, TimePenalty(&within, models.TaskType1))

	atLimit := 2400
	require.Equal(t, 0.0, TimePenalty(&atLimit, models.TaskType2))

	// 600 seconds over the task2 limit is ten minutes at 0.1 per minute,
	// exactly at the cap.
	overtime := 3000
	require.InDelta(t, 1.0, TimePenalty(&overtime, models.TaskType2), 1e-9)

	slightly := 1260
	require.InDelta(t, 0.1, TimePenalty(&slightly, models.TaskType1), 1e-9)

	wayOver := 9000
	require.InDelta(t, 1.0, TimePenalty(&wayOver, models.TaskType2), 1e-9)
}
