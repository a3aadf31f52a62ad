package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bandscore/bandscore-api/internal/dto"
	"github.com/bandscore/bandscore-api/internal/models"
	"github.com/bandscore/bandscore-api/internal/repository"
	"github.com/bandscore/bandscore-api/internal/scoring"
	"github.com/bandscore/bandscore-api/pkg/ai"
)

// ErrInvalidScoreRequest indicates the submitted essay or task type cannot be
// evaluated.
var ErrInvalidScoreRequest = errors.New("invalid score request")

// ErrScoreNotFound indicates the requested score does not exist for the user.
var ErrScoreNotFound = errors.New("writing score not found")

// WritingService exposes essay evaluation and score retrieval operations.
type WritingService interface {
	Score(ctx context.Context, userID uint, payload dto.ScoreEssayRequest) (dto.WritingScoreResponse, error)
	ListScores(ctx context.Context, userID uint) ([]dto.WritingScoreResponse, error)
	GetScore(ctx context.Context, userID uint, scoreID uint) (dto.WritingScoreResponse, error)
	ListCombinedScores(ctx context.Context, userID uint) ([]dto.CombinedScoreResponse, error)
}

// WritingServiceConfig describes evaluation knobs.
type WritingServiceConfig struct {
	CreditsPerEvaluation int
	ScoreCacheTTL        time.Duration
}

type writingService struct {
	scores    repository.WritingScoreRepository
	combined  repository.CombinedScoreRepository
	credits   repository.CreditsRepository
	judge     ai.EssayJudge
	validator *validator.Validate
	cache     *redis.Client
	logger    zerolog.Logger
	config    WritingServiceConfig
}

// NewWritingService constructs the essay evaluation service.
func NewWritingService(scoreRepo repository.WritingScoreRepository, combinedRepo repository.CombinedScoreRepository, creditsRepo repository.CreditsRepository, judge ai.EssayJudge, validate *validator.Validate, cache *redis.Client, logger zerolog.Logger, cfg WritingServiceConfig) WritingService {
	if cfg.CreditsPerEvaluation <= 0 {
		cfg.CreditsPerEvaluation = 1
	}
	if cfg.ScoreCacheTTL <= 0 {
		cfg.ScoreCacheTTL = 5 * time.Minute
	}

	return &writingService{
		scores:    scoreRepo,
		combined:  combinedRepo,
		credits:   creditsRepo,
		judge:     judge,
		validator: validate,
		cache:     cache,
		logger:    logger.With().Str("component", "writing_service").Logger(),
		config:    cfg,
	}
}

// Score runs the full evaluation pipeline: validate, charge a credit, judge,
// normalize the bands, apply penalties, attach highlight positions, persist
// and try to merge with the latest score of the other task.
//
// The credit is charged before the judge is called and is not refunded when
// the judge fails.
func (s *writingService) Score(ctx context.Context, userID uint, payload dto.ScoreEssayRequest) (dto.WritingScoreResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.WritingScoreResponse{}, fmt.Errorf("%w: %v", ErrInvalidScoreRequest, err)
	}

	taskType := models.TaskType(strings.ToLower(strings.TrimSpace(payload.TaskType)))
	if !taskType.Valid() {
		return dto.WritingScoreResponse{}, fmt.Errorf("%w: unknown task type %q", ErrInvalidScoreRequest, payload.TaskType)
	}

	essay := strings.TrimSpace(payload.EssayText)
	if essay == "" {
		return dto.WritingScoreResponse{}, fmt.Errorf("%w: essay text is empty", ErrInvalidScoreRequest)
	}

	wordCount := len(strings.Fields(essay))

	if err := s.credits.Consume(ctx, userID, s.config.CreditsPerEvaluation); err != nil {
		return dto.WritingScoreResponse{}, err
	}

	result, err := s.judge.Judge(ctx, ai.JudgeInput{
		EssayText:    essay,
		TaskType:     string(taskType),
		Prompt:       payload.Prompt,
		Context:      payload.Context,
		Instructions: payload.Instructions,
		Source:       payload.Source,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", userID).Str("task_type", string(taskType)).Msg("essay judge failed")
		return dto.WritingScoreResponse{}, err
	}

	taskAchievement := scoring.RoundBand(result.Scores.TaskAchievement)
	coherence := scoring.RoundBand(result.Scores.CoherenceCohesion)
	lexical := scoring.RoundBand(result.Scores.LexicalResource)
	grammar := scoring.RoundBand(result.Scores.GrammaticalRange)

	overall := scoring.OverallBand([]float64{taskAchievement, coherence, lexical, grammar})
	wordPenalty := scoring.WordCountPenalty(wordCount, taskType)
	timePenalty := scoring.TimePenalty(payload.TimeSpent, taskType)
	adjusted := scoring.RoundBand(math.Max(0, overall-wordPenalty-timePenalty))

	corrections := scoring.HighlightCorrections(essay, result.Corrections)
	correctionsJSON, err := json.Marshal(corrections)
	if err != nil {
		return dto.WritingScoreResponse{}, fmt.Errorf("encode corrections: %w", err)
	}

	score := models.WritingScore{
		UserID:                    userID,
		TaskType:                  taskType,
		EssayText:                 essay,
		WordCount:                 wordCount,
		TimeSpent:                 payload.TimeSpent,
		TaskAchievement:           taskAchievement,
		CoherenceCohesion:         coherence,
		LexicalResource:           lexical,
		GrammaticalRange:          grammar,
		OverallScore:              overall,
		WordCountPenalty:          wordPenalty,
		TimePenalty:               timePenalty,
		AdjustedScore:             adjusted,
		TaskAchievementFeedback:   result.Feedback.TaskAchievement,
		CoherenceCohesionFeedback: result.Feedback.CoherenceCohesion,
		LexicalResourceFeedback:   result.Feedback.LexicalResource,
		GrammaticalRangeFeedback:  result.Feedback.GrammaticalRange,
		Corrections:               datatypes.JSON(correctionsJSON),
	}

	if err := s.scores.Create(ctx, &score); err != nil {
		return dto.WritingScoreResponse{}, fmt.Errorf("persist writing score: %w", err)
	}

	s.maybeCombine(ctx, score)
	s.invalidateScoreCache(ctx, userID)

	return dto.NewWritingScoreResponse(score), nil
}

// maybeCombine merges the new score with the latest score of the other task
// into a weighted overall band. Failures here never fail the evaluation.
func (s *writingService) maybeCombine(ctx context.Context, score models.WritingScore) {
	otherTask := models.TaskType1
	if score.TaskType == models.TaskType1 {
		otherTask = models.TaskType2
	}

	other, err := s.scores.LatestByUserAndTask(ctx, score.UserID, otherTask)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error().Err(err).Uint("user_id", score.UserID).Msg("lookup counterpart score failed")
		}
		return
	}

	task1, task2 := score, other
	if score.TaskType == models.TaskType2 {
		task1, task2 = other, score
	}

	exists, err := s.combined.ExistsForPair(ctx, score.UserID, task1.ID, task2.ID)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", score.UserID).Msg("combined score lookup failed")
		return
	}
	if exists {
		return
	}

	combined := models.CombinedWritingScore{
		UserID:        score.UserID,
		Task1ScoreID:  task1.ID,
		Task2ScoreID:  task2.ID,
		CombinedScore: scoring.RoundBand(task1.AdjustedScore/3 + task2.AdjustedScore*2/3),
	}

	if err := s.combined.Create(ctx, &combined); err != nil {
		s.logger.Warn().Err(err).
			Uint("user_id", score.UserID).
			Uint("task1_score_id", task1.ID).
			Uint("task2_score_id", task2.ID).
			Msg("combined score not recorded")
	}
}

func (s *writingService) ListScores(ctx context.Context, userID uint) ([]dto.WritingScoreResponse, error) {
	cacheKey := s.scoreCacheKey(userID)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var responses []dto.WritingScoreResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &responses); unmarshalErr == nil {
				return responses, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("score cache read failed")
		}
	}

	scores, err := s.scores.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WritingScoreResponse, 0, len(scores))
	for _, score := range scores {
		responses = append(responses, dto.NewWritingScoreResponse(score))
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(responses); err == nil {
			if err := s.cache.Set(ctx, cacheKey, encoded, s.config.ScoreCacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("score cache write failed")
			}
		}
	}

	return responses, nil
}

func (s *writingService) GetScore(ctx context.Context, userID uint, scoreID uint) (dto.WritingScoreResponse, error) {
	score, err := s.scores.GetByID(ctx, scoreID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.WritingScoreResponse{}, ErrScoreNotFound
		}
		return dto.WritingScoreResponse{}, err
	}

	return dto.NewWritingScoreResponse(score), nil
}

func (s *writingService) ListCombinedScores(ctx context.Context, userID uint) ([]dto.CombinedScoreResponse, error) {
	combined, err := s.combined.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CombinedScoreResponse, 0, len(combined))
	for _, record := range combined {
		responses = append(responses, dto.NewCombinedScoreResponse(record))
	}

	return responses, nil
}

func (s *writingService) scoreCacheKey(userID uint) string {
	return fmt.Sprintf("writing:scores:%d", userID)
}

func (s *writingService) invalidateScoreCache(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.scoreCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("score cache invalidation failed")
	}
}
