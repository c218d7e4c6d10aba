package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"literacylab/internal/grading"
	"literacylab/internal/models"
	"literacylab/internal/repository"
)

var (
	ErrAttemptNotFound  = errors.New("attempt not found")
	ErrAttemptNotOwned  = errors.New("attempt belongs to another user")
	ErrAttemptNotGraded = errors.New("attempt has not been submitted yet")
)

// AttemptResult is the full graded outcome returned on submission
type AttemptResult struct {
	ActivityID string         `json:"activity_id"`
	Result     grading.Result `json:"result"`
	Resubmit   bool           `json:"resubmit,omitempty"`
}

// AttemptService handles practice attempt business logic
type AttemptService struct {
	activityRepo *repository.ActivityRepository
	questionRepo *repository.QuestionRepository
	contentRepo  *repository.ContentRepository
}

// NewAttemptService creates a new attempt service
func NewAttemptService(activityRepo *repository.ActivityRepository, questionRepo *repository.QuestionRepository, contentRepo *repository.ContentRepository) *AttemptService {
	return &AttemptService{
		activityRepo: activityRepo,
		questionRepo: questionRepo,
		contentRepo:  contentRepo,
	}
}

// Start records that a user began a practice set and returns the attempt
func (s *AttemptService) Start(userID, contentID string) (*models.UserActivity, error) {
	content, err := s.contentRepo.GetContentByID(contentID)
	if err != nil {
		return nil, err
	}
	if content == nil {
		return nil, ErrContentNotFound
	}

	count, err := s.questionRepo.CountQuestionsByContentID(contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	return s.activityRepo.CreateActivity(userID, contentID, count)
}

// Submit grades an attempt's answers and records the outcome. Grading is a
// pure function of the questions and answers, so resubmitting the same
// answers yields an identical result; a resubmission of a completed attempt
// regrades but never rewrites the stored row or the stats rollup, so each
// attempt counts once. Recording the completion and rolling up stats are
// best-effort: a storage failure there is logged and the graded result
// still returns.
func (s *AttemptService) Submit(userID, activityID string, answers map[string]grading.Answer) (*AttemptResult, error) {
	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrAttemptNotFound
	}
	if activity.UserID != userID {
		return nil, ErrAttemptNotOwned
	}

	rows, err := s.questionRepo.GetQuestionsByContentID(activity.PracticeContentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load questions: %w", err)
	}

	result := grading.Score(grading.NormalizeAll(rows), answers)

	if activity.IsCompleted() {
		return &AttemptResult{ActivityID: activity.ID, Result: result, Resubmit: true}, nil
	}

	timeSpent := int(time.Since(activity.StartedAt).Seconds())
	if timeSpent < 0 {
		timeSpent = 0
	}

	if err := s.activityRepo.CompleteActivity(activity.ID, result.Score, result.TotalQuestions, result.CorrectAnswers, timeSpent); err != nil {
		log.Printf("Failed to record completion for attempt %s: %v", activity.ID, err)
		return &AttemptResult{ActivityID: activity.ID, Result: result}, nil
	}

	if err := s.rollUpStats(userID, result, timeSpent); err != nil {
		log.Printf("Failed to update stats for user %s: %v", userID, err)
	}

	return &AttemptResult{ActivityID: activity.ID, Result: result}, nil
}

// Results retrieves the stored outcome of a completed attempt
func (s *AttemptService) Results(userID, activityID string) (*models.UserActivity, error) {
	activity, err := s.activityRepo.GetActivityByID(activityID)
	if err != nil {
		return nil, err
	}
	if activity == nil {
		return nil, ErrAttemptNotFound
	}
	if activity.UserID != userID {
		return nil, ErrAttemptNotOwned
	}
	if !activity.IsCompleted() {
		return nil, ErrAttemptNotGraded
	}
	return activity, nil
}

// RecentActivity retrieves a user's most recent attempts
func (s *AttemptService) RecentActivity(userID string, limit int) ([]models.UserActivity, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.activityRepo.GetRecentActivity(userID, limit)
}

// Stats retrieves a user's aggregate stats
func (s *AttemptService) Stats(userID string) (*models.UserStats, error) {
	return s.activityRepo.GetStats(userID)
}

// rollUpStats folds a graded attempt into the user's aggregate row
func (s *AttemptService) rollUpStats(userID string, result grading.Result, timeSpent int) error {
	stats, err := s.activityRepo.GetStats(userID)
	if err != nil {
		return err
	}

	stats.TotalPracticeSessions++
	stats.TotalQuestions += result.TotalQuestions
	stats.TotalCorrectAnswers += result.CorrectAnswers
	stats.TotalTimeSpentSeconds += timeSpent
	advanceStreak(stats, time.Now())

	return s.activityRepo.UpsertStats(stats)
}

// advanceStreak updates the practice streak counters for an attempt
// completed at now. A second session on the same day leaves the streak
// unchanged; a session the day after the last one extends it; any longer
// gap restarts it at one.
func advanceStreak(stats *models.UserStats, now time.Time) {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")

	switch stats.LastPracticeDate {
	case today:
		// already counted
	case yesterday:
		stats.CurrentStreakDays++
	default:
		stats.CurrentStreakDays = 1
	}

	if stats.CurrentStreakDays > stats.LongestStreakDays {
		stats.LongestStreakDays = stats.CurrentStreakDays
	}
	stats.LastPracticeDate = today
}
