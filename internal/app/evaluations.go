package app

import (
	"fmt"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

// AnswerSummary aggregates an answer's recorded evaluations: every scored
// dimension, the average across them, and the taxonomy members still
// missing.
type AnswerSummary struct {
	AnswerID          int64              `json:"answerId"`
	Evaluations       []domain.Evaluation `json:"evaluations"`
	AverageScore      float64            `json:"averageScore"`
	EvaluatedCount    int                `json:"evaluatedCount"`
	MissingDimensions []domain.Dimension `json:"missingDimensions"`
}

// CreateEvaluation validates the dimension and score, then stores the
// evaluation. An invalid dimension never reaches the store.
func (a *App) CreateEvaluation(e domain.Evaluation) (domain.Evaluation, error) {
	dim, ok := domain.ParseDimension(string(e.Dimension))
	if !ok {
		return domain.Evaluation{}, fmt.Errorf("%w: %q", ErrInvalidDimension, string(e.Dimension))
	}
	if !domain.ValidScore(e.Score) {
		return domain.Evaluation{}, fmt.Errorf("%w: %v", ErrScoreOutOfRange, e.Score)
	}
	if _, found, err := a.store.GetAnswer(e.AnswerID); err != nil {
		return domain.Evaluation{}, err
	} else if !found {
		return domain.Evaluation{}, ErrParentNotFound
	}
	e.Dimension = dim
	id, err := a.store.CreateEvaluation(e)
	if err != nil {
		return domain.Evaluation{}, fmt.Errorf("create evaluation: %w", err)
	}
	created, _, err := a.store.GetEvaluation(id)
	if err != nil {
		return domain.Evaluation{}, err
	}
	return created, nil
}

// ListEvaluations returns an answer's evaluations ordered by dimension.
func (a *App) ListEvaluations(answerID int64) ([]domain.Evaluation, error) {
	return a.store.ListEvaluationsByAnswer(answerID)
}

// GetEvaluation retrieves an evaluation by id.
func (a *App) GetEvaluation(id int64) (domain.Evaluation, bool, error) {
	return a.store.GetEvaluation(id)
}

// UpdateEvaluation applies a partial update, validating any replacement
// dimension or score before the write.
func (a *App) UpdateEvaluation(id int64, upd store.EvaluationUpdate) error {
	if upd.Dimension != nil {
		dim, ok := domain.ParseDimension(string(*upd.Dimension))
		if !ok {
			return fmt.Errorf("%w: %q", ErrInvalidDimension, string(*upd.Dimension))
		}
		upd.Dimension = &dim
	}
	if upd.Score != nil && !domain.ValidScore(*upd.Score) {
		return fmt.Errorf("%w: %v", ErrScoreOutOfRange, *upd.Score)
	}
	return a.store.UpdateEvaluation(id, upd)
}

// DeleteEvaluation removes an evaluation.
func (a *App) DeleteEvaluation(id int64) error {
	return a.store.DeleteEvaluation(id)
}

// MissingDimensions returns the taxonomy members not yet recorded for the
// answer, in canonical order.
func (a *App) MissingDimensions(answerID int64) ([]domain.Dimension, bool, error) {
	if _, found, err := a.store.GetAnswer(answerID); err != nil {
		return nil, false, err
	} else if !found {
		return nil, false, nil
	}
	evals, err := a.store.ListEvaluationsByAnswer(answerID)
	if err != nil {
		return nil, false, err
	}
	recorded := make([]domain.Dimension, 0, len(evals))
	for _, e := range evals {
		recorded = append(recorded, e.Dimension)
	}
	return domain.MissingDimensions(recorded), true, nil
}

// SummarizeAnswer averages an answer's recorded scores into a summary.
func (a *App) SummarizeAnswer(answerID int64) (AnswerSummary, bool, error) {
	if _, found, err := a.store.GetAnswer(answerID); err != nil {
		return AnswerSummary{}, false, err
	} else if !found {
		return AnswerSummary{}, false, nil
	}
	evals, err := a.store.ListEvaluationsByAnswer(answerID)
	if err != nil {
		return AnswerSummary{}, false, err
	}
	summary := AnswerSummary{
		AnswerID:       answerID,
		Evaluations:    evals,
		EvaluatedCount: len(evals),
	}
	recorded := make([]domain.Dimension, 0, len(evals))
	total := 0.0
	for _, e := range evals {
		recorded = append(recorded, e.Dimension)
		total += e.Score
	}
	if len(evals) > 0 {
		summary.AverageScore = total / float64(len(evals))
	}
	summary.MissingDimensions = domain.MissingDimensions(recorded)
	return summary, true, nil
}
