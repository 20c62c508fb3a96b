package app

import (
	"fmt"
	"strings"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

// CreateQuestion stores a new question and renumbers its thread. With no
// explicit sequence number the question is appended after the current last
// one; an explicit number is taken as a requested position and normalized
// by the resequence pass.
func (a *App) CreateQuestion(q domain.Question) (domain.Question, error) {
	if strings.TrimSpace(q.Content) == "" {
		return domain.Question{}, ErrContentRequired
	}
	if _, ok, err := a.store.GetThread(q.ThreadID); err != nil {
		return domain.Question{}, err
	} else if !ok {
		return domain.Question{}, ErrParentNotFound
	}
	if q.SequenceNumber <= 0 {
		existing, err := a.store.ListQuestionsByThread(q.ThreadID)
		if err != nil {
			return domain.Question{}, err
		}
		q.SequenceNumber = len(existing) + 1
	}
	id, err := a.store.CreateQuestion(q)
	if err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	if _, err := a.ResequenceThread(q.ThreadID); err != nil {
		return domain.Question{}, err
	}
	created, _, err := a.store.GetQuestion(id)
	if err != nil {
		return domain.Question{}, err
	}
	return created, nil
}

// ListQuestions returns a thread's questions in sequence order.
func (a *App) ListQuestions(threadID int64) ([]domain.Question, error) {
	return a.store.ListQuestionsByThread(threadID)
}

// GetQuestion retrieves a question by id.
func (a *App) GetQuestion(id int64) (domain.Question, bool, error) {
	return a.store.GetQuestion(id)
}

// UpdateQuestion applies a partial update. When the sequence number
// changes the thread is renumbered afterwards.
func (a *App) UpdateQuestion(id int64, upd store.QuestionUpdate) error {
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return ErrContentRequired
	}
	current, ok, err := a.store.GetQuestion(id)
	if err != nil {
		return err
	}
	if !ok {
		return a.store.UpdateQuestion(id, upd)
	}
	if err := a.store.UpdateQuestion(id, upd); err != nil {
		return err
	}
	if upd.SequenceNumber != nil && *upd.SequenceNumber != current.SequenceNumber {
		if _, err := a.ResequenceThread(current.ThreadID); err != nil {
			return err
		}
	}
	return nil
}

// DeleteQuestion removes a question and renumbers the remaining ones in
// its thread.
func (a *App) DeleteQuestion(id int64) error {
	q, ok, err := a.store.GetQuestion(id)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := a.store.DeleteQuestion(id); err != nil {
		return err
	}
	_, err = a.ResequenceThread(q.ThreadID)
	return err
}

// ResequenceThread rewrites a thread's sequence numbers as a dense 1..N
// run matching the current relative order (ties broken by creation order).
// Only out-of-place rows are written, so a repeated run performs zero
// writes. Each row is an independent update; a pass cut short is repaired
// by the next run.
func (a *App) ResequenceThread(threadID int64) (int, error) {
	questions, err := a.store.ListQuestionsByThread(threadID)
	if err != nil {
		return 0, err
	}
	writes := 0
	for i, q := range questions {
		want := i + 1
		if q.SequenceNumber == want {
			continue
		}
		seq := want
		if err := a.store.UpdateQuestion(q.ID, store.QuestionUpdate{SequenceNumber: &seq}); err != nil {
			return writes, fmt.Errorf("resequence thread %d: %w", threadID, err)
		}
		writes++
	}
	return writes, nil
}
