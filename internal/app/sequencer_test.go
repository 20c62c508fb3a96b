package app

import (
	"testing"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

func sequenceNumbers(t *testing.T, a *App, threadID int64) []int {
	t.Helper()
	questions, err := a.ListQuestions(threadID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	seqs := make([]int, 0, len(questions))
	for _, q := range questions {
		seqs = append(seqs, q.SequenceNumber)
	}
	return seqs
}

func assertDense(t *testing.T, seqs []int) {
	t.Helper()
	for i, seq := range seqs {
		if seq != i+1 {
			t.Fatalf("sequence numbers not dense: got %v", seqs)
		}
	}
}

func TestCreateQuestionAssignsNextSequence(t *testing.T) {
	a := newTestApp(t)
	th := newTestThread(t, a)

	q1 := mustQuestion(t, a, th.ID, "Q1")
	q2 := mustQuestion(t, a, th.ID, "Q2")
	q3 := mustQuestion(t, a, th.ID, "Q3")

	if q1.SequenceNumber != 1 || q2.SequenceNumber != 2 || q3.SequenceNumber != 3 {
		t.Fatalf("auto sequence = %d,%d,%d, want 1,2,3",
			q1.SequenceNumber, q2.SequenceNumber, q3.SequenceNumber)
	}
}

func TestDeleteQuestionRenumbersThread(t *testing.T) {
	a := newTestApp(t)
	th := newTestThread(t, a)

	mustQuestion(t, a, th.ID, "Q1")
	q2 := mustQuestion(t, a, th.ID, "Q2")
	mustQuestion(t, a, th.ID, "Q3")

	if err := a.DeleteQuestion(q2.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	questions, err := a.ListQuestions(th.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].Content != "Q1" || questions[1].Content != "Q3" {
		t.Fatalf("relative order lost: %q, %q", questions[0].Content, questions[1].Content)
	}
	assertDense(t, sequenceNumbers(t, a, th.ID))
}

func TestResequenceIsIdempotent(t *testing.T) {
	a := newTestApp(t)
	th := newTestThread(t, a)
	for _, content := range []string{"Q1", "Q2", "Q3", "Q4"} {
		mustQuestion(t, a, th.ID, content)
	}

	// Open a gap by hand, bypassing the app layer.
	questions, _ := a.ListQuestions(th.ID)
	seq := 9
	if err := a.store.UpdateQuestion(questions[2].ID, store.QuestionUpdate{SequenceNumber: &seq}); err != nil {
		t.Fatalf("force gap: %v", err)
	}

	writes, err := a.ResequenceThread(th.ID)
	if err != nil {
		t.Fatalf("resequence: %v", err)
	}
	if writes == 0 {
		t.Fatalf("expected at least one write to close the gap")
	}
	assertDense(t, sequenceNumbers(t, a, th.ID))

	writes, err = a.ResequenceThread(th.ID)
	if err != nil {
		t.Fatalf("second resequence: %v", err)
	}
	if writes != 0 {
		t.Fatalf("second run should be a no-op, performed %d writes", writes)
	}
}

func TestResequencePreservesRelativeOrderAcrossGaps(t *testing.T) {
	a := newTestApp(t)
	th := newTestThread(t, a)
	contents := []string{"alpha", "beta", "gamma"}
	ids := make([]int64, 0, len(contents))
	for _, content := range contents {
		ids = append(ids, mustQuestion(t, a, th.ID, content).ID)
	}

	// Sparse, shuffled numbering: alpha=30, beta=5, gamma=12.
	for i, seq := range []int{30, 5, 12} {
		n := seq
		if err := a.store.UpdateQuestion(ids[i], store.QuestionUpdate{SequenceNumber: &n}); err != nil {
			t.Fatalf("scatter sequence: %v", err)
		}
	}

	if _, err := a.ResequenceThread(th.ID); err != nil {
		t.Fatalf("resequence: %v", err)
	}
	questions, _ := a.ListQuestions(th.ID)
	wantOrder := []string{"beta", "gamma", "alpha"}
	for i, content := range wantOrder {
		if questions[i].Content != content {
			t.Fatalf("questions[%d] = %q, want %q", i, questions[i].Content, content)
		}
	}
	assertDense(t, sequenceNumbers(t, a, th.ID))
}

func TestUpdateQuestionSequenceTriggersRenumbering(t *testing.T) {
	a := newTestApp(t)
	th := newTestThread(t, a)
	q1 := mustQuestion(t, a, th.ID, "Q1")
	mustQuestion(t, a, th.ID, "Q2")
	mustQuestion(t, a, th.ID, "Q3")

	// Move Q1 behind the others.
	seq := 10
	if err := a.UpdateQuestion(q1.ID, store.QuestionUpdate{SequenceNumber: &seq}); err != nil {
		t.Fatalf("update question: %v", err)
	}

	questions, _ := a.ListQuestions(th.ID)
	wantOrder := []string{"Q2", "Q3", "Q1"}
	for i, content := range wantOrder {
		if questions[i].Content != content {
			t.Fatalf("questions[%d] = %q, want %q", i, questions[i].Content, content)
		}
	}
	assertDense(t, sequenceNumbers(t, a, th.ID))
}

func TestEndToEndReviewerExample(t *testing.T) {
	a := newTestApp(t)
	p := mustPersona(t, a, "Reviewer")
	c := mustCategory(t, a, p.ID, "Math")
	th := mustThread(t, a, c.ID, "Algebra")

	mustQuestion(t, a, th.ID, "Q1")
	q2 := mustQuestion(t, a, th.ID, "Q2")
	mustQuestion(t, a, th.ID, "Q3")

	if got := sequenceNumbers(t, a, th.ID); len(got) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(got))
	}
	assertDense(t, sequenceNumbers(t, a, th.ID))

	if err := a.DeleteQuestion(q2.ID); err != nil {
		t.Fatalf("delete Q2: %v", err)
	}

	questions, err := a.ListQuestions(th.ID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if questions[0].Content != "Q1" || questions[0].SequenceNumber != 1 {
		t.Fatalf("questions[0] = %q seq %d, want Q1 seq 1", questions[0].Content, questions[0].SequenceNumber)
	}
	if questions[1].Content != "Q3" || questions[1].SequenceNumber != 2 {
		t.Fatalf("questions[1] = %q seq %d, want Q3 seq 2", questions[1].Content, questions[1].SequenceNumber)
	}
}

func TestCreateQuestionRejectsMissingThread(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.CreateQuestion(domain.Question{ThreadID: 42, Content: "orphan"}); err == nil {
		t.Fatalf("expected error for missing thread")
	}
}
