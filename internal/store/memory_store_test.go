package store

import (
	"testing"
	"time"

	"evalbank/pkg/domain"
)

func TestMemoryStoreAssignsSequentialIDs(t *testing.T) {
	m := NewMemoryStore()
	first, err := m.CreatePersona(domain.Persona{Name: "A"})
	if err != nil {
		t.Fatalf("create persona: %v", err)
	}
	second, err := m.CreatePersona(domain.Persona{Name: "B"})
	if err != nil {
		t.Fatalf("create persona: %v", err)
	}
	if first <= 0 || second != first+1 {
		t.Fatalf("ids = %d, %d, want increasing positive", first, second)
	}
}

func TestMemoryStoreListOrdering(t *testing.T) {
	m := NewMemoryStore()
	pid, _ := m.CreatePersona(domain.Persona{Name: "P"})
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if _, err := m.CreateCategory(domain.Category{PersonaID: pid, Name: name}); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}
	cats, err := m.ListCategoriesByPersona(pid)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	for i, name := range want {
		if cats[i].Name != name {
			t.Fatalf("cats[%d].Name = %q, want %q", i, cats[i].Name, name)
		}
	}
}

func TestMemoryStoreAnswersInCreationOrder(t *testing.T) {
	m := NewMemoryStore()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	// Insert out of chronological order; list must sort by created_at.
	if _, err := m.CreateAnswer(domain.Answer{QuestionID: 1, Content: "later", CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("create answer: %v", err)
	}
	if _, err := m.CreateAnswer(domain.Answer{QuestionID: 1, Content: "earlier", CreatedAt: base, UpdatedAt: base}); err != nil {
		t.Fatalf("create answer: %v", err)
	}
	answers, err := m.ListAnswersByQuestion(1)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if answers[0].Content != "earlier" || answers[1].Content != "later" {
		t.Fatalf("order = %q, %q, want earlier, later", answers[0].Content, answers[1].Content)
	}
}

func TestMemoryStoreEvaluationsOrderedByDimension(t *testing.T) {
	m := NewMemoryStore()
	for _, dim := range []domain.Dimension{domain.DimensionVerbose, domain.DimensionAccuracy, domain.DimensionRelevance} {
		if _, err := m.CreateEvaluation(domain.Evaluation{AnswerID: 7, Dimension: dim, Score: 5}); err != nil {
			t.Fatalf("create evaluation: %v", err)
		}
	}
	evals, err := m.ListEvaluationsByAnswer(7)
	if err != nil {
		t.Fatalf("list evaluations: %v", err)
	}
	want := []domain.Dimension{domain.DimensionAccuracy, domain.DimensionRelevance, domain.DimensionVerbose}
	for i, dim := range want {
		if evals[i].Dimension != dim {
			t.Fatalf("evals[%d].Dimension = %q, want %q", i, evals[i].Dimension, dim)
		}
	}
}

func TestMemoryStoreRejectsUnfilteredMutation(t *testing.T) {
	m := NewMemoryStore()
	name := "x"
	if err := m.UpdatePersona(0, PersonaUpdate{Name: &name}); err != ErrMissingFilter {
		t.Fatalf("update without id: got %v, want ErrMissingFilter", err)
	}
	if err := m.DeleteQuestion(-3); err != ErrMissingFilter {
		t.Fatalf("delete without id: got %v, want ErrMissingFilter", err)
	}
}

func TestMemoryStoreCascadeDelete(t *testing.T) {
	m := NewMemoryStore()
	pid, _ := m.CreatePersona(domain.Persona{Name: "P"})
	cid, _ := m.CreateCategory(domain.Category{PersonaID: pid, Name: "C"})
	tid, _ := m.CreateThread(domain.Thread{CategoryID: cid, Name: "T"})
	qid, _ := m.CreateQuestion(domain.Question{ThreadID: tid, Content: "Q", SequenceNumber: 1})
	aid, _ := m.CreateAnswer(domain.Answer{QuestionID: qid, Content: "A"})
	eid, _ := m.CreateEvaluation(domain.Evaluation{AnswerID: aid, Dimension: domain.DimensionRelevance, Score: 4})

	if err := m.DeleteCategory(cid); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	if _, found, _ := m.GetThread(tid); found {
		t.Fatalf("thread should be cascaded away")
	}
	if _, found, _ := m.GetQuestion(qid); found {
		t.Fatalf("question should be cascaded away")
	}
	if _, found, _ := m.GetAnswer(aid); found {
		t.Fatalf("answer should be cascaded away")
	}
	if _, found, _ := m.GetEvaluation(eid); found {
		t.Fatalf("evaluation should be cascaded away")
	}
	// The persona above the deleted category survives.
	if _, found, _ := m.GetPersona(pid); !found {
		t.Fatalf("persona should survive a category delete")
	}
}

func TestMemoryStoreGetMissingIsNotAnError(t *testing.T) {
	m := NewMemoryStore()
	if _, found, err := m.GetThread(123); err != nil || found {
		t.Fatalf("get missing thread: found=%v err=%v", found, err)
	}
	answers, err := m.ListAnswersByQuestion(999)
	if err != nil {
		t.Fatalf("list answers of missing question: %v", err)
	}
	if len(answers) != 0 {
		t.Fatalf("expected empty collection, got %d", len(answers))
	}
}
