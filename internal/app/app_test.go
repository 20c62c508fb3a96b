package app

import (
	"errors"
	"testing"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	a, err := New(Config{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a
}

func mustPersona(t *testing.T, a *App, name string) domain.Persona {
	t.Helper()
	p, err := a.CreatePersona(domain.Persona{Name: name})
	if err != nil {
		t.Fatalf("create persona %q: %v", name, err)
	}
	return p
}

func mustCategory(t *testing.T, a *App, personaID int64, name string) domain.Category {
	t.Helper()
	c, err := a.CreateCategory(domain.Category{PersonaID: personaID, Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func mustThread(t *testing.T, a *App, categoryID int64, name string) domain.Thread {
	t.Helper()
	th, err := a.CreateThread(domain.Thread{CategoryID: categoryID, Name: name})
	if err != nil {
		t.Fatalf("create thread %q: %v", name, err)
	}
	return th
}

func mustQuestion(t *testing.T, a *App, threadID int64, content string) domain.Question {
	t.Helper()
	q, err := a.CreateQuestion(domain.Question{ThreadID: threadID, Content: content})
	if err != nil {
		t.Fatalf("create question %q: %v", content, err)
	}
	return q
}

func mustAnswer(t *testing.T, a *App, questionID int64, content string) domain.Answer {
	t.Helper()
	ans, err := a.CreateAnswer(domain.Answer{QuestionID: questionID, Content: content})
	if err != nil {
		t.Fatalf("create answer %q: %v", content, err)
	}
	return ans
}

func newTestThread(t *testing.T, a *App) domain.Thread {
	t.Helper()
	p := mustPersona(t, a, "Reviewer")
	c := mustCategory(t, a, p.ID, "Math")
	return mustThread(t, a, c.ID, "Algebra")
}

func TestCreatePersonaRequiresName(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.CreatePersona(domain.Persona{Name: "  "}); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("expected ErrNameRequired, got %v", err)
	}
}

func TestCreateCategoryRequiresExistingPersona(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.CreateCategory(domain.Category{PersonaID: 99, Name: "Math"}); !errors.Is(err, ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
}

func TestListPersonasOrderedByName(t *testing.T) {
	a := newTestApp(t)
	mustPersona(t, a, "Tutor")
	mustPersona(t, a, "Assistant")
	mustPersona(t, a, "Reviewer")

	personas, err := a.ListPersonas()
	if err != nil {
		t.Fatalf("list personas: %v", err)
	}
	want := []string{"Assistant", "Reviewer", "Tutor"}
	if len(personas) != len(want) {
		t.Fatalf("got %d personas, want %d", len(personas), len(want))
	}
	for i, name := range want {
		if personas[i].Name != name {
			t.Fatalf("personas[%d].Name = %q, want %q", i, personas[i].Name, name)
		}
	}
}

func TestUpdatePersonaPartialFields(t *testing.T) {
	a := newTestApp(t)
	p := mustPersona(t, a, "Reviewer")

	desc := "grades answers"
	if err := a.UpdatePersona(p.ID, store.PersonaUpdate{Description: &desc, UpdatedBy: "admin"}); err != nil {
		t.Fatalf("update persona: %v", err)
	}
	got, found, err := a.GetPersona(p.ID)
	if err != nil || !found {
		t.Fatalf("get persona: found=%v err=%v", found, err)
	}
	if got.Name != "Reviewer" {
		t.Fatalf("name should be untouched, got %q", got.Name)
	}
	if got.Description != desc {
		t.Fatalf("description = %q, want %q", got.Description, desc)
	}
	if got.UpdatedBy != "admin" {
		t.Fatalf("updatedBy = %q, want admin", got.UpdatedBy)
	}
}

func TestDeletePersonaCascades(t *testing.T) {
	a := newTestApp(t)
	p := mustPersona(t, a, "Reviewer")
	c := mustCategory(t, a, p.ID, "Math")
	th := mustThread(t, a, c.ID, "Algebra")
	q := mustQuestion(t, a, th.ID, "What is x?")
	ans := mustAnswer(t, a, q.ID, "x is 4")
	if _, err := a.CreateEvaluation(domain.Evaluation{
		AnswerID:  ans.ID,
		Dimension: domain.DimensionRelevance,
		Score:     8,
	}); err != nil {
		t.Fatalf("create evaluation: %v", err)
	}

	if err := a.DeletePersona(p.ID); err != nil {
		t.Fatalf("delete persona: %v", err)
	}

	if cats, _ := a.ListCategories(p.ID); len(cats) != 0 {
		t.Fatalf("categories should be gone, got %d", len(cats))
	}
	if ths, _ := a.ListThreads(c.ID); len(ths) != 0 {
		t.Fatalf("threads should be gone, got %d", len(ths))
	}
	if qs, _ := a.ListQuestions(th.ID); len(qs) != 0 {
		t.Fatalf("questions should be gone, got %d", len(qs))
	}
	if anss, _ := a.ListAnswers(q.ID); len(anss) != 0 {
		t.Fatalf("answers should be gone, got %d", len(anss))
	}
	if evals, _ := a.ListEvaluations(ans.ID); len(evals) != 0 {
		t.Fatalf("evaluations should be gone, got %d", len(evals))
	}
}
