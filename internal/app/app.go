package app

import (
	"fmt"
	"strings"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL string
	Store       store.Store
}

// App wires the record store to the domain rules: hierarchy ownership
// checks, question sequencing, and the evaluation dimension taxonomy.
type App struct {
	store store.Store
}

// New constructs the application. A pre-built store takes precedence over
// the database URL; otherwise a Postgres-backed store is opened.
func New(cfg Config) (*App, error) {
	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}
	return &App{store: dataStore}, nil
}

// CreatePersona validates and stores a new persona.
func (a *App) CreatePersona(p domain.Persona) (domain.Persona, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.Persona{}, ErrNameRequired
	}
	id, err := a.store.CreatePersona(p)
	if err != nil {
		return domain.Persona{}, fmt.Errorf("create persona: %w", err)
	}
	created, _, err := a.store.GetPersona(id)
	if err != nil {
		return domain.Persona{}, err
	}
	return created, nil
}

// ListPersonas returns all personas ordered by name.
func (a *App) ListPersonas() ([]domain.Persona, error) {
	return a.store.ListPersonas()
}

// GetPersona retrieves a persona by id.
func (a *App) GetPersona(id int64) (domain.Persona, bool, error) {
	return a.store.GetPersona(id)
}

// UpdatePersona applies a partial update.
func (a *App) UpdatePersona(id int64, upd store.PersonaUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrNameRequired
	}
	return a.store.UpdatePersona(id, upd)
}

// DeletePersona removes a persona; the store cascades to all descendants.
func (a *App) DeletePersona(id int64) error {
	return a.store.DeletePersona(id)
}

// CreateCategory validates ownership and stores a new category.
func (a *App) CreateCategory(c domain.Category) (domain.Category, error) {
	if strings.TrimSpace(c.Name) == "" {
		return domain.Category{}, ErrNameRequired
	}
	if _, ok, err := a.store.GetPersona(c.PersonaID); err != nil {
		return domain.Category{}, err
	} else if !ok {
		return domain.Category{}, ErrParentNotFound
	}
	id, err := a.store.CreateCategory(c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}
	created, _, err := a.store.GetCategory(id)
	if err != nil {
		return domain.Category{}, err
	}
	return created, nil
}

// ListCategories returns a persona's categories ordered by name.
func (a *App) ListCategories(personaID int64) ([]domain.Category, error) {
	return a.store.ListCategoriesByPersona(personaID)
}

// GetCategory retrieves a category by id.
func (a *App) GetCategory(id int64) (domain.Category, bool, error) {
	return a.store.GetCategory(id)
}

// UpdateCategory applies a partial update.
func (a *App) UpdateCategory(id int64, upd store.CategoryUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrNameRequired
	}
	return a.store.UpdateCategory(id, upd)
}

// DeleteCategory removes a category and its descendants.
func (a *App) DeleteCategory(id int64) error {
	return a.store.DeleteCategory(id)
}

// CreateThread validates ownership and stores a new thread.
func (a *App) CreateThread(t domain.Thread) (domain.Thread, error) {
	if strings.TrimSpace(t.Name) == "" {
		return domain.Thread{}, ErrNameRequired
	}
	if _, ok, err := a.store.GetCategory(t.CategoryID); err != nil {
		return domain.Thread{}, err
	} else if !ok {
		return domain.Thread{}, ErrParentNotFound
	}
	id, err := a.store.CreateThread(t)
	if err != nil {
		return domain.Thread{}, fmt.Errorf("create thread: %w", err)
	}
	created, _, err := a.store.GetThread(id)
	if err != nil {
		return domain.Thread{}, err
	}
	return created, nil
}

// ListThreads returns a category's threads ordered by name.
func (a *App) ListThreads(categoryID int64) ([]domain.Thread, error) {
	return a.store.ListThreadsByCategory(categoryID)
}

// GetThread retrieves a thread by id.
func (a *App) GetThread(id int64) (domain.Thread, bool, error) {
	return a.store.GetThread(id)
}

// UpdateThread applies a partial update.
func (a *App) UpdateThread(id int64, upd store.ThreadUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return ErrNameRequired
	}
	return a.store.UpdateThread(id, upd)
}

// DeleteThread removes a thread and its descendants.
func (a *App) DeleteThread(id int64) error {
	return a.store.DeleteThread(id)
}

// CreateAnswer validates ownership and stores a new answer.
func (a *App) CreateAnswer(ans domain.Answer) (domain.Answer, error) {
	if strings.TrimSpace(ans.Content) == "" {
		return domain.Answer{}, ErrContentRequired
	}
	if _, ok, err := a.store.GetQuestion(ans.QuestionID); err != nil {
		return domain.Answer{}, err
	} else if !ok {
		return domain.Answer{}, ErrParentNotFound
	}
	id, err := a.store.CreateAnswer(ans)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("create answer: %w", err)
	}
	created, _, err := a.store.GetAnswer(id)
	if err != nil {
		return domain.Answer{}, err
	}
	return created, nil
}

// ListAnswers returns a question's answers in creation order.
func (a *App) ListAnswers(questionID int64) ([]domain.Answer, error) {
	return a.store.ListAnswersByQuestion(questionID)
}

// GetAnswer retrieves an answer by id.
func (a *App) GetAnswer(id int64) (domain.Answer, bool, error) {
	return a.store.GetAnswer(id)
}

// UpdateAnswer applies a partial update.
func (a *App) UpdateAnswer(id int64, upd store.AnswerUpdate) error {
	if upd.Content != nil && strings.TrimSpace(*upd.Content) == "" {
		return ErrContentRequired
	}
	return a.store.UpdateAnswer(id, upd)
}

// DeleteAnswer removes an answer and its evaluations.
func (a *App) DeleteAnswer(id int64) error {
	return a.store.DeleteAnswer(id)
}
