package store

import (
	"errors"

	"evalbank/pkg/domain"
)

// ErrMissingFilter guards mutating calls: an update or delete without a
// positive id would address the whole table, so it is rejected before any
// database traffic.
var ErrMissingFilter = errors.New("store: mutation requires a positive id filter")

// Partial update payloads. Nil fields are left untouched; UpdatedBy is
// stamped together with the update timestamp when supplied.
type PersonaUpdate struct {
	Name        *string
	Description *string
	UpdatedBy   string
}

type CategoryUpdate struct {
	Name        *string
	Description *string
	UpdatedBy   string
}

type ThreadUpdate struct {
	Name        *string
	Description *string
	UpdatedBy   string
}

type QuestionUpdate struct {
	Content        *string
	SequenceNumber *int
	ReferenceLinks *[]string
	UpdatedBy      string
}

type AnswerUpdate struct {
	Content       *string
	IsAIGenerated *bool
	Metadata      *map[string]string
	UpdatedBy     string
}

type EvaluationUpdate struct {
	Dimension *domain.Dimension
	Score     *float64
	Comments  *string
	Evaluator *string
	UpdatedBy string
}

// Store defines persistence for the persona/category/thread/question/
// answer/evaluation hierarchy. Creates return the server-assigned id.
// Lists are ordered by natural key: name for the three grouping levels,
// sequence number for questions, creation time for answers, and dimension
// name for evaluations. Single gets report absence as false, not an error.
// Deleting a row cascades to everything beneath it.
type Store interface {
	// personas
	CreatePersona(domain.Persona) (int64, error)
	ListPersonas() ([]domain.Persona, error)
	GetPersona(id int64) (domain.Persona, bool, error)
	UpdatePersona(id int64, upd PersonaUpdate) error
	DeletePersona(id int64) error

	// categories
	CreateCategory(domain.Category) (int64, error)
	ListCategoriesByPersona(personaID int64) ([]domain.Category, error)
	GetCategory(id int64) (domain.Category, bool, error)
	UpdateCategory(id int64, upd CategoryUpdate) error
	DeleteCategory(id int64) error

	// threads
	CreateThread(domain.Thread) (int64, error)
	ListThreadsByCategory(categoryID int64) ([]domain.Thread, error)
	GetThread(id int64) (domain.Thread, bool, error)
	UpdateThread(id int64, upd ThreadUpdate) error
	DeleteThread(id int64) error

	// questions
	CreateQuestion(domain.Question) (int64, error)
	ListQuestionsByThread(threadID int64) ([]domain.Question, error)
	GetQuestion(id int64) (domain.Question, bool, error)
	UpdateQuestion(id int64, upd QuestionUpdate) error
	DeleteQuestion(id int64) error

	// answers
	CreateAnswer(domain.Answer) (int64, error)
	ListAnswersByQuestion(questionID int64) ([]domain.Answer, error)
	GetAnswer(id int64) (domain.Answer, bool, error)
	UpdateAnswer(id int64, upd AnswerUpdate) error
	DeleteAnswer(id int64) error

	// evaluations
	CreateEvaluation(domain.Evaluation) (int64, error)
	ListEvaluationsByAnswer(answerID int64) ([]domain.Evaluation, error)
	GetEvaluation(id int64) (domain.Evaluation, bool, error)
	UpdateEvaluation(id int64, upd EvaluationUpdate) error
	DeleteEvaluation(id int64) error
}
