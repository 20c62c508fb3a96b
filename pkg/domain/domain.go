package domain

import "time"

// Persona is the top-level grouping: a simulated AI role or character
// whose question threads are being evaluated.
type Persona struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Category groups question threads under a persona.
type Category struct {
	ID          int64     `json:"id"`
	PersonaID   int64     `json:"personaId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Thread is an ordered run of related questions under a category.
type Thread struct {
	ID          int64     `json:"id"`
	CategoryID  int64     `json:"categoryId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Question is a single prompt with a position inside its thread.
// SequenceNumber values form a dense 1..N run within a thread after
// every resequence pass.
type Question struct {
	ID             int64     `json:"id"`
	ThreadID       int64     `json:"threadId"`
	Content        string    `json:"content"`
	SequenceNumber int       `json:"sequenceNumber"`
	ReferenceLinks []string  `json:"referenceLinks,omitempty"`
	CreatedBy      string    `json:"createdBy,omitempty"`
	UpdatedBy      string    `json:"updatedBy,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Answer is a human- or AI-authored response to a question.
type Answer struct {
	ID            int64             `json:"id"`
	QuestionID    int64             `json:"questionId"`
	Content       string            `json:"content"`
	IsAIGenerated bool              `json:"isAiGenerated"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedBy     string            `json:"createdBy,omitempty"`
	UpdatedBy     string            `json:"updatedBy,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// Evaluation is a scored judgment of one answer along one dimension.
type Evaluation struct {
	ID        int64     `json:"id"`
	AnswerID  int64     `json:"answerId"`
	Dimension Dimension `json:"dimension"`
	Score     float64   `json:"score"`
	Comments  string    `json:"comments,omitempty"`
	Evaluator string    `json:"evaluator,omitempty"`
	CreatedBy string    `json:"createdBy,omitempty"`
	UpdatedBy string    `json:"updatedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
