package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence. Child rows carry ON DELETE CASCADE
// foreign keys so parent deletion is enforced by the database, not by
// application code.
type PersonaModel struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"not null;index"`
	Description string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	Categories  []CategoryModel `gorm:"foreignKey:PersonaID;constraint:OnDelete:CASCADE"`
}

type CategoryModel struct {
	ID          int64  `gorm:"primaryKey"`
	PersonaID   int64  `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Description string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time     `gorm:"not null"`
	UpdatedAt   time.Time     `gorm:"not null"`
	Threads     []ThreadModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

type ThreadModel struct {
	ID          int64  `gorm:"primaryKey"`
	CategoryID  int64  `gorm:"not null;index"`
	Name        string `gorm:"not null;index"`
	Description string
	CreatedBy   string
	UpdatedBy   string
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
	Questions   []QuestionModel `gorm:"foreignKey:ThreadID;constraint:OnDelete:CASCADE"`
}

type QuestionModel struct {
	ID             int64  `gorm:"primaryKey"`
	ThreadID       int64  `gorm:"not null;index"`
	Content        string `gorm:"type:text;not null"`
	SequenceNumber int    `gorm:"not null;index"`
	ReferenceLinks datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy      string
	UpdatedBy      string
	CreatedAt      time.Time     `gorm:"not null"`
	UpdatedAt      time.Time     `gorm:"not null"`
	Answers        []AnswerModel `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

type AnswerModel struct {
	ID            int64  `gorm:"primaryKey"`
	QuestionID    int64  `gorm:"not null;index"`
	Content       string `gorm:"type:text;not null"`
	IsAIGenerated bool   `gorm:"not null"`
	Metadata      datatypes.JSON `gorm:"type:jsonb"`
	CreatedBy     string
	UpdatedBy     string
	CreatedAt     time.Time         `gorm:"not null;index"`
	UpdatedAt     time.Time         `gorm:"not null"`
	Evaluations   []EvaluationModel `gorm:"foreignKey:AnswerID;constraint:OnDelete:CASCADE"`
}

type EvaluationModel struct {
	ID        int64   `gorm:"primaryKey"`
	AnswerID  int64   `gorm:"not null;index"`
	Dimension string  `gorm:"not null;index"`
	Score     float64 `gorm:"not null"`
	Comments  string  `gorm:"type:text"`
	Evaluator string
	CreatedBy string
	UpdatedBy string
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
