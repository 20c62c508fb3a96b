package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"evalbank/pkg/domain"
)

// GormStore implements Store using GORM + Postgres.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the DB and runs auto-migrations.
func NewGormStore(dsn string) (*GormStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(
		&PersonaModel{},
		&CategoryModel{},
		&ThreadModel{},
		&QuestionModel{},
		&AnswerModel{},
		&EvaluationModel{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreatePersona inserts a persona and returns the assigned id.
func (s *GormStore) CreatePersona(p domain.Persona) (int64, error) {
	model := personaToModel(p)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListPersonas returns all personas ordered by name.
func (s *GormStore) ListPersonas() ([]domain.Persona, error) {
	var models []PersonaModel
	if err := s.db.Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Persona, 0, len(models))
	for _, m := range models {
		res = append(res, personaFromModel(m))
	}
	return res, nil
}

// GetPersona retrieves a persona by id.
func (s *GormStore) GetPersona(id int64) (domain.Persona, bool, error) {
	var model PersonaModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Persona{}, false, nil
		}
		return domain.Persona{}, false, err
	}
	return personaFromModel(model), true, nil
}

// UpdatePersona applies a partial update.
func (s *GormStore) UpdatePersona(id int64, upd PersonaUpdate) error {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	return s.applyUpdate(&PersonaModel{}, id, fields, upd.UpdatedBy)
}

// DeletePersona removes a persona; descendants go with it via the
// cascading foreign keys.
func (s *GormStore) DeletePersona(id int64) error {
	return s.deleteByID(&PersonaModel{}, id)
}

// CreateCategory inserts a category under its persona.
func (s *GormStore) CreateCategory(c domain.Category) (int64, error) {
	model := categoryToModel(c)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListCategoriesByPersona returns a persona's categories ordered by name.
func (s *GormStore) ListCategoriesByPersona(personaID int64) ([]domain.Category, error) {
	var models []CategoryModel
	if err := s.db.Where("persona_id = ?", personaID).Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Category, 0, len(models))
	for _, m := range models {
		res = append(res, categoryFromModel(m))
	}
	return res, nil
}

// GetCategory retrieves a category by id.
func (s *GormStore) GetCategory(id int64) (domain.Category, bool, error) {
	var model CategoryModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Category{}, false, nil
		}
		return domain.Category{}, false, err
	}
	return categoryFromModel(model), true, nil
}

// UpdateCategory applies a partial update.
func (s *GormStore) UpdateCategory(id int64, upd CategoryUpdate) error {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	return s.applyUpdate(&CategoryModel{}, id, fields, upd.UpdatedBy)
}

// DeleteCategory removes a category and its descendants.
func (s *GormStore) DeleteCategory(id int64) error {
	return s.deleteByID(&CategoryModel{}, id)
}

// CreateThread inserts a thread under its category.
func (s *GormStore) CreateThread(t domain.Thread) (int64, error) {
	model := threadToModel(t)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListThreadsByCategory returns a category's threads ordered by name.
func (s *GormStore) ListThreadsByCategory(categoryID int64) ([]domain.Thread, error) {
	var models []ThreadModel
	if err := s.db.Where("category_id = ?", categoryID).Order("name ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Thread, 0, len(models))
	for _, m := range models {
		res = append(res, threadFromModel(m))
	}
	return res, nil
}

// GetThread retrieves a thread by id.
func (s *GormStore) GetThread(id int64) (domain.Thread, bool, error) {
	var model ThreadModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Thread{}, false, nil
		}
		return domain.Thread{}, false, err
	}
	return threadFromModel(model), true, nil
}

// UpdateThread applies a partial update.
func (s *GormStore) UpdateThread(id int64, upd ThreadUpdate) error {
	fields := map[string]any{}
	if upd.Name != nil {
		fields["name"] = *upd.Name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	return s.applyUpdate(&ThreadModel{}, id, fields, upd.UpdatedBy)
}

// DeleteThread removes a thread and its descendants.
func (s *GormStore) DeleteThread(id int64) error {
	return s.deleteByID(&ThreadModel{}, id)
}

// CreateQuestion inserts a question under its thread.
func (s *GormStore) CreateQuestion(q domain.Question) (int64, error) {
	model := questionToModel(q)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListQuestionsByThread returns a thread's questions ordered by sequence
// number, ties broken by creation order.
func (s *GormStore) ListQuestionsByThread(threadID int64) ([]domain.Question, error) {
	var models []QuestionModel
	if err := s.db.Where("thread_id = ?", threadID).Order("sequence_number ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Question, 0, len(models))
	for _, m := range models {
		res = append(res, questionFromModel(m))
	}
	return res, nil
}

// GetQuestion retrieves a question by id.
func (s *GormStore) GetQuestion(id int64) (domain.Question, bool, error) {
	var model QuestionModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Question{}, false, nil
		}
		return domain.Question{}, false, err
	}
	return questionFromModel(model), true, nil
}

// UpdateQuestion applies a partial update.
func (s *GormStore) UpdateQuestion(id int64, upd QuestionUpdate) error {
	fields := map[string]any{}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.SequenceNumber != nil {
		fields["sequence_number"] = *upd.SequenceNumber
	}
	if upd.ReferenceLinks != nil {
		fields["reference_links"] = linksToJSON(*upd.ReferenceLinks)
	}
	return s.applyUpdate(&QuestionModel{}, id, fields, upd.UpdatedBy)
}

// DeleteQuestion removes a question and its answers.
func (s *GormStore) DeleteQuestion(id int64) error {
	return s.deleteByID(&QuestionModel{}, id)
}

// CreateAnswer inserts an answer under its question.
func (s *GormStore) CreateAnswer(a domain.Answer) (int64, error) {
	model := answerToModel(a)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListAnswersByQuestion returns a question's answers in creation order.
func (s *GormStore) ListAnswersByQuestion(questionID int64) ([]domain.Answer, error) {
	var models []AnswerModel
	if err := s.db.Where("question_id = ?", questionID).Order("created_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Answer, 0, len(models))
	for _, m := range models {
		res = append(res, answerFromModel(m))
	}
	return res, nil
}

// GetAnswer retrieves an answer by id.
func (s *GormStore) GetAnswer(id int64) (domain.Answer, bool, error) {
	var model AnswerModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Answer{}, false, nil
		}
		return domain.Answer{}, false, err
	}
	return answerFromModel(model), true, nil
}

// UpdateAnswer applies a partial update.
func (s *GormStore) UpdateAnswer(id int64, upd AnswerUpdate) error {
	fields := map[string]any{}
	if upd.Content != nil {
		fields["content"] = *upd.Content
	}
	if upd.IsAIGenerated != nil {
		fields["is_ai_generated"] = *upd.IsAIGenerated
	}
	if upd.Metadata != nil {
		fields["metadata"] = metadataToJSON(*upd.Metadata)
	}
	return s.applyUpdate(&AnswerModel{}, id, fields, upd.UpdatedBy)
}

// DeleteAnswer removes an answer and its evaluations.
func (s *GormStore) DeleteAnswer(id int64) error {
	return s.deleteByID(&AnswerModel{}, id)
}

// CreateEvaluation inserts an evaluation under its answer.
func (s *GormStore) CreateEvaluation(e domain.Evaluation) (int64, error) {
	model := evaluationToModel(e)
	return s.create(&model, &model.ID, &model.CreatedAt, &model.UpdatedAt)
}

// ListEvaluationsByAnswer returns an answer's evaluations ordered by
// dimension name.
func (s *GormStore) ListEvaluationsByAnswer(answerID int64) ([]domain.Evaluation, error) {
	var models []EvaluationModel
	if err := s.db.Where("answer_id = ?", answerID).Order("dimension ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.Evaluation, 0, len(models))
	for _, m := range models {
		res = append(res, evaluationFromModel(m))
	}
	return res, nil
}

// GetEvaluation retrieves an evaluation by id.
func (s *GormStore) GetEvaluation(id int64) (domain.Evaluation, bool, error) {
	var model EvaluationModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.Evaluation{}, false, nil
		}
		return domain.Evaluation{}, false, err
	}
	return evaluationFromModel(model), true, nil
}

// UpdateEvaluation applies a partial update.
func (s *GormStore) UpdateEvaluation(id int64, upd EvaluationUpdate) error {
	fields := map[string]any{}
	if upd.Dimension != nil {
		fields["dimension"] = string(*upd.Dimension)
	}
	if upd.Score != nil {
		fields["score"] = *upd.Score
	}
	if upd.Comments != nil {
		fields["comments"] = *upd.Comments
	}
	if upd.Evaluator != nil {
		fields["evaluator"] = *upd.Evaluator
	}
	return s.applyUpdate(&EvaluationModel{}, id, fields, upd.UpdatedBy)
}

// DeleteEvaluation removes an evaluation.
func (s *GormStore) DeleteEvaluation(id int64) error {
	return s.deleteByID(&EvaluationModel{}, id)
}

func (s *GormStore) create(model any, id *int64, createdAt, updatedAt *time.Time) (int64, error) {
	*id = 0
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
	if err := s.db.Create(model).Error; err != nil {
		return 0, err
	}
	return *id, nil
}

func (s *GormStore) applyUpdate(model any, id int64, fields map[string]any, updatedBy string) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	if len(fields) == 0 {
		return nil
	}
	if updatedBy != "" {
		fields["updated_by"] = updatedBy
	}
	fields["updated_at"] = time.Now().UTC()
	return s.db.Model(model).Where("id = ?", id).Updates(fields).Error
}

func (s *GormStore) deleteByID(model any, id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	return s.db.Delete(model, "id = ?", id).Error
}

func personaToModel(p domain.Persona) PersonaModel {
	return PersonaModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedBy:   p.CreatedBy,
		UpdatedBy:   p.UpdatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func personaFromModel(m PersonaModel) domain.Persona {
	return domain.Persona{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func categoryToModel(c domain.Category) CategoryModel {
	return CategoryModel{
		ID:          c.ID,
		PersonaID:   c.PersonaID,
		Name:        c.Name,
		Description: c.Description,
		CreatedBy:   c.CreatedBy,
		UpdatedBy:   c.UpdatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func categoryFromModel(m CategoryModel) domain.Category {
	return domain.Category{
		ID:          m.ID,
		PersonaID:   m.PersonaID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func threadToModel(t domain.Thread) ThreadModel {
	return ThreadModel{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		UpdatedBy:   t.UpdatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func threadFromModel(m ThreadModel) domain.Thread {
	return domain.Thread{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func questionToModel(q domain.Question) QuestionModel {
	return QuestionModel{
		ID:             q.ID,
		ThreadID:       q.ThreadID,
		Content:        q.Content,
		SequenceNumber: q.SequenceNumber,
		ReferenceLinks: linksToJSON(q.ReferenceLinks),
		CreatedBy:      q.CreatedBy,
		UpdatedBy:      q.UpdatedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}

func questionFromModel(m QuestionModel) domain.Question {
	return domain.Question{
		ID:             m.ID,
		ThreadID:       m.ThreadID,
		Content:        m.Content,
		SequenceNumber: m.SequenceNumber,
		ReferenceLinks: linksFromJSON(m.ReferenceLinks),
		CreatedBy:      m.CreatedBy,
		UpdatedBy:      m.UpdatedBy,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func answerToModel(a domain.Answer) AnswerModel {
	return AnswerModel{
		ID:            a.ID,
		QuestionID:    a.QuestionID,
		Content:       a.Content,
		IsAIGenerated: a.IsAIGenerated,
		Metadata:      metadataToJSON(a.Metadata),
		CreatedBy:     a.CreatedBy,
		UpdatedBy:     a.UpdatedBy,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func answerFromModel(m AnswerModel) domain.Answer {
	return domain.Answer{
		ID:            m.ID,
		QuestionID:    m.QuestionID,
		Content:       m.Content,
		IsAIGenerated: m.IsAIGenerated,
		Metadata:      metadataFromJSON(m.Metadata),
		CreatedBy:     m.CreatedBy,
		UpdatedBy:     m.UpdatedBy,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func evaluationToModel(e domain.Evaluation) EvaluationModel {
	return EvaluationModel{
		ID:        e.ID,
		AnswerID:  e.AnswerID,
		Dimension: string(e.Dimension),
		Score:     e.Score,
		Comments:  e.Comments,
		Evaluator: e.Evaluator,
		CreatedBy: e.CreatedBy,
		UpdatedBy: e.UpdatedBy,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func evaluationFromModel(m EvaluationModel) domain.Evaluation {
	return domain.Evaluation{
		ID:        m.ID,
		AnswerID:  m.AnswerID,
		Dimension: domain.Dimension(m.Dimension),
		Score:     m.Score,
		Comments:  m.Comments,
		Evaluator: m.Evaluator,
		CreatedBy: m.CreatedBy,
		UpdatedBy: m.UpdatedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func linksToJSON(links []string) datatypes.JSON {
	if len(links) == 0 {
		return nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func linksFromJSON(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var links []string
	if err := json.Unmarshal(raw, &links); err != nil {
		return nil
	}
	return links
}

func metadataToJSON(meta map[string]string) datatypes.JSON {
	if len(meta) == 0 {
		return nil
	}
	b, err := json.Marshal(meta)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func metadataFromJSON(raw datatypes.JSON) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	var meta map[string]string
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil
	}
	return meta
}
