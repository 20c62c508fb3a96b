package store

import (
	"sort"
	"sync"
	"time"

	"evalbank/pkg/domain"
)

// MemoryStore keeps the whole hierarchy in-process. It backs tests and
// local development; cascade deletes are performed explicitly since there
// is no database to enforce them.
type MemoryStore struct {
	mu          sync.RWMutex
	nextID      int64
	personas    map[int64]domain.Persona
	categories  map[int64]domain.Category
	threads     map[int64]domain.Thread
	questions   map[int64]domain.Question
	answers     map[int64]domain.Answer
	evaluations map[int64]domain.Evaluation
}

// NewMemoryStore initializes an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		personas:    make(map[int64]domain.Persona),
		categories:  make(map[int64]domain.Category),
		threads:     make(map[int64]domain.Thread),
		questions:   make(map[int64]domain.Question),
		answers:     make(map[int64]domain.Answer),
		evaluations: make(map[int64]domain.Evaluation),
	}
}

func (m *MemoryStore) assignID() int64 {
	m.nextID++
	return m.nextID
}

func stampNew(createdAt, updatedAt *time.Time) {
	now := time.Now().UTC()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = now
	}
}

// CreatePersona stores a persona and returns the assigned id.
func (m *MemoryStore) CreatePersona(p domain.Persona) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.assignID()
	stampNew(&p.CreatedAt, &p.UpdatedAt)
	m.personas[p.ID] = p
	return p.ID, nil
}

// ListPersonas returns all personas ordered by name.
func (m *MemoryStore) ListPersonas() ([]domain.Persona, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Persona, 0, len(m.personas))
	for _, p := range m.personas {
		res = append(res, p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetPersona retrieves a persona by id.
func (m *MemoryStore) GetPersona(id int64) (domain.Persona, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.personas[id]
	return p, ok, nil
}

// UpdatePersona applies a partial update.
func (m *MemoryStore) UpdatePersona(id int64, upd PersonaUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.personas[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	stampUpdated(&p.UpdatedBy, &p.UpdatedAt, upd.UpdatedBy)
	m.personas[id] = p
	return nil
}

// DeletePersona removes a persona and cascades to everything beneath it.
func (m *MemoryStore) DeletePersona(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.personas, id)
	for cid, c := range m.categories {
		if c.PersonaID == id {
			m.deleteCategoryLocked(cid)
		}
	}
	return nil
}

// CreateCategory stores a category and returns the assigned id.
func (m *MemoryStore) CreateCategory(c domain.Category) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.assignID()
	stampNew(&c.CreatedAt, &c.UpdatedAt)
	m.categories[c.ID] = c
	return c.ID, nil
}

// ListCategoriesByPersona returns a persona's categories ordered by name.
func (m *MemoryStore) ListCategoriesByPersona(personaID int64) ([]domain.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Category, 0)
	for _, c := range m.categories {
		if c.PersonaID == personaID {
			res = append(res, c)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetCategory retrieves a category by id.
func (m *MemoryStore) GetCategory(id int64) (domain.Category, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	return c, ok, nil
}

// UpdateCategory applies a partial update.
func (m *MemoryStore) UpdateCategory(id int64, upd CategoryUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.categories[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		c.Name = *upd.Name
	}
	if upd.Description != nil {
		c.Description = *upd.Description
	}
	stampUpdated(&c.UpdatedBy, &c.UpdatedAt, upd.UpdatedBy)
	m.categories[id] = c
	return nil
}

// DeleteCategory removes a category and its descendants.
func (m *MemoryStore) DeleteCategory(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteCategoryLocked(id)
	return nil
}

// CreateThread stores a thread and returns the assigned id.
func (m *MemoryStore) CreateThread(t domain.Thread) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t.ID = m.assignID()
	stampNew(&t.CreatedAt, &t.UpdatedAt)
	m.threads[t.ID] = t
	return t.ID, nil
}

// ListThreadsByCategory returns a category's threads ordered by name.
func (m *MemoryStore) ListThreadsByCategory(categoryID int64) ([]domain.Thread, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Thread, 0)
	for _, t := range m.threads {
		if t.CategoryID == categoryID {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetThread retrieves a thread by id.
func (m *MemoryStore) GetThread(id int64) (domain.Thread, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.threads[id]
	return t, ok, nil
}

// UpdateThread applies a partial update.
func (m *MemoryStore) UpdateThread(id int64, upd ThreadUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.threads[id]
	if !ok {
		return nil
	}
	if upd.Name != nil {
		t.Name = *upd.Name
	}
	if upd.Description != nil {
		t.Description = *upd.Description
	}
	stampUpdated(&t.UpdatedBy, &t.UpdatedAt, upd.UpdatedBy)
	m.threads[id] = t
	return nil
}

// DeleteThread removes a thread and its descendants.
func (m *MemoryStore) DeleteThread(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteThreadLocked(id)
	return nil
}

// CreateQuestion stores a question and returns the assigned id.
func (m *MemoryStore) CreateQuestion(q domain.Question) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	q.ID = m.assignID()
	stampNew(&q.CreatedAt, &q.UpdatedAt)
	m.questions[q.ID] = q
	return q.ID, nil
}

// ListQuestionsByThread returns a thread's questions ordered by sequence
// number, ties broken by creation order.
func (m *MemoryStore) ListQuestionsByThread(threadID int64) ([]domain.Question, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Question, 0)
	for _, q := range m.questions {
		if q.ThreadID == threadID {
			res = append(res, q)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].SequenceNumber != res[j].SequenceNumber {
			return res[i].SequenceNumber < res[j].SequenceNumber
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetQuestion retrieves a question by id.
func (m *MemoryStore) GetQuestion(id int64) (domain.Question, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q, ok := m.questions[id]
	return q, ok, nil
}

// UpdateQuestion applies a partial update.
func (m *MemoryStore) UpdateQuestion(id int64, upd QuestionUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	q, ok := m.questions[id]
	if !ok {
		return nil
	}
	if upd.Content != nil {
		q.Content = *upd.Content
	}
	if upd.SequenceNumber != nil {
		q.SequenceNumber = *upd.SequenceNumber
	}
	if upd.ReferenceLinks != nil {
		q.ReferenceLinks = *upd.ReferenceLinks
	}
	stampUpdated(&q.UpdatedBy, &q.UpdatedAt, upd.UpdatedBy)
	m.questions[id] = q
	return nil
}

// DeleteQuestion removes a question and its answers.
func (m *MemoryStore) DeleteQuestion(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteQuestionLocked(id)
	return nil
}

// CreateAnswer stores an answer and returns the assigned id.
func (m *MemoryStore) CreateAnswer(a domain.Answer) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.assignID()
	stampNew(&a.CreatedAt, &a.UpdatedAt)
	m.answers[a.ID] = a
	return a.ID, nil
}

// ListAnswersByQuestion returns a question's answers in creation order.
func (m *MemoryStore) ListAnswersByQuestion(questionID int64) ([]domain.Answer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Answer, 0)
	for _, a := range m.answers {
		if a.QuestionID == questionID {
			res = append(res, a)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if !res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].CreatedAt.Before(res[j].CreatedAt)
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetAnswer retrieves an answer by id.
func (m *MemoryStore) GetAnswer(id int64) (domain.Answer, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.answers[id]
	return a, ok, nil
}

// UpdateAnswer applies a partial update.
func (m *MemoryStore) UpdateAnswer(id int64, upd AnswerUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.answers[id]
	if !ok {
		return nil
	}
	if upd.Content != nil {
		a.Content = *upd.Content
	}
	if upd.IsAIGenerated != nil {
		a.IsAIGenerated = *upd.IsAIGenerated
	}
	if upd.Metadata != nil {
		a.Metadata = *upd.Metadata
	}
	stampUpdated(&a.UpdatedBy, &a.UpdatedAt, upd.UpdatedBy)
	m.answers[id] = a
	return nil
}

// DeleteAnswer removes an answer and its evaluations.
func (m *MemoryStore) DeleteAnswer(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteAnswerLocked(id)
	return nil
}

// CreateEvaluation stores an evaluation and returns the assigned id.
func (m *MemoryStore) CreateEvaluation(e domain.Evaluation) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e.ID = m.assignID()
	stampNew(&e.CreatedAt, &e.UpdatedAt)
	m.evaluations[e.ID] = e
	return e.ID, nil
}

// ListEvaluationsByAnswer returns an answer's evaluations ordered by
// dimension name.
func (m *MemoryStore) ListEvaluationsByAnswer(answerID int64) ([]domain.Evaluation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res := make([]domain.Evaluation, 0)
	for _, e := range m.evaluations {
		if e.AnswerID == answerID {
			res = append(res, e)
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Dimension != res[j].Dimension {
			return res[i].Dimension < res[j].Dimension
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

// GetEvaluation retrieves an evaluation by id.
func (m *MemoryStore) GetEvaluation(id int64) (domain.Evaluation, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.evaluations[id]
	return e, ok, nil
}

// UpdateEvaluation applies a partial update.
func (m *MemoryStore) UpdateEvaluation(id int64, upd EvaluationUpdate) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.evaluations[id]
	if !ok {
		return nil
	}
	if upd.Dimension != nil {
		e.Dimension = *upd.Dimension
	}
	if upd.Score != nil {
		e.Score = *upd.Score
	}
	if upd.Comments != nil {
		e.Comments = *upd.Comments
	}
	if upd.Evaluator != nil {
		e.Evaluator = *upd.Evaluator
	}
	stampUpdated(&e.UpdatedBy, &e.UpdatedAt, upd.UpdatedBy)
	m.evaluations[id] = e
	return nil
}

// DeleteEvaluation removes an evaluation.
func (m *MemoryStore) DeleteEvaluation(id int64) error {
	if id <= 0 {
		return ErrMissingFilter
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.evaluations, id)
	return nil
}

func (m *MemoryStore) deleteCategoryLocked(id int64) {
	delete(m.categories, id)
	for tid, t := range m.threads {
		if t.CategoryID == id {
			m.deleteThreadLocked(tid)
		}
	}
}

func (m *MemoryStore) deleteThreadLocked(id int64) {
	delete(m.threads, id)
	for qid, q := range m.questions {
		if q.ThreadID == id {
			m.deleteQuestionLocked(qid)
		}
	}
}

func (m *MemoryStore) deleteQuestionLocked(id int64) {
	delete(m.questions, id)
	for aid, a := range m.answers {
		if a.QuestionID == id {
			m.deleteAnswerLocked(aid)
		}
	}
}

func (m *MemoryStore) deleteAnswerLocked(id int64) {
	delete(m.answers, id)
	for eid, e := range m.evaluations {
		if e.AnswerID == id {
			delete(m.evaluations, eid)
		}
	}
}

func stampUpdated(updatedBy *string, updatedAt *time.Time, by string) {
	if by != "" {
		*updatedBy = by
	}
	*updatedAt = time.Now().UTC()
}
