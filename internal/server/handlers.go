package server

import (
	"net/http"

	"evalbank/internal/store"
	"evalbank/pkg/domain"
)

type personaCreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

type personaPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UpdatedBy   string  `json:"updatedBy"`
}

func (s *Server) handlePersonas(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		personas, err := s.app.ListPersonas()
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, personas)
	case http.MethodPost:
		var req personaCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreatePersona(domain.Persona{
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handlePersonaByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/personas/")
	if !ok || action != "" {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		persona, found, err := s.app.GetPersona(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "persona not found")
			return
		}
		writeJSON(w, http.StatusOK, persona)
	case http.MethodPatch:
		var req personaPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := s.app.UpdatePersona(id, store.PersonaUpdate{
			Name:        req.Name,
			Description: req.Description,
			UpdatedBy:   req.UpdatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeletePersona(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

type categoryCreateRequest struct {
	PersonaID   int64  `json:"personaId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

type categoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UpdatedBy   string  `json:"updatedBy"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		personaID, ok := parentIDParam(r, "personaId")
		if !ok {
			writeError(w, http.StatusBadRequest, "personaId query parameter is required")
			return
		}
		categories, err := s.app.ListCategories(personaID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, categories)
	case http.MethodPost:
		var req categoryCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreateCategory(domain.Category{
			PersonaID:   req.PersonaID,
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCategoryByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/categories/")
	if !ok || action != "" {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		category, found, err := s.app.GetCategory(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "category not found")
			return
		}
		writeJSON(w, http.StatusOK, category)
	case http.MethodPatch:
		var req categoryPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := s.app.UpdateCategory(id, store.CategoryUpdate{
			Name:        req.Name,
			Description: req.Description,
			UpdatedBy:   req.UpdatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeleteCategory(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

type threadCreateRequest struct {
	CategoryID  int64  `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedBy   string `json:"createdBy"`
}

type threadPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	UpdatedBy   string  `json:"updatedBy"`
}

func (s *Server) handleThreads(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categoryID, ok := parentIDParam(r, "categoryId")
		if !ok {
			writeError(w, http.StatusBadRequest, "categoryId query parameter is required")
			return
		}
		threads, err := s.app.ListThreads(categoryID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, threads)
	case http.MethodPost:
		var req threadCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreateThread(domain.Thread{
			CategoryID:  req.CategoryID,
			Name:        req.Name,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

// /threads/{id} or /threads/{id}/resequence
func (s *Server) handleThreadByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/threads/")
	if !ok {
		notFound(w, "not found")
		return
	}
	if action == "resequence" {
		s.handleResequence(w, r, id)
		return
	}
	if action != "" {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		thread, found, err := s.app.GetThread(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "thread not found")
			return
		}
		writeJSON(w, http.StatusOK, thread)
	case http.MethodPatch:
		var req threadPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := s.app.UpdateThread(id, store.ThreadUpdate{
			Name:        req.Name,
			Description: req.Description,
			UpdatedBy:   req.UpdatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeleteThread(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleResequence(w http.ResponseWriter, r *http.Request, threadID int64) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	_, found, err := s.app.GetThread(threadID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !found {
		notFound(w, "thread not found")
		return
	}
	writes, err := s.app.ResequenceThread(threadID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "resequenced",
		"writes": writes,
	})
}

type questionCreateRequest struct {
	ThreadID       int64    `json:"threadId"`
	Content        string   `json:"content"`
	SequenceNumber int      `json:"sequenceNumber"`
	ReferenceLinks []string `json:"referenceLinks"`
	CreatedBy      string   `json:"createdBy"`
}

type questionPatchRequest struct {
	Content        *string   `json:"content"`
	SequenceNumber *int      `json:"sequenceNumber"`
	ReferenceLinks *[]string `json:"referenceLinks"`
	UpdatedBy      string    `json:"updatedBy"`
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		threadID, ok := parentIDParam(r, "threadId")
		if !ok {
			writeError(w, http.StatusBadRequest, "threadId query parameter is required")
			return
		}
		questions, err := s.app.ListQuestions(threadID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, questions)
	case http.MethodPost:
		var req questionCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreateQuestion(domain.Question{
			ThreadID:       req.ThreadID,
			Content:        req.Content,
			SequenceNumber: req.SequenceNumber,
			ReferenceLinks: req.ReferenceLinks,
			CreatedBy:      req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleQuestionByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/questions/")
	if !ok || action != "" {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		question, found, err := s.app.GetQuestion(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "question not found")
			return
		}
		writeJSON(w, http.StatusOK, question)
	case http.MethodPatch:
		var req questionPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := s.app.UpdateQuestion(id, store.QuestionUpdate{
			Content:        req.Content,
			SequenceNumber: req.SequenceNumber,
			ReferenceLinks: req.ReferenceLinks,
			UpdatedBy:      req.UpdatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeleteQuestion(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

type answerCreateRequest struct {
	QuestionID    int64             `json:"questionId"`
	Content       string            `json:"content"`
	IsAIGenerated bool              `json:"isAiGenerated"`
	Metadata      map[string]string `json:"metadata"`
	CreatedBy     string            `json:"createdBy"`
}

type answerPatchRequest struct {
	Content       *string            `json:"content"`
	IsAIGenerated *bool              `json:"isAiGenerated"`
	Metadata      *map[string]string `json:"metadata"`
	UpdatedBy     string             `json:"updatedBy"`
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		questionID, ok := parentIDParam(r, "questionId")
		if !ok {
			writeError(w, http.StatusBadRequest, "questionId query parameter is required")
			return
		}
		answers, err := s.app.ListAnswers(questionID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, answers)
	case http.MethodPost:
		var req answerCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreateAnswer(domain.Answer{
			QuestionID:    req.QuestionID,
			Content:       req.Content,
			IsAIGenerated: req.IsAIGenerated,
			Metadata:      req.Metadata,
			CreatedBy:     req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

// /answers/{id}, /answers/{id}/missing-dimensions, /answers/{id}/summary
func (s *Server) handleAnswerByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/answers/")
	if !ok {
		notFound(w, "not found")
		return
	}
	switch action {
	case "missing-dimensions":
		s.handleMissingDimensions(w, r, id)
		return
	case "summary":
		s.handleAnswerSummary(w, r, id)
		return
	case "":
	default:
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		answer, found, err := s.app.GetAnswer(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "answer not found")
			return
		}
		writeJSON(w, http.StatusOK, answer)
	case http.MethodPatch:
		var req answerPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		err := s.app.UpdateAnswer(id, store.AnswerUpdate{
			Content:       req.Content,
			IsAIGenerated: req.IsAIGenerated,
			Metadata:      req.Metadata,
			UpdatedBy:     req.UpdatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeleteAnswer(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleMissingDimensions(w http.ResponseWriter, r *http.Request, answerID int64) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	missing, found, err := s.app.MissingDimensions(answerID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !found {
		notFound(w, "answer not found")
		return
	}
	writeList(w, missing)
}

func (s *Server) handleAnswerSummary(w http.ResponseWriter, r *http.Request, answerID int64) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	summary, found, err := s.app.SummarizeAnswer(answerID)
	if err != nil {
		writeAppError(w, err)
		return
	}
	if !found {
		notFound(w, "answer not found")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type evaluationCreateRequest struct {
	AnswerID  int64   `json:"answerId"`
	Dimension string  `json:"dimension"`
	Score     float64 `json:"score"`
	Comments  string  `json:"comments"`
	Evaluator string  `json:"evaluator"`
	CreatedBy string  `json:"createdBy"`
}

type evaluationPatchRequest struct {
	Dimension *string  `json:"dimension"`
	Score     *float64 `json:"score"`
	Comments  *string  `json:"comments"`
	Evaluator *string  `json:"evaluator"`
	UpdatedBy string   `json:"updatedBy"`
}

func (s *Server) handleEvaluations(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		answerID, ok := parentIDParam(r, "answerId")
		if !ok {
			writeError(w, http.StatusBadRequest, "answerId query parameter is required")
			return
		}
		evals, err := s.app.ListEvaluations(answerID)
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeList(w, evals)
	case http.MethodPost:
		var req evaluationCreateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		created, err := s.app.CreateEvaluation(domain.Evaluation{
			AnswerID:  req.AnswerID,
			Dimension: domain.Dimension(req.Dimension),
			Score:     req.Score,
			Comments:  req.Comments,
			Evaluator: req.Evaluator,
			CreatedBy: req.CreatedBy,
		})
		if err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleEvaluationByID(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathID(r, "/evaluations/")
	if !ok || action != "" {
		notFound(w, "not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		eval, found, err := s.app.GetEvaluation(id)
		if err != nil {
			writeAppError(w, err)
			return
		}
		if !found {
			notFound(w, "evaluation not found")
			return
		}
		writeJSON(w, http.StatusOK, eval)
	case http.MethodPatch:
		var req evaluationPatchRequest
		if !decodeBody(w, r, &req) {
			return
		}
		upd := store.EvaluationUpdate{
			Score:     req.Score,
			Comments:  req.Comments,
			Evaluator: req.Evaluator,
			UpdatedBy: req.UpdatedBy,
		}
		if req.Dimension != nil {
			dim := domain.Dimension(*req.Dimension)
			upd.Dimension = &dim
		}
		if err := s.app.UpdateEvaluation(id, upd); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
	case http.MethodDelete:
		if err := s.app.DeleteEvaluation(id); err != nil {
			writeAppError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleDimensions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeList(w, domain.Dimensions())
}
