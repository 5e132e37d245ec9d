package handler

import (
	"io"
	"net/http"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/ctxkeys"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/service"
	"github.com/researchpartner/api/internal/validation"
)

type PaperHandler struct {
	paperService  *service.PaperService
	maxUploadSize int64
}

func NewPaperHandler(paperService *service.PaperService, maxUploadSize int64) *PaperHandler {
	return &PaperHandler{paperService: paperService, maxUploadSize: maxUploadSize}
}

// Upload handles POST /papers
func (h *PaperHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, apperror.Validation("Please upload a PDF file"))
		return
	}

	file, header, err := r.FormFile("pdf")
	if err != nil {
		writeError(w, apperror.Validation("Please upload a PDF file"))
		return
	}
	defer func() { _ = file.Close() }()

	if err := validation.ValidateFile(header, validation.PDFConstraints); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, err)
		return
	}

	paper, err := h.paperService.Upload(r.Context(), user.ID, r.FormValue("title"), header.Filename, data)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusCreated, paper)
}

// List handles GET /papers
func (h *PaperHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	papers, err := h.paperService.List(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	count := len(papers)
	writeJSON(w, http.StatusOK, envelope{Success: true, Count: &count, Data: papers})
}

// Get handles GET /papers/{id}
func (h *PaperHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	paper, err := h.paperService.Get(r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, paper)
}

// Delete handles DELETE /papers/{id}
func (h *PaperHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.paperService.Delete(r.PathValue("id"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "Paper deleted successfully")
}

// DashboardStats handles GET /papers/dashboard/stats
func (h *PaperHandler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.paperService.DashboardStats(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, stats)
}

// Compare handles POST /papers/compare
func (h *PaperHandler) Compare(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		PaperID1 string `json:"paperId1"`
		PaperID2 string `json:"paperId2"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.PaperID1 == "" || req.PaperID2 == "" {
		writeError(w, apperror.Validation("Two paper IDs are required"))
		return
	}

	comparison, err := h.paperService.Compare(r.Context(), user.ID, req.PaperID1, req.PaperID2)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, comparison)
}

// GenerateSummary handles POST /papers/{id}/summary
func (h *PaperHandler) GenerateSummary(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	summary, err := h.paperService.GenerateSummary(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, summary)
}

// GenerateIdeas handles POST /papers/{id}/ideas
func (h *PaperHandler) GenerateIdeas(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	ideas, err := h.paperService.GenerateIdeas(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, ideas)
}

// GenerateMoreIdeas handles POST /papers/{id}/ideas/more
func (h *PaperHandler) GenerateMoreIdeas(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Count int `json:"count"`
	}
	// Body is optional; default handled by the service
	_ = decodeBody(r, &req)

	ideas, err := h.paperService.GenerateMoreIdeas(r.Context(), r.PathValue("id"), user.ID, req.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "More ideas generated successfully",
		Data:    ideas,
	})
}

// GenerateKnowledgeGraph handles POST /papers/{id}/knowledge-graph
func (h *PaperHandler) GenerateKnowledgeGraph(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	graph, err := h.paperService.GenerateKnowledgeGraph(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, graph)
}

// GenerateCitations handles POST /papers/{id}/citations
func (h *PaperHandler) GenerateCitations(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	citations, err := h.paperService.GenerateCitations(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, citations)
}

// GenerateSlides handles POST /papers/{id}/slides
func (h *PaperHandler) GenerateSlides(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	slides, err := h.paperService.GenerateSlides(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, slides)
}

// GenerateAbstract handles POST /papers/{id}/abstract
func (h *PaperHandler) GenerateAbstract(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	abstract, err := h.paperService.GenerateAbstract(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, abstract)
}

// AskQuestion handles POST /papers/{id}/ask
func (h *PaperHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Question string `json:"question"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Question == "" {
		writeError(w, apperror.Validation("Question is required"))
		return
	}

	message, err := h.paperService.AskQuestion(r.Context(), r.PathValue("id"), user.ID, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, message)
}

// AddCollaborator handles POST /papers/{id}/collaborators
func (h *PaperHandler) AddCollaborator(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Email string `json:"email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		writeError(w, apperror.Validation(err.Error()))
		return
	}

	paper, err := h.paperService.AddCollaborator(r.PathValue("id"), user.ID, req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, paper)
}

// AddNote handles POST /papers/{id}/notes
func (h *PaperHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Content == "" {
		writeError(w, apperror.Validation("Note content is required"))
		return
	}

	notes, err := h.paperService.AddNote(r.PathValue("id"), user.ID, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, notes)
}

// AnalyzeInsights handles POST /papers/{id}/insights
func (h *PaperHandler) AnalyzeInsights(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	insights, err := h.paperService.AnalyzeInsights(r.Context(), r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, insights)
}

// GenerateQuiz handles POST /papers/{id}/quiz
func (h *PaperHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		QuestionCount int `json:"questionCount"`
	}
	_ = decodeBody(r, &req)

	quiz, err := h.paperService.GenerateQuiz(r.Context(), r.PathValue("id"), user.ID, req.QuestionCount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, quiz)
}

// SaveQuizAttempt handles POST /papers/{id}/quiz-attempts
func (h *PaperHandler) SaveQuizAttempt(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Quiz           model.QuizList `json:"quiz"`
		UserAnswers    []int          `json:"userAnswers"`
		Score          int            `json:"score"`
		TotalQuestions int            `json:"totalQuestions"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	attempt, err := h.paperService.SaveQuizAttempt(r.PathValue("id"), user.ID, req.Quiz, req.UserAnswers, req.Score, req.TotalQuestions)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Quiz attempt saved successfully",
		Data:    attempt,
	})
}

// QuizAttempts handles GET /papers/{id}/quiz-attempts
func (h *PaperHandler) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	attempts, err := h.paperService.QuizAttempts(r.PathValue("id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, attempts)
}

// DeleteAllChats handles DELETE /papers/{id}/chats
func (h *PaperHandler) DeleteAllChats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.paperService.DeleteAllChats(r.PathValue("id"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "All chats deleted successfully")
}

// DeleteChat handles DELETE /papers/{id}/chats/{chatId}
func (h *PaperHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	remaining, err := h.paperService.DeleteChat(r.PathValue("id"), user.ID, r.PathValue("chatId"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "Chat deleted successfully",
		Data:    remaining,
	})
}
