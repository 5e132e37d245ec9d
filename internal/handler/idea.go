package handler

import (
	"net/http"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/ctxkeys"
	"github.com/researchpartner/api/internal/service"
)

type IdeaHandler struct {
	ideaService *service.IdeaService
}

func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// AskQuestion handles POST /papers/ideas/{ideaId}/ask
func (h *IdeaHandler) AskQuestion(w http.ResponseWriter, r *http.Request) {
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

	message, err := h.ideaService.AskQuestion(r.Context(), r.PathValue("ideaId"), user.ID, req.Question)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, message)
}

// Chats handles GET /papers/ideas/{ideaId}/chats
func (h *IdeaHandler) Chats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	chats, err := h.ideaService.Chats(r.PathValue("ideaId"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, chats)
}

// DeleteAllChats handles DELETE /papers/ideas/{ideaId}/chats
func (h *IdeaHandler) DeleteAllChats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	if err := h.ideaService.DeleteAllChats(r.PathValue("ideaId"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "All idea chats deleted successfully")
}

// DeleteChat handles DELETE /papers/ideas/{ideaId}/chats/{chatId}
func (h *IdeaHandler) DeleteChat(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	remaining, err := h.ideaService.DeleteChat(r.PathValue("ideaId"), user.ID, r.PathValue("chatId"))
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

// GeneratePaper handles POST /papers/ideas/{ideaId}/generate-paper
func (h *IdeaHandler) GeneratePaper(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	draft, err := h.ideaService.GeneratePaper(r.Context(), r.PathValue("ideaId"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, draft)
}

// ModifyPaper handles POST /papers/ideas/{ideaId}/modify-paper
func (h *IdeaHandler) ModifyPaper(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Request string `json:"modificationRequest"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	draft, err := h.ideaService.ModifyPaper(r.Context(), r.PathValue("ideaId"), user.ID, req.Request)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, draft)
}

// GenerateSlides handles POST /papers/ideas/{ideaId}/generate-slides
func (h *IdeaHandler) GenerateSlides(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Theme      string `json:"theme"`
		Layout     string `json:"layout"`
		SlideCount int    `json:"slideCount"`
	}
	// Body is optional; defaults applied by the service
	_ = decodeBody(r, &req)

	deck, err := h.ideaService.GenerateSlides(r.Context(), r.PathValue("ideaId"), user.ID, service.SlideOptions{
		Theme:      req.Theme,
		Layout:     req.Layout,
		SlideCount: req.SlideCount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, deck)
}

// ModifySlides handles POST /papers/ideas/{ideaId}/modify-slides
func (h *IdeaHandler) ModifySlides(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req struct {
		Request string `json:"modificationRequest"`
		Theme   string `json:"theme"`
		Layout  string `json:"layout"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	deck, err := h.ideaService.ModifySlides(r.Context(), r.PathValue("ideaId"), user.ID, req.Request, req.Theme, req.Layout)
	if err != nil {
		writeError(w, err)
		return
	}

	writeData(w, http.StatusOK, deck)
}
