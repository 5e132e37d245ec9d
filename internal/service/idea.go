package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/repository"
)

// IdeaService handles operations scoped to one research idea: its chat
// thread, generated paper draft, and generated slide deck.
type IdeaService struct {
	ideaRepo  repository.IdeaRepository
	paperRepo repository.PaperRepository
	chatRepo  repository.ChatRepository
	ai        Analyzer
	now       func() time.Time
}

func NewIdeaService(ideaRepo repository.IdeaRepository, paperRepo repository.PaperRepository, chatRepo repository.ChatRepository, ai Analyzer) *IdeaService {
	return &IdeaService{
		ideaRepo:  ideaRepo,
		paperRepo: paperRepo,
		chatRepo:  chatRepo,
		ai:        ai,
		now:       time.Now,
	}
}

// AskQuestion answers a question in the context of one idea plus an excerpt
// of its source paper, and appends the exchange to the idea's chat thread.
func (s *IdeaService) AskQuestion(ctx context.Context, ideaID, userID, question string) (*model.ChatMessage, error) {
	idea, paper, err := s.loadIdeaWithPaper(ideaID, userID)
	if err != nil {
		return nil, err
	}

	ideaContext := fmt.Sprintf(`Research Idea: %s
Description: %s
Methodology: %s
Expected Outcome: %s
Resources Needed: %s
Tags: Novelty-%s, Feasibility-%s, AI Relevance-%s

Paper Context:
%s`,
		idea.Title, idea.Description, idea.Methodology, idea.ExpectedOutcome,
		strings.Join(idea.Resources, ", "),
		idea.Tags.Novelty, idea.Tags.Feasibility, idea.Tags.AIRelevance,
		truncate(paper.ExtractedText, 5000))

	answer, err := s.ai.AnswerQuestion(ctx, question, ideaContext)
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ID:        uuid.NewString(),
		IdeaID:    &idea.ID,
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now().UTC(),
	}
	if err := s.chatRepo.Create(message); err != nil {
		return nil, err
	}

	return message, nil
}

// DeleteChat removes one message from the idea's chat thread and returns the
// remaining messages.
func (s *IdeaService) DeleteChat(ideaID, userID, chatID string) ([]model.ChatMessage, error) {
	if _, _, err := s.loadIdeaWithPaper(ideaID, userID); err != nil {
		return nil, err
	}

	if err := s.chatRepo.Delete(chatID); err != nil {
		if errors.Is(err, repository.ErrChatMessageNotFound) {
			return nil, apperror.NotFound("Chat message")
		}
		return nil, err
	}

	return s.chatRepo.ByIdeaID(ideaID)
}

// DeleteAllChats clears the idea's chat thread.
func (s *IdeaService) DeleteAllChats(ideaID, userID string) error {
	if _, _, err := s.loadIdeaWithPaper(ideaID, userID); err != nil {
		return err
	}
	return s.chatRepo.DeleteByIdeaID(ideaID)
}

// GeneratePaper expands the idea into a full research paper proposal and
// stores it on the idea.
func (s *IdeaService) GeneratePaper(ctx context.Context, ideaID, userID string) (model.PaperDraft, error) {
	idea, paper, err := s.loadIdeaWithPaper(ideaID, userID)
	if err != nil {
		return model.PaperDraft{}, err
	}

	draft, err := s.ai.GenerateFullPaper(ctx, idea, paper.ExtractedText)
	if err != nil {
		return model.PaperDraft{}, err
	}

	now := s.now().UTC()
	idea.GeneratedPaper = draft
	idea.GeneratedAt = &now
	if err := s.ideaRepo.Update(idea); err != nil {
		return model.PaperDraft{}, err
	}

	return draft, nil
}

// ModifyPaper rewrites the idea's generated paper per the user's request.
// A paper must have been generated first.
func (s *IdeaService) ModifyPaper(ctx context.Context, ideaID, userID, request string) (model.PaperDraft, error) {
	if strings.TrimSpace(request) == "" {
		return model.PaperDraft{}, apperror.Validation("Modification request is required")
	}

	idea, _, err := s.loadIdeaWithPaper(ideaID, userID)
	if err != nil {
		return model.PaperDraft{}, err
	}

	if idea.GeneratedPaper.IsEmpty() {
		return model.PaperDraft{}, apperror.Validation("No paper exists to modify. Generate a paper first.")
	}

	draft, err := s.ai.ModifyFullPaper(ctx, idea.GeneratedPaper, request, idea)
	if err != nil {
		return model.PaperDraft{}, err
	}

	now := s.now().UTC()
	idea.GeneratedPaper = draft
	idea.GeneratedAt = &now
	if err := s.ideaRepo.Update(idea); err != nil {
		return model.PaperDraft{}, err
	}

	return draft, nil
}

// GenerateSlides builds a presentation for the idea and stores the deck on
// it.
func (s *IdeaService) GenerateSlides(ctx context.Context, ideaID, userID string, opts SlideOptions) (model.SlideDeck, error) {
	idea, paper, err := s.loadIdeaWithPaper(ideaID, userID)
	if err != nil {
		return model.SlideDeck{}, err
	}

	deck, err := s.ai.GenerateSlideDeck(ctx, idea, paper.ExtractedText, opts)
	if err != nil {
		return model.SlideDeck{}, err
	}

	idea.GeneratedSlides = deck
	if err := s.ideaRepo.Update(idea); err != nil {
		return model.SlideDeck{}, err
	}

	return deck, nil
}

// ModifySlides rewrites the idea's generated deck per the user's request.
// Slides must have been generated first. Theme and layout override the
// stored deck's values when provided.
func (s *IdeaService) ModifySlides(ctx context.Context, ideaID, userID, request, theme, layout string) (model.SlideDeck, error) {
	if strings.TrimSpace(request) == "" {
		return model.SlideDeck{}, apperror.Validation("Modification request is required")
	}

	idea, _, err := s.loadIdeaWithPaper(ideaID, userID)
	if err != nil {
		return model.SlideDeck{}, err
	}

	if idea.GeneratedSlides.IsEmpty() {
		return model.SlideDeck{}, apperror.Validation("No slides exist to modify. Generate slides first.")
	}

	current := idea.GeneratedSlides
	if theme != "" {
		current.Theme = theme
	}
	if layout != "" {
		current.Layout = layout
	}

	deck, err := s.ai.ModifySlideDeck(ctx, current, request, idea)
	if err != nil {
		return model.SlideDeck{}, err
	}

	idea.GeneratedSlides = deck
	if err := s.ideaRepo.Update(idea); err != nil {
		return model.SlideDeck{}, err
	}

	return deck, nil
}

// Chats returns the idea's chat thread.
func (s *IdeaService) Chats(ideaID, userID string) ([]model.ChatMessage, error) {
	if _, _, err := s.loadIdeaWithPaper(ideaID, userID); err != nil {
		return nil, err
	}
	return s.chatRepo.ByIdeaID(ideaID)
}

// loadIdeaWithPaper fetches the idea and its source paper, verifying the
// user can access that paper.
func (s *IdeaService) loadIdeaWithPaper(ideaID, userID string) (*model.Idea, *model.Paper, error) {
	idea, err := s.ideaRepo.ByID(ideaID)
	if err != nil {
		if errors.Is(err, repository.ErrIdeaNotFound) {
			return nil, nil, apperror.NotFound("Idea")
		}
		return nil, nil, err
	}

	paper, err := s.paperRepo.ByID(idea.PaperID)
	if err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			return nil, nil, apperror.NotFound("Source paper")
		}
		return nil, nil, err
	}

	if paper.OwnerID != userID {
		isCollab, err := s.paperRepo.IsCollaborator(paper.ID, userID)
		if err != nil {
			return nil, nil, err
		}
		if !isCollab {
			return nil, nil, apperror.Forbidden("Not authorized to access this paper")
		}
	}

	return idea, paper, nil
}
