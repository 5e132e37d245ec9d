package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/repository"
	"github.com/researchpartner/api/internal/storage"
)

// Analyzer is the LLM surface the paper and idea services depend on.
// Satisfied by AIService.
type Analyzer interface {
	GenerateSummary(ctx context.Context, text, section string, level SummaryLevel) (string, error)
	ExtractSections(ctx context.Context, fullText string) (PaperSections, error)
	ExtractKeyFindings(ctx context.Context, fullText string) ([]string, error)
	GenerateResearchIdeas(ctx context.Context, paperText string, count int) ([]IdeaProposal, error)
	AnswerQuestion(ctx context.Context, question, paperText string) (string, error)
	ExtractKeywords(ctx context.Context, paperText string) ([]string, error)
	GenerateCitations(ctx context.Context, paperText string) (model.CitationList, error)
	GenerateSlides(ctx context.Context, paperText string) (model.SlideOutlineList, error)
	GenerateAbstract(ctx context.Context, paperText string) (string, error)
	AnalyzeInsights(ctx context.Context, paperText string) (model.InsightReport, error)
	ComparePapers(ctx context.Context, text1, text2, title1, title2 string) (json.RawMessage, error)
	GenerateQuiz(ctx context.Context, paperText string, questionCount int) (model.QuizList, error)
	GenerateKnowledgeGraph(ctx context.Context, paperText string) (model.KnowledgeGraph, error)
	GenerateFullPaper(ctx context.Context, idea *model.Idea, sourcePaperText string) (model.PaperDraft, error)
	ModifyFullPaper(ctx context.Context, current model.PaperDraft, request string, idea *model.Idea) (model.PaperDraft, error)
	GenerateSlideDeck(ctx context.Context, idea *model.Idea, sourcePaperText string, opts SlideOptions) (model.SlideDeck, error)
	ModifySlideDeck(ctx context.Context, current model.SlideDeck, request string, idea *model.Idea) (model.SlideDeck, error)
}

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(data []byte) (string, error)
}

// PaperService owns the paper lifecycle: upload, retrieval, sharing, and
// every LLM artifact persisted on the paper or its summary.
type PaperService struct {
	paperRepo   repository.PaperRepository
	userRepo    repository.UserRepository
	summaryRepo repository.SummaryRepository
	ideaRepo    repository.IdeaRepository
	chatRepo    repository.ChatRepository
	quizRepo    repository.QuizAttemptRepository
	storage     storage.Storage
	extractor   TextExtractor
	ai          Analyzer
	now         func() time.Time
}

func NewPaperService(
	paperRepo repository.PaperRepository,
	userRepo repository.UserRepository,
	summaryRepo repository.SummaryRepository,
	ideaRepo repository.IdeaRepository,
	chatRepo repository.ChatRepository,
	quizRepo repository.QuizAttemptRepository,
	store storage.Storage,
	extractor TextExtractor,
	ai Analyzer,
) *PaperService {
	return &PaperService{
		paperRepo:   paperRepo,
		userRepo:    userRepo,
		summaryRepo: summaryRepo,
		ideaRepo:    ideaRepo,
		chatRepo:    chatRepo,
		quizRepo:    quizRepo,
		storage:     store,
		extractor:   extractor,
		ai:          ai,
		now:         time.Now,
	}
}

// Upload extracts text from the PDF, stores the file, pulls keywords, and
// creates the paper record.
func (s *PaperService) Upload(ctx context.Context, userID, title, filename string, data []byte) (*model.Paper, error) {
	extractedText, err := s.extractor.ExtractText(data)
	if err != nil {
		return nil, apperror.Validation("Could not extract text from the PDF")
	}

	key := fmt.Sprintf("papers/%s.pdf", uuid.NewString())
	if err := s.storage.Save(key, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	keywords, err := s.ai.ExtractKeywords(ctx, extractedText)
	if err != nil {
		keywords = []string{}
	}

	if title == "" {
		title = TitleFromFilename(filename)
	}

	now := s.now().UTC()
	paper := &model.Paper{
		ID:               uuid.NewString(),
		OwnerID:          userID,
		Title:            title,
		OriginalFileName: filename,
		FileURL:          s.storage.URL(key),
		StorageKey:       key,
		ExtractedText:    extractedText,
		Keywords:         model.StringList(keywords),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.paperRepo.Create(paper); err != nil {
		return nil, err
	}

	return s.hydrate(paper, false)
}

// List returns every paper the user owns or collaborates on, with summary,
// ideas, owner and collaborators attached.
func (s *PaperService) List(userID string) ([]model.Paper, error) {
	papers, err := s.paperRepo.AccessibleBy(userID)
	if err != nil {
		return nil, err
	}

	for i := range papers {
		if _, err := s.hydrate(&papers[i], false); err != nil {
			return nil, err
		}
	}
	return papers, nil
}

// Owned returns the papers the user owns, without attachments.
func (s *PaperService) Owned(userID string) ([]model.Paper, error) {
	return s.paperRepo.ByOwner(userID)
}

// Get returns a single paper with all attachments. Access requires ownership
// or collaboration.
func (s *PaperService) Get(paperID, userID string) (*model.Paper, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}
	return s.hydrate(paper, true)
}

// Delete removes the paper, its stored file and all derived records. Only
// the owner may delete.
func (s *PaperService) Delete(paperID, userID string) error {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return err
	}

	if paper.OwnerID != userID {
		return apperror.Forbidden("Not authorized to delete this paper")
	}

	if paper.StorageKey != "" {
		if err := s.storage.Delete(paper.StorageKey); err != nil {
			slog.Error("failed to delete stored file", "paper_id", paperID, "key", paper.StorageKey, "error", err)
		}
	}

	return s.paperRepo.Delete(paperID)
}

// AddCollaborator shares the paper with another registered user. Only the
// owner may share.
func (s *PaperService) AddCollaborator(paperID, ownerID, email string) (*model.Paper, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}

	if paper.OwnerID != ownerID {
		return nil, apperror.Forbidden("Only owner can add collaborators")
	}

	collaborator, err := s.userRepo.ByEmail(model.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.NotFound("User")
		}
		return nil, err
	}

	if err := s.paperRepo.AddCollaborator(paperID, collaborator.ID, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrDuplicateCollaborator) {
			return nil, apperror.Conflict("User is already a collaborator")
		}
		return nil, err
	}

	return s.hydrate(paper, true)
}

// AddNote appends a note and returns the paper's full note list.
func (s *PaperService) AddNote(paperID, userID, content string) ([]model.Note, error) {
	if _, err := s.accessPaper(paperID, userID); err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:        uuid.NewString(),
		PaperID:   paperID,
		UserID:    userID,
		Content:   content,
		CreatedAt: s.now().UTC(),
	}
	if err := s.paperRepo.AddNote(note); err != nil {
		return nil, err
	}

	return s.paperRepo.Notes(paperID)
}

// DashboardStats aggregates per-user usage numbers for the dashboard.
type DashboardStats struct {
	TotalPapers      int                `json:"totalPapers"`
	SummarizedPapers int                `json:"summarizedPapers"`
	PapersWithIdeas  int                `json:"papersWithIdeas"`
	PapersWithGraphs int                `json:"papersWithGraphs"`
	PapersWithQuiz   int                `json:"papersWithQuiz"`
	TotalIdeas       int                `json:"totalIdeas"`
	TotalNotes       int                `json:"totalNotes"`
	Collaborations   int                `json:"collaborations"`
	RecentPapers     []RecentPaper      `json:"recentPapers"`
	UploadsByMonth   []MonthUploadCount `json:"uploadsByMonth"`
}

type RecentPaper struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"createdAt"`
	HasSummary bool      `json:"hasSummary"`
	HasIdeas   bool      `json:"hasIdeas"`
}

type MonthUploadCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats computes usage statistics over the user's owned papers.
func (s *PaperService) DashboardStats(userID string) (*DashboardStats, error) {
	papers, err := s.paperRepo.ByOwner(userID)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalPapers:    len(papers),
		RecentPapers:   []RecentPaper{},
		UploadsByMonth: []MonthUploadCount{},
	}

	monthCounts := map[string]int{}
	monthOrder := []string{}

	for i := range papers {
		paper := &papers[i]

		summary, err := s.summaryRepo.ByPaperID(paper.ID)
		if err != nil && !errors.Is(err, repository.ErrSummaryNotFound) {
			return nil, err
		}
		hasSummary := summary != nil && err == nil

		ideas, err := s.ideaRepo.ByPaperID(paper.ID)
		if err != nil {
			return nil, err
		}

		notes, err := s.paperRepo.Notes(paper.ID)
		if err != nil {
			return nil, err
		}

		collaborators, err := s.paperRepo.Collaborators(paper.ID)
		if err != nil {
			return nil, err
		}

		if hasSummary {
			stats.SummarizedPapers++
		}
		if len(ideas) > 0 {
			stats.PapersWithIdeas++
		}
		if !paper.KnowledgeGraph.IsEmpty() {
			stats.PapersWithGraphs++
		}
		if len(paper.Quiz) > 0 {
			stats.PapersWithQuiz++
		}
		if len(collaborators) > 0 {
			stats.Collaborations++
		}
		stats.TotalIdeas += len(ideas)
		stats.TotalNotes += len(notes)

		if len(stats.RecentPapers) < 5 {
			stats.RecentPapers = append(stats.RecentPapers, RecentPaper{
				ID:         paper.ID,
				Title:      paper.Title,
				CreatedAt:  paper.CreatedAt,
				HasSummary: hasSummary,
				HasIdeas:   len(ideas) > 0,
			})
		}

		month := paper.CreatedAt.Format("Jan 2006")
		if _, ok := monthCounts[month]; !ok {
			monthOrder = append(monthOrder, month)
		}
		monthCounts[month]++
	}

	for _, month := range monthOrder {
		stats.UploadsByMonth = append(stats.UploadsByMonth, MonthUploadCount{Month: month, Count: monthCounts[month]})
	}

	return stats, nil
}

// PaperComparison pairs two paper references with their LLM comparison.
type PaperComparison struct {
	Paper1     PaperRef        `json:"paper1"`
	Paper2     PaperRef        `json:"paper2"`
	Comparison json.RawMessage `json:"comparison"`
}

type PaperRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Compare runs an LLM comparison of two papers the user can access.
func (s *PaperService) Compare(ctx context.Context, userID, paperID1, paperID2 string) (*PaperComparison, error) {
	paper1, err := s.accessPaper(paperID1, userID)
	if err != nil {
		return nil, err
	}
	paper2, err := s.accessPaper(paperID2, userID)
	if err != nil {
		return nil, err
	}

	comparison, err := s.ai.ComparePapers(ctx, paper1.ExtractedText, paper2.ExtractedText, paper1.Title, paper2.Title)
	if err != nil {
		return nil, err
	}

	return &PaperComparison{
		Paper1:     PaperRef{ID: paper1.ID, Title: paper1.Title},
		Paper2:     PaperRef{ID: paper2.ID, Title: paper2.Title},
		Comparison: comparison,
	}, nil
}

// GenerateSummary slices the paper into sections and summarizes each present
// section at all three reading levels, plus key findings. The summary record
// is created once per paper and regenerated in place afterwards.
func (s *PaperService) GenerateSummary(ctx context.Context, paperID, userID string) (*model.Summary, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	sections, err := s.ai.ExtractSections(ctx, paper.ExtractedText)
	if err != nil {
		return nil, err
	}

	summarize := func(section, text string) (model.SectionSummary, error) {
		var out model.SectionSummary
		if text == "" {
			return out, nil
		}
		if out.Basic, err = s.ai.GenerateSummary(ctx, text, section, LevelBasic); err != nil {
			return out, err
		}
		if out.Medium, err = s.ai.GenerateSummary(ctx, text, section, LevelMedium); err != nil {
			return out, err
		}
		if out.Technical, err = s.ai.GenerateSummary(ctx, text, section, LevelTechnical); err != nil {
			return out, err
		}
		return out, nil
	}

	summary := &model.Summary{PaperID: paper.ID}
	if summary.Abstract, err = summarize("abstract", sections.Abstract); err != nil {
		return nil, err
	}
	if summary.Introduction, err = summarize("introduction", sections.Introduction); err != nil {
		return nil, err
	}
	if summary.Methods, err = summarize("methods", sections.Methods); err != nil {
		return nil, err
	}
	if summary.Results, err = summarize("results", sections.Results); err != nil {
		return nil, err
	}
	if summary.Conclusion, err = summarize("conclusion", sections.Conclusion); err != nil {
		return nil, err
	}

	findings, err := s.ai.ExtractKeyFindings(ctx, paper.ExtractedText)
	if err != nil {
		return nil, err
	}
	summary.KeyFindings = model.StringList(findings)

	existing, err := s.summaryRepo.ByPaperID(paper.ID)
	switch {
	case err == nil:
		summary.ID = existing.ID
		summary.CreatedAt = existing.CreatedAt
		summary.GeneratedSlides = existing.GeneratedSlides
		summary.GeneratedAbstract = existing.GeneratedAbstract
		if err := s.summaryRepo.Update(summary); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrSummaryNotFound):
		summary.ID = uuid.NewString()
		summary.CreatedAt = s.now().UTC()
		if err := s.summaryRepo.Create(summary); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return summary, nil
}

// GenerateIdeas replaces the paper's idea set with a freshly generated one.
func (s *PaperService) GenerateIdeas(ctx context.Context, paperID, userID string) ([]model.Idea, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	proposals, err := s.ai.GenerateResearchIdeas(ctx, paper.ExtractedText, 5)
	if err != nil {
		return nil, err
	}

	if err := s.ideaRepo.DeleteByPaperID(paper.ID); err != nil {
		return nil, err
	}

	return s.saveIdeas(paper.ID, proposals)
}

// GenerateMoreIdeas appends count additional ideas to the existing set.
func (s *PaperService) GenerateMoreIdeas(ctx context.Context, paperID, userID string, count int) ([]model.Idea, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	if count <= 0 {
		count = 3
	}

	proposals, err := s.ai.GenerateResearchIdeas(ctx, paper.ExtractedText, count)
	if err != nil {
		return nil, err
	}

	return s.saveIdeas(paper.ID, proposals)
}

func (s *PaperService) saveIdeas(paperID string, proposals []IdeaProposal) ([]model.Idea, error) {
	ideas := make([]model.Idea, 0, len(proposals))
	for _, p := range proposals {
		idea := model.Idea{
			ID:          uuid.NewString(),
			PaperID:     paperID,
			Title:       p.Title,
			Description: p.Description,
			Tags: model.IdeaTags{
				Novelty:     orDefault(p.Novelty, model.RatingMedium),
				Feasibility: orDefault(p.Feasibility, model.RatingMedium),
				AIRelevance: orDefault(p.AIRelevance, model.RatingHigh),
			},
			Methodology:     p.Methodology,
			ExpectedOutcome: p.ExpectedOutcome,
			Resources:       model.StringList(p.Resources),
			CreatedAt:       s.now().UTC(),
		}
		if idea.Resources == nil {
			idea.Resources = []string{}
		}
		if err := s.ideaRepo.Create(&idea); err != nil {
			return nil, err
		}
		ideas = append(ideas, idea)
	}
	return ideas, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// GenerateKnowledgeGraph builds a concept graph and stores it on the paper.
func (s *PaperService) GenerateKnowledgeGraph(ctx context.Context, paperID, userID string) (model.KnowledgeGraph, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return model.KnowledgeGraph{}, err
	}

	graph, err := s.ai.GenerateKnowledgeGraph(ctx, paper.ExtractedText)
	if err != nil {
		return model.KnowledgeGraph{}, err
	}

	paper.KnowledgeGraph = graph
	paper.UpdatedAt = s.now().UTC()
	if err := s.paperRepo.Update(paper); err != nil {
		return model.KnowledgeGraph{}, err
	}

	return graph, nil
}

// GenerateCitations suggests related papers and stores them on the paper.
func (s *PaperService) GenerateCitations(ctx context.Context, paperID, userID string) (model.CitationList, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	citations, err := s.ai.GenerateCitations(ctx, paper.ExtractedText)
	if err != nil {
		return nil, err
	}

	paper.Citations = citations
	paper.UpdatedAt = s.now().UTC()
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, err
	}

	return citations, nil
}

// GenerateSlides builds a slide outline for the paper. If a summary record
// exists the outline is persisted on it.
func (s *PaperService) GenerateSlides(ctx context.Context, paperID, userID string) (model.SlideOutlineList, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	slides, err := s.ai.GenerateSlides(ctx, paper.ExtractedText)
	if err != nil {
		return nil, err
	}

	if summary, err := s.summaryRepo.ByPaperID(paper.ID); err == nil {
		summary.GeneratedSlides = slides
		if err := s.summaryRepo.Update(summary); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, repository.ErrSummaryNotFound) {
		return nil, err
	}

	return slides, nil
}

// GenerateAbstract writes a fresh abstract. If a summary record exists the
// abstract is persisted on it.
func (s *PaperService) GenerateAbstract(ctx context.Context, paperID, userID string) (string, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return "", err
	}

	abstract, err := s.ai.GenerateAbstract(ctx, paper.ExtractedText)
	if err != nil {
		return "", err
	}

	if summary, err := s.summaryRepo.ByPaperID(paper.ID); err == nil {
		summary.GeneratedAbstract = abstract
		if err := s.summaryRepo.Update(summary); err != nil {
			return "", err
		}
	} else if !errors.Is(err, repository.ErrSummaryNotFound) {
		return "", err
	}

	return abstract, nil
}

// AskQuestion answers a question about the paper and appends it to the
// paper's chat history.
func (s *PaperService) AskQuestion(ctx context.Context, paperID, userID, question string) (*model.ChatMessage, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	answer, err := s.ai.AnswerQuestion(ctx, question, paper.ExtractedText)
	if err != nil {
		return nil, err
	}

	message := &model.ChatMessage{
		ID:        uuid.NewString(),
		PaperID:   &paper.ID,
		Question:  question,
		Answer:    answer,
		CreatedAt: s.now().UTC(),
	}
	if err := s.chatRepo.Create(message); err != nil {
		return nil, err
	}

	return message, nil
}

// AnalyzeInsights scores the paper and stores the report on it.
func (s *PaperService) AnalyzeInsights(ctx context.Context, paperID, userID string) (model.InsightReport, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return model.InsightReport{}, err
	}

	insights, err := s.ai.AnalyzeInsights(ctx, paper.ExtractedText)
	if err != nil {
		return model.InsightReport{}, err
	}

	paper.Insights = insights
	paper.UpdatedAt = s.now().UTC()
	if err := s.paperRepo.Update(paper); err != nil {
		return model.InsightReport{}, err
	}

	return insights, nil
}

// GenerateQuiz builds MCQs from the paper and stores the current set on it.
func (s *PaperService) GenerateQuiz(ctx context.Context, paperID, userID string, questionCount int) (model.QuizList, error) {
	paper, err := s.accessPaper(paperID, userID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.ai.GenerateQuiz(ctx, paper.ExtractedText, questionCount)
	if err != nil {
		return nil, err
	}

	paper.Quiz = quiz
	paper.UpdatedAt = s.now().UTC()
	if err := s.paperRepo.Update(paper); err != nil {
		return nil, err
	}

	return quiz, nil
}

// SaveQuizAttempt records a completed quiz run.
func (s *PaperService) SaveQuizAttempt(paperID, userID string, quiz model.QuizList, answers []int, score, total int) (*model.QuizAttempt, error) {
	if _, err := s.accessPaper(paperID, userID); err != nil {
		return nil, err
	}

	attempt := &model.QuizAttempt{
		ID:             uuid.NewString(),
		PaperID:        paperID,
		Quiz:           quiz,
		UserAnswers:    model.IntList(answers),
		Score:          score,
		TotalQuestions: total,
		CompletedAt:    s.now().UTC(),
	}
	if err := s.quizRepo.Create(attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

// QuizAttempts returns the paper's quiz history, newest first.
func (s *PaperService) QuizAttempts(paperID, userID string) ([]model.QuizAttempt, error) {
	if _, err := s.accessPaper(paperID, userID); err != nil {
		return nil, err
	}
	return s.quizRepo.ByPaperID(paperID)
}

// DeleteChat removes one message from the paper's chat history and returns
// the remaining messages.
func (s *PaperService) DeleteChat(paperID, userID, chatID string) ([]model.ChatMessage, error) {
	if _, err := s.accessPaper(paperID, userID); err != nil {
		return nil, err
	}

	if err := s.chatRepo.Delete(chatID); err != nil {
		if errors.Is(err, repository.ErrChatMessageNotFound) {
			return nil, apperror.NotFound("Chat message")
		}
		return nil, err
	}

	return s.chatRepo.ByPaperID(paperID)
}

// DeleteAllChats clears the paper's chat history.
func (s *PaperService) DeleteAllChats(paperID, userID string) error {
	if _, err := s.accessPaper(paperID, userID); err != nil {
		return err
	}
	return s.chatRepo.DeleteByPaperID(paperID)
}

// loadPaper fetches a paper and maps the repository sentinel.
func (s *PaperService) loadPaper(paperID string) (*model.Paper, error) {
	paper, err := s.paperRepo.ByID(paperID)
	if err != nil {
		if errors.Is(err, repository.ErrPaperNotFound) {
			return nil, apperror.NotFound("Paper")
		}
		return nil, err
	}
	return paper, nil
}

// accessPaper fetches a paper and verifies the user owns it or collaborates
// on it.
func (s *PaperService) accessPaper(paperID, userID string) (*model.Paper, error) {
	paper, err := s.loadPaper(paperID)
	if err != nil {
		return nil, err
	}

	if paper.OwnerID != userID {
		isCollab, err := s.paperRepo.IsCollaborator(paperID, userID)
		if err != nil {
			return nil, err
		}
		if !isCollab {
			return nil, apperror.Forbidden("Not authorized to access this paper")
		}
	}

	return paper, nil
}

// hydrate attaches summary, ideas, owner and collaborators. When full is set
// it also attaches notes and chat history.
func (s *PaperService) hydrate(paper *model.Paper, full bool) (*model.Paper, error) {
	summary, err := s.summaryRepo.ByPaperID(paper.ID)
	switch {
	case err == nil:
		paper.Summary = summary
	case errors.Is(err, repository.ErrSummaryNotFound):
	default:
		return nil, err
	}

	if paper.Ideas, err = s.ideaRepo.ByPaperID(paper.ID); err != nil {
		return nil, err
	}

	owner, err := s.userRepo.ByID(paper.OwnerID)
	if err == nil {
		paper.Owner = &model.User{ID: owner.ID, Name: owner.Name, Email: owner.Email, Avatar: owner.Avatar}
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	if paper.Collaborators, err = s.paperRepo.Collaborators(paper.ID); err != nil {
		return nil, err
	}

	if full {
		if paper.Notes, err = s.paperRepo.Notes(paper.ID); err != nil {
			return nil, err
		}
		if paper.ChatHistory, err = s.chatRepo.ByPaperID(paper.ID); err != nil {
			return nil, err
		}
	}

	return paper, nil
}
