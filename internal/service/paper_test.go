package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/researchpartner/api/internal/apperror"
	"github.com/researchpartner/api/internal/model"
	"github.com/researchpartner/api/internal/repository"
)

// ---- fakes ----

type fakePaperRepo struct {
	papers        map[string]*model.Paper
	collaborators map[string][]model.Collaborator // keyed by paper ID
	notes         map[string][]model.Note
}

func newFakePaperRepo() *fakePaperRepo {
	return &fakePaperRepo{
		papers:        map[string]*model.Paper{},
		collaborators: map[string][]model.Collaborator{},
		notes:         map[string][]model.Note{},
	}
}

func (f *fakePaperRepo) Create(paper *model.Paper) error {
	copied := *paper
	f.papers[paper.ID] = &copied
	return nil
}

func (f *fakePaperRepo) ByID(id string) (*model.Paper, error) {
	p, ok := f.papers[id]
	if !ok {
		return nil, repository.ErrPaperNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePaperRepo) ByOwner(ownerID string) ([]model.Paper, error) {
	var out []model.Paper
	for _, p := range f.papers {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaperRepo) AccessibleBy(userID string) ([]model.Paper, error) {
	var out []model.Paper
	for _, p := range f.papers {
		if p.OwnerID == userID {
			out = append(out, *p)
			continue
		}
		for _, c := range f.collaborators[p.ID] {
			if c.UserID == userID {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakePaperRepo) Update(paper *model.Paper) error {
	if _, ok := f.papers[paper.ID]; !ok {
		return repository.ErrPaperNotFound
	}
	copied := *paper
	f.papers[paper.ID] = &copied
	return nil
}

func (f *fakePaperRepo) Delete(id string) error {
	if _, ok := f.papers[id]; !ok {
		return repository.ErrPaperNotFound
	}
	delete(f.papers, id)
	return nil
}

func (f *fakePaperRepo) AddCollaborator(paperID, userID string, addedAt time.Time) error {
	for _, c := range f.collaborators[paperID] {
		if c.UserID == userID {
			return repository.ErrDuplicateCollaborator
		}
	}
	f.collaborators[paperID] = append(f.collaborators[paperID], model.Collaborator{
		PaperID: paperID, UserID: userID, AddedAt: addedAt,
	})
	return nil
}

func (f *fakePaperRepo) RemoveCollaborator(paperID, userID string) error {
	kept := f.collaborators[paperID][:0]
	for _, c := range f.collaborators[paperID] {
		if c.UserID != userID {
			kept = append(kept, c)
		}
	}
	f.collaborators[paperID] = kept
	return nil
}

func (f *fakePaperRepo) Collaborators(paperID string) ([]model.Collaborator, error) {
	return f.collaborators[paperID], nil
}

func (f *fakePaperRepo) IsCollaborator(paperID, userID string) (bool, error) {
	for _, c := range f.collaborators[paperID] {
		if c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaperRepo) AddNote(note *model.Note) error {
	f.notes[note.PaperID] = append(f.notes[note.PaperID], *note)
	return nil
}

func (f *fakePaperRepo) Notes(paperID string) ([]model.Note, error) {
	return f.notes[paperID], nil
}

func (f *fakePaperRepo) DeleteNote(paperID, noteID string) error {
	kept := f.notes[paperID][:0]
	for _, n := range f.notes[paperID] {
		if n.ID != noteID {
			kept = append(kept, n)
		}
	}
	f.notes[paperID] = kept
	return nil
}

type fakeSummaryRepo struct {
	summaries map[string]*model.Summary // keyed by paper ID
}

func newFakeSummaryRepo() *fakeSummaryRepo {
	return &fakeSummaryRepo{summaries: map[string]*model.Summary{}}
}

func (f *fakeSummaryRepo) Create(summary *model.Summary) error {
	copied := *summary
	f.summaries[summary.PaperID] = &copied
	return nil
}

func (f *fakeSummaryRepo) ByPaperID(paperID string) (*model.Summary, error) {
	s, ok := f.summaries[paperID]
	if !ok {
		return nil, repository.ErrSummaryNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSummaryRepo) Update(summary *model.Summary) error {
	copied := *summary
	f.summaries[summary.PaperID] = &copied
	return nil
}

func (f *fakeSummaryRepo) DeleteByPaperID(paperID string) error {
	delete(f.summaries, paperID)
	return nil
}

type fakeIdeaRepo struct {
	ideas map[string]*model.Idea
}

func newFakeIdeaRepo() *fakeIdeaRepo {
	return &fakeIdeaRepo{ideas: map[string]*model.Idea{}}
}

func (f *fakeIdeaRepo) Create(idea *model.Idea) error {
	copied := *idea
	f.ideas[idea.ID] = &copied
	return nil
}

func (f *fakeIdeaRepo) ByID(id string) (*model.Idea, error) {
	i, ok := f.ideas[id]
	if !ok {
		return nil, repository.ErrIdeaNotFound
	}
	copied := *i
	return &copied, nil
}

func (f *fakeIdeaRepo) ByPaperID(paperID string) ([]model.Idea, error) {
	var out []model.Idea
	for _, i := range f.ideas {
		if i.PaperID == paperID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeIdeaRepo) Update(idea *model.Idea) error {
	if _, ok := f.ideas[idea.ID]; !ok {
		return repository.ErrIdeaNotFound
	}
	copied := *idea
	f.ideas[idea.ID] = &copied
	return nil
}

func (f *fakeIdeaRepo) DeleteByPaperID(paperID string) error {
	for id, i := range f.ideas {
		if i.PaperID == paperID {
			delete(f.ideas, id)
		}
	}
	return nil
}

type fakeChatRepo struct {
	messages []model.ChatMessage
}

func (f *fakeChatRepo) Create(message *model.ChatMessage) error {
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeChatRepo) ByPaperID(paperID string) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range f.messages {
		if m.PaperID != nil && *m.PaperID == paperID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) ByIdeaID(ideaID string) ([]model.ChatMessage, error) {
	var out []model.ChatMessage
	for _, m := range f.messages {
		if m.IdeaID != nil && *m.IdeaID == ideaID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeChatRepo) Delete(id string) error {
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return repository.ErrChatMessageNotFound
}

func (f *fakeChatRepo) DeleteByPaperID(paperID string) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.PaperID == nil || *m.PaperID != paperID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

func (f *fakeChatRepo) DeleteByIdeaID(ideaID string) error {
	kept := f.messages[:0]
	for _, m := range f.messages {
		if m.IdeaID == nil || *m.IdeaID != ideaID {
			kept = append(kept, m)
		}
	}
	f.messages = kept
	return nil
}

type fakeQuizRepo struct {
	attempts []model.QuizAttempt
}

func (f *fakeQuizRepo) Create(attempt *model.QuizAttempt) error {
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeQuizRepo) ByPaperID(paperID string) ([]model.QuizAttempt, error) {
	var out []model.QuizAttempt
	for _, a := range f.attempts {
		if a.PaperID == paperID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStorage struct {
	saved   []string
	deleted []string
	saveErr error
}

func (f *fakeStorage) Save(path string, file io.Reader) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, path)
	return nil
}

func (f *fakeStorage) Delete(path string) error {
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStorage) URL(path string) string {
	return "https://files.test/" + path
}

type fakeExtractor struct {
	text string
	err  error
}

func (f *fakeExtractor) ExtractText(data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakeAnalyzer returns canned artifacts so service wiring can be asserted
// without a model call.
type fakeAnalyzer struct {
	keywordsErr error
	ideasErr    error
	compareErr  error
}

func (f *fakeAnalyzer) GenerateSummary(ctx context.Context, text, section string, level SummaryLevel) (string, error) {
	return "• " + section + " at " + string(level), nil
}

func (f *fakeAnalyzer) ExtractSections(ctx context.Context, fullText string) (PaperSections, error) {
	return PaperSections{Abstract: "abstract text", Methods: "methods text"}, nil
}

func (f *fakeAnalyzer) ExtractKeyFindings(ctx context.Context, fullText string) ([]string, error) {
	return []string{"finding one", "finding two"}, nil
}

func (f *fakeAnalyzer) GenerateResearchIdeas(ctx context.Context, paperText string, count int) ([]IdeaProposal, error) {
	if f.ideasErr != nil {
		return nil, f.ideasErr
	}
	out := make([]IdeaProposal, count)
	for i := range out {
		out[i] = IdeaProposal{Title: "Idea", Description: "desc"}
	}
	return out, nil
}

func (f *fakeAnalyzer) AnswerQuestion(ctx context.Context, question, paperText string) (string, error) {
	return "answer to: " + question, nil
}

func (f *fakeAnalyzer) ExtractKeywords(ctx context.Context, paperText string) ([]string, error) {
	if f.keywordsErr != nil {
		return nil, f.keywordsErr
	}
	return []string{"transformers", "attention"}, nil
}

func (f *fakeAnalyzer) GenerateCitations(ctx context.Context, paperText string) (model.CitationList, error) {
	return model.CitationList{{Title: "Related Work", Year: 2023}}, nil
}

func (f *fakeAnalyzer) GenerateSlides(ctx context.Context, paperText string) (model.SlideOutlineList, error) {
	return model.SlideOutlineList{{Title: "Overview", Points: []string{"point"}}}, nil
}

func (f *fakeAnalyzer) GenerateAbstract(ctx context.Context, paperText string) (string, error) {
	return "generated abstract", nil
}

func (f *fakeAnalyzer) AnalyzeInsights(ctx context.Context, paperText string) (model.InsightReport, error) {
	return model.InsightReport{OverallScore: 7.5, Recommendation: "promising"}, nil
}

func (f *fakeAnalyzer) ComparePapers(ctx context.Context, text1, text2, title1, title2 string) (json.RawMessage, error) {
	if f.compareErr != nil {
		return nil, f.compareErr
	}
	return json.RawMessage(`{"similarities":["both study attention"]}`), nil
}

func (f *fakeAnalyzer) GenerateQuiz(ctx context.Context, paperText string, questionCount int) (model.QuizList, error) {
	return model.QuizList{{Question: "What?", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 1}}, nil
}

func (f *fakeAnalyzer) GenerateKnowledgeGraph(ctx context.Context, paperText string) (model.KnowledgeGraph, error) {
	return model.KnowledgeGraph{
		Nodes: []model.GraphNode{{ID: "n1", Label: "Attention", Group: 1}},
	}, nil
}

func (f *fakeAnalyzer) GenerateFullPaper(ctx context.Context, idea *model.Idea, sourcePaperText string) (model.PaperDraft, error) {
	return model.PaperDraft{Abstract: "draft abstract"}, nil
}

func (f *fakeAnalyzer) ModifyFullPaper(ctx context.Context, current model.PaperDraft, request string, idea *model.Idea) (model.PaperDraft, error) {
	current.Abstract = current.Abstract + " (revised)"
	return current, nil
}

func (f *fakeAnalyzer) GenerateSlideDeck(ctx context.Context, idea *model.Idea, sourcePaperText string, opts SlideOptions) (model.SlideDeck, error) {
	return model.SlideDeck{
		Slides:     []model.IdeaSlide{{Title: "Intro"}},
		Theme:      opts.Theme,
		Layout:     opts.Layout,
		SlideCount: opts.SlideCount,
	}, nil
}

func (f *fakeAnalyzer) ModifySlideDeck(ctx context.Context, current model.SlideDeck, request string, idea *model.Idea) (model.SlideDeck, error) {
	return current, nil
}

// ---- fixture ----

type paperFixture struct {
	svc       *PaperService
	paperRepo *fakePaperRepo
	userRepo  *fakeUserRepo
	summaries *fakeSummaryRepo
	ideas     *fakeIdeaRepo
	chats     *fakeChatRepo
	quizzes   *fakeQuizRepo
	storage   *fakeStorage
	extractor *fakeExtractor
	ai        *fakeAnalyzer
}

func newPaperFixture() *paperFixture {
	fx := &paperFixture{
		paperRepo: newFakePaperRepo(),
		userRepo:  newFakeUserRepo(),
		summaries: newFakeSummaryRepo(),
		ideas:     newFakeIdeaRepo(),
		chats:     &fakeChatRepo{},
		quizzes:   &fakeQuizRepo{},
		storage:   &fakeStorage{},
		extractor: &fakeExtractor{text: "extracted paper text"},
		ai:        &fakeAnalyzer{},
	}
	fx.svc = NewPaperService(fx.paperRepo, fx.userRepo, fx.summaries, fx.ideas, fx.chats, fx.quizzes,
		fx.storage, fx.extractor, fx.ai)
	return fx
}

func (fx *paperFixture) addUser(id, email string) {
	fx.userRepo.users[id] = &model.User{ID: id, Name: "User " + id, Email: email, Verified: true}
}

func (fx *paperFixture) addPaper(id, ownerID string) *model.Paper {
	paper := &model.Paper{
		ID:            id,
		OwnerID:       ownerID,
		Title:         "Paper " + id,
		ExtractedText: "text of " + id,
		CreatedAt:     time.Now().UTC(),
	}
	fx.paperRepo.papers[id] = paper
	return paper
}

// ---- upload ----

func TestUpload(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("u1", "alice@example.com")

	paper, err := fx.svc.Upload(context.Background(), "u1", "", "attention_is_all-you_need.pdf", []byte("%PDF-"))
	require.NoError(t, err)

	require.Equal(t, "attention is all you need", paper.Title, "title falls back to the cleaned filename")
	require.Equal(t, "extracted paper text", paper.ExtractedText)
	require.Equal(t, model.StringList{"transformers", "attention"}, paper.Keywords)
	require.Len(t, fx.storage.saved, 1)
	require.Equal(t, "https://files.test/"+paper.StorageKey, paper.FileURL)
}

func TestUpload_ExtractionFailure(t *testing.T) {
	fx := newPaperFixture()
	fx.extractor.err = errors.New("encrypted pdf")

	_, err := fx.svc.Upload(context.Background(), "u1", "", "x.pdf", []byte("%PDF-"))
	require.ErrorIs(t, err, apperror.ErrValidation)
	require.Empty(t, fx.storage.saved, "nothing is stored when extraction fails")
}

func TestUpload_KeywordFailureIsTolerated(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("u1", "alice@example.com")
	fx.ai.keywordsErr = errors.New("model unavailable")

	paper, err := fx.svc.Upload(context.Background(), "u1", "My Title", "x.pdf", []byte("%PDF-"))
	require.NoError(t, err)
	require.Equal(t, "My Title", paper.Title)
	require.Empty(t, paper.Keywords)
}

// ---- access control ----

func TestGet_AccessControl(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addUser("collab", "collab@example.com")
	fx.addPaper("p1", "owner")
	require.NoError(t, fx.paperRepo.AddCollaborator("p1", "collab", time.Now()))

	_, err := fx.svc.Get("p1", "owner")
	require.NoError(t, err)

	_, err = fx.svc.Get("p1", "collab")
	require.NoError(t, err)

	_, err = fx.svc.Get("p1", "stranger")
	require.ErrorIs(t, err, apperror.ErrForbidden)

	_, err = fx.svc.Get("missing", "owner")
	require.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestDelete_OwnerOnly(t *testing.T) {
	fx := newPaperFixture()
	fx.addPaper("p1", "owner")
	fx.paperRepo.papers["p1"].StorageKey = "papers/p1.pdf"

	err := fx.svc.Delete("p1", "someone-else")
	require.ErrorIs(t, err, apperror.ErrForbidden)

	require.NoError(t, fx.svc.Delete("p1", "owner"))
	require.Equal(t, []string{"papers/p1.pdf"}, fx.storage.deleted)
	require.Empty(t, fx.paperRepo.papers)
}

// ---- collaborators and notes ----

func TestAddCollaborator(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addUser("collab", "collab@example.com")
	fx.addPaper("p1", "owner")

	_, err := fx.svc.AddCollaborator("p1", "collab", "owner@example.com")
	require.ErrorIs(t, err, apperror.ErrForbidden, "only the owner can share")

	_, err = fx.svc.AddCollaborator("p1", "owner", "ghost@example.com")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	_, err = fx.svc.AddCollaborator("p1", "owner", "Collab@Example.com")
	require.NoError(t, err, "collaborator email is normalized")

	_, err = fx.svc.AddCollaborator("p1", "owner", "collab@example.com")
	require.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAddNote(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	notes, err := fx.svc.AddNote("p1", "owner", "first note")
	require.NoError(t, err)
	require.Len(t, notes, 1)

	notes, err = fx.svc.AddNote("p1", "owner", "second note")
	require.NoError(t, err)
	require.Len(t, notes, 2, "the full note list is returned")

	_, err = fx.svc.AddNote("p1", "stranger", "nope")
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

// ---- summary ----

func TestGenerateSummary_CreateThenRegenerate(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	summary, err := fx.svc.GenerateSummary(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.NotEmpty(t, summary.ID)
	require.Equal(t, "• abstract at basic", summary.Abstract.Basic)
	require.Equal(t, "• methods at technical", summary.Methods.Technical)
	require.Empty(t, summary.Introduction.Basic, "absent sections stay empty")
	require.Equal(t, model.StringList{"finding one", "finding two"}, summary.KeyFindings)

	// Attach slides, then regenerate: identity and slides survive.
	stored := fx.summaries.summaries["p1"]
	stored.GeneratedSlides = model.SlideOutlineList{{Title: "Kept"}}

	regenerated, err := fx.svc.GenerateSummary(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Equal(t, summary.ID, regenerated.ID)
	require.Equal(t, summary.CreatedAt, regenerated.CreatedAt)
	require.Equal(t, model.SlideOutlineList{{Title: "Kept"}}, regenerated.GeneratedSlides)
}

// ---- ideas ----

func TestGenerateIdeas_ReplacesExistingSet(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	first, err := fx.svc.GenerateIdeas(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Len(t, first, 5)

	// Defaults are applied when the model omits ratings.
	require.Equal(t, model.RatingMedium, first[0].Tags.Novelty)
	require.Equal(t, model.RatingMedium, first[0].Tags.Feasibility)
	require.Equal(t, model.RatingHigh, first[0].Tags.AIRelevance)

	second, err := fx.svc.GenerateIdeas(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Len(t, second, 5)

	stored, err := fx.ideas.ByPaperID("p1")
	require.NoError(t, err)
	require.Len(t, stored, 5, "regeneration replaces rather than appends")
}

func TestGenerateMoreIdeas_Appends(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	_, err := fx.svc.GenerateIdeas(context.Background(), "p1", "owner")
	require.NoError(t, err)

	more, err := fx.svc.GenerateMoreIdeas(context.Background(), "p1", "owner", 0)
	require.NoError(t, err)
	require.Len(t, more, 3, "count defaults to 3")

	stored, err := fx.ideas.ByPaperID("p1")
	require.NoError(t, err)
	require.Len(t, stored, 8)
}

// ---- stored artifacts ----

func TestGenerateKnowledgeGraph_StoredOnPaper(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	graph, err := fx.svc.GenerateKnowledgeGraph(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.False(t, graph.IsEmpty())
	require.False(t, fx.paperRepo.papers["p1"].KnowledgeGraph.IsEmpty())
}

func TestGenerateQuiz_StoredOnPaper(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	quiz, err := fx.svc.GenerateQuiz(context.Background(), "p1", "owner", 5)
	require.NoError(t, err)
	require.Len(t, quiz, 1)
	require.Len(t, fx.paperRepo.papers["p1"].Quiz, 1)
}

func TestGenerateSlides_PersistedOnSummaryWhenPresent(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	// Without a summary record the slides are only returned.
	slides, err := fx.svc.GenerateSlides(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Len(t, slides, 1)
	require.Empty(t, fx.summaries.summaries)

	_, err = fx.svc.GenerateSummary(context.Background(), "p1", "owner")
	require.NoError(t, err)

	_, err = fx.svc.GenerateSlides(context.Background(), "p1", "owner")
	require.NoError(t, err)
	require.Len(t, fx.summaries.summaries["p1"].GeneratedSlides, 1)
}

// ---- chat ----

func TestAskQuestion_PersistsMessage(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	message, err := fx.svc.AskQuestion(context.Background(), "p1", "owner", "What is attention?")
	require.NoError(t, err)
	require.Equal(t, "answer to: What is attention?", message.Answer)
	require.NotNil(t, message.PaperID)
	require.Equal(t, "p1", *message.PaperID)

	history, err := fx.chats.ByPaperID("p1")
	require.NoError(t, err)
	require.Len(t, history, 1)
}

func TestDeleteChat(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	m1, err := fx.svc.AskQuestion(context.Background(), "p1", "owner", "q1")
	require.NoError(t, err)
	_, err = fx.svc.AskQuestion(context.Background(), "p1", "owner", "q2")
	require.NoError(t, err)

	remaining, err := fx.svc.DeleteChat("p1", "owner", m1.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)

	_, err = fx.svc.DeleteChat("p1", "owner", "no-such-chat")
	require.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, fx.svc.DeleteAllChats("p1", "owner"))
	history, err := fx.chats.ByPaperID("p1")
	require.NoError(t, err)
	require.Empty(t, history)
}

// ---- quiz attempts ----

func TestQuizAttempts(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")

	quiz := model.QuizList{{Question: "What?", CorrectAnswer: 0}}
	attempt, err := fx.svc.SaveQuizAttempt("p1", "owner", quiz, []int{0}, 1, 1)
	require.NoError(t, err)
	require.Equal(t, 1, attempt.Score)

	attempts, err := fx.svc.QuizAttempts("p1", "owner")
	require.NoError(t, err)
	require.Len(t, attempts, 1)

	_, err = fx.svc.QuizAttempts("p1", "stranger")
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

// ---- compare ----

func TestCompare(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addPaper("p1", "owner")
	fx.addPaper("p2", "owner")
	fx.addPaper("p3", "someone-else")

	result, err := fx.svc.Compare(context.Background(), "owner", "p1", "p2")
	require.NoError(t, err)
	require.Equal(t, "p1", result.Paper1.ID)
	require.Equal(t, "p2", result.Paper2.ID)
	require.JSONEq(t, `{"similarities":["both study attention"]}`, string(result.Comparison))

	_, err = fx.svc.Compare(context.Background(), "owner", "p1", "p3")
	require.ErrorIs(t, err, apperror.ErrForbidden)
}

// ---- dashboard ----

func TestDashboardStats(t *testing.T) {
	fx := newPaperFixture()
	fx.addUser("owner", "owner@example.com")
	fx.addUser("collab", "collab@example.com")
	fx.addPaper("p1", "owner")
	fx.addPaper("p2", "owner")
	fx.addPaper("other", "someone-else")

	_, err := fx.svc.GenerateSummary(context.Background(), "p1", "owner")
	require.NoError(t, err)
	_, err = fx.svc.GenerateIdeas(context.Background(), "p1", "owner")
	require.NoError(t, err)
	_, err = fx.svc.GenerateKnowledgeGraph(context.Background(), "p1", "owner")
	require.NoError(t, err)
	_, err = fx.svc.AddNote("p1", "owner", "note")
	require.NoError(t, err)
	require.NoError(t, fx.paperRepo.AddCollaborator("p2", "collab", time.Now()))

	stats, err := fx.svc.DashboardStats("owner")
	require.NoError(t, err)

	require.Equal(t, 2, stats.TotalPapers, "only owned papers are counted")
	require.Equal(t, 1, stats.SummarizedPapers)
	require.Equal(t, 1, stats.PapersWithIdeas)
	require.Equal(t, 1, stats.PapersWithGraphs)
	require.Equal(t, 0, stats.PapersWithQuiz)
	require.Equal(t, 5, stats.TotalIdeas)
	require.Equal(t, 1, stats.TotalNotes)
	require.Equal(t, 1, stats.Collaborations)
	require.Len(t, stats.RecentPapers, 2)
	require.NotEmpty(t, stats.UploadsByMonth)
}
