package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"google.golang.org/genai"

	"github.com/researchpartner/api/internal/model"
)

// SummaryLevel selects the reading level of a generated summary.
type SummaryLevel string

const (
	LevelBasic     SummaryLevel = "basic"
	LevelMedium    SummaryLevel = "medium"
	LevelTechnical SummaryLevel = "technical"
)

// PaperSections holds the raw section text sliced out of a paper.
type PaperSections struct {
	Abstract     string `json:"abstract"`
	Introduction string `json:"introduction"`
	Methods      string `json:"methods"`
	Results      string `json:"results"`
	Conclusion   string `json:"conclusion"`
}

// IdeaProposal is one generated research idea before persistence.
type IdeaProposal struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Novelty         string   `json:"novelty"`
	Feasibility     string   `json:"feasibility"`
	AIRelevance     string   `json:"aiRelevance"`
	Methodology     string   `json:"methodology"`
	ExpectedOutcome string   `json:"expectedOutcome"`
	Resources       []string `json:"resources"`
}

// SlideOptions controls presentation generation for an idea.
type SlideOptions struct {
	Theme      string
	Layout     string
	SlideCount int
}

func (o SlideOptions) withDefaults() SlideOptions {
	if o.Theme == "" {
		o.Theme = "Professional"
	}
	if o.Layout == "" {
		o.Layout = "Mixed"
	}
	if o.SlideCount <= 0 {
		o.SlideCount = 10
	}
	return o
}

// AIService wraps the Gemini API for all paper analysis and generation.
// Model replies are parsed tolerantly: JSON is cut out of surrounding prose,
// and most operations degrade to a safe fallback instead of failing.
type AIService struct {
	client *genai.Client
	model  string
}

func NewAIService(ctx context.Context, apiKey, model string) (*AIService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &AIService{client: client, model: model}, nil
}

func (s *AIService) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// GenerateSummary summarizes one paper section at the given reading level.
// The reply is requested as bullet points.
func (s *AIService) GenerateSummary(ctx context.Context, text, section string, level SummaryLevel) (string, error) {
	var prompt string
	switch level {
	case LevelBasic:
		prompt = fmt.Sprintf(`Summarize the following %s section from a research paper in simple, easy-to-understand language suitable for high school students.

Format your response ONLY as bullet points. Each line must start with a bullet point symbol (•).
Do NOT write paragraphs or continuous text.

Provide 5-6 bullet points total.
Use everyday language and avoid technical jargon.

%s content:
%s`, section, section, text)
	case LevelTechnical:
		prompt = fmt.Sprintf(`Provide a detailed technical summary of the following %s section from a research paper, maintaining all technical terminology and specifics.

Format your response ONLY as bullet points. Each line must start with a bullet point symbol (•).
Do NOT write paragraphs or continuous text.

Provide 8-12 detailed technical bullet points.
Include specific methodologies and algorithms with parameters, quantitative results with exact metrics, technical configurations, and statistical significance.

%s content:
%s`, section, section, text)
	default:
		prompt = fmt.Sprintf(`Summarize the following %s section from a research paper for undergraduate students. Balance technical accuracy with clarity.

Format your response ONLY as bullet points. Each line must start with a bullet point symbol (•).
Do NOT write paragraphs or continuous text.

Provide 5-8 comprehensive bullet points.
Include important data, methods, or findings in each point.

%s content:
%s`, section, section, text)
	}

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}
	return reply, nil
}

// ExtractSections slices a paper into its standard sections. Falls back to
// treating the start of the reply as the abstract when no JSON is found.
func (s *AIService) ExtractSections(ctx context.Context, fullText string) (PaperSections, error) {
	prompt := fmt.Sprintf(`Analyze the following research paper and extract these sections: Abstract, Introduction, Methods/Methodology, Results, and Conclusion.
Return the response in JSON format with keys: abstract, introduction, methods, results, conclusion.
If a section is not found, return an empty string for that key.

Paper text:
%s`, truncate(fullText, 15000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return PaperSections{}, fmt.Errorf("failed to extract sections: %w", err)
	}

	var sections PaperSections
	if raw := firstJSONObject(reply); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sections); err == nil {
			return sections, nil
		}
		slog.Debug("section extraction JSON parse failed, using raw reply")
	}

	return PaperSections{Abstract: truncate(reply, 500)}, nil
}

// ExtractKeyFindings pulls the paper's main findings as bullet strings.
func (s *AIService) ExtractKeyFindings(ctx context.Context, fullText string) ([]string, error) {
	prompt := fmt.Sprintf(`Analyze this research paper and extract the most important key findings.

Format your response as clear, concise bullet points (8-12 points), each starting with •.

Focus on:
- Main discoveries and results
- Quantitative outcomes (numbers, percentages, metrics)
- Novel contributions
- Practical implications
- Limitations identified

Paper text:
%s`, truncate(fullText, 12000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return []string{"Unable to extract key findings at this time."}, nil
	}

	bullets := parseBullets(reply)
	if len(bullets) == 0 {
		return []string{reply}, nil
	}
	return bullets, nil
}

// GenerateResearchIdeas produces count innovative follow-up research ideas.
func (s *AIService) GenerateResearchIdeas(ctx context.Context, paperText string, count int) ([]IdeaProposal, error) {
	prompt := fmt.Sprintf(`Based on the following research paper, generate %d innovative research ideas that could extend or build upon this work.
For each idea, provide:
1. Title (concise and descriptive)
2. Description (2-3 sentences)
3. Novelty level (Low/Medium/High)
4. Feasibility (Low/Medium/High)
5. AI Relevance (Low/Medium/High)
6. Methodology (brief approach)
7. Expected outcome
8. Required resources (list 2-3 items)

Return as JSON array with these fields: title, description, novelty, feasibility, aiRelevance, methodology, expectedOutcome, resources (array).

Paper excerpt:
%s`, count, truncate(paperText, 10000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate research ideas: %w", err)
	}

	if raw := firstJSONArray(reply); raw != "" {
		var ideas []IdeaProposal
		if err := json.Unmarshal([]byte(raw), &ideas); err == nil && len(ideas) > 0 {
			return ideas, nil
		}
		slog.Debug("idea JSON parse failed, using fallback ideas")
	}

	return fallbackIdeas(count), nil
}

func fallbackIdeas(count int) []IdeaProposal {
	templates := []string{
		"Extending the methodology with deep learning approaches",
		"Applying the findings to real-world applications",
		"Investigating limitations and edge cases",
		"Cross-domain application of the techniques",
		"Optimization and scalability improvements",
	}
	if count > len(templates) {
		count = len(templates)
	}

	ideas := make([]IdeaProposal, 0, count)
	for i := 0; i < count; i++ {
		ideas = append(ideas, IdeaProposal{
			Title:           templates[i],
			Description:     "This research idea builds upon the original paper by exploring new dimensions and applications.",
			Novelty:         model.RatingMedium,
			Feasibility:     model.RatingMedium,
			AIRelevance:     model.RatingHigh,
			Methodology:     "Experimental and analytical approach",
			ExpectedOutcome: "Novel insights and improved performance",
			Resources:       []string{"Computing resources", "Dataset access", "Collaboration"},
		})
	}
	return ideas
}

// AnswerQuestion answers a free-form question about the paper in a
// structured, point-wise format.
func (s *AIService) AnswerQuestion(ctx context.Context, question, paperText string) (string, error) {
	prompt := fmt.Sprintf(`You are an AI assistant helping students understand a research paper.
Answer the following question based on the paper content in a structured, point-wise format.

Formatting rules:
1. Start with a brief 1-sentence overview
2. Then provide detailed points using bullet format (•)
3. Each point should be clear and concise
4. Use 3-7 bullet points depending on complexity
5. Include specific details, numbers, or examples where relevant
6. End with a brief conclusion if needed

Question: %s

Paper content:
%s`, question, truncate(paperText, 12000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to answer question: %w", err)
	}
	return reply, nil
}

var capitalizedTerms = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// ExtractKeywords pulls key technical terms from the paper. Falls back to
// scraping capitalized terms out of the text itself.
func (s *AIService) ExtractKeywords(ctx context.Context, paperText string) ([]string, error) {
	prompt := fmt.Sprintf(`Extract 15-20 key technical terms, concepts, and topics from this research paper.
Return only a JSON array of strings, no additional text.

Paper excerpt:
%s`, truncate(paperText, 8000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return []string{}, nil
	}

	if raw := firstJSONArray(reply); raw != "" {
		var keywords []string
		if err := json.Unmarshal([]byte(raw), &keywords); err == nil {
			return keywords, nil
		}
	}

	seen := map[string]bool{}
	keywords := []string{}
	for _, term := range capitalizedTerms.FindAllString(paperText, -1) {
		if seen[term] {
			continue
		}
		seen[term] = true
		keywords = append(keywords, term)
		if len(keywords) == 15 {
			break
		}
	}
	return keywords, nil
}

// GenerateCitations suggests related papers worth citing.
func (s *AIService) GenerateCitations(ctx context.Context, paperText string) (model.CitationList, error) {
	prompt := fmt.Sprintf(`Based on this research paper, suggest 5 related papers that would be relevant citations.
For each paper, provide:
- title
- authors (array of names)
- abstract (brief, 2-3 sentences)
- year (estimated)
- url (use format: https://scholar.google.com/scholar?q=TITLE)

Return as JSON array.

Paper excerpt:
%s`, truncate(paperText, 8000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return fallbackCitations(), nil
	}

	if raw := firstJSONArray(reply); raw != "" {
		var citations model.CitationList
		if err := json.Unmarshal([]byte(raw), &citations); err == nil && len(citations) > 0 {
			return citations, nil
		}
	}

	return fallbackCitations(), nil
}

func fallbackCitations() model.CitationList {
	return model.CitationList{{
		Title:    "Related Research in the Field",
		Authors:  []string{"Smith, J.", "Doe, A."},
		Abstract: "This paper explores related concepts and methodologies in the field.",
		Year:     2023,
		URL:      "https://scholar.google.com/scholar",
	}}
}

// GenerateSlides produces a slide outline for the paper itself.
func (s *AIService) GenerateSlides(ctx context.Context, paperText string) (model.SlideOutlineList, error) {
	prompt := fmt.Sprintf(`Create presentation slide content for this research paper.
Generate 8-10 slides with:
- Slide title
- 3-5 bullet points per slide

Return as JSON array with format: [{"title": string, "points": [string]}]

Paper excerpt:
%s`, truncate(paperText, 10000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate slides: %w", err)
	}

	if raw := firstJSONArray(reply); raw != "" {
		var slides model.SlideOutlineList
		if err := json.Unmarshal([]byte(raw), &slides); err == nil && len(slides) > 0 {
			return slides, nil
		}
		slog.Debug("slide JSON parse failed, wrapping raw reply")
	}

	return model.SlideOutlineList{{Title: "Overview", Points: parseBullets(reply)}}, nil
}

// GenerateAbstract writes a fresh academic abstract for the paper.
func (s *AIService) GenerateAbstract(ctx context.Context, paperText string) (string, error) {
	prompt := fmt.Sprintf(`Write a clear, concise academic abstract (150-200 words) for this research paper.
Include: background, objective, methods, key results, and conclusion.

Paper content:
%s`, truncate(paperText, 10000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate abstract: %w", err)
	}
	return reply, nil
}

// AnalyzeInsights scores the paper on novelty, method strength, practical
// relevance and limitations.
func (s *AIService) AnalyzeInsights(ctx context.Context, paperText string) (model.InsightReport, error) {
	prompt := fmt.Sprintf(`Analyze this research paper comprehensively and provide insights in the following categories:

Return as JSON with this exact structure:
{
  "novelty": {"score": 1-10, "description": "Brief explanation of novelty", "points": ["Point 1", "Point 2", "Point 3"]},
  "methodStrength": {"score": 1-10, "description": "Assessment of methodology", "points": ["Point 1", "Point 2", "Point 3"]},
  "practicalRelevance": {"score": 1-10, "description": "Real-world applicability", "points": ["Point 1", "Point 2", "Point 3"]},
  "limitations": {"score": 1-10, "description": "Overall limitation assessment", "points": ["Limitation 1", "Limitation 2", "Limitation 3"]},
  "overallScore": 1-10,
  "recommendation": "Brief recommendation for readers"
}

Paper content:
%s`, truncate(paperText, 12000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.InsightReport{}, fmt.Errorf("failed to analyze insights: %w", err)
	}

	if raw := firstJSONObject(reply); raw != "" {
		var report model.InsightReport
		if err := json.Unmarshal([]byte(raw), &report); err == nil {
			return report, nil
		}
		slog.Debug("insight JSON parse failed, using fallback report")
	}

	return fallbackInsights(), nil
}

func fallbackInsights() model.InsightReport {
	return model.InsightReport{
		Novelty: model.InsightDimension{
			Score:       7,
			Description: "The paper presents a moderately novel approach",
			Points: []string{
				"Introduces new methodology or framework",
				"Builds upon existing research",
				"Provides fresh perspective on the problem",
			},
		},
		MethodStrength: model.InsightDimension{
			Score:       7,
			Description: "Solid and well-structured methodology",
			Points: []string{
				"Clear research design",
				"Appropriate methods for the problem",
				"Rigorous experimental setup",
			},
		},
		PracticalRelevance: model.InsightDimension{
			Score:       7,
			Description: "Has practical applications in the field",
			Points: []string{
				"Addresses real-world problems",
				"Potential for industry application",
				"Contributes to practical knowledge",
			},
		},
		Limitations: model.InsightDimension{
			Score:       6,
			Description: "Some limitations present but manageable",
			Points: []string{
				"Limited dataset or sample size",
				"Scope could be broader",
				"Some assumptions may need validation",
			},
		},
		OverallScore:   7,
		Recommendation: "Worth reading for researchers and practitioners in the field. Provides valuable insights and contributions.",
	}
}

// ComparePapers compares two papers across methodology, datasets, results,
// novelty, strengths and weaknesses. The comparison structure is passed
// through to the client as-is.
func (s *AIService) ComparePapers(ctx context.Context, text1, text2, title1, title2 string) (json.RawMessage, error) {
	prompt := fmt.Sprintf(`Compare these two research papers across multiple dimensions:

Paper 1: %s
Paper 2: %s

Return as JSON with this structure:
{
  "methodology": {"paper1": "Description", "paper2": "Description", "comparison": "Key differences"},
  "datasets": {"paper1": "Dataset info", "paper2": "Dataset info", "comparison": "Key differences"},
  "results": {"paper1": "Main results", "paper2": "Main results", "comparison": "Performance comparison"},
  "novelty": {"paper1": "Novelty assessment", "paper2": "Novelty assessment", "comparison": "Which is more novel"},
  "strengths": {"paper1": ["Strength 1", "Strength 2"], "paper2": ["Strength 1", "Strength 2"]},
  "weaknesses": {"paper1": ["Weakness 1", "Weakness 2"], "paper2": ["Weakness 1", "Weakness 2"]},
  "recommendation": "Which paper is better for what purpose"
}

Paper 1 content:
%s

Paper 2 content:
%s`, title1, title2, truncate(text1, 8000), truncate(text2, 8000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to compare papers: %w", err)
	}

	raw := firstJSONObject(reply)
	if raw == "" || !json.Valid([]byte(raw)) {
		return nil, fmt.Errorf("failed to parse comparison")
	}

	return json.RawMessage(raw), nil
}

// GenerateQuiz builds multiple-choice questions from the paper.
func (s *AIService) GenerateQuiz(ctx context.Context, paperText string, questionCount int) (model.QuizList, error) {
	if questionCount <= 0 {
		questionCount = 5
	}

	prompt := fmt.Sprintf(`Generate %d multiple-choice questions (MCQs) based on this research paper.

Return as JSON array with this structure:
[
  {
    "question": "Question text",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctAnswer": 0,
    "explanation": "Why this is correct",
    "difficulty": "Easy/Medium/Hard",
    "topic": "Section/topic covered"
  }
]

Make questions test understanding of key concepts, methodology, results and findings, and implications.

Paper content:
%s`, questionCount, truncate(paperText, 10000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to generate quiz: %w", err)
	}

	if raw := firstJSONArray(reply); raw != "" {
		var quiz model.QuizList
		if err := json.Unmarshal([]byte(raw), &quiz); err == nil && len(quiz) > 0 {
			return quiz, nil
		}
		slog.Debug("quiz JSON parse failed, using fallback question")
	}

	return model.QuizList{{
		Question:      "What is the main contribution of this paper?",
		Options:       []string{"Novel algorithm", "New dataset", "Theoretical framework", "Application"},
		CorrectAnswer: 0,
		Explanation:   "Based on the paper content",
		Difficulty:    "Medium",
		Topic:         "Main Contribution",
	}}, nil
}

// GenerateKnowledgeGraph extracts concepts and their relationships. Falls
// back to a keyword chain when no graph JSON is returned.
func (s *AIService) GenerateKnowledgeGraph(ctx context.Context, paperText string) (model.KnowledgeGraph, error) {
	prompt := fmt.Sprintf(`Extract key concepts and their relationships from this research paper for a knowledge graph.

Return as JSON with this structure:
{
  "nodes": [
    {"id": "concept1", "label": "Concept Name", "group": 1},
    {"id": "concept2", "label": "Another Concept", "group": 2}
  ],
  "links": [
    {"source": "concept1", "target": "concept2", "value": 1}
  ]
}

Groups: 1=Methods, 2=Results, 3=Concepts, 4=Applications, 5=Related

Extract 15-25 key concepts and their relationships.

Paper content:
%s`, truncate(paperText, 10000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.KnowledgeGraph{}, fmt.Errorf("failed to generate knowledge graph: %w", err)
	}

	if raw := firstJSONObject(reply); raw != "" {
		var graph model.KnowledgeGraph
		if err := json.Unmarshal([]byte(raw), &graph); err == nil && len(graph.Nodes) > 0 {
			return graph, nil
		}
		slog.Debug("graph JSON parse failed, building graph from keywords")
	}

	keywords, err := s.ExtractKeywords(ctx, paperText)
	if err != nil {
		return model.KnowledgeGraph{}, err
	}
	if len(keywords) > 15 {
		keywords = keywords[:15]
	}

	graph := model.KnowledgeGraph{}
	for i, kw := range keywords {
		graph.Nodes = append(graph.Nodes, model.GraphNode{
			ID:    fmt.Sprintf("node%d", i),
			Label: kw,
			Group: (i % 5) + 1,
		})
	}
	for i := 0; i+1 < len(graph.Nodes); i++ {
		graph.Links = append(graph.Links, model.GraphLink{
			Source: graph.Nodes[i].ID,
			Target: graph.Nodes[i+1].ID,
			Value:  1,
		})
	}

	return graph, nil
}

// GenerateFullPaper expands a research idea into a complete paper proposal.
func (s *AIService) GenerateFullPaper(ctx context.Context, idea *model.Idea, sourcePaperText string) (model.PaperDraft, error) {
	prompt := fmt.Sprintf(`Based on this research idea and the source paper context, generate a complete research paper proposal.

Research Idea:
Title: %s
Description: %s
Novelty: %s
Feasibility: %s

Source Paper Context (for reference):
%s

Generate a comprehensive research paper proposal. Return as JSON:

{
  "abstract": "150-250 word abstract summarizing the research",
  "introduction": {
    "background": "Background and context (2-3 paragraphs)",
    "problemStatement": "Clear problem statement",
    "objectives": ["Objective 1", "Objective 2", "Objective 3"],
    "significance": "Why this research matters"
  },
  "literatureReview": {
    "summary": "Overview of existing research (3-4 paragraphs)",
    "gaps": ["Gap 1", "Gap 2", "Gap 3"],
    "positioning": "How this research fills the gaps"
  },
  "methodology": {
    "approach": "Overall research approach",
    "methods": ["Method 1 with details", "Method 2 with details", "Method 3 with details"],
    "dataCollection": "Data collection strategy",
    "analysis": "Analysis techniques",
    "timeline": "Estimated timeline"
  },
  "expectedResults": {
    "outcomes": ["Expected outcome 1", "Expected outcome 2", "Expected outcome 3"],
    "metrics": ["Metric 1", "Metric 2", "Metric 3"],
    "validation": "How results will be validated"
  },
  "conclusion": {
    "summary": "Summary of the proposal",
    "contributions": ["Contribution 1", "Contribution 2", "Contribution 3"],
    "futureWork": "Potential future directions"
  },
  "references": ["Reference 1", "Reference 2", "Reference 3", "Reference 4", "Reference 5"]
}

Make it detailed, academic, and publication-ready.`,
		idea.Title, idea.Description, idea.Tags.Novelty, idea.Tags.Feasibility,
		truncate(sourcePaperText, 3000))

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.PaperDraft{}, fmt.Errorf("failed to generate full research paper: %w", err)
	}

	raw := firstJSONObject(reply)
	if raw == "" {
		return model.PaperDraft{}, fmt.Errorf("failed to parse generated paper")
	}

	var draft model.PaperDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return model.PaperDraft{}, fmt.Errorf("failed to parse generated paper: %w", err)
	}

	return draft, nil
}

// ModifyFullPaper rewrites an existing generated paper per the user's
// instructions, returning the complete updated draft.
func (s *AIService) ModifyFullPaper(ctx context.Context, current model.PaperDraft, request string, idea *model.Idea) (model.PaperDraft, error) {
	currentJSON, err := json.Marshal(current)
	if err != nil {
		return model.PaperDraft{}, err
	}

	prompt := fmt.Sprintf(`You are modifying an existing research paper based on user feedback.

Current Paper:
Title: %s

Current Content (JSON):
%s

User's Modification Request:
"%s"

Modify the paper according to the user's request and return the COMPLETE updated paper in the EXACT same JSON format with keys: abstract, introduction, literatureReview, methodology, expectedResults, conclusion, references.

Return ONLY the JSON object, no additional text.`, idea.Title, currentJSON, request)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.PaperDraft{}, fmt.Errorf("failed to modify research paper: %w", err)
	}

	raw := firstJSONObject(reply)
	if raw == "" {
		return model.PaperDraft{}, fmt.Errorf("failed to parse modified paper")
	}

	var draft model.PaperDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return model.PaperDraft{}, fmt.Errorf("failed to parse modified paper: %w", err)
	}

	return draft, nil
}

// GenerateSlideDeck produces a full presentation for a research idea.
func (s *AIService) GenerateSlideDeck(ctx context.Context, idea *model.Idea, sourcePaperText string, opts SlideOptions) (model.SlideDeck, error) {
	opts = opts.withDefaults()

	prompt := fmt.Sprintf(`Generate a %d-slide PowerPoint presentation for this research idea.

Research Idea:
Title: %s
Description: %s
Novelty: %s
Feasibility: %s

Source Paper Context:
%s

Presentation Requirements:
- Theme: %s
- Layout: %s
- Total Slides: %d

Return as JSON array. For each slide include:
- slideNumber: Sequential number
- title: Slide title
- subtitle: Optional subtitle
- content: Main content (bullets, paragraphs, or structured data)
- layout: "title" | "bullets" | "two-column" | "image-text" | "full-text" | "comparison"
- visualSuggestion: What image/diagram would work well
- speakerNotes: What to say when presenting this slide

Cover: introduction, problem statement, objectives, related work, methodology, expected results, timeline, conclusion, and a closing Q&A slide.
Ensure exactly %d slides total.`,
		opts.SlideCount, idea.Title, idea.Description, idea.Tags.Novelty, idea.Tags.Feasibility,
		truncate(sourcePaperText, 2000), opts.Theme, opts.Layout, opts.SlideCount, opts.SlideCount)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.SlideDeck{}, fmt.Errorf("failed to generate presentation slides: %w", err)
	}

	slides, err := parseSlides(reply)
	if err != nil {
		return model.SlideDeck{}, err
	}

	return model.SlideDeck{
		Slides:      slides,
		Theme:       opts.Theme,
		Layout:      opts.Layout,
		SlideCount:  len(slides),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// ModifySlideDeck rewrites an existing presentation per the user's
// instructions, keeping the deck's theme and layout.
func (s *AIService) ModifySlideDeck(ctx context.Context, current model.SlideDeck, request string, idea *model.Idea) (model.SlideDeck, error) {
	currentJSON, err := json.MarshalIndent(current.Slides, "", "  ")
	if err != nil {
		return model.SlideDeck{}, err
	}

	prompt := fmt.Sprintf(`You are modifying an existing PowerPoint presentation based on user feedback.

Current Presentation:
Title: %s
Number of Slides: %d
Theme: %s
Layout: %s

Current Slides:
%s

User's Modification Request:
"%s"

Modify the slides according to the user's request and return the COMPLETE updated presentation as a JSON array.
Maintain the same structure for each slide: slideNumber, title, subtitle, layout, content, visualSuggestion, speakerNotes.

Return ONLY the JSON array, no additional text.`,
		idea.Title, len(current.Slides), current.Theme, current.Layout, currentJSON, request)

	reply, err := s.generate(ctx, prompt)
	if err != nil {
		return model.SlideDeck{}, fmt.Errorf("failed to modify presentation slides: %w", err)
	}

	slides, err := parseSlides(reply)
	if err != nil {
		return model.SlideDeck{}, err
	}

	return model.SlideDeck{
		Slides:      slides,
		Theme:       current.Theme,
		Layout:      current.Layout,
		SlideCount:  len(slides),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func parseSlides(reply string) ([]model.IdeaSlide, error) {
	raw := firstJSONArray(reply)
	if raw == "" {
		return nil, fmt.Errorf("failed to parse slides")
	}

	var slides []model.IdeaSlide
	if err := json.Unmarshal([]byte(raw), &slides); err != nil {
		return nil, fmt.Errorf("failed to parse slides: %w", err)
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("failed to parse slides")
	}

	return slides, nil
}
