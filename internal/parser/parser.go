// Package parser extracts strictly-typed structures from noisy LLM output.
// Model responses are untrusted text: they arrive wrapped in prose, markdown
// code fences or reasoning tags. The parser locates the outermost JSON
// object, decodes it with encoding/json into a fixed schema and validates
// every field. The text is never evaluated as code.
package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"quiz-forge/internal/domain"
)

// ExtractObject returns the candidate JSON payload between the first opening
// brace and the last closing brace of the text, after stripping reasoning
// tags and code-fence markers.
func ExtractObject(raw string) (string, error) {
	cleaned := strings.TrimSpace(raw)

	if thinkStart := strings.Index(cleaned, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(cleaned, "</think>"); thinkEnd != -1 && thinkEnd > thinkStart {
			cleaned = cleaned[:thinkStart] + cleaned[thinkEnd+len("</think>"):]
			cleaned = strings.TrimSpace(cleaned)
		}
	}

	cleaned = stripCodeFences(cleaned)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return "", domain.NewParseError("no JSON object found in response", nil)
	}

	return cleaned[start : end+1], nil
}

// stripCodeFences removes markdown fence lines (``` and ```json) so brace
// location is not confused by fenced prose around the payload.
func stripCodeFences(s string) string {
	if !strings.Contains(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// flexID accepts a JSON string or number; models are inconsistent about
// which they emit for question IDs.
type flexID string

func (f *flexID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

type questionPayload struct {
	ID            flexID   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	ImageURL      string   `json:"imageUrl"`
}

type quizPayload struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []questionPayload `json:"questions"`
}

// ParseQuizDraft decodes a raw model response into a QuizDraft. Payloads
// that fail schema validation (missing fields, fewer than two options, a
// correct answer absent from the options) are rejected, not coerced.
func ParseQuizDraft(raw string) (*domain.QuizDraft, error) {
	payload, err := ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	var decoded quizPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, domain.NewParseError("malformed JSON payload", err)
	}

	if decoded.Title == "" {
		return nil, domain.NewParseError("missing required field: title", nil)
	}
	if len(decoded.Questions) == 0 {
		return nil, domain.NewParseError("missing required field: questions", nil)
	}

	draft := &domain.QuizDraft{
		Title:       decoded.Title,
		Description: decoded.Description,
		Questions:   make([]domain.Question, 0, len(decoded.Questions)),
	}
	for i, qp := range decoded.Questions {
		question := domain.Question{
			ID:            string(qp.ID),
			QuestionText:  qp.Question,
			Options:       qp.Options,
			CorrectAnswer: qp.CorrectAnswer,
			Explanation:   qp.Explanation,
			ImageURL:      qp.ImageURL,
		}
		if err := question.Validate(); err != nil {
			return nil, domain.NewParseError(
				"question "+strconv.Itoa(i)+" failed schema validation", err)
		}
		draft.Questions = append(draft.Questions, question)
	}

	return draft, nil
}

type evaluationPayload struct {
	QuestionID       flexID   `json:"questionId"`
	Score            int      `json:"score"`
	DifficultyRating string   `json:"difficultyRating"`
	Issues           []string `json:"issues"`
	Suggestions      []string `json:"suggestions"`
}

type reportPayload struct {
	OverallScore        int                 `json:"overallScore"`
	PerQuestion         []evaluationPayload `json:"perQuestion"`
	DifficultyAlignment int                 `json:"difficultyAlignment"`
	OverallFeedback     string              `json:"overallFeedback"`
}

// ParseValidationReport decodes a raw validation response. Scores are
// required to sit in [0,100]; unknown difficulty ratings are rejected.
func ParseValidationReport(raw string) (*domain.ValidationReport, error) {
	payload, err := ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	var decoded reportPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, domain.NewParseError("malformed JSON payload", err)
	}

	if decoded.OverallScore < 0 || decoded.OverallScore > 100 {
		return nil, domain.NewParseError("overallScore out of range [0,100]", nil)
	}
	if decoded.DifficultyAlignment < 0 || decoded.DifficultyAlignment > 100 {
		return nil, domain.NewParseError("difficultyAlignment out of range [0,100]", nil)
	}

	report := &domain.ValidationReport{
		OverallScore:        decoded.OverallScore,
		DifficultyAlignment: decoded.DifficultyAlignment,
		OverallFeedback:     decoded.OverallFeedback,
		PerQuestion:         make([]domain.QuestionEvaluation, 0, len(decoded.PerQuestion)),
	}
	for i, ep := range decoded.PerQuestion {
		rating := domain.DifficultyRating(ep.DifficultyRating)
		switch rating {
		case domain.RatingTooEasy, domain.RatingAppropriate, domain.RatingTooHard:
		default:
			return nil, domain.NewParseError(
				"evaluation "+strconv.Itoa(i)+" has unknown difficultyRating", nil)
		}
		if ep.Score < 0 || ep.Score > 100 {
			return nil, domain.NewParseError(
				"evaluation "+strconv.Itoa(i)+" score out of range [0,100]", nil)
		}
		report.PerQuestion = append(report.PerQuestion, domain.QuestionEvaluation{
			QuestionID:       string(ep.QuestionID),
			Score:            ep.Score,
			DifficultyRating: rating,
			Issues:           ep.Issues,
			Suggestions:      ep.Suggestions,
		})
	}

	return report, nil
}

// ParseConceptList decodes a concept-extraction response: an object with a
// "concepts" array of short key-concept sentences.
func ParseConceptList(raw string) ([]string, error) {
	payload, err := ExtractObject(raw)
	if err != nil {
		return nil, err
	}

	var decoded struct {
		Concepts []string `json:"concepts"`
	}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, domain.NewParseError("malformed JSON payload", err)
	}
	if len(decoded.Concepts) == 0 {
		return nil, domain.NewParseError("missing required field: concepts", nil)
	}

	concepts := make([]string, 0, len(decoded.Concepts))
	for _, c := range decoded.Concepts {
		c = strings.TrimSpace(c)
		if c != "" {
			concepts = append(concepts, c)
		}
	}
	if len(concepts) == 0 {
		return nil, domain.NewParseError("concepts list is empty", nil)
	}
	return concepts, nil
}

