package domain

import "context"

// GenerationParameters controls a single generation run. Defaults are
// applied once, at request construction, so every component downstream
// reads fully-populated values.
type GenerationParameters struct {
	QuestionCount       int                    `json:"questionCount"`
	Difficulty          Difficulty             `json:"difficulty"`
	DifficultyThreshold int                    `json:"difficultyThreshold"`
	Extra               map[string]interface{} `json:"extra,omitempty"`
}

// ApplyDefaults fills unset fields with their documented defaults.
func (p *GenerationParameters) ApplyDefaults() {
	if p.QuestionCount < 1 {
		p.QuestionCount = 1
	}
	if !p.Difficulty.IsValid() {
		p.Difficulty = DifficultyIntermediate
	}
	if p.DifficultyThreshold <= 0 || p.DifficultyThreshold > 100 {
		p.DifficultyThreshold = DefaultDifficultyThreshold
	}
}

// Validate checks the parameter ranges after defaulting.
func (p *GenerationParameters) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.QuestionCount < 1 {
		errs = append(errs, NewOutOfRangeError("questionCount", p.QuestionCount, 1, 200))
	}
	if !p.Difficulty.IsValid() {
		errs = append(errs, NewInvalidValueError("difficulty", string(p.Difficulty)))
	}
	if p.DifficultyThreshold < 0 || p.DifficultyThreshold > 100 {
		errs = append(errs, NewOutOfRangeError("difficultyThreshold", p.DifficultyThreshold, 0, 100))
	}
	return errs
}

// GenerationRequest is the transient input of one generation run.
type GenerationRequest struct {
	NotesText    string               `json:"notes,omitempty"`
	DocumentText string               `json:"documentText,omitempty"`
	Parameters   GenerationParameters `json:"parameters"`
}

// HasContent reports whether any source material was supplied. Generation
// proceeds on an empty-content warning path when it is false.
func (r *GenerationRequest) HasContent() bool {
	return r.NotesText != "" || r.DocumentText != ""
}

// ContentChunk is a bounded slice of the combined input content. Chunks are
// consumed round-robin across batches, never concatenated back.
type ContentChunk struct {
	Index int
	Text  string
}

// RawModelResponse is an unparsed provider reply.
type RawModelResponse struct {
	ProviderID string
	Text       string
}

// BatchOutcome records the result of one generation batch. Failed batches
// are skipped, not retried; the collected outcomes replace caught-and
// -discarded exceptions as the failure record of a batched run.
type BatchOutcome struct {
	Index     int
	Requested int
	Produced  int
	Err       error
}

// QuizGenerator drives single-call and batched quiz generation.
type QuizGenerator interface {
	Generate(ctx context.Context, content string, chunks []ContentChunk, params GenerationParameters, providerID string) (*QuizDraft, []BatchOutcome, error)
}

// QuizValidator scores a drafted quiz against the requested difficulty.
type QuizValidator interface {
	Validate(ctx context.Context, draft *QuizDraft, params GenerationParameters, providerID string) (*ValidationReport, error)
}
