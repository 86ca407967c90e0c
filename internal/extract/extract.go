package extract

import (
	"context"

	"github.com/job-matcher/internal/match"
)

// Extraction is the structured information pulled out of a resume by the
// language model.
type Extraction struct {
	TechnicalSkills []string `json:"technical_skills"`
	SoftSkills      []string `json:"soft_skills"`
	YearsExperience float64  `json:"years_experience"`
	Education       []string `json:"education"`
	Achievements    []string `json:"achievements"`
	SeniorityLevel  string   `json:"seniority_level"`
	Raw             string   `json:"-"`
}

// Extractor turns raw resume text into a structured extraction. The
// production implementation calls a language model; tests use stubs.
type Extractor interface {
	Extract(ctx context.Context, resumeText string) (*Extraction, error)
}

// Generator produces a textual completion for a prompt. Implemented by
// the provider clients in this package.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

// CandidateProfile converts the extraction into the scorer's input.
// Desired titles and locations come from user preferences, not from the
// resume, so they are attached by the caller.
func (e *Extraction) CandidateProfile() *match.CandidateProfile {
	return &match.CandidateProfile{
		Skills:          append([]string(nil), e.TechnicalSkills...),
		ExperienceYears: e.YearsExperience,
	}
}
