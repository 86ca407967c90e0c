package match

// CandidateProfile is the normalized representation of a resume. It is
// built once per matching run and never mutated afterwards.
type CandidateProfile struct {
	Skills           []string `json:"skills"`
	ExperienceYears  float64  `json:"experience_years"`
	DesiredTitles    []string `json:"desired_titles,omitempty"`
	DesiredLocations []string `json:"desired_locations,omitempty"`
	MinCompensation  *float64 `json:"min_compensation,omitempty"`
}

// JobListing is the normalized representation of an open position.
// Source carries opaque metadata from the listing provider and is passed
// through to results unchanged.
type JobListing struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	RequiredSkills     []string       `json:"required_skills"`
	MinExperienceYears float64        `json:"min_experience_years"`
	Location           string         `json:"location"`
	CompensationFrom   *float64       `json:"compensation_from,omitempty"`
	CompensationTo     *float64       `json:"compensation_to,omitempty"`
	Source             map[string]any `json:"source,omitempty"`
}

// Factor is a single named contribution to a match score.
type Factor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
}

// MatchResult explains how well a single listing fits a candidate.
// Factors always appear in the fixed order skills, experience, location
// and sum (up to rounding) to the total score.
type MatchResult struct {
	JobID   string   `json:"job_id"`
	Score   int      `json:"score"`
	Factors []Factor `json:"factors"`
}

// MatchedSkills returns the candidate skills that satisfy the listing's
// required set under the provided config. The order follows the
// listing's required skills.
func MatchedSkills(candidate *CandidateProfile, job *JobListing, cfg *Config) []string {
	if candidate == nil || job == nil {
		return nil
	}

	mode := SkillMatchNormalized
	if cfg != nil && cfg.SkillMatchMode != "" {
		mode = cfg.SkillMatchMode
	}

	have := make(map[string]string, len(candidate.Skills))
	for _, skill := range candidate.Skills {
		have[normalizeSkill(skill, mode)] = skill
	}

	var matched []string
	seen := make(map[string]bool, len(job.RequiredSkills))
	for _, required := range job.RequiredSkills {
		key := normalizeSkill(required, mode)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if original, ok := have[key]; ok {
			matched = append(matched, original)
		}
	}

	return matched
}
