package match

import (
	"fmt"
	"math"
	"strings"
)

// Fixed factor names, in breakdown order.
const (
	FactorSkills     = "skills"
	FactorExperience = "experience"
	FactorLocation   = "location"
)

// Score computes the compatibility between a candidate and a single
// listing. It is a pure function of its inputs: identical inputs always
// produce an identical result, so it is safe to call from any number of
// goroutines.
func Score(candidate *CandidateProfile, job *JobListing, cfg *Config) (*MatchResult, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if candidate == nil {
		return nil, fmt.Errorf("%w: candidate profile is required", ErrInvalidInput)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job listing is required", ErrInvalidInput)
	}
	if len(candidate.Skills) == 0 {
		return nil, fmt.Errorf("%w: candidate skill set is empty", ErrInvalidInput)
	}

	skills := skillFactor(candidate, job, cfg)
	experience := experienceFactor(candidate, job)
	location := locationFactor(candidate, job)

	factors := []Factor{
		{Name: FactorSkills, Contribution: skills * cfg.SkillWeight * 100},
		{Name: FactorExperience, Contribution: experience * cfg.ExperienceWeight * 100},
		{Name: FactorLocation, Contribution: location * cfg.LocationWeight * 100},
	}

	var total float64
	for _, factor := range factors {
		total += factor.Contribution
	}

	return &MatchResult{
		JobID:   job.ID,
		Score:   clampScore(int(math.Round(total))),
		Factors: factors,
	}, nil
}

// skillFactor is the fraction of the listing's required skills the
// candidate covers. A listing without required skills contributes zero.
func skillFactor(candidate *CandidateProfile, job *JobListing, cfg *Config) float64 {
	required := 0
	seen := make(map[string]bool, len(job.RequiredSkills))
	for _, skill := range job.RequiredSkills {
		key := normalizeSkill(skill, cfg.SkillMatchMode)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		required++
	}

	if required == 0 {
		return 0
	}

	matched := len(MatchedSkills(candidate, job, cfg))

	return float64(matched) / math.Max(1, float64(required))
}

// experienceFactor gives full credit when the candidate meets the
// required years and linear partial credit below it.
func experienceFactor(candidate *CandidateProfile, job *JobListing) float64 {
	if candidate.ExperienceYears >= job.MinExperienceYears {
		return 1
	}

	factor := candidate.ExperienceYears / math.Max(1, job.MinExperienceYears)
	return math.Min(1, math.Max(0, factor))
}

// locationFactor is all-or-nothing: an empty desired set means "any".
func locationFactor(candidate *CandidateProfile, job *JobListing) float64 {
	if len(candidate.DesiredLocations) == 0 {
		return 1
	}

	want := normalizeLocation(job.Location)
	for _, desired := range candidate.DesiredLocations {
		if normalizeLocation(desired) == want {
			return 1
		}
	}

	return 0
}

func normalizeSkill(skill, mode string) string {
	if mode == SkillMatchExact {
		return skill
	}
	return strings.ToLower(strings.TrimSpace(skill))
}

func normalizeLocation(location string) string {
	return strings.ToLower(strings.TrimSpace(location))
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
