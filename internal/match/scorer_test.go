package match

import (
	"errors"
	"math"
	"testing"
)

func testCandidate() *CandidateProfile {
	return &CandidateProfile{
		Skills:           []string{"Go", "PostgreSQL", "Docker"},
		ExperienceYears:  5,
		DesiredLocations: []string{"Berlin"},
	}
}

func testJob() *JobListing {
	return &JobListing{
		ID:                 "j1",
		Title:              "Backend Engineer",
		RequiredSkills:     []string{"go", "postgresql", "kubernetes", "terraform"},
		MinExperienceYears: 4,
		Location:           "Berlin",
	}
}

func TestScoreBreakdown(t *testing.T) {
	result, err := Score(testCandidate(), testJob(), DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.JobID != "j1" {
		t.Fatalf("unexpected job id: %s", result.JobID)
	}

	if len(result.Factors) != 3 {
		t.Fatalf("expected 3 factors, got %d", len(result.Factors))
	}

	order := []string{FactorSkills, FactorExperience, FactorLocation}
	for i, name := range order {
		if result.Factors[i].Name != name {
			t.Fatalf("expected factor %d to be %s, got %s", i, name, result.Factors[i].Name)
		}
	}

	// 2 of 4 skills matched, full experience credit, location matched:
	// 0.5*0.6*100 + 1*0.25*100 + 1*0.15*100 = 70.
	if result.Score != 70 {
		t.Fatalf("expected score 70, got %d", result.Score)
	}

	var sum float64
	for _, factor := range result.Factors {
		sum += factor.Contribution
	}
	if math.Abs(sum-float64(result.Score)) > 0.5 {
		t.Fatalf("factors sum %v does not round to score %d", sum, result.Score)
	}
}

func TestScoreDeterminism(t *testing.T) {
	candidate := testCandidate()
	job := testJob()
	cfg := DefaultConfig()

	first, err := Score(candidate, job, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := Score(candidate, job, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Score != second.Score {
		t.Fatalf("scores differ: %d vs %d", first.Score, second.Score)
	}
	for i := range first.Factors {
		if first.Factors[i] != second.Factors[i] {
			t.Fatalf("factor %d differs: %+v vs %+v", i, first.Factors[i], second.Factors[i])
		}
	}
}

func TestScoreRange(t *testing.T) {
	candidates := []*CandidateProfile{
		testCandidate(),
		{Skills: []string{"cobol"}},
		{Skills: []string{"go", "postgresql", "kubernetes", "terraform"}, ExperienceYears: 20},
	}
	jobs := []*JobListing{
		testJob(),
		{ID: "empty", RequiredSkills: nil, MinExperienceYears: 10, Location: "Mars"},
		{ID: "all", RequiredSkills: []string{"go"}},
	}

	for _, candidate := range candidates {
		for _, job := range jobs {
			result, err := Score(candidate, job, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Score < 0 || result.Score > 100 {
				t.Fatalf("score %d out of range for job %s", result.Score, job.ID)
			}
		}
	}
}

func TestScoreMonotonicity(t *testing.T) {
	job := testJob()
	base := testCandidate()

	before, err := Score(base, job, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	richer := testCandidate()
	richer.Skills = append(richer.Skills, "Kubernetes")

	after, err := Score(richer, job, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if after.Score < before.Score {
		t.Fatalf("adding a required skill decreased the score: %d -> %d", before.Score, after.Score)
	}
}

func TestScoreEmptyCandidateSkills(t *testing.T) {
	_, err := Score(&CandidateProfile{}, testJob(), nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoreEmptyRequiredSkills(t *testing.T) {
	job := testJob()
	job.RequiredSkills = nil

	result, err := Score(testCandidate(), job, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Factors[0].Contribution != 0 {
		t.Fatalf("expected zero skill contribution, got %v", result.Factors[0].Contribution)
	}
}

func TestScoreLocationWildcard(t *testing.T) {
	candidate := testCandidate()
	candidate.DesiredLocations = nil

	for _, location := range []string{"Berlin", "Tokyo", "", "Remote"} {
		job := testJob()
		job.Location = location

		result, err := Score(candidate, job, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := DefaultConfig().LocationWeight * 100
		if result.Factors[2].Contribution != want {
			t.Fatalf("expected full location credit for %q, got %v", location, result.Factors[2].Contribution)
		}
	}
}

func TestScorePartialExperienceCredit(t *testing.T) {
	candidate := testCandidate()
	candidate.ExperienceYears = 2

	job := testJob()
	job.MinExperienceYears = 8

	result, err := Score(candidate, job, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := (2.0 / 8.0) * DefaultConfig().ExperienceWeight * 100
	if math.Abs(result.Factors[1].Contribution-want) > 1e-9 {
		t.Fatalf("expected experience contribution %v, got %v", want, result.Factors[1].Contribution)
	}
}

func TestScoreSkillMatchModes(t *testing.T) {
	candidate := &CandidateProfile{Skills: []string{"GO"}}
	job := &JobListing{ID: "j", RequiredSkills: []string{"go"}}

	normalized := DefaultConfig()
	result, err := Score(candidate, job, normalized)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Factors[0].Contribution == 0 {
		t.Fatalf("expected normalized mode to match case-insensitively")
	}

	exact := DefaultConfig()
	exact.SkillMatchMode = SkillMatchExact
	result, err = Score(candidate, job, exact)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Factors[0].Contribution != 0 {
		t.Fatalf("expected exact mode to miss on case difference")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:   "defaults",
			config: DefaultConfig(),
		},
		{
			name:    "sum below one",
			config:  &Config{SkillWeight: 0.5, ExperienceWeight: 0.25, LocationWeight: 0.15},
			wantErr: true,
		},
		{
			name:    "negative weight",
			config:  &Config{SkillWeight: 1.2, ExperienceWeight: -0.2, LocationWeight: 0},
			wantErr: true,
		},
		{
			name:    "unknown match mode",
			config:  &Config{SkillWeight: 0.6, ExperienceWeight: 0.25, LocationWeight: 0.15, SkillMatchMode: "fuzzy"},
			wantErr: true,
		},
		{
			name:   "within tolerance",
			config: &Config{SkillWeight: 0.6, ExperienceWeight: 0.25, LocationWeight: 0.1501},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestMatchedSkills(t *testing.T) {
	matched := MatchedSkills(testCandidate(), testJob(), DefaultConfig())
	if len(matched) != 2 {
		t.Fatalf("expected 2 matched skills, got %v", matched)
	}
	if matched[0] != "Go" || matched[1] != "PostgreSQL" {
		t.Fatalf("unexpected matched skills: %v", matched)
	}
}
