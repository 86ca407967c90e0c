package filtering

import (
	"testing"

	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/theirstack"
	"go.uber.org/zap"
)

func fixtureJobs() *theirstack.Jobs {
	return &theirstack.Jobs{Items: []*theirstack.Job{
		{ID: "j1", Location: "Berlin", RemoteType: "hybrid"},
		{ID: "j2", Location: "New York", RemoteType: "remote"},
		{ID: "j3", Location: "Berlin", RemoteType: "remote"},
	}}
}

func fixtureResults() []*match.MatchResult {
	return []*match.MatchResult{
		{JobID: "j1", Score: 90},
		{JobID: "j2", Score: 60},
		{JobID: "j3", Score: 40},
	}
}

func TestMinScoreFilter(t *testing.T) {
	pipeline := New([]Filter{NewMinScore(50)}, zap.NewNop())

	results, err := pipeline.Run(fixtureResults(), fixtureJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results above threshold, got %d", len(results))
	}
	if results[0].JobID != "j1" || results[1].JobID != "j2" {
		t.Fatalf("expected order preserved, got %v %v", results[0].JobID, results[1].JobID)
	}
}

func TestMinScoreFilterDisabledWithoutThreshold(t *testing.T) {
	filter := NewMinScore(0)
	if filter.IsEnabled() {
		t.Fatalf("expected filter without threshold to be disabled")
	}

	pipeline := New([]Filter{filter}, zap.NewNop())
	results, err := pipeline.Run(fixtureResults(), fixtureJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("disabled filter must not drop results, got %d", len(results))
	}
}

func TestLocationsFilter(t *testing.T) {
	pipeline := New([]Filter{NewLocations([]string{"berlin"})}, zap.NewNop())

	results, err := pipeline.Run(fixtureResults(), fixtureJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 Berlin results, got %d", len(results))
	}
	if results[0].JobID != "j1" || results[1].JobID != "j3" {
		t.Fatalf("unexpected results: %v %v", results[0].JobID, results[1].JobID)
	}
}

func TestRemoteTypesFilter(t *testing.T) {
	pipeline := New([]Filter{NewRemoteTypes([]string{"remote"})}, zap.NewNop())

	results, err := pipeline.Run(fixtureResults(), fixtureJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 remote results, got %d", len(results))
	}
}

func TestPipelineStacksFilters(t *testing.T) {
	pipeline := New([]Filter{
		NewMinScore(50),
		NewLocations([]string{"Berlin"}),
		NewRemoteTypes([]string{"hybrid"}),
	}, zap.NewNop())

	results, err := pipeline.Run(fixtureResults(), fixtureJobs())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 || results[0].JobID != "j1" {
		t.Fatalf("expected only j1 to survive, got %d results", len(results))
	}
}

func TestDescribe(t *testing.T) {
	pipeline := New([]Filter{
		NewMinScore(50),
		NewLocations(nil),
	}, zap.NewNop())

	statuses := pipeline.Describe()
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}

	if !statuses[0].Enabled || statuses[0].Details["min_score"] != "50" {
		t.Fatalf("unexpected min_score status: %+v", statuses[0])
	}

	if statuses[1].Enabled || statuses[1].Reason == "" {
		t.Fatalf("expected disabled locations filter with reason, got %+v", statuses[1])
	}
}
