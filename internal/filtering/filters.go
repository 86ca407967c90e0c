package filtering

import (
	"strconv"
	"strings"

	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/theirstack"
)

type minScoreFilter struct {
	min      int
	disabled bool
	reason   string
}

// NewMinScore creates a filter that drops results below the threshold.
// A non-positive threshold disables the filter.
func NewMinScore(min int) Filter {
	f := &minScoreFilter{min: min}
	if min <= 0 {
		f.Disable("no minimum score configured")
	}
	return f
}

func (f *minScoreFilter) Name() string { return "min_score" }

func (f *minScoreFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *minScoreFilter) IsEnabled() bool { return !f.disabled }

func (f *minScoreFilter) Apply(results []*match.MatchResult, _ *theirstack.Jobs) ([]*match.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*match.MatchResult, 0, initial)
	for _, result := range results {
		if result.Score >= f.min {
			kept = append(kept, result)
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *minScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"min_score": strconv.Itoa(f.min)},
	}
}

type locationsFilter struct {
	allowed  []string
	disabled bool
	reason   string
}

// NewLocations creates a filter that keeps only results whose job is in
// one of the allowed locations. An empty list disables the filter.
func NewLocations(allowed []string) Filter {
	f := &locationsFilter{}
	for _, location := range allowed {
		if location = strings.TrimSpace(location); location != "" {
			f.allowed = append(f.allowed, location)
		}
	}
	if len(f.allowed) == 0 {
		f.Disable("no locations configured")
	}
	return f
}

func (f *locationsFilter) Name() string { return "locations" }

func (f *locationsFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *locationsFilter) IsEnabled() bool { return !f.disabled }

func (f *locationsFilter) Apply(results []*match.MatchResult, jobs *theirstack.Jobs) ([]*match.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*match.MatchResult, 0, initial)
	for _, result := range results {
		job := jobs.FindByID(result.JobID)
		if job == nil {
			continue
		}
		for _, location := range f.allowed {
			if strings.EqualFold(strings.TrimSpace(job.Location), location) {
				kept = append(kept, result)
				break
			}
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *locationsFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"locations": strings.Join(f.allowed, ",")},
	}
}

type remoteTypesFilter struct {
	allowed  []string
	disabled bool
	reason   string
}

// NewRemoteTypes creates a filter that keeps only results whose job has
// one of the allowed remote types. An empty list disables the filter.
func NewRemoteTypes(allowed []string) Filter {
	f := &remoteTypesFilter{}
	for _, remoteType := range allowed {
		if remoteType = strings.TrimSpace(remoteType); remoteType != "" {
			f.allowed = append(f.allowed, remoteType)
		}
	}
	if len(f.allowed) == 0 {
		f.Disable("no remote types configured")
	}
	return f
}

func (f *remoteTypesFilter) Name() string { return "remote_types" }

func (f *remoteTypesFilter) Disable(reason string) {
	f.disabled = true
	f.reason = reason
}

func (f *remoteTypesFilter) IsEnabled() bool { return !f.disabled }

func (f *remoteTypesFilter) Apply(results []*match.MatchResult, jobs *theirstack.Jobs) ([]*match.MatchResult, Step, error) {
	initial := len(results)

	kept := make([]*match.MatchResult, 0, initial)
	for _, result := range results {
		job := jobs.FindByID(result.JobID)
		if job == nil {
			continue
		}
		for _, remoteType := range f.allowed {
			if strings.EqualFold(strings.TrimSpace(job.RemoteType), remoteType) {
				kept = append(kept, result)
				break
			}
		}
	}

	return kept, Step{Initial: initial, Dropped: initial - len(kept), Left: len(kept)}, nil
}

func (f *remoteTypesFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"remote_types": strings.Join(f.allowed, ",")},
	}
}
