package match

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Rank scores each listing independently and returns the results sorted
// by descending score. Listings with equal scores keep their input
// order. Nil listings are skipped; they carry nothing to score.
func Rank(candidate *CandidateProfile, jobs []*JobListing, cfg *Config) ([]*MatchResult, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	results := make([]*MatchResult, 0, len(jobs))
	for _, job := range jobs {
		if job == nil {
			continue
		}

		result, err := Score(candidate, job, cfg)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	sortByScore(results)
	return results, nil
}

// RankConcurrent behaves exactly like Rank but scores listings with up
// to limit goroutines. Scoring is side-effect-free, so only the final
// sort needs all results in place.
func RankConcurrent(ctx context.Context, candidate *CandidateProfile, jobs []*JobListing, cfg *Config, limit int) ([]*MatchResult, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if limit <= 1 || len(jobs) < 2 {
		return Rank(candidate, jobs, cfg)
	}

	scored := make([]*MatchResult, len(jobs))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(limit)

	for idx, job := range jobs {
		if job == nil {
			continue
		}

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := Score(candidate, job, cfg)
			if err != nil {
				return err
			}
			scored[idx] = result
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]*MatchResult, 0, len(jobs))
	for _, result := range scored {
		if result != nil {
			results = append(results, result)
		}
	}

	sortByScore(results)
	return results, nil
}

func sortByScore(results []*MatchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
