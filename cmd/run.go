package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/job-matcher/internal/filtering"
	"github.com/job-matcher/internal/logger"
	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/resume"
	"github.com/job-matcher/internal/theirstack"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	PromptShowMatches     = "Show matches"
	PromptReportByCompany = "Report by company"
	PromptJobsToFile      = "Dump jobs to file"
	PromptExit            = "Exit"

	defaultConcurrency = 8
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "What next?",
	Items: []string{PromptShowMatches, PromptReportByCompany, PromptJobsToFile, PromptExit},
}

// matchReport is the printable form of a ranked listing.
type matchReport struct {
	JobID          string         `json:"job_id"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	RemoteType     string         `json:"remote_type,omitempty"`
	URL            string         `json:"url,omitempty"`
	Score          int            `json:"score"`
	Factors        []match.Factor `json:"factors"`
	MatchingSkills []string       `json:"matching_skills"`
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Analyze a resume, search job listings and rank them by fit",
	Run: func(cmd *cobra.Command, _ []string) {
		run(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolP("no-prompt", "y", false, "print the ranked matches and exit without an interactive prompt")
	runCmd.Flags().IntP("min-score", "m", 0, "drop matches below this score. Default is unset.")

	viper.BindPFlag("results.min-score", runCmd.Flags().Lookup("min-score"))
}

// run is the main command for the cli.
func run(cmd *cobra.Command) {
	ctx := context.Background()

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	logger.Info("starting the job-matcher", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		logger.Fatal("config is required")
	}

	if config.Resume == "" {
		logger.Fatal("a resume file is required under the 'resume' key")
	}

	if config.Search == nil || (config.Search.Title == "" && config.Search.Company == "") {
		logger.Fatal("either search.title or search.company is required")
	}

	source, err := buildJobSource(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the theirstack client", zap.Error(err))
	}

	extractor, err := buildExtractor(ctx, config, logger)
	if err != nil {
		logger.Fatal("building the resume extractor", zap.Error(err))
	}

	text, err := resume.ExtractText(config.Resume)
	if err != nil {
		logger.Fatal("reading the resume", zap.Error(err))
	}

	logger.Info("analyzing the resume",
		zap.String("file", config.Resume),
		zap.Int("characters", len(text)),
	)

	extraction, err := extractor.Extract(ctx, text)
	if err != nil {
		logger.Fatal("extracting the candidate profile", zap.Error(err))
	}

	logger.Info("resume analyzed",
		zap.Int("technical_skills", len(extraction.TechnicalSkills)),
		zap.Float64("years_experience", extraction.YearsExperience),
		zap.String("seniority", extraction.SeniorityLevel),
	)

	// Search terms the user did not pin down come from the resume.
	if len(config.Search.Skills) == 0 {
		config.Search.Skills = extraction.TechnicalSkills
	}
	if config.Search.SeniorityLevel == "" {
		config.Search.SeniorityLevel = extraction.SeniorityLevel
	}

	logger.Info("starting the search", zap.String("title", config.Search.Title))

	jobs, err := source.Search(config.Search)
	if err != nil {
		logger.Fatal("searching job listings", zap.Error(err))
	}

	logger.Info("getting job listings", zap.Int("count", jobs.Len()))

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no job listings found"))
		return
	}

	profile := extraction.CandidateProfile()
	profile.DesiredLocations = config.Preferences.DesiredLocations

	concurrency := config.Results.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	results, err := match.RankConcurrent(ctx, profile, jobs.ToListings(), config.Match, concurrency)
	if err != nil {
		logger.Fatal("ranking job listings", zap.Error(err))
	}

	filters := filtering.New([]filtering.Filter{
		filtering.NewMinScore(viper.GetInt("results.min-score")),
		filtering.NewLocations(config.Results.Locations),
		filtering.NewRemoteTypes(config.Results.RemoteTypes),
	}, logger)

	for _, status := range filters.Describe() {
		logger.Debug("filter configured",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.Any("details", status.Details),
		)
	}

	filtered, err := filters.Run(results, jobs)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	if len(filtered) == 0 {
		logger.Info("exiting", zap.String("reason", "no matches left after filters"))
		return
	}

	kept, reports := collectReports(profile, config.Match, jobs, filtered)

	logger.Info("ranked matches", zap.Int("count", len(reports)))

	if strings.EqualFold(cmd.Flag("no-prompt").Value.String(), "true") {
		pretty, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Println(string(pretty))
		return
	}

	for {
		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(action, logger, kept, reports); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

func handleAction(action string, logger *zap.Logger, jobs *theirstack.Jobs, reports []*matchReport) error {
	switch action {
	case PromptShowMatches:
		pretty, _ := json.MarshalIndent(reports, "", "  ")
		fmt.Println(string(pretty))
		return nil
	case PromptReportByCompany:
		pretty, _ := json.MarshalIndent(jobs.ReportByCompany(), "", "  ")
		logger.Info(string(pretty), zap.Int("jobs count", jobs.Len()))
		return nil
	case PromptJobsToFile:
		filename, err := jobs.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

// collectReports resolves the surviving results back to their listings,
// keeping the ranked order.
func collectReports(profile *match.CandidateProfile, cfg *match.Config, jobs *theirstack.Jobs, results []*match.MatchResult) (*theirstack.Jobs, []*matchReport) {
	kept := &theirstack.Jobs{Items: make([]*theirstack.Job, 0, len(results))}
	reports := make([]*matchReport, 0, len(results))

	for _, result := range results {
		job := jobs.FindByID(result.JobID)
		if job == nil {
			continue
		}

		kept.Items = append(kept.Items, job)
		reports = append(reports, &matchReport{
			JobID:          result.JobID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			RemoteType:     job.RemoteType,
			URL:            job.URL,
			Score:          result.Score,
			Factors:        result.Factors,
			MatchingSkills: match.MatchedSkills(profile, job.ToListing(), cfg),
		})
	}

	return kept, reports
}
