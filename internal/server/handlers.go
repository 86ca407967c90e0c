package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/job-matcher/internal/filtering"
	"github.com/job-matcher/internal/match"
	"github.com/job-matcher/internal/resume"
	"github.com/job-matcher/internal/theirstack"
	"go.uber.org/zap"
)

type searchRequest struct {
	Title            string   `json:"title"`
	Location         string   `json:"location"`
	Company          string   `json:"company"`
	Remote           bool     `json:"remote"`
	PostedWithinDays int      `json:"posted_within_days"`
	DesiredLocations []string `json:"desired_locations"`
	Limit            int      `json:"limit"`
}

type matchEntry struct {
	JobID          string         `json:"job_id"`
	Title          string         `json:"title"`
	Company        string         `json:"company"`
	Location       string         `json:"location"`
	RemoteType     string         `json:"remote_type,omitempty"`
	ApplyURL       string         `json:"apply_url,omitempty"`
	Score          int            `json:"score"`
	Factors        []match.Factor `json:"factors"`
	MatchingSkills []string       `json:"matching_skills"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleCreateSession(c *gin.Context) {
	session := s.sessions.Create()

	s.logger.Info("session created", zap.String("session_id", session.ID))

	c.JSON(http.StatusCreated, gin.H{"session_id": session.ID})
}

func (s *Server) handleDeleteSession(c *gin.Context) {
	s.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// handleUploadResume accepts a multipart resume file, extracts its text
// and asks the LLM for a structured profile.
func (s *Server) handleUploadResume(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	upload, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "resume file is required"})
		return
	}

	// The text extractors work on paths, so stage the upload in a
	// temp file with its original extension.
	tmpDir, err := os.MkdirTemp("", "resume-upload-")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer os.RemoveAll(tmpDir)

	staged := filepath.Join(tmpDir, filepath.Base(upload.Filename))
	if err := c.SaveUploadedFile(upload, staged); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	text, err := resume.ExtractText(staged)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	extraction, err := s.extractor.Extract(c.Request.Context(), text)
	if err != nil {
		s.logger.Error("resume extraction failed",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("analyzing resume: %s", err)})
		return
	}

	if err := s.sessions.Update(session.ID, func(session *Session) {
		session.Extraction = extraction
		session.Profile = extraction.CandidateProfile()
	}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("resume analyzed",
		zap.String("session_id", session.ID),
		zap.Int("technical_skills", len(extraction.TechnicalSkills)),
		zap.Float64("years_experience", extraction.YearsExperience),
	)

	c.JSON(http.StatusOK, extraction)
}

// handleSearch queries the job source with the user's preferences,
// enriched with the skills and seniority extracted from the resume.
func (s *Server) handleSearch(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if session.Extraction == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "upload a resume before searching"})
		return
	}

	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Company) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either a job title or a company is required"})
		return
	}

	params := &theirstack.SearchParams{
		Title:            req.Title,
		Location:         req.Location,
		Company:          req.Company,
		Remote:           req.Remote,
		PostedWithinDays: req.PostedWithinDays,
		Skills:           session.Extraction.TechnicalSkills,
		SeniorityLevel:   session.Extraction.SeniorityLevel,
		Limit:            req.Limit,
	}

	jobs, err := s.source.Search(params)
	if err != nil {
		s.logger.Error("job search failed",
			zap.String("session_id", session.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": fmt.Sprintf("searching jobs: %s", err)})
		return
	}

	if err := s.sessions.Update(session.ID, func(session *Session) {
		session.Jobs = jobs
		session.Profile = session.Extraction.CandidateProfile()
		session.Profile.DesiredLocations = req.DesiredLocations
	}); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	s.logger.Info("job search completed",
		zap.String("session_id", session.ID),
		zap.Int("jobs", jobs.Len()),
	)

	c.JSON(http.StatusOK, gin.H{"jobs_found": jobs.Len()})
}

// handleMatches ranks the fetched listings against the session profile
// and applies the query-parameter filters.
func (s *Server) handleMatches(c *gin.Context) {
	session, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	if session.Profile == nil || session.Jobs == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "upload a resume and run a search first"})
		return
	}

	results, err := match.RankConcurrent(
		c.Request.Context(),
		session.Profile,
		session.Jobs.ToListings(),
		s.matchCfg,
		defaultRankConcurrency,
	)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	minScore := 0
	if raw := c.Query("min_score"); raw != "" {
		minScore, err = strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "min_score must be an integer"})
			return
		}
	}

	pipeline := filtering.New([]filtering.Filter{
		filtering.NewMinScore(minScore),
		filtering.NewLocations(c.QueryArray("location")),
		filtering.NewRemoteTypes(c.QueryArray("remote")),
	}, s.logger.With(zap.String("session_id", session.ID)))

	filtered, err := pipeline.Run(results, session.Jobs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entries := make([]matchEntry, 0, len(filtered))
	for _, result := range filtered {
		job := session.Jobs.FindByID(result.JobID)
		if job == nil {
			continue
		}

		entries = append(entries, matchEntry{
			JobID:          result.JobID,
			Title:          job.Title,
			Company:        job.Company,
			Location:       job.Location,
			RemoteType:     job.RemoteType,
			ApplyURL:       job.ApplyURL,
			Score:          result.Score,
			Factors:        result.Factors,
			MatchingSkills: match.MatchedSkills(session.Profile, job.ToListing(), s.matchCfg),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total":   len(entries),
		"matches": entries,
	})
}
