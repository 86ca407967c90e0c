package theirstack

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/job-matcher/internal/match"
)

type Jobs struct {
	Items []*Job
}

type Job struct {
	ID                 string   `json:"id,omitempty"`
	Title              string   `json:"job_title,omitempty"`
	Company            string   `json:"company,omitempty"`
	Location           string   `json:"location,omitempty"`
	RemoteType         string   `json:"remote_type,omitempty"`
	Description        string   `json:"description,omitempty"`
	RequiredSkills     []string `json:"required_skills,omitempty"`
	MinYearsExperience float64  `json:"min_years_experience,omitempty"`
	MinAnnualSalary    float64  `json:"min_annual_salary_usd,omitempty"`
	MaxAnnualSalary    float64  `json:"max_annual_salary_usd,omitempty"`
	URL                string   `json:"url,omitempty"`
	ApplyURL           string   `json:"final_url,omitempty"`
	PostedAt           string   `json:"date_posted,omitempty"`
}

// ToListing converts the job into the scorer's input. Details the
// scorer does not interpret are passed through unchanged in Source.
func (j *Job) ToListing() *match.JobListing {
	listing := &match.JobListing{
		ID:                 j.ID,
		Title:              j.Title,
		RequiredSkills:     append([]string(nil), j.RequiredSkills...),
		MinExperienceYears: j.MinYearsExperience,
		Location:           j.Location,
		Source: map[string]any{
			"company":     j.Company,
			"remote_type": j.RemoteType,
			"url":         j.URL,
			"apply_url":   j.ApplyURL,
			"posted_at":   j.PostedAt,
		},
	}

	if j.MinAnnualSalary > 0 {
		from := j.MinAnnualSalary
		listing.CompensationFrom = &from
	}
	if j.MaxAnnualSalary > 0 {
		to := j.MaxAnnualSalary
		listing.CompensationTo = &to
	}

	return listing
}

// ToListings converts every job, keeping input order.
func (j *Jobs) ToListings() []*match.JobListing {
	listings := make([]*match.JobListing, 0, len(j.Items))
	for _, job := range j.Items {
		listings = append(listings, job.ToListing())
	}
	return listings
}

func (j *Jobs) Len() int {
	return len(j.Items)
}

func (j *Jobs) FindByID(id string) *Job {
	for _, job := range j.Items {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// ReportByCompany groups a short summary of the jobs by company name.
func (j *Jobs) ReportByCompany() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, job := range j.Items {
		report[job.Company] = append(report[job.Company], map[string]string{
			"title":    job.Title,
			"location": job.Location,
			"remote":   job.RemoteType,
			"salary":   fmt.Sprintf("%.0f-%.0f USD", job.MinAnnualSalary, job.MaxAnnualSalary),
			"url":      job.URL,
		})
	}
	return report
}

func (j *Jobs) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "jobs_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(j); err != nil {
		return "", err
	}
	return file.Name(), nil
}
