package theirstack

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

const defaultMaxAgeDays = 90

// SearchParams describes the user-facing search preferences. They are
// translated into the filter names the search endpoint expects.
type SearchParams struct {
	Title            string   `yaml:"title"`
	Location         string   `yaml:"location"`
	Company          string   `yaml:"company"`
	Remote           bool     `yaml:"remote"`
	PostedWithinDays int      `yaml:"posted_within_days" mapstructure:"posted-within-days"`
	Skills           []string `yaml:"skills"`
	SeniorityLevel   string   `yaml:"seniority_level" mapstructure:"seniority-level"`
	Limit            int      `yaml:"limit"`
}

func (c *Client) search(params *SearchParams) (*Jobs, error) {
	if params == nil {
		params = &SearchParams{}
	}

	body := buildSearchBody(params)

	items, err := c.PostItems(body, params.Limit)
	if err != nil {
		return nil, err
	}

	var jobs []*Job
	cfg := &mapstructure.DecoderConfig{
		Metadata:         nil,
		Result:           &jobs,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, _ := mapstructure.NewDecoder(cfg)
	decoder.Decode(items)

	return &Jobs{
		Items: jobs,
	}, nil
}

// buildSearchBody maps the params onto the API's filter names. At least
// one filter is required by the endpoint, so the posted-age filter is
// always present and defaults to 90 days.
func buildSearchBody(params *SearchParams) map[string]any {
	body := map[string]any{}

	days := params.PostedWithinDays
	if days <= 0 {
		days = defaultMaxAgeDays
	}
	body["posted_at_max_age_days"] = days

	if company := strings.TrimSpace(params.Company); company != "" {
		body["company_name_or"] = []string{company}
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		body["job_title_contains_any"] = []string{title}
	}

	if location := strings.TrimSpace(params.Location); location != "" {
		body["location_contains_any"] = []string{location}
	}

	if params.Remote {
		body["remote_contains_any"] = []string{"true"}
	}

	skills := make([]string, 0, len(params.Skills))
	for _, skill := range params.Skills {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	if len(skills) > 0 {
		body["technologies_contains_any"] = skills
	}

	switch level := strings.ToLower(strings.TrimSpace(params.SeniorityLevel)); level {
	case "entry", "mid", "senior":
		body["seniority_contains_any"] = []string{level}
	}

	return body
}
