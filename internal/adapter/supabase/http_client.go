package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"timesheet-reporter/internal/domain"
)

// Client implements ports.TablesAPI against the PostgREST data endpoint.
type Client struct {
	http *resty.Client
	log  *slog.Logger
}

// NewClient builds a client for the given project URL and API key. The key
// is sent both as apikey and bearer token, as the endpoint expects.
func NewClient(baseURL, apiKey string, log *slog.Logger) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")+"/rest/v1").
		SetHeader("apikey", apiKey).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Accept", "application/json").
		SetTimeout(30 * time.Second)
	return &Client{http: c, log: log}
}

// get fetches one table with the soft-delete predicate plus any extra
// filter params, decoding the JSON array into out.
func (c *Client) get(ctx context.Context, table string, params map[string]string, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("deleted_at", "is.null")
	for k, v := range params {
		req.SetQueryParam(k, v)
	}
	resp, err := req.Get("/" + table)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrConnection, table, err)
	}
	if resp.IsError() {
		return fmt.Errorf("%w: %s: unexpected status %d: %s",
			domain.ErrQuery, table, resp.StatusCode(), strings.TrimSpace(resp.String()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("%w: %s: decode: %v", domain.ErrQuery, table, err)
	}
	return nil
}

func (c *Client) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var raw []rawCompany
	if err := c.get(ctx, "companies", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Company, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Company{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var raw []rawProject
	if err := c.get(ctx, "projects", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.Project{ID: r.ID, Title: r.Title, CompanyID: r.CompanyID})
	}
	return out, nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var raw []rawUser
	if err := c.get(ctx, "users", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.User{ID: r.ID, FirstName: r.FirstName, LastName: r.LastName})
	}
	return out, nil
}

func (c *Client) ListActivityTypes(ctx context.Context) ([]domain.ActivityType, error) {
	var raw []rawActivityType
	if err := c.get(ctx, "activity_types", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.ActivityType, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.ActivityType{ID: r.ID, Title: r.Title})
	}
	return out, nil
}

// ListTimeEntries fetches entries dated on or after since.
func (c *Client) ListTimeEntries(ctx context.Context, since time.Time) ([]domain.TimeEntry, error) {
	params := map[string]string{
		"entry_date": "gte." + since.Format("2006-01-02"),
		"order":      "entry_date.asc",
	}
	var raw []rawTimeEntry
	if err := c.get(ctx, "time_entries", params, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.TimeEntry, 0, len(raw))
	for _, r := range raw {
		e := domain.TimeEntry{
			ID:             r.ID,
			ProjectID:      r.ProjectID,
			UserID:         r.UserID,
			ActivityTypeID: r.ActivityTypeID,
			EntryDate:      parseDate(r.EntryDate),
			StartTime:      parseTimestamp(r.StartTime),
			EndTime:        parseTimestamp(r.EndTime),
		}
		if r.Duration != nil {
			e.DurationMinutes = *r.Duration
		}
		if r.Description != nil {
			e.Description = *r.Description
		}
		out = append(out, e)
	}
	return out, nil
}

// rawCompany and friends mirror the PostgREST JSON row shapes.
type rawCompany struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type rawProject struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	CompanyID *string `json:"company_id"`
}

type rawUser struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type rawActivityType struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type rawTimeEntry struct {
	ID             string   `json:"id"`
	ProjectID      *string  `json:"project_id"`
	UserID         *string  `json:"user_id"`
	ActivityTypeID *string  `json:"activity_type_id"`
	EntryDate      string   `json:"entry_date"`
	StartTime      *string  `json:"start_time"`
	EndTime        *string  `json:"end_time"`
	Duration       *float64 `json:"duration"`
	Description    *string  `json:"description"`
}

// parseDate accepts a plain date or a timestamp and keeps the date part.
func parseDate(s string) time.Time {
	if len(s) > 10 {
		s = s[:10]
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return d
}

// parseTimestamp accepts RFC3339 or a bare timestamp without zone.
func parseTimestamp(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "15:04:05"} {
		if t, err := time.Parse(layout, *s); err == nil {
			return &t
		}
	}
	return nil
}
