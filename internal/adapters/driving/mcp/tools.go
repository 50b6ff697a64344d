package mcp

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

// dateLayout is the accepted form of created_at_min and created_at_max.
const dateLayout = "2006-01-02"

// defaultHistoryLimit applies when submission_history gets no limit.
const defaultHistoryLimit = 20

// outcomeInvalid reports a submission refused by local validation.
const outcomeInvalid = "invalid"

// SubmitInput is the input schema for the fetch and sync tools.
type SubmitInput struct {
	APIKey        string `json:"api_key" jsonschema:"Shopify API key, at least 32 characters"`
	Password      string `json:"password" jsonschema:"Shopify API password, at least 32 characters"`
	StoreURL      string `json:"store_url" jsonschema:"store domain, one of the allowed stores"`
	APIVersion    string `json:"api_version,omitempty" jsonschema:"Shopify API version, defaults to the configured default"`
	CreatedAtMin  string `json:"created_at_min,omitempty" jsonschema:"start date as YYYY-MM-DD"`
	CreatedAtMax  string `json:"created_at_max,omitempty" jsonschema:"end date as YYYY-MM-DD"`
	FullFetchSync bool   `json:"full_fetch_sync,omitempty" jsonschema:"ignore the date range and process everything"`
}

// SubmitOutput is the output schema for the fetch and sync tools.
type SubmitOutput struct {
	Kind       string   `json:"kind"`
	Outcome    string   `json:"outcome"`
	StatusCode int      `json:"status_code,omitempty"`
	Message    string   `json:"message,omitempty"`
	Errors     []string `json:"errors,omitempty"`
}

// ActivityInput is the input schema for the list_activity tool.
type ActivityInput struct{}

// ActivityOutput is the output schema for the list_activity tool.
type ActivityOutput struct {
	Records []ActivityRecordOutput `json:"records"`
	Count   int                    `json:"count"`
}

// ActivityRecordOutput represents one row of the activity table.
type ActivityRecordOutput struct {
	ID           int    `json:"id"`
	StoreName    string `json:"store_name"`
	FetchedRange string `json:"fetched_range"`
	LastSync     string `json:"last_sync"`
}

// HistoryInput is the input schema for the submission_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of entries to return (default 20)"`
}

// HistoryOutput is the output schema for the submission_history tool.
type HistoryOutput struct {
	Entries []HistoryEntryOutput `json:"entries"`
	Count   int                  `json:"count"`
}

// HistoryEntryOutput represents a journal record.
type HistoryEntryOutput struct {
	ID            string `json:"id"`
	Kind          string `json:"kind"`
	StoreURL      string `json:"store_url"`
	APIVersion    string `json:"api_version"`
	CreatedAtMin  string `json:"created_at_min,omitempty"`
	CreatedAtMax  string `json:"created_at_max,omitempty"`
	FullFetchSync bool   `json:"full_fetch_sync"`
	Outcome       string `json:"outcome"`
	StatusCode    int    `json:"status_code,omitempty"`
	Message       string `json:"message"`
	StartedAt     string `json:"started_at"`
	DurationMS    int64  `json:"duration_ms"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "fetch_orders",
		Description: "Ask the backend to fetch a store's orders for a date range",
	}, s.handleFetch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "sync_orders",
		Description: "Ask the backend to sync a store's fetched orders",
	}, s.handleSync)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_activity",
		Description: "List fetched order ranges and last sync per store",
	}, s.handleActivity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "submission_history",
		Description: "List recent fetch and sync submissions recorded locally",
	}, s.handleHistory)
}

func (s *Server) handleFetch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	return s.submit(ctx, domain.OperationFetch, input)
}

func (s *Server) handleSync(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SubmitInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	return s.submit(ctx, domain.OperationSync, input)
}

// submit fills the form from input and runs one submission. Validation
// failures come back as output, not as tool errors.
func (s *Server) submit(
	ctx context.Context,
	kind domain.OperationKind,
	input SubmitInput,
) (*mcp.CallToolResult, SubmitOutput, error) {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	output := SubmitOutput{Kind: kind.String()}

	if err := s.fillForm(input); err != nil {
		var rangeErr *domain.DateRangeError
		if errors.As(err, &rangeErr) {
			output.Outcome = outcomeInvalid
			output.Errors = []string{rangeErr.Message}
			return nil, output, nil
		}
		return nil, SubmitOutput{}, err
	}

	result, err := s.ports.Console.Submit(ctx, kind)
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			output.Outcome = outcomeInvalid
			output.Errors = append([]string(nil), verrs...)
			return nil, output, nil
		}
		return nil, SubmitOutput{}, err
	}

	output.Outcome = string(result.Outcome)
	output.StatusCode = result.StatusCode
	if result.Succeeded() {
		output.Message = result.Message
	} else {
		output.Errors = []string{result.Message}
	}
	return nil, output, nil
}

// fillForm replaces the console form with input. Dates are cleared first so
// values from an earlier call cannot refuse the new range.
func (s *Server) fillForm(input SubmitInput) error {
	console := s.ports.Console

	for _, f := range []domain.Field{domain.FieldCreatedAtMin, domain.FieldCreatedAtMax} {
		if err := console.UpdateDate(f, nil); err != nil {
			return err
		}
	}

	version := strings.TrimSpace(input.APIVersion)
	if version == "" {
		if settings, err := s.ports.Settings.Get(); err == nil && settings != nil {
			version = settings.DefaultAPIVersion
		}
	}

	fields := []struct {
		field domain.Field
		value string
	}{
		{domain.FieldAPIKey, input.APIKey},
		{domain.FieldPassword, input.Password},
		{domain.FieldStoreURL, strings.TrimSpace(input.StoreURL)},
		{domain.FieldAPIVersion, version},
		{domain.FieldFullFetchSync, strconv.FormatBool(input.FullFetchSync)},
	}
	for _, f := range fields {
		if f.field == domain.FieldAPIVersion && f.value == "" {
			continue
		}
		if err := console.UpdateField(f.field, f.value); err != nil {
			return err
		}
	}

	dates := []struct {
		field domain.Field
		value string
	}{
		{domain.FieldCreatedAtMin, input.CreatedAtMin},
		{domain.FieldCreatedAtMax, input.CreatedAtMax},
	}
	for _, d := range dates {
		value := strings.TrimSpace(d.value)
		if value == "" {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, value, time.UTC)
		if err != nil {
			return fmt.Errorf("%s: expected YYYY-MM-DD: %w", d.field, domain.ErrInvalidInput)
		}
		if err := console.UpdateDate(d.field, &t); err != nil {
			return err
		}
	}
	return nil
}

// handleActivity loads and returns the activity table.
func (s *Server) handleActivity(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ActivityInput,
) (*mcp.CallToolResult, ActivityOutput, error) {
	if err := s.ports.Console.LoadActivity(ctx); err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("loading activity: %w", err)
	}

	records := s.ports.Console.State().Activity
	output := ActivityOutput{
		Records: make([]ActivityRecordOutput, len(records)),
		Count:   len(records),
	}
	for i, r := range records {
		output.Records[i] = ActivityRecordOutput{
			ID:           r.ID,
			StoreName:    r.StoreName,
			FetchedRange: r.FetchedRange,
			LastSync:     r.LastSyncSummary,
		}
	}
	return nil, output, nil
}

// handleHistory returns recent journal entries.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	if s.ports.Journal == nil {
		return nil, HistoryOutput{}, ErrJournalDisabled
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}

	records, err := s.ports.Journal.Recent(ctx, limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Entries: make([]HistoryEntryOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Entries[i] = newHistoryEntry(records[i])
	}
	return nil, output, nil
}

func newHistoryEntry(r domain.SubmissionRecord) HistoryEntryOutput {
	return HistoryEntryOutput{
		ID:            r.ID,
		Kind:          r.Kind.String(),
		StoreURL:      r.StoreURL,
		APIVersion:    r.APIVersion,
		CreatedAtMin:  formatDate(r.CreatedAtMin),
		CreatedAtMax:  formatDate(r.CreatedAtMax),
		FullFetchSync: r.FullFetchSync,
		Outcome:       string(r.Outcome),
		StatusCode:    r.StatusCode,
		Message:       r.Message,
		StartedAt:     r.StartedAt.UTC().Format(time.RFC3339),
		DurationMS:    r.FinishedAt.Sub(r.StartedAt).Milliseconds(),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(dateLayout)
}
