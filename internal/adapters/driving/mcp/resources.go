package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/storesync-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for storesync resources.
	uriScheme = "storesync://"

	// historyScanLimit bounds the journal read behind the history template.
	historyScanLimit = 100
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stores",
		Name:        "stores",
		Description: "Store domains the form accepts",
		MIMEType:    "application/json",
	}, s.handleStoresResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Backend, API version and display configuration",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "history/{kind}",
		Name:        "history-by-kind",
		Description: "Recorded submissions of one kind, fetch or sync",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// handleStoresResource returns the store allow-list.
func (s *Server) handleStoresResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	stores := s.ports.Settings.AllowedStores()
	if stores == nil {
		stores = domain.StoreList{}
	}
	return jsonResource(req.Params.URI, stores)
}

// handleSettingsResource returns the non-secret configuration.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	type settingsInfo struct {
		BackendURL        string   `json:"backend_url"`
		APIVersions       []string `json:"api_versions"`
		DefaultAPIVersion string   `json:"default_api_version"`
		DateLayout        string   `json:"date_layout"`
		Timezone          string   `json:"timezone,omitempty"`
		JournalEnabled    bool     `json:"journal_enabled"`
	}

	return jsonResource(req.Params.URI, settingsInfo{
		BackendURL:        settings.Backend.URL,
		APIVersions:       settings.APIVersions,
		DefaultAPIVersion: settings.DefaultAPIVersion,
		DateLayout:        settings.Display.DateLayout,
		Timezone:          settings.Display.Timezone,
		JournalEnabled:    settings.JournalEnabled,
	})
}

// handleHistoryResource returns recent journal entries of one kind.
func (s *Server) handleHistoryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Journal == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	kind := extractHistoryKind(req.Params.URI)
	if !kind.IsValid() {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Journal.Recent(ctx, historyScanLimit)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}

	entries := make([]HistoryEntryOutput, 0, len(records))
	for i := range records {
		if records[i].Kind == kind {
			entries = append(entries, newHistoryEntry(records[i]))
		}
	}
	return jsonResource(req.Params.URI, entries)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractHistoryKind extracts the kind from a URI like storesync://history/{kind}.
func extractHistoryKind(uri string) domain.OperationKind {
	const prefix = uriScheme + "history/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return domain.OperationKind(strings.ToLower(strings.TrimPrefix(uri, prefix)))
}
