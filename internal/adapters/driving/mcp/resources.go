package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for whereabouts resources.
	uriScheme = "whereabouts://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "slots",
		Name:        "slots",
		Description: "Latest value and pipeline state of every dashboard slot",
		MIMEType:    "application/json",
	}, s.handleSlotsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "slots/{slot}",
		Name:        "slot",
		Description: "Latest text of a single dashboard slot",
		MIMEType:    "text/plain",
	}, s.handleSlotResource)

	if s.ports.Settings != nil {
		s.server.AddResource(&mcp.Resource{
			URI:         uriScheme + "settings",
			Name:        "settings",
			Description: "Effective configuration values",
			MIMEType:    "application/json",
		}, s.handleSettingsResource)
	}
}

// handleSlotsResource returns every slot as JSON.
func (s *Server) handleSlotsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(s.readings(nil), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling slots: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleSlotResource returns the text of one slot.
func (s *Server) handleSlotResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	slot := extractSlot(req.Params.URI)
	if slot == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	value, ok := s.ports.Snapshot.State().Slots[slot]
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     value.Text,
		}},
	}, nil
}

// handleSettingsResource returns the effective settings as JSON.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	data, err := json.MarshalIndent(map[string]any{
		"location.accuracy":                string(settings.Location.Accuracy),
		"location.max_updates":             settings.Location.MaxUpdates,
		"location.interval_ms":             settings.Location.Interval.Milliseconds(),
		"geocoding.provider":               string(settings.Geocoding.Provider),
		"geocoding.max_results":            settings.Geocoding.MaxResults,
		"geocoding.base_url":               settings.Geocoding.BaseURL,
		"motion.poll_interval_ms":          settings.Motion.PollInterval.Milliseconds(),
		"simulation.latitude":              settings.Simulation.Latitude,
		"simulation.longitude":             settings.Simulation.Longitude,
		"simulation.location_unavailable":  settings.Simulation.LocationUnavailable,
		"simulation.geocode_failure_every": settings.Simulation.GeocodeFailureEvery,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling settings: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSlot extracts the slot name from a URI like whereabouts://slots/{slot}.
func extractSlot(uri string) string {
	const prefix = uriScheme + "slots/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	slot := strings.TrimPrefix(uri, prefix)
	if strings.Contains(slot, "/") {
		return ""
	}
	return slot
}
