package mcp

import (
	"context"
	"sort"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/whereabouts/internal/adapters/driven/render"
)

// ReadingsInput is the input schema for the current_readings tool.
type ReadingsInput struct {
	Slots []string `json:"slots,omitempty" jsonschema:"slot names to return (default all)"`
}

// ReadingsOutput is the output schema for the current_readings tool.
type ReadingsOutput struct {
	Readings  []Reading `json:"readings"`
	Errors    int       `json:"errors"`
	LastError string    `json:"last_error,omitempty"`
}

// Reading is the latest value of one slot. Timestamps are RFC 3339.
type Reading struct {
	Slot      string `json:"slot"`
	Text      string `json:"text,omitempty"`
	Available bool   `json:"available"`
	State     string `json:"state"`
	Updates   int    `json:"updates"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// DiagnosticsInput is the input schema for the recent_diagnostics tool.
type DiagnosticsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 10)"`
}

// DiagnosticsOutput is the output schema for the recent_diagnostics tool.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticOutput `json:"diagnostics"`
	Count       int                `json:"count"`
}

// DiagnosticOutput is one recorded pipeline failure.
type DiagnosticOutput struct {
	ID             string `json:"id"`
	Pipeline       string `json:"pipeline"`
	SubscriptionID string `json:"subscription_id"`
	Error          string `json:"error"`
	OccurredAt     string `json:"occurred_at"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "current_readings",
		Description: "Latest position, address and activity shown on the dashboard",
	}, s.handleReadings)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recent_diagnostics",
		Description: "Recent pipeline failures, newest first",
	}, s.handleDiagnostics)
}

// handleReadings handles the current_readings tool invocation.
func (s *Server) handleReadings(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ReadingsInput,
) (*mcp.CallToolResult, ReadingsOutput, error) {
	return nil, s.readings(input.Slots), nil
}

// readings builds the reading list for slots, or for every known slot.
func (s *Server) readings(slots []string) ReadingsOutput {
	state := s.ports.Snapshot.State()
	states := s.ports.Screen.States()

	if len(slots) == 0 {
		slots = s.slotNames(state.Slots)
	}

	out := ReadingsOutput{
		Readings: make([]Reading, 0, len(slots)),
		Errors:   state.Errors,
	}
	if state.LastError != nil {
		out.LastError = state.LastError.Message
	}

	for _, slot := range slots {
		r := Reading{Slot: slot, State: states[slot].String()}
		if v, ok := state.Slots[slot]; ok {
			r.Text = v.Text
			r.Available = true
			r.Updates = v.Updates
			r.UpdatedAt = v.UpdatedAt.Format(time.RFC3339Nano)
		}
		out.Readings = append(out.Readings, r)
	}
	return out
}

// slotNames returns the configured slot order, falling back to the
// snapshot's keys.
func (s *Server) slotNames(known map[string]render.SlotValue) []string {
	if len(s.ports.Slots) > 0 {
		return s.ports.Slots
	}
	names := make([]string, 0, len(known))
	for name := range known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// handleDiagnostics handles the recent_diagnostics tool invocation.
func (s *Server) handleDiagnostics(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DiagnosticsInput,
) (*mcp.CallToolResult, DiagnosticsOutput, error) {
	if s.ports.Diagnostics == nil {
		return nil, DiagnosticsOutput{}, ErrUnavailable
	}

	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	records, err := s.ports.Diagnostics.Recent(ctx, limit)
	if err != nil {
		return nil, DiagnosticsOutput{}, err
	}

	output := DiagnosticsOutput{
		Diagnostics: make([]DiagnosticOutput, len(records)),
		Count:       len(records),
	}
	for i := range records {
		output.Diagnostics[i] = DiagnosticOutput{
			ID:             records[i].ID,
			Pipeline:       records[i].Pipeline,
			SubscriptionID: records[i].SubscriptionID,
			Error:          records[i].Error,
			OccurredAt:     records[i].OccurredAt.Format(time.RFC3339Nano),
		}
	}

	return nil, output, nil
}
