// Package render provides rendering collaborators for the dashboard.
//
// Renderers never block: delivery happens while a subscription holds
// its delivery lock, so a slow renderer would stall cancellation.
package render
