package driven

// Renderer is the rendering collaborator that shows final values.
// Calls are fire-and-forget and cannot fail.
type Renderer interface {
	// Display replaces the text shown in the named output slot.
	Display(slot, text string)

	// NotifyError shows a short user-visible error notification.
	NotifyError(message string)
}
