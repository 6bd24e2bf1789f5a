// Package theme provides the semantic colour registry used by the control.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the semantic colours the renderer asks for.
// All methods return AdaptiveColor for automatic light/dark terminal support.
type Theme interface {
	// Base colors
	Primary() lipgloss.AdaptiveColor   // focused borders
	Secondary() lipgloss.AdaptiveColor // current option
	Accent() lipgloss.AdaptiveColor    // selection marks

	// Status colors
	Error() lipgloss.AdaptiveColor   // validity message
	Warning() lipgloss.AdaptiveColor // diagnostics
	Success() lipgloss.AdaptiveColor // copy confirmation
	Info() lipgloss.AdaptiveColor    // tag pills

	// Text colors
	Text() lipgloss.AdaptiveColor
	TextMuted() lipgloss.AdaptiveColor // hints, placeholder, disabled
	TextEmphasized() lipgloss.AdaptiveColor

	// Background colors
	Background() lipgloss.AdaptiveColor
	BackgroundSecondary() lipgloss.AdaptiveColor // current option row
	BackgroundDarker() lipgloss.AdaptiveColor

	// Border colors
	BorderNormal() lipgloss.AdaptiveColor
	BorderFocused() lipgloss.AdaptiveColor
	BorderDim() lipgloss.AdaptiveColor
}
