package ui

// Status icons for generated and verified files
const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconStale   = "◐"
	IconMissing = "○"
)

// UI icons for various UI elements
const (
	IconConfirm = "⚠️ "
	IconTheme   = "🎨"
	IconDone    = "✨"
	IconDark    = "●"
	IconLight   = "○"
)

// SwatchBlock is the glyph run painted with a color in swatch rows
const SwatchBlock = "      "
