package ui

// Unicode glyphs for status indicators.
const (
	SymbolSuccess  = "◉"
	SymbolFail     = "✕"
	SymbolPending  = "◇"
	SymbolProgress = "◆"
	SymbolComplete = "●"
	SymbolSkipped  = "⊖"
	SymbolWarning  = "⚠"
)
