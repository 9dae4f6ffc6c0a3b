package tui

type state int

const (
	inputState state = iota + 1
	resultsState
	transcriptState
	confirmClearState
	errorState
)
