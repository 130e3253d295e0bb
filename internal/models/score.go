package models

// Score is the raw textual outcome of one game: the digits "1" through "6",
// or "X" for a failed puzzle.
type Score string

// FailedScore is the sentinel for a puzzle that was not solved in six guesses.
const FailedScore Score = "X"

// FailedNumeric is the numeric value assigned to a failed puzzle. It sits one
// step above the worst real score so averages rank a miss below any solve.
const FailedNumeric = 7

// Valid reports whether s is one of the recognised score tokens.
func (s Score) Valid() bool {
	switch s {
	case "1", "2", "3", "4", "5", "6", FailedScore:
		return true
	}
	return false
}

// Numeric converts a score to its numeric value on the 1 (best) to 7 (failed)
// scale. Every statistic in the system uses this mapping; there is exactly one
// copy of it.
func (s Score) Numeric() int {
	if s == FailedScore {
		return FailedNumeric
	}
	return int(s[0] - '0')
}
