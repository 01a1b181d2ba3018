package models

import "time"

// CodeAlphabet is lowercase only; issued codes are compared lowercase
// end to end.
var CodeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

const (
	CodeLength                = 9
	MaxCodeGenerationAttempts = 10

	// SessionDuration is the time budget per team. The clock starts
	// when a question type is chosen, not when the session row appears.
	SessionDuration = 12 * time.Hour

	MinCompleteMembers = 2

	StatusRegistered = "registered"
)

var Challenges = map[int]string{
	0: "Basic Quantum Computing",
	1: "Machine Learning Challenge",
	2: "Lorenz Attractor Simulation",
}

func IsValidQuestionType(questionType int) bool {
	_, ok := Challenges[questionType]
	return ok
}
