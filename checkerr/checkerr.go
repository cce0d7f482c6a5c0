// Package checkerr defines the typed error taxonomy shared by the game,
// session, and transport layers, so that a transport can map any core
// error to a status code with a single switch instead of string-sniffing.
package checkerr

import (
	"errors"
	"fmt"
)

// Code identifies which branch of the error taxonomy an Error belongs to.
type Code string

const (
	CodeNotFound            Code = "NotFound"
	CodeGameAlreadyOver     Code = "GameAlreadyOver"
	CodeIllegalMove         Code = "IllegalMove"
	CodeMalformedInput      Code = "MalformedInput"
	CodeIneligibleDrawClaim Code = "IneligibleDrawClaim"
	CodeInternal            Code = "Internal"
)

// Error is the single error type returned by the game and session layers.
// Reason is a human-readable detail (e.g. "leaves king in check" for an
// IllegalMove); transports surface it verbatim in {"error": ...} bodies.
type Error struct {
	Code   Code
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// NotFound reports an unknown game id.
func NotFound(gameID string) *Error {
	return &Error{Code: CodeNotFound, Reason: fmt.Sprintf("no such game: %s", gameID)}
}

// GameAlreadyOver reports a mutation attempted on a terminal game.
func GameAlreadyOver(gameID string) *Error {
	return &Error{Code: CodeGameAlreadyOver, Reason: fmt.Sprintf("game %s is already over", gameID)}
}

// IllegalMove reports a move absent from the legal-moves set, with a
// human-readable reason such as "not your piece" or "wrong pattern".
func IllegalMove(reason string) *Error {
	return &Error{Code: CodeIllegalMove, Reason: reason}
}

// MalformedInput reports a JSON parse or field-shape error.
func MalformedInput(reason string) *Error {
	return &Error{Code: CodeMalformedInput, Reason: reason}
}

// IneligibleDrawClaim reports that the named draw condition does not hold.
func IneligibleDrawClaim(reason string) *Error {
	return &Error{Code: CodeIneligibleDrawClaim, Reason: reason}
}

// Internal reports an invariant violation — a bug, never a consequence of
// external input.
func Internal(reason string) *Error {
	return &Error{Code: CodeInternal, Reason: reason}
}

// Is reports whether err carries the given Code, unwrapping through
// errors.Is-compatible wrapping.
func Is(err error, code Code) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}
