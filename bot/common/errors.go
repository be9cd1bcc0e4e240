package common

import (
	"fmt"
)

// GenericErrorMessage answers any failure that is not the user's fault
const GenericErrorMessage = "There was an error executing this command."

// BotError represents a structured error with user-facing and internal messages
type BotError struct {
	UserMessage string // Message shown to the Discord user, without the ❌ prefix
	LogMessage  string // Internal message for logging
	Err         error  // Underlying error
	Context     any    // Additional context for logging
}

// Error implements the error interface
func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.LogMessage, e.Err)
	}
	return e.LogMessage
}

// Unwrap returns the underlying error
func (e *BotError) Unwrap() error {
	return e.Err
}

// IsUserError reports whether the error was caused by the user's input
func (e *BotError) IsUserError() bool {
	return e.Err == nil
}

// NewUserError creates an error for user-caused issues (validation, insufficient funds, etc)
func NewUserError(userMessage string, logMessage string) *BotError {
	return &BotError{
		UserMessage: userMessage,
		LogMessage:  logMessage,
	}
}

// NewUserErrorf is NewUserError with a formatted user message logged as-is
func NewUserErrorf(format string, args ...any) *BotError {
	msg := fmt.Sprintf(format, args...)
	return NewUserError(msg, msg)
}

// NewSystemError creates an error for system issues (storage, unexpected state, etc)
func NewSystemError(err error, logMessage string) *BotError {
	return &BotError{
		UserMessage: GenericErrorMessage,
		LogMessage:  logMessage,
		Err:         err,
	}
}
