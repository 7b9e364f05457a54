// Package core provides the business logic for table layouts.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support reference.
// When users encounter errors, they can quote the error code to support staff
// for faster diagnosis.
//
// # Layout Errors (LAY001-LAY099)
//
//	LAY001 - Invalid parent width: The container width is not usable
//	         Action: Use a number, a percentage such as 100%, or a pixel value such as 960px
//	         Sentinel: layout.ErrInvalidParentWidth
//
//	LAY002 - Malformed column width: A column width could not be read
//	         Action: Use a number, a percentage or a pixel value, or leave the width empty
//	         Sentinel: layout.ErrMalformedWidth
//	         Also reported as a non-fatal diagnostic while resolving
//
//	LAY003 - Invalid columns: The column list is empty, too long or not valid JSON
//	         Action: Send between 1 and the configured maximum number of columns
//	         Sentinel: ErrInvalidColumns
//
// # Table Errors (TBL001-TBL099)
//
//	TBL001 - Table not found: The specified table does not exist
//	         Action: Verify the table name is correct
//	         Sentinel: ErrTableNotFound
//
// # Preset Errors (PRE001-PRE099)
//
//	PRE001 - Preset not found
//	PRE002 - Preset name already exists for this table
//	PRE003 - Presets are disabled because no database is configured
//	PRE004 - Preset name is required
//
// # Selection Errors (SEL001-SEL099)
//
//	SEL001 - Selection not found: The session is unknown or expired
//	SEL002 - Row out of range: The row index is outside the selection
//	SEL003 - Selection too large: More rows than the configured maximum
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Malformed request: The body is not valid JSON for the endpoint
//	         Sentinel: ErrMalformedRequest
//
// # Infrastructure Errors
//
//	DB004   - Connection refused        Patterns: "connection refused"
//	DB006   - Timeout                   Patterns: "timeout", "deadline exceeded"
//	RATE001 - Rate limited              Patterns: "rate limit"
//	AUTH001 - Unauthorized              Patterns: "unauthorized", "api key"
//
// # Default Error (ERR000)
//
// Fallback when no sentinel or pattern matches. Support staff should check
// application logs for the original technical error.
//
// # Matching
//
// Sentinels are checked first with errors.Is, in table order. Patterns are
// then matched case-insensitively using strings.Contains; the first match wins.
package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/vtable/internal/layout"
	"github.com/JonMunkholm/vtable/internal/selection"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"` // What happened (user-friendly)
	Action  string `json:"action"`  // What to do about it
	Code    string `json:"code"`    // Error code for support reference
}

type sentinelMessage struct {
	target error
	msg    UserMessage
}

// sentinelMessages maps domain sentinel errors to user messages.
var sentinelMessages = []sentinelMessage{
	{
		target: layout.ErrInvalidParentWidth,
		msg: UserMessage{
			Message: "The container width is not usable",
			Action:  "Use a number, a percentage such as 100%, or a pixel value such as 960px",
			Code:    "LAY001",
		},
	},
	{
		target: layout.ErrMalformedWidth,
		msg: UserMessage{
			Message: "A column width could not be read",
			Action:  "Use a number, a percentage or a pixel value, or leave the width empty",
			Code:    layout.DiagMalformedColumnWidth,
		},
	},
	{
		target: ErrInvalidColumns,
		msg: UserMessage{
			Message: "The column list is not valid",
			Action:  "Send at least one column and no more than the configured maximum",
			Code:    "LAY003",
		},
	},
	{
		target: ErrTableNotFound,
		msg: UserMessage{
			Message: "The specified table does not exist",
			Action:  "Verify the table name is correct",
			Code:    "TBL001",
		},
	},
	{
		target: ErrPresetNotFound,
		msg: UserMessage{
			Message: "Layout preset not found",
			Action:  "The preset may have been deleted. Refresh the preset list",
			Code:    "PRE001",
		},
	},
	{
		target: ErrPresetExists,
		msg: UserMessage{
			Message: "A preset with this name already exists for this table",
			Action:  "Choose a different name or delete the existing preset",
			Code:    "PRE002",
		},
	},
	{
		target: ErrPresetsDisabled,
		msg: UserMessage{
			Message: "Layout presets are not available",
			Action:  "Configure DATABASE_URL to enable presets",
			Code:    "PRE003",
		},
	},
	{
		target: ErrPresetNameRequired,
		msg: UserMessage{
			Message: "A preset needs a name",
			Action:  "Enter a name for the preset",
			Code:    "PRE004",
		},
	},
	{
		target: ErrSelectionNotFound,
		msg: UserMessage{
			Message: "Selection session not found",
			Action:  "The selection may have expired. Start a new selection",
			Code:    "SEL001",
		},
	},
	{
		target: selection.ErrIndexOutOfRange,
		msg: UserMessage{
			Message: "The row is outside the selection",
			Action:  "Refresh the table and try again",
			Code:    "SEL002",
		},
	},
	{
		target: ErrSelectionTooLarge,
		msg: UserMessage{
			Message: "Too many rows to track in one selection",
			Action:  "Narrow the table before selecting rows",
			Code:    "SEL003",
		},
	},
	{
		target: ErrMalformedRequest,
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send a JSON body matching the endpoint's format",
			Code:    "REQ001",
		},
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// More specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "DB004",
		},
	},
	{
		pattern: "deadline exceeded",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Please try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
	{
		pattern: "unauthorized",
		msg: UserMessage{
			Message: "You are not allowed to change presets",
			Action:  "Send a valid X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "api key",
		msg: UserMessage{
			Message: "You are not allowed to change presets",
			Action:  "Send a valid X-API-Key header",
			Code:    "AUTH001",
		},
	},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Example:
//
//	_, err := svc.ResolveColumns(ctx, cols, "wide")
//	msg := MapError(err)
//	// msg.Code == "LAY001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, sm := range sentinelMessages {
		if errors.Is(err, sm.target) {
			return sm.msg
		}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user-facing message.
// The original error is preserved for logging.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
