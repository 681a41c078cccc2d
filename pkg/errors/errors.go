package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lootsort/lootcore/pkg/types"
)

// ErrorCode identifies one of the error kinds from spec.md S7.
type ErrorCode string

const (
	ErrUnknown ErrorCode = "UNKNOWN"

	ErrFileAccess        ErrorCode = "FILE_ACCESS"
	ErrConditionSyntax   ErrorCode = "CONDITION_SYNTAX"
	ErrUndefinedGroup    ErrorCode = "UNDEFINED_GROUP"
	ErrCyclicInteraction ErrorCode = "CYCLIC_INTERACTION"
	ErrInvalidArgument   ErrorCode = "INVALID_ARGUMENT"
	ErrDuplicateEntry    ErrorCode = "DUPLICATE_ENTRY"
)

// SortError is the structured error type every exported operation
// returns. It carries a stable Code for callers that want to switch on
// error kind without string matching.
type SortError struct {
	Code    ErrorCode
	Message string
	Wrapped error
}

func (e *SortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SortError) Unwrap() error {
	return e.Wrapped
}

func (e *SortError) Is(target error) bool {
	var t *SortError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func New(code ErrorCode, message string) *SortError {
	return &SortError{Code: code, Message: message}
}

func Newf(code ErrorCode, format string, args ...interface{}) *SortError {
	return &SortError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code ErrorCode, message string) *SortError {
	if err == nil {
		return nil
	}
	return &SortError{Code: code, Message: message, Wrapped: err}
}

func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SortError {
	if err == nil {
		return nil
	}
	return &SortError{Code: code, Message: fmt.Sprintf(format, args...), Wrapped: err}
}

// IsCode reports whether err (or anything it wraps) carries code.
func IsCode(err error, code ErrorCode) bool {
	var se *SortError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// Code returns err's ErrorCode, or ErrUnknown if err isn't a *SortError.
func Code(err error) ErrorCode {
	var se *SortError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrUnknown
}

// FileAccessError reports a problem reading or writing a path.
func FileAccessError(path, reason string) *SortError {
	return Newf(ErrFileAccess, "%s: %s", path, reason)
}

// ConditionSyntaxError reports a parse or path-safety failure in a
// condition string. snippet is the offending source text.
func ConditionSyntaxError(snippet, diagnostic string) *SortError {
	return Newf(ErrConditionSyntax, "%s: %q", diagnostic, snippet)
}

// UndefinedGroupErr reports a reference to a group that was never
// defined. Use AsUndefinedGroup to recover the group name.
type UndefinedGroupErr struct {
	*SortError
	GroupName string
}

func UndefinedGroupError(groupName string) *UndefinedGroupErr {
	return &UndefinedGroupErr{
		SortError: Newf(ErrUndefinedGroup, "group %q is not defined", groupName),
		GroupName: groupName,
	}
}

// Unwrap exposes the embedded SortError so IsCode and Code see its code.
func (e *UndefinedGroupErr) Unwrap() error { return e.SortError }

// AsUndefinedGroup extracts the group name from err if it (or anything
// it wraps) is an UndefinedGroupErr.
func AsUndefinedGroup(err error) (string, bool) {
	var u *UndefinedGroupErr
	if errors.As(err, &u) {
		return u.GroupName, true
	}
	return "", false
}

// CyclicInteractionErr reports a cycle found in either the group graph
// or the plugin graph. Cycle is the ordered sequence of steps that form
// the cycle; each step's EdgeToNext names the edge type connecting it
// to the next step (wrapping around to the first step for the last).
type CyclicInteractionErr struct {
	*SortError
	Cycle []types.CycleVertex
}

func CyclicInteractionError(cycle []types.CycleVertex) *CyclicInteractionErr {
	names := make([]string, len(cycle))
	for i, v := range cycle {
		names[i] = v.Name
	}
	return &CyclicInteractionErr{
		SortError: Newf(ErrCyclicInteraction, "cyclic interaction detected: %s",
			strings.Join(names, " -> ")),
		Cycle: cycle,
	}
}

// Unwrap exposes the embedded SortError so IsCode and Code see its code.
func (e *CyclicInteractionErr) Unwrap() error { return e.SortError }

// AsCyclicInteraction extracts the cycle steps from err.
func AsCyclicInteraction(err error) ([]types.CycleVertex, bool) {
	var c *CyclicInteractionErr
	if errors.As(err, &c) {
		return c.Cycle, true
	}
	return nil, false
}

// InvalidArgumentError reports a malformed argument at an API boundary.
func InvalidArgumentError(message string) *SortError {
	return New(ErrInvalidArgument, message)
}

// DuplicateEntryErr reports an attempt to add a second exact-name entry
// for a plugin that already has one.
type DuplicateEntryErr struct {
	*SortError
	Name string
}

func DuplicateEntryError(name string) *DuplicateEntryErr {
	return &DuplicateEntryErr{
		SortError: Newf(ErrDuplicateEntry, "duplicate entry for %q", name),
		Name:      name,
	}
}

// Unwrap exposes the embedded SortError so IsCode and Code see its code.
func (e *DuplicateEntryErr) Unwrap() error { return e.SortError }

// AsDuplicateEntry extracts the duplicated name from err.
func AsDuplicateEntry(err error) (string, bool) {
	var d *DuplicateEntryErr
	if errors.As(err, &d) {
		return d.Name, true
	}
	return "", false
}
