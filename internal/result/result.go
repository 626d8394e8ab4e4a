// Package result holds the success/failure envelope returned by cached reads.
//
// A Result is a value, not an error: failures cross the cache boundary as data
// and callers branch on Success before touching Data.
package result

import "encoding/json"

const (
	CodeNotFound = "not_found"
	CodeInternal = "internal"
)

// Error describes a failed Result.
type Error struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Result is either {success:true, data} or {success:false, error}.
type Result[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   *Error `json:"error,omitempty"`
}

// MarshalJSON writes only the populated branch. A successful zero value keeps
// its data field, e.g. {"success":true,"data":0}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.Success {
		return json.Marshal(struct {
			Success bool `json:"success"`
			Data    T    `json:"data"`
		}{true, r.Data})
	}
	return json.Marshal(struct {
		Success bool   `json:"success"`
		Error   *Error `json:"error"`
	}{false, r.Error})
}

func Ok[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

func Fail[T any](msg string) Result[T] {
	return Result[T]{Error: &Error{Message: msg, Code: CodeInternal}}
}

func NotFound[T any](msg string) Result[T] {
	return Result[T]{Error: &Error{Message: msg, Code: CodeNotFound}}
}

// IsNotFound reports whether r failed because the resource does not exist.
func (r Result[T]) IsNotFound() bool {
	return !r.Success && r.Error != nil && r.Error.Code == CodeNotFound
}

// Valid reports whether exactly one branch is populated.
func (r Result[T]) Valid() bool {
	return r.Success == (r.Error == nil)
}
