package utils

import "github.com/aarondl/null/v8"

func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

func ToPtr[T any](v T) *T {
	return &v
}

// NullStringPtr converts an optional string into a pointer, nil when unset.
func NullStringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
