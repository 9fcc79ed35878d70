package util

// Ptr returns pointer of any value.
func Ptr[T any](t T) *T {
	return &t
}
