package utils

// Ptr returns a pointer to v. Generation settings use pointers so that an
// explicit zero, such as temperature 0 or thinking disabled, is sent instead
// of being dropped by omitempty:
//
//	Temperature: utils.Ptr(float32(0)),
//	Think:       utils.Ptr(false),
func Ptr[T any](v T) *T {
	return &v
}
