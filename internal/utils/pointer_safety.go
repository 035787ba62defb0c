package utils

func Value[T any](v *T) T {
	if v == nil {
		return *new(T)
	}
	return *v
}

func Ptr[T any](v T) *T {
	return &v
}

// Coalesce returns *override when it is set, otherwise fallback.
func Coalesce[T any](override *T, fallback T) T {
	if override == nil {
		return fallback
	}
	return *override
}
