package gen

// DeleteFirst removes the first occurrence of value from the slice
func DeleteFirst[T comparable](slice []T, value T) []T {
	for i, v := range slice {
		if v == value {
			return append(slice[:i], slice[i+1:]...)
		}
	}
	return slice
}

// DeleteFromSliceUnordered removes element i by swapping the last element
// into its place. Cheap, but does not preserve ordering.
func DeleteFromSliceUnordered[T any](slice []T, i int) []T {
	slice[i] = slice[len(slice)-1]
	return slice[:len(slice)-1]
}
