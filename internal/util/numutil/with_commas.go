package numutil

import "strconv"

type integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// WithCommas returns a string representation of an integer with commas
// separating the thousands.
//
// Example:
//
//	12345 -> "12,345"
func WithCommas[T integer](n T) string {
	digits := strconv.FormatInt(int64(n), 10)
	if n < 0 {
		return "-" + group(digits[1:])
	}
	return group(digits)
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	return group(digits[:len(digits)-3]) + "," + digits[len(digits)-3:]
}
