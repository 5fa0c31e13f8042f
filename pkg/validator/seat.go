package validator

import "regexp"

// seatNumberRegex matches the coach layout: rows A-J, columns 1-4
var seatNumberRegex = regexp.MustCompile(`^[A-J][1-4]$`)

// IsValidSeatNumber reports whether a seat label exists in the layout
func IsValidSeatNumber(seat string) bool {
	return seatNumberRegex.MatchString(seat)
}
