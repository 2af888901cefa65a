package engine

import "fmt"

// User is one simulated user with three independent attribute channels in
// [0,255], conceptually RGB.
type User struct {
	ID string
	R  int
	G  int
	B  int
}

// Channel returns the attribute matching an item color.
func (u *User) Channel(c Color) int {
	switch c {
	case ColorRed:
		return u.R
	case ColorGreen:
		return u.G
	case ColorBlue:
		return u.B
	}
	return 0
}

// GenerateUsers produces count users with IDs prefix + zero-padded
// sequence number starting at 1. Per user the channels are drawn R first,
// then G, then B; this draw order is part of the stream contract and must
// not change, since it positions every later consumer of the same RNG.
func GenerateUsers(rng *RNG, count int, idPrefix string) []User {
	users := make([]User, 0, count)
	for i := 1; i <= count; i++ {
		users = append(users, User{
			ID: fmt.Sprintf("%s%04d", idPrefix, i),
			R:  rng.IntRange(0, 255),
			G:  rng.IntRange(0, 255),
			B:  rng.IntRange(0, 255),
		})
	}
	return users
}
