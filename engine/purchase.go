package engine

// ShouldPurchase is the ground-truth purchase rule: true iff the user's
// channel matching the item color is at least threshold (the boundary is
// inclusive, ties favor purchase). Pure; every component that needs a
// purchase decision goes through this one function.
func ShouldPurchase(u *User, it *Item, threshold int) bool {
	return u.Channel(it.Color) >= threshold
}
