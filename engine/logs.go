package engine

// LogEntry records one proposal and its outcome. Position is the 0-based
// proposal index within the user's session. Logs are append-only; entries
// reference valid user and item IDs by construction.
type LogEntry struct {
	UserID    string
	ItemID    string
	Position  int
	Purchased bool
}

// GenerateTrainLogs simulates proposalsPerUser independent proposals for
// each user in the order given. Each proposal picks one item uniformly
// from the full catalog (with replacement) and evaluates the purchase
// rule. Output length is exactly len(users) * proposalsPerUser, and the
// sequence is fully determined by the generator state and inputs.
func GenerateTrainLogs(
	rng *RNG,
	users []User,
	items []Item,
	threshold int,
	proposalsPerUser int,
) []LogEntry {
	logs := make([]LogEntry, 0, len(users)*proposalsPerUser)
	for ui := range users {
		user := &users[ui]
		for pos := 0; pos < proposalsPerUser; pos++ {
			item := Choice(rng, items)
			logs = append(logs, LogEntry{
				UserID:    user.ID,
				ItemID:    item.ID,
				Position:  pos,
				Purchased: ShouldPurchase(user, &item, threshold),
			})
		}
	}
	return logs
}
