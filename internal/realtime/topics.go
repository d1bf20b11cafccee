package realtime

import "fmt"

// PairTopic returns the chat channel for an unordered user pair. Both sides
// of a conversation land on the same topic regardless of argument order.
func PairTopic(user1ID, user2ID uint) string {
	lo, hi := orderPair(user1ID, user2ID)
	return fmt.Sprintf("pair:%d_%d", lo, hi)
}

// TypingTopic returns the ephemeral typing-indicator channel for a pair.
func TypingTopic(user1ID, user2ID uint) string {
	lo, hi := orderPair(user1ID, user2ID)
	return fmt.Sprintf("typing:%d_%d", lo, hi)
}

func orderPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
