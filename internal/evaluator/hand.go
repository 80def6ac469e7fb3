package evaluator

// Category is a poker hand classification. The numeric order is only an
// identity; how categories rank against each other is decided by the
// Variant's precedence table.
type Category int

const (
	NoPair Category = iota
	Pair
	TwoPair
	Trips
	Straight
	Flush
	FullHouse
	Quads
	StraightFlush
)

// String returns the string representation of a category
func (c Category) String() string {
	switch c {
	case NoPair:
		return "High Card"
	case Pair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case Trips:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case Quads:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}
