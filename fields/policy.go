package fields

import "fmt"

// Policy selects how decoding treats fields with no slot in the source.
type Policy int

const (
	// Strict fails on any absent slot.
	Strict Policy = iota
	// Lazy keeps the current value of fields with an absent slot.
	Lazy
)

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Lazy:
		return "lazy"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}
