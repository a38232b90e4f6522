package domain

import "strings"

// SeatClass is the fare-class rank stored with every ticket. Two tickets in
// different classes may occupy the same seat number at the same time slot;
// the rank is part of the conflict partition key.
type SeatClass int

const (
	ClassSingle SeatClass = 0
	ClassFamily SeatClass = 1
	ClassVIP    SeatClass = 2
)

func (c SeatClass) String() string {
	switch c {
	case ClassFamily:
		return "FAMILY"
	case ClassVIP:
		return "VIP"
	default:
		return "SINGLE"
	}
}

// Rank returns the stored integer value.
func (c SeatClass) Rank() int { return int(c) }

// ClassifySeat maps a class label to its rank. Matching is case-insensitive
// and whitespace-tolerant; anything unrecognized (including empty) falls back
// to Single so the function is total.
func ClassifySeat(label string) SeatClass {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "FAMILY":
		return ClassFamily
	case "VIP":
		return ClassVIP
	default:
		return ClassSingle
	}
}
