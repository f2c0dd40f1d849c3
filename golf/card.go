package golf

import "strings"

// Card is a card code: rank followed by suit ("AH", "TD"), the face-down
// sentinel or the joker.
type Card string

const (
	DownCard Card = "2B"
	Joker    Card = "jk"
)

const (
	Ranks = "KA23456789TJQ"
	Suits = "CDHS"
)

// Valid reports whether c is a known card code.
func (c Card) Valid() bool {
	if c == DownCard || c == Joker {
		return true
	}
	s := string(c)
	if len(s) != 2 {
		return false
	}
	return strings.IndexByte(Ranks, s[0]) >= 0 && strings.IndexByte(Suits, s[1]) >= 0
}

// CardNames lists every drawable card code, face-down and joker first.
func CardNames() []Card {
	names := make([]Card, 0, 2+len(Ranks)*len(Suits))
	names = append(names, DownCard, Joker)
	for i := 0; i < len(Ranks); i++ {
		for j := 0; j < len(Suits); j++ {
			names = append(names, Card([]byte{Ranks[i], Suits[j]}))
		}
	}
	return names
}
