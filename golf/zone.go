package golf

import (
	"fmt"
	"strconv"
	"strings"

	"golf-client/viewerrors"
)

// Zone is a token the server lists in the playable set.
type Zone string

const (
	ZoneDeck  Zone = "deck"
	ZoneTable Zone = "table"
	ZoneHeld  Zone = "held"

	handZonePrefix = "hand_"
)

// HandZone returns the token for the local player's hand slot i.
func HandZone(i int) Zone {
	return Zone(handZonePrefix + strconv.Itoa(i))
}

// HandIndex returns the slot index of a hand token.
func (z Zone) HandIndex() (int, bool) {
	s := string(z)
	if !strings.HasPrefix(s, handZonePrefix) {
		return 0, false
	}
	n, err := strconv.Atoi(s[len(handZonePrefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Place converts a zone into the place reported in a card click.
func (z Zone) Place() (Place, *int, bool) {
	switch z {
	case ZoneDeck:
		return PlaceDeck, nil, true
	case ZoneTable:
		return PlaceTable, nil, true
	case ZoneHeld:
		return PlaceHeld, nil, true
	}
	if i, ok := z.HandIndex(); ok {
		return PlaceHand, &i, true
	}
	return "", nil, false
}

// validate checks the token against the hand size.
func (z Zone) validate(handSize int) error {
	switch z {
	case ZoneDeck, ZoneTable, ZoneHeld:
		return nil
	}
	i, ok := z.HandIndex()
	if !ok {
		return fmt.Errorf("%w: %q", viewerrors.ErrInvalidZone, string(z))
	}
	if i >= handSize {
		return fmt.Errorf("%w: %q", viewerrors.ErrHandIndexOutOfRange, string(z))
	}
	return nil
}

// Place is where a card click happened, as the server understands it.
type Place string

const (
	PlaceDeck  Place = "deck"
	PlaceTable Place = "table"
	PlaceHand  Place = "hand"
	PlaceHeld  Place = "held"
)
