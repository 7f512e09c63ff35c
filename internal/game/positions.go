package game

import "strings"

// Position is the card's position code. Goalies are "G", defensemen "D";
// anything else (F, C, LW, RW, dirty values) counts as a forward.
type Position string

const (
	PositionGoalie    Position = "G"
	PositionDefense   Position = "D"
	PositionForward   Position = "F"
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "LW"
	PositionRightWing Position = "RW"
)

func (p Position) IsGoalie() bool {
	return strings.HasPrefix(strings.ToUpper(string(p)), "G")
}

func (p Position) IsDefense() bool {
	return strings.HasPrefix(strings.ToUpper(string(p)), "D")
}

// IsSkater reports whether the player takes shots and blocks (non-goalie).
func (p Position) IsSkater() bool { return !p.IsGoalie() }

func (p Position) IsForward() bool { return !p.IsGoalie() && !p.IsDefense() }

// Rarity is the card's collectible tier. Mythic is a display tier only and
// carries no strength multiplier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)
