package domain

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity is the reward tier of an item.
type Rarity string

// Declaration order matters: the sampler walks tiers in this order.
const (
	RarityCommon     Rarity = "common"
	RarityUncommon   Rarity = "uncommon"
	RarityRare       Rarity = "rare"
	RarityMythical   Rarity = "mythical"
	RarityLegendary  Rarity = "legendary"
	RarityAncient    Rarity = "ancient"
	RarityContraband Rarity = "contraband"
)

// Rarities lists every tier in declaration order.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityMythical,
	RarityLegendary,
	RarityAncient,
	RarityContraband,
}

var titleCaser = cases.Title(language.English)

// ParseRarity validates a stored or user-supplied tier name.
func ParseRarity(s string) (Rarity, error) {
	for _, r := range Rarities {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: unknown rarity %q", ErrInvalidInput, s)
}

// DisplayName returns the tier name as shown to players.
func (r Rarity) DisplayName() string {
	return titleCaser.String(string(r))
}
