package reward

import "github.com/tebnews/TEBNews_Go/internal/domain"

// MaxDraw is the exclusive upper bound of a rarity draw.
const MaxDraw = 100.0

// Weight is the percent chance of a tier.
type Weight struct {
	Rarity  domain.Rarity
	Percent float64
}

// Weights is the reward catalog in declaration order. Percentages sum to 100.
var Weights = []Weight{
	{domain.RarityCommon, 55},
	{domain.RarityUncommon, 25},
	{domain.RarityRare, 12},
	{domain.RarityMythical, 5},
	{domain.RarityLegendary, 2},
	{domain.RarityAncient, 0.75},
	{domain.RarityContraband, 0.25},
}
