package progression

import "github.com/osse101/HunterSystem_Go/internal/domain"

type rankTier struct {
	threshold int64
	name      string
}

// rankLadder is ordered by ascending lifetime XP threshold
var rankLadder = []rankTier{
	{0, "Beginner Reader"},
	{100, "Casual Reader"},
	{500, "Regular Reader"},
	{1000, "Dedicated Reader"},
	{2500, "Avid Reader"},
	{5000, "Expert Reader"},
	{10000, "Master Reader"},
	{20000, "Elite Reader"},
	{50000, "Legendary Reader"},
	{100000, "Mythical Reader"},
}

// RankFor returns the reader rank for a lifetime XP total and the distance to the next one.
// At the top rank the next threshold is the top rank's own threshold.
func RankFor(totalXP int64) domain.RankInfo {
	idx := 0
	for i, tier := range rankLadder {
		if totalXP >= tier.threshold {
			idx = i
		}
	}

	current := rankLadder[idx]
	next := current
	if idx+1 < len(rankLadder) {
		next = rankLadder[idx+1]
	}

	toNext := next.threshold - totalXP
	if toNext < 0 {
		toNext = 0
	}

	return domain.RankInfo{
		Name:          current.name,
		NextRankName:  next.name,
		NextThreshold: next.threshold,
		XPToNextRank:  toNext,
	}
}
