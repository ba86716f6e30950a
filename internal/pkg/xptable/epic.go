package xptable

import "github.com/shopspring/decimal"

// epicBaseBillions holds the epic-dungeon base experience per run, in
// billions. Levels outside this map do not support the bonus; note the
// deliberate gaps (268-269 have no published values).
var epicBaseBillions = map[int]string{
	260: "194.6",
	261: "197.4",
	262: "200.2",
	263: "203.0",
	264: "206.2",
	265: "232.0",
	266: "235.2",
	267: "238.4",
	270: "384.75",
	271: "403.05",
	272: "408.15",
	273: "430.65",
	274: "436.95",
	275: "491.10",
	276: "497.25",
	277: "504.30",
	278: "510.45",
	279: "517.50",
	280: "581.25",
	281: "589.20",
	282: "596.25",
	283: "604.20",
	284: "611.40",
	285: "687.30",
	286: "695.25",
	287: "704.25",
	288: "713.40",
	289: "721.50",
	290: "810.75",
	291: "819.90",
	292: "830.10",
	293: "840.45",
	294: "849.60",
}

// effectiveMultiplier maps a bonus tier onto the total multiplier it
// represents: tier 4 means "base + 4x bonus" and tier 8 "base + 8x bonus".
func effectiveMultiplier(tier int) decimal.Decimal {
	switch tier {
	case 4:
		return decimal.NewFromInt(5)
	case 8:
		return decimal.NewFromInt(9)
	default:
		return decimal.NewFromInt(int64(tier))
	}
}

// EpicBonus returns the epic-dungeon bonus experience for a level at the
// given tier. The second return value is false when the level has no bonus
// table entry; callers must treat that as "bonus unsupported at this
// level", not as a zero bonus.
func EpicBonus(level, tier int) (Gain, bool) {
	base, ok := epicBaseBillions[level]
	if !ok {
		return Gain{}, false
	}
	billions := decimal.RequireFromString(base).Mul(effectiveMultiplier(tier))
	return gainFromActual(billions.Mul(billion)), true
}

// EpicSupported reports whether a level has a bonus-table entry.
func EpicSupported(level int) bool {
	_, ok := epicBaseBillions[level]
	return ok
}
