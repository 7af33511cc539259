package score

import "github.com/genshinsim/gcsim/apps/artifact_scorer/internal/domain"

// maxRollByRarity holds the highest single substat roll per rarity, rounded up to the
// displayed precision so that imported (rounded) values never exceed rolls*max.
var maxRollByRarity = map[int]map[domain.Stat]float64{
	5: {
		domain.StatCR: 3.9, domain.StatCD: 7.8,
		domain.StatATKP: 5.9, domain.StatHPP: 5.9, domain.StatDEFP: 7.3,
		domain.StatEM: 23.4, domain.StatER: 6.5,
		domain.StatATK: 19.5, domain.StatHP: 298.8, domain.StatDEF: 23.2,
	},
	4: {
		domain.StatCR: 3.2, domain.StatCD: 6.3,
		domain.StatATKP: 4.7, domain.StatHPP: 4.7, domain.StatDEFP: 5.9,
		domain.StatEM: 18.7, domain.StatER: 5.2,
		domain.StatATK: 15.6, domain.StatHP: 239.0, domain.StatDEF: 18.6,
	},
	3: {
		domain.StatCR: 2.4, domain.StatCD: 4.7,
		domain.StatATKP: 3.5, domain.StatHPP: 3.5, domain.StatDEFP: 4.4,
		domain.StatEM: 14.0, domain.StatER: 3.9,
		domain.StatATK: 9.4, domain.StatHP: 143.4, domain.StatDEF: 11.2,
	},
	2: {
		domain.StatCR: 1.6, domain.StatCD: 3.2,
		domain.StatATKP: 2.4, domain.StatHPP: 2.4, domain.StatDEFP: 3.0,
		domain.StatEM: 9.4, domain.StatER: 2.6,
		domain.StatATK: 4.7, domain.StatHP: 71.7, domain.StatDEF: 5.6,
	},
	1: {
		domain.StatCR: 1.0, domain.StatCD: 2.0,
		domain.StatATKP: 1.5, domain.StatHPP: 1.5, domain.StatDEFP: 1.9,
		domain.StatEM: 5.9, domain.StatER: 1.7,
		domain.StatATK: 2.0, domain.StatHP: 29.9, domain.StatDEF: 2.4,
	},
}

// MaxRoll returns the highest single roll of a substat, 0 for unknown rarities or stats.
func MaxRoll(rarity int, stat domain.Stat) float64 {
	return maxRollByRarity[rarity][stat]
}

// Max level main stat values.
var mainStatValues5Star = map[domain.Stat]float64{
	domain.StatHP: 4780, domain.StatATK: 311,
	domain.StatHPP: 46.6, domain.StatATKP: 46.6, domain.StatDEFP: 58.3,
	domain.StatEM: 186.5, domain.StatER: 51.8,
	domain.StatPyroP: 46.6, domain.StatHydroP: 46.6, domain.StatCryoP: 46.6, domain.StatElectroP: 46.6,
	domain.StatAnemoP: 46.6, domain.StatGeoP: 46.6, domain.StatDendroP: 46.6,
	domain.StatPhysP: 58.3,
	domain.StatCR: 31.1, domain.StatCD: 62.2,
	domain.StatHealP: 35.9,
}

var mainStatValues4Star = map[domain.Stat]float64{
	domain.StatHP: 3571, domain.StatATK: 232,
	domain.StatHPP: 34.8, domain.StatATKP: 34.8, domain.StatDEFP: 43.5,
	domain.StatEM: 139.3, domain.StatER: 38.7,
	domain.StatPyroP: 34.8, domain.StatHydroP: 34.8, domain.StatCryoP: 34.8, domain.StatElectroP: 34.8,
	domain.StatAnemoP: 34.8, domain.StatGeoP: 34.8, domain.StatDendroP: 34.8,
	domain.StatPhysP: 43.5,
	domain.StatCR: 23.2, domain.StatCD: 46.4,
	domain.StatHealP: 26.8,
}

// MainStatValue returns the max level value of a main stat. Rarity 4 uses the 4 star table,
// every other rarity the 5 star one.
func MainStatValue(stat domain.Stat, rarity int) float64 {
	if rarity == 4 {
		return mainStatValues4Star[stat]
	}
	return mainStatValues5Star[stat]
}

// rollCoefficient converts one point of a stat into crit-damage equivalents, so that one max
// roll of any substat is worth about the same as one max crit damage roll.
var rollCoefficient = map[domain.Stat]float64{
	domain.StatCR:   2,
	domain.StatCD:   1,
	domain.StatEM:   0.3333,
	domain.StatER:   1.1991,
	domain.StatATKP: 1.3328,
	domain.StatHPP:  1.3328,
	domain.StatDEFP: 1.0658,
	domain.StatATK:  0.3995,
	domain.StatHP:   0.026,
	domain.StatDEF:  0.3356,

	domain.StatPyroP:    1.3348,
	domain.StatHydroP:   1.3348,
	domain.StatAnemoP:   1.3348,
	domain.StatElectroP: 1.3348,
	domain.StatDendroP:  1.3348,
	domain.StatCryoP:    1.3348,
	domain.StatGeoP:     1.3348,
	domain.StatPhysP:    1.0669,
	domain.StatHealP:    1.7326,
}

// potentialStats are always present in a character breakdown, even with zero values.
var potentialStats = []domain.Stat{
	domain.StatCR, domain.StatCD, domain.StatEM, domain.StatER,
	domain.StatATKP, domain.StatHPP, domain.StatDEFP,
	domain.StatATK, domain.StatHP, domain.StatDEF,
	domain.StatPyroP, domain.StatHydroP, domain.StatAnemoP, domain.StatElectroP,
	domain.StatDendroP, domain.StatCryoP, domain.StatGeoP, domain.StatPhysP, domain.StatHealP,
}
