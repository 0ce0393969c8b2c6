package advisor

import (
	"sort"
	"strings"
)

// Crop identifies a supported crop.
type Crop string

const (
	CropMaize       Crop = "maize"
	CropWheat       Crop = "wheat"
	CropSorghum     Crop = "sorghum"
	CropMillet      Crop = "millet"
	CropRice        Crop = "rice"
	CropBeans       Crop = "beans"
	CropCowpea      Crop = "cowpea"
	CropPigeonPea   Crop = "pigeon_pea"
	CropGroundnut   Crop = "groundnut"
	CropCassava     Crop = "cassava"
	CropSweetPotato Crop = "sweet_potato"
	CropPotato      Crop = "potato"
	CropVegetables  Crop = "vegetables"
	CropTomato      Crop = "tomato"
	CropCabbage     Crop = "cabbage"
	CropKale        Crop = "kale"
	CropOnion       Crop = "onion"
	CropTea         Crop = "tea"
	CropCoffee      Crop = "coffee"
	CropBanana      Crop = "banana"
	CropSugarcane   Crop = "sugarcane"
	CropSunflower   Crop = "sunflower"
	CropCotton      Crop = "cotton"
)

// Group classifies crops for presentation.
type Group string

const (
	GroupCereals    Group = "cereals"
	GroupLegumes    Group = "legumes"
	GroupRoots      Group = "roots & tubers"
	GroupVegetables Group = "vegetables"
	GroupCashCrops  Group = "cash crops"
)

// RainRule selects how a profile's rainfall thresholds are evaluated over
// the 7-day planting window.
type RainRule int

const (
	// RainBand expects total rainfall within [RainMin, RainMax].
	// Out-of-band rainfall warns but does not change the planting flag.
	RainBand RainRule = iota
	// RainBandForceWait is RainBand, except rainfall above RainMax forces
	// WAIT regardless of the temperature check (beans).
	RainBandForceWait
	// RainAtLeast expects at least RainMin, open-ended above.
	RainAtLeast
	// RainAtLeastIrrigable is RainAtLeast, but a shortfall only makes
	// planting irrigation-dependent rather than discouraged (rice).
	RainAtLeastIrrigable
	// RainAtMostPreferred prefers totals below RainMax (dryland cereals).
	RainAtMostPreferred
	// RainHumidityBonus ignores rainfall totals and instead rewards mean
	// relative humidity of at least HumidityMin (tea, coffee).
	RainHumidityBonus
)

// Profile holds the agronomic thresholds for one crop, evaluated over the
// 7-day planting window. Temperature bounds are °C on the mean daily
// maximum; rainfall bounds are mm summed over the window; HumidityMin is a
// fraction in [0, 1].
type Profile struct {
	Crop  Crop
	Group Group

	TempMin float64
	TempMax float64

	RainRule    RainRule
	RainMin     float64
	RainMax     float64
	HumidityMin float64
}

// profiles is the static threshold table. One row per crop; a generic
// vegetables row and a default row cover unspecified cases.
var profiles = map[Crop]Profile{
	CropMaize:       {Crop: CropMaize, Group: GroupCereals, TempMin: 18, TempMax: 30, RainRule: RainBand, RainMin: 30, RainMax: 100},
	CropWheat:       {Crop: CropWheat, Group: GroupCereals, TempMin: 15, TempMax: 25, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropSorghum:     {Crop: CropSorghum, Group: GroupCereals, TempMin: 22, TempMax: 35, RainRule: RainAtMostPreferred, RainMax: 50},
	CropMillet:      {Crop: CropMillet, Group: GroupCereals, TempMin: 22, TempMax: 35, RainRule: RainAtMostPreferred, RainMax: 50},
	CropRice:        {Crop: CropRice, Group: GroupCereals, TempMin: 20, TempMax: 35, RainRule: RainAtLeastIrrigable, RainMin: 50},
	CropBeans:       {Crop: CropBeans, Group: GroupLegumes, TempMin: 16, TempMax: 28, RainRule: RainBandForceWait, RainMin: 20, RainMax: 70},
	CropCowpea:      {Crop: CropCowpea, Group: GroupLegumes, TempMin: 20, TempMax: 32, RainRule: RainBand, RainMin: 25, RainMax: 70},
	CropPigeonPea:   {Crop: CropPigeonPea, Group: GroupLegumes, TempMin: 20, TempMax: 32, RainRule: RainBand, RainMin: 25, RainMax: 70},
	CropGroundnut:   {Crop: CropGroundnut, Group: GroupLegumes, TempMin: 20, TempMax: 32, RainRule: RainBand, RainMin: 25, RainMax: 70},
	CropCassava:     {Crop: CropCassava, Group: GroupRoots, TempMin: 20, TempMax: 32, RainRule: RainAtLeast, RainMin: 40},
	CropSweetPotato: {Crop: CropSweetPotato, Group: GroupRoots, TempMin: 15, TempMax: 27, RainRule: RainBand, RainMin: 30, RainMax: 80},
	CropPotato:      {Crop: CropPotato, Group: GroupRoots, TempMin: 15, TempMax: 27, RainRule: RainBand, RainMin: 30, RainMax: 80},
	CropVegetables:  {Crop: CropVegetables, Group: GroupVegetables, TempMin: 15, TempMax: 32, RainRule: RainAtLeast, RainMin: 15},
	CropTomato:      {Crop: CropTomato, Group: GroupVegetables, TempMin: 15, TempMax: 28, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropCabbage:     {Crop: CropCabbage, Group: GroupVegetables, TempMin: 15, TempMax: 28, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropKale:        {Crop: CropKale, Group: GroupVegetables, TempMin: 15, TempMax: 28, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropOnion:       {Crop: CropOnion, Group: GroupVegetables, TempMin: 15, TempMax: 28, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropTea:         {Crop: CropTea, Group: GroupCashCrops, TempMin: 18, TempMax: 26, RainRule: RainHumidityBonus, HumidityMin: 0.60},
	CropCoffee:      {Crop: CropCoffee, Group: GroupCashCrops, TempMin: 18, TempMax: 26, RainRule: RainHumidityBonus, HumidityMin: 0.60},
	CropBanana:      {Crop: CropBanana, Group: GroupCashCrops, TempMin: 22, TempMax: 32, RainRule: RainAtLeast, RainMin: 50},
	CropSugarcane:   {Crop: CropSugarcane, Group: GroupCashCrops, TempMin: 20, TempMax: 32, RainRule: RainAtLeast, RainMin: 40},
	CropSunflower:   {Crop: CropSunflower, Group: GroupCashCrops, TempMin: 18, TempMax: 28, RainRule: RainBand, RainMin: 20, RainMax: 60},
	CropCotton:      {Crop: CropCotton, Group: GroupCashCrops, TempMin: 20, TempMax: 30, RainRule: RainBand, RainMin: 25, RainMax: 70},
}

// defaultProfile applies when no crop, or an unknown crop, is given.
var defaultProfile = Profile{
	Crop: "", Group: "", TempMin: 18, TempMax: 30, RainRule: RainAtLeast, RainMin: 20,
}

// ProfileFor returns the threshold profile for the crop, falling back to
// the default profile for unknown crops.
func ProfileFor(crop Crop) Profile {
	if p, ok := profiles[crop]; ok {
		return p
	}
	p := defaultProfile
	p.Crop = crop
	return p
}

// CropNames lists the supported crop identifiers, sorted.
func CropNames() []string {
	names := make([]string, 0, len(profiles))
	for c := range profiles {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

// ParseCrop normalizes a caller-supplied crop name ("Sweet Potato" →
// sweet_potato). Returns false for names outside the supported set.
func ParseCrop(s string) (Crop, bool) {
	name := strings.ToLower(strings.TrimSpace(s))
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.ReplaceAll(name, "-", "_")
	c := Crop(name)
	_, ok := profiles[c]
	return c, ok
}

// Name returns the crop identifier with underscores replaced by spaces,
// for use in farmer-facing text.
func (c Crop) Name() string {
	return strings.ReplaceAll(string(c), "_", " ")
}
