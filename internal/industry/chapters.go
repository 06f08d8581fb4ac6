package industry

// relatedChapters maps a tariff chapter to chapters that are logically
// adjacent to it: textile chapters are mutually adjacent, electrical /
// machinery / instruments form a cluster, and so on.
var relatedChapters = map[int][]int{
	// Electronics and electrical
	85: {84, 90, 94},
	84: {85, 87, 90},
	90: {84, 85, 94},

	// Textiles and apparel
	61: {62, 63, 42},
	62: {61, 63, 42},
	63: {61, 62, 42},
	42: {61, 62, 64},

	// Metals
	72: {73, 74, 76},
	73: {72, 74, 76},

	// Plastics and chemicals
	39: {40, 84, 85},
	40: {39, 64, 87},

	// Vehicles and transport
	87: {84, 40, 73},

	// Food and agriculture
	16: {17, 18, 19, 20},
	17: {16, 18, 19, 20},
	18: {16, 17, 19, 20},
	19: {16, 17, 18, 20},
	20: {16, 17, 18, 19},
}

// RelatedChapters returns the chapters adjacent to the given chapter, or
// an empty slice when no adjacency is configured.
func RelatedChapters(chapter int) []int {
	related := relatedChapters[chapter]
	out := make([]int, len(related))
	copy(out, related)
	return out
}
