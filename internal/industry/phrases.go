package industry

import "strings"

// keyTermStopList excludes filler words from the key-term backup phrases.
var keyTermStopList = map[string]bool{
	"with": true,
	"from": true,
	"used": true,
	"made": true,
	"type": true,
}

// MeaningfulPhrases builds the search phrases for the semantic phrase
// stage: industry-specific phrase templates for the detected category,
// always followed by the full description and up to three key terms as a
// backup. Duplicates are removed, preserving first occurrence order.
func MeaningfulPhrases(c Category, description string) []string {
	var phrases []string

	switch c {
	case CategoryElectrical:
		if strings.Contains(description, "wire") || strings.Contains(description, "cable") {
			phrases = append(phrases,
				"insulated wire", "electrical cable", "conductor cable",
				"wire cable", "electric cable", "insulated cable")
			if strings.Contains(description, "copper") {
				phrases = append(phrases, "copper conductor", "copper cable")
			}
		}
		if strings.Contains(description, "module") || strings.Contains(description, "communication") {
			phrases = append(phrases, "communication equipment", "electronic module")
		}
		if strings.Contains(description, "component") || strings.Contains(description, "electronic") {
			phrases = append(phrases, "electronic component", "electrical component")
		}

	case CategoryMedical:
		phrases = append(phrases, "medical instrument", "medical device", "medical equipment")
		if strings.Contains(description, "monitor") {
			phrases = append(phrases, "monitoring device", "patient monitor")
		}
		if strings.Contains(description, "diagnostic") {
			phrases = append(phrases, "diagnostic equipment", "medical diagnostic")
		}

	case CategoryAutomotive:
		phrases = append(phrases, "motor vehicle", "automotive part", "vehicle component")
		if strings.Contains(description, "battery") {
			phrases = append(phrases, "vehicle battery", "automotive battery", "electric vehicle")
		}
		if strings.Contains(description, "controller") {
			phrases = append(phrases, "vehicle controller", "automotive controller")
		}

	case CategoryTextile:
		phrases = append(phrases, "textile fabric", "woven fabric", "textile material")
		if strings.Contains(description, "performance") {
			phrases = append(phrases, "technical textile", "performance fabric")
		}

	case CategoryChemical:
		phrases = append(phrases, "chemical product", "chemical compound")
		if strings.Contains(description, "organic") {
			phrases = append(phrases, "organic chemical", "organic compound")
		}

	case CategoryEnergy:
		phrases = append(phrases, "electrical equipment", "power equipment")
		if strings.Contains(description, "solar") {
			phrases = append(phrases, "solar equipment", "photovoltaic")
		}
		if strings.Contains(description, "inverter") {
			phrases = append(phrases, "power inverter", "electrical inverter")
		}

	case CategoryMachinery:
		phrases = append(phrases, "industrial machinery", "mechanical equipment")
		if strings.Contains(description, "automation") {
			phrases = append(phrases, "automation equipment", "control equipment")
		}

	case CategoryAgricultural:
		phrases = append(phrases,
			"agricultural machinery", "food processing",
			"agricultural equipment", "processing equipment")
	}

	// The full description always participates, so specific catalog
	// wording can still win over the templates.
	phrases = append(phrases, description)

	// Key product terms as backup
	var keyTerms []string
	for _, word := range strings.Fields(description) {
		if len(word) > 3 && !keyTermStopList[word] {
			keyTerms = append(keyTerms, word)
		}
	}
	if len(keyTerms) > 3 {
		keyTerms = keyTerms[:3]
	}
	phrases = append(phrases, keyTerms...)

	return dedupe(phrases)
}

func dedupe(phrases []string) []string {
	seen := make(map[string]bool, len(phrases))
	out := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
