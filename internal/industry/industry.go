// Package industry provides keyword-based industry detection and the
// vocabulary tables used to score catalog candidates against a detected
// industry.
package industry

import "strings"

// Category is a broad industry grouping detected from a product description.
type Category int

// Industry categories. CategoryUnknown means no keyword set matched.
const (
	CategoryUnknown Category = iota
	CategoryMedical
	CategoryElectrical
	CategoryAutomotive
	CategoryTextile
	CategoryChemical
	CategoryEnergy
	CategoryMachinery
	CategoryAgricultural
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case CategoryMedical:
		return "medical"
	case CategoryElectrical:
		return "electrical"
	case CategoryAutomotive:
		return "automotive"
	case CategoryTextile:
		return "textile"
	case CategoryChemical:
		return "chemical"
	case CategoryEnergy:
		return "energy"
	case CategoryMachinery:
		return "machinery"
	case CategoryAgricultural:
		return "agricultural"
	default:
		return "unknown"
	}
}

// detectionOrder is a deliberate priority list, not alphabetical. A
// description matching several keyword sets resolves to the first entry
// here, so reordering changes classification outcomes.
var detectionOrder = []Category{
	CategoryMedical,
	CategoryElectrical,
	CategoryAutomotive,
	CategoryTextile,
	CategoryChemical,
	CategoryEnergy,
	CategoryMachinery,
	CategoryAgricultural,
}

var detectionTerms = map[Category][]string{
	CategoryMedical: {
		"blood pressure", "monitor", "medical", "healthcare", "diagnostic",
		"surgical", "therapeutic", "patient", "hospital", "clinical",
		"stethoscope", "thermometer", "syringe", "bandage", "x-ray",
		"ultrasound", "mri", "ct scan", "defibrillator", "pacemaker",
	},
	CategoryElectrical: {
		"electrical", "electronic", "electric", "wire", "cable", "conductor",
		"circuit", "semiconductor", "transistor", "capacitor", "resistor",
		"inverter", "converter", "transformer", "battery", "solar panel",
		"led", "lcd", "processor", "computer", "smartphone", "tablet",
	},
	CategoryAutomotive: {
		"automotive", "vehicle", "car", "truck", "motorcycle", "auto",
		"engine", "motor", "transmission", "brake", "tire", "wheel",
		"battery", "alternator", "carburetor", "radiator", "exhaust",
	},
	CategoryTextile: {
		"textile", "fabric", "cotton", "wool", "silk", "synthetic",
		"polyester", "nylon", "yarn", "thread", "fiber", "cloth",
		"woven", "knitted", "clothing", "apparel", "garment",
	},
	CategoryChemical: {
		"chemical", "compound", "solution", "acid", "base", "salt",
		"polymer", "plastic", "resin", "adhesive", "paint", "coating",
	},
	CategoryEnergy: {
		"solar", "photovoltaic", "inverter", "battery", "energy",
		"renewable", "wind", "hydroelectric", "generator", "panel",
	},
	CategoryMachinery: {
		"machinery", "machine", "industrial", "equipment", "automation",
		"controller", "control", "mechanical", "hydraulic", "pneumatic",
		"pump", "compressor", "motor", "gear", "bearing", "valve",
		"manufacturing", "processing", "assembly", "production",
	},
	CategoryAgricultural: {
		"agricultural", "agriculture", "farming", "farm", "food processing",
		"harvesting", "planting", "irrigation", "tractor", "cultivator",
		"seeder", "thresher", "combine", "plow", "fertilizer", "pesticide",
		"dairy", "livestock", "grain", "crop", "produce",
	},
}

// Detect classifies a normalized description into its industry category.
// The first category whose keyword set matches wins.
func Detect(description string) Category {
	for _, c := range detectionOrder {
		if containsAny(description, detectionTerms[c]) {
			return c
		}
	}
	return CategoryUnknown
}

// Canonical vocabulary for the tariff chapters each industry maps to.
var (
	instrumentTerms = []string{
		"medical", "surgical", "dental", "veterinary", "instrument",
		"diagnostic", "therapeutic", "orthopaedic", "fracture", "artificial",
		"hearing aid", "pacemaker", "syringe", "needle", "catheter",
		"x-ray", "ultrasonic", "electro-diagnostic", "patient monitoring",
	}
	electricalEquipmentTerms = []string{
		"electrical", "electronic", "electric", "conductor", "semiconductor",
		"circuit", "transistor", "diode", "capacitor", "resistor",
		"transformer", "generator", "motor", "battery", "accumulator",
		"solar cell", "photovoltaic", "led", "lcd", "computer", "telephone",
	}
	vehicleTerms = []string{
		"vehicle", "automobile", "motor car", "truck", "bus", "motorcycle",
		"chassis", "body", "tractor", "trailer", "tank", "armoured",
	}
	machineryEquipmentTerms = []string{
		"engine", "motor", "pump", "compressor", "turbine", "generator",
		"machinery", "mechanical", "industrial", "equipment",
	}
	textileVocabTerms = []string{
		"cotton", "wool", "silk", "textile", "fabric", "yarn", "thread",
		"woven", "knitted", "clothing", "garment", "apparel",
	}
	chemicalVocabTerms = []string{
		"chemical", "compound", "acid", "base", "salt", "element",
		"polymer", "plastic", "resin", "adhesive", "paint", "coating",
	}
)

// ScoreProfile carries the vocabulary and score levels used to judge a
// candidate description once a category has been detected. Candidates
// outside the industry are penalized, not merely left unscored.
type ScoreProfile struct {
	Strong       []string
	Related      []string
	StrongScore  float64
	RelatedScore float64
	Penalty      float64
}

// Score rates a candidate catalog description against the profile.
func (p *ScoreProfile) Score(candidateDesc string) float64 {
	if containsAny(candidateDesc, p.Strong) {
		return p.StrongScore
	}
	if len(p.Related) > 0 && containsAny(candidateDesc, p.Related) {
		return p.RelatedScore
	}
	return p.Penalty
}

var scoreProfiles = map[Category]*ScoreProfile{
	CategoryMedical: {
		Strong:       instrumentTerms,
		Related:      []string{"blood", "plasma", "pharmaceutical", "medicine"},
		StrongScore:  0.95,
		RelatedScore: 0.75,
		Penalty:      0.1,
	},
	CategoryElectrical: {
		Strong:       electricalEquipmentTerms,
		Related:      []string{"wire", "cable", "power", "voltage"},
		StrongScore:  0.95,
		RelatedScore: 0.80,
		Penalty:      0.1,
	},
	CategoryAutomotive: {
		Strong:       concat(vehicleTerms, machineryEquipmentTerms),
		Related:      []string{"parts", "accessories"},
		StrongScore:  0.95,
		RelatedScore: 0.80,
		Penalty:      0.1,
	},
	CategoryTextile: {
		Strong:      textileVocabTerms,
		StrongScore: 0.95,
		Penalty:     0.2,
	},
	CategoryChemical: {
		Strong:      chemicalVocabTerms,
		StrongScore: 0.95,
		Penalty:     0.2,
	},
	CategoryEnergy: {
		Strong:      concat(electricalEquipmentTerms, machineryEquipmentTerms),
		StrongScore: 0.95,
		Penalty:     0.2,
	},
}

// Profile returns the scoring vocabulary for a category, or nil when the
// category scores via the generic lexical fallback (machinery,
// agricultural, unknown).
func (c Category) Profile() *ScoreProfile {
	return scoreProfiles[c]
}

// wrongContextPairs lists query-term/candidate-term combinations that mark
// a match as cross-domain noise. The table is asymmetric on purpose.
var wrongContextPairs = [][2]string{
	{"medical", "food"},
	{"electronic", "textile"},
	{"automotive", "chemical"},
	{"textile", "machinery"},
	{"chemical", "food"},
}

// WrongContext reports whether a candidate description is an obviously
// wrong match for the query description.
func WrongContext(query, candidateDesc string) bool {
	for _, pair := range wrongContextPairs {
		if strings.Contains(query, pair[0]) && strings.Contains(candidateDesc, pair[1]) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
