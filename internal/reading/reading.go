package reading

import (
	"github.com/ayusman/hastarekha/internal/palm"
)

// Generator produces one domain reading.
type Generator func(palm.Features, UserContext) string

var generators = map[Domain]Generator{
	Career:    Career,
	Wealth:    Wealth,
	Health:    Health,
	Love:      Love,
	Social:    Social,
	Wisdom:    Wisdom,
	Potential: Potential,
}

// Set is the complete output of one reading.
type Set struct {
	Readings    map[Domain]string `json:"readings"`
	KeyFindings []string          `json:"keyFindings"`
	Palm        PalmAnalysis      `json:"palmAnalysis"`
	Lines       LineAnalysis      `json:"lineAnalysis"`
	Fingers     FingerAnalysis    `json:"fingerAnalysis"`
}

// Generate runs every domain generator plus the findings and analyses.
// It is deterministic for a given features and context pair.
func Generate(f palm.Features, u UserContext) Set {
	readings := make(map[Domain]string, len(Domains))
	for _, d := range Domains {
		readings[d] = generators[d](f, u)
	}

	return Set{
		Readings:    readings,
		KeyFindings: KeyFindings(f, u),
		Palm:        AnalyzePalm(f),
		Lines:       AnalyzeLines(f.Lines),
		Fingers:     AnalyzeFingers(f),
	}
}

// For returns the reading for a single domain.
func For(d Domain, f palm.Features, u UserContext) string {
	if g, ok := generators[d]; ok {
		return g(f, u)
	}
	return Potential(f, u)
}
