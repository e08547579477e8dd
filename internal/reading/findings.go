package reading

import (
	"fmt"
	"strings"

	"github.com/ayusman/hastarekha/internal/palm"
)

// KeyFindings summarizes the palm in five to seven short sentences: shape,
// the three lines, the focus area, then up to two age and gender notes.
func KeyFindings(f palm.Features, u UserContext) []string {
	findings := make([]string, 0, 7)

	findings = append(findings, fmt.Sprintf("Your palm is %s, indicating you are %s.",
		f.Shape, strings.ToLower(shapeTraits(f.Shape).Personality)))

	life := f.Lines.Life
	vitality := "sensitive"
	if life.Depth == palm.DepthDeep {
		vitality = "strong"
	}
	findings = append(findings, fmt.Sprintf("Your life line is %s and %s with a %s length, indicating %s vitality.",
		lower(life.Depth), lower(life.Curve), lower(life.Length), vitality))

	head := f.Lines.Head
	style := "practical"
	switch head.Slope {
	case palm.SlopeAscending:
		style = "creative"
	case palm.SlopeHorizontal:
		style = "logical"
	}
	findings = append(findings, fmt.Sprintf("Your head line is %s and %s with a %s length, indicating a %s thinking style.",
		lower(head.Depth), lower(head.Slope), lower(head.Length), style))

	heart := f.Lines.Heart
	expression := "restrained and stable"
	if heart.Depth == palm.DepthDeep {
		expression = "rich and intense"
	}
	findings = append(findings, fmt.Sprintf("Your heart line is %s and %s with %s, indicating %s emotional expression.",
		lower(heart.Depth), lower(heart.Length), forks(heart.Forks), expression))

	findings = append(findings, fmt.Sprintf("From your palm features, your %s is: %s", focusLabel(u.Focus), FocusSummary(u.Focus, f)))

	switch u.Age {
	case AgeUnder18:
		findings = append(findings, "You are in the early stage of life development, and your palm indicates that you have great potential and plasticity.")
	case AgeAbove60:
		findings = append(findings, "You have rich life experience, and your palm indicates that you have accumulated wisdom and experience.")
	}

	switch {
	case u.Gender == GenderFemale && u.Age == Age18To25:
		findings = append(findings, "As a young woman, your palm indicates strong adaptability and potential leadership.")
	case u.Gender == GenderMale && u.Age == Age36To45:
		findings = append(findings, "As a mature man, your palm indicates a stable career foundation and thoughtful decision-making style.")
	}

	return findings
}

func lower[T ~string](v T) string { return strings.ToLower(string(v)) }

func forks(n int) string {
	switch n {
	case 0:
		return "no forks"
	case 1:
		return "one fork"
	default:
		return fmt.Sprintf("%d forks", n)
	}
}

func focusLabel(d Domain) string {
	switch d {
	case Career:
		return "career strength"
	case Wealth:
		return "wealth pattern"
	case Health:
		return "health indicator"
	case Love:
		return "love pattern"
	case Social:
		return "social pattern"
	case Wisdom:
		return "thinking pattern"
	default:
		return "growth pattern"
	}
}

// FocusSummary is a one-line summary of the palm for a single domain.
func FocusSummary(d Domain, f palm.Features) string {
	switch d {
	case Career:
		return careerStrength(f)
	case Wealth:
		return wealthPattern(f)
	case Health:
		return healthIndicator(f)
	case Love:
		return lovePattern(f)
	case Social:
		return socialPattern(f)
	case Wisdom:
		return thinkingPattern(f)
	default:
		return growthPattern(f)
	}
}

func careerStrength(f palm.Features) string {
	slope := f.Lines.Head.Slope
	strongThumb := f.ThumbRatio() > thumbLong
	switch {
	case slope == palm.SlopeAscending && strongThumb:
		return "Suitable for innovative work, able to turn creativity into practical action."
	case slope == palm.SlopeHorizontal && strongThumb:
		return "Suitable for management roles requiring system thinking and execution."
	case slope == palm.SlopeDescending:
		return "Suitable for detailed and focused professional work."
	default:
		return "You can balance innovation and execution in your work, adaptable."
	}
}

func wealthPattern(f palm.Features) string {
	square := f.Shape == palm.ShapeSquare
	communicator := f.PinkyRatio() > pinkyLong
	switch {
	case square && communicator:
		return "Good at system planning finances, having stable financial management and business mind."
	case communicator:
		return "Having strong business sense, good at identifying and seizing opportunities."
	case square:
		return "Strict financial management, focusing on long-term stable wealth accumulation."
	default:
		return "Balanced wealth view, able to enjoy life and reasonably save."
	}
}

func healthIndicator(f palm.Features) string {
	deep := f.Lines.Life.Depth == palm.DepthDeep
	long := f.Lines.Life.Length == palm.LengthLong
	switch {
	case deep && long:
		return "Robust health, strong vitality, good health foundation."
	case deep:
		return "Energetic, strong resistance, but need to pay attention to maintaining regular life."
	case long:
		return "Stable health condition, long-lasting vitality, need to pay attention to maintaining good lifestyle."
	default:
		return "More sensitive constitution, need more attention to health and lifestyle balance."
	}
}

func lovePattern(f palm.Features) string {
	deep := f.Lines.Heart.Depth == palm.DepthDeep
	many := f.Lines.Heart.Forks > 1
	switch {
	case deep && many:
		return "Rich and complex emotions, possibly experiencing multiple important relationships, having deep love experience."
	case deep:
		return "Deep emotional investment, valuing close relationships, seeking true emotional connection."
	case many:
		return "Diverse emotional life, able to maintain self in different relationships."
	default:
		return "Stable and consistent emotional attitude, valuing relationship quality rather than quantity."
	}
}

func socialPattern(f palm.Features) string {
	switch {
	case f.PinkyRatio() > pinkyLong:
		return "Natural communicator who builds connections easily."
	case f.Spacing == palm.SpacingClose:
		return "Loyal to a close circle, valuing depth over breadth in friendships."
	case f.Spacing == palm.SpacingWide:
		return "Open and independent, drawn to a wide and varied network."
	default:
		return "Balanced social life, comfortable both in groups and alone."
	}
}

func thinkingPattern(f palm.Features) string {
	head := f.Lines.Head
	switch {
	case head.Slope == palm.SlopeAscending:
		return "Inventive thinker who connects ideas across fields."
	case head.Slope == palm.SlopeHorizontal && head.Depth == palm.DepthDeep:
		return "Analytical mind suited to structured problem solving."
	case head.Slope == palm.SlopeDescending:
		return "Practical learner who masters skills through application."
	default:
		return "Flexible thinker who adapts methods to the problem at hand."
	}
}

func growthPattern(f palm.Features) string {
	switch {
	case f.Lines.Head.Length == palm.LengthLong && f.Lines.Life.Depth == palm.DepthDeep:
		return "Long-term achiever whose persistence turns goals into expertise."
	case f.Shape == palm.ShapeSquare:
		return "Organizer whose systems and planning create lasting results."
	default:
		return "Versatile talent whose adaptability opens many paths."
	}
}
