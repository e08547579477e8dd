package reading

import (
	"github.com/ayusman/hastarekha/internal/palm"
)

// ShapeTraits describes what a palm shape says about personality.
type ShapeTraits struct {
	Personality string `json:"personality"`
	Strengths   string `json:"strengths"`
	Weaknesses  string `json:"weaknesses"`
	Career      string `json:"career"`
}

// PalmAnalysis interprets palm shape and width.
type PalmAnalysis struct {
	Shape       palm.Shape  `json:"shape"`
	Description string      `json:"description"`
	Traits      ShapeTraits `json:"characteristics"`
	Width       string      `json:"widthAnalysis"`
}

// LifeLineAnalysis interprets the life line.
type LifeLineAnalysis struct {
	General    string `json:"general"`
	Health     string `json:"health"`
	Vitality   string `json:"vitality"`
	Challenges string `json:"challenges"`
}

// HeadLineAnalysis interprets the head line.
type HeadLineAnalysis struct {
	Thinking  string `json:"thinking"`
	Learning  string `json:"learning"`
	Decisions string `json:"decisions"`
	Career    string `json:"career"`
}

// HeartLineAnalysis interprets the heart line.
type HeartLineAnalysis struct {
	Emotions      string `json:"emotions"`
	Relationships string `json:"relationships"`
	Love          string `json:"love"`
	Balance       string `json:"balance"`
}

// LineAnalysis groups the three line interpretations.
type LineAnalysis struct {
	Life  LifeLineAnalysis  `json:"lifeLine"`
	Head  HeadLineAnalysis  `json:"headLine"`
	Heart HeartLineAnalysis `json:"heartLine"`
}

// FingerAnalysis interprets each finger and names the longest.
type FingerAnalysis struct {
	Thumb    string `json:"thumb"`
	Index    string `json:"index"`
	Middle   string `json:"middle"`
	Ring     string `json:"ring"`
	Pinky    string `json:"pinky"`
	Dominant string `json:"dominant"`
	Meaning  string `json:"dominantMeaning"`
}

var traits = map[palm.Shape]ShapeTraits{
	palm.ShapeSquare: {
		Personality: "Practical, rational, organized",
		Strengths:   "Strong organizational ability, solid work ethic",
		Weaknesses:  "Sometimes stubborn",
		Career:      "Suitable for science, engineering, management and other professions",
	},
	palm.ShapeRectangular: {
		Personality: "Idealistic, sensitive, creative",
		Strengths:   "Rich imagination, good at expression",
		Weaknesses:  "May lack practicality",
		Career:      "Suitable for arts, design, writing and other creative professions",
	},
	palm.ShapeElliptical: {
		Personality: "Balanced, adaptable, accommodating",
		Strengths:   "Good at handling interpersonal relationships, strong adaptability",
		Weaknesses:  "Sometimes indecisive",
		Career:      "Suitable for sales, diplomacy, service and other professions requiring good communication",
	},
}

func shapeTraits(s palm.Shape) ShapeTraits {
	if t, ok := traits[s]; ok {
		return t
	}
	return traits[palm.ShapeElliptical]
}

// AnalyzePalm interprets shape and width.
func AnalyzePalm(f palm.Features) PalmAnalysis {
	a := PalmAnalysis{Shape: f.Shape, Traits: shapeTraits(f.Shape)}

	switch f.Shape {
	case palm.ShapeSquare:
		a.Description = "Indicates practicality and organization, with analytical abilities and firm determination."
	case palm.ShapeRectangular:
		a.Description = "Indicates sensitivity, imagination, quick thinking, and often interest in arts."
	default:
		a.Description = "Indicates a balanced personality, strong adaptability, good communication, and understanding."
	}

	switch {
	case f.PalmWidth > wideWidth:
		a.Width = "Your palm is relatively wide, indicating that you are warm and open to people, and enjoy socializing."
	case f.PalmWidth < narrowWidth:
		a.Width = "Your palm is relatively narrow, indicating that you are cautious and value your privacy and inner world."
	default:
		a.Width = "Your palm width is moderate, indicating that you can both socialize and be alone, maintaining a good balance."
	}
	return a
}

// AnalyzeLines interprets the life, head and heart lines.
func AnalyzeLines(q palm.LineQualities) LineAnalysis {
	return LineAnalysis{
		Life:  analyzeLife(q.Life),
		Head:  analyzeHead(q.Head),
		Heart: analyzeHeart(q.Heart),
	}
}

func analyzeLife(l palm.LifeLine) LifeLineAnalysis {
	var a LifeLineAnalysis

	if l.Depth == palm.DepthDeep {
		a.General = "Your life line is deep and clear, indicating robust health and strong vitality."
		a.Vitality = "You are energetic and can withstand considerable pressure and challenges."
	} else {
		a.General = "Your life line is relatively shallow, indicating a sensitive constitution that reacts strongly to environmental changes."
		a.Vitality = "You need to pay attention to energy management and avoid excessive fatigue."
	}

	switch l.Length {
	case palm.LengthLong:
		a.Health = "Long-lasting vitality, stable health condition, with greater potential for longevity."
		a.Challenges = "There will be some challenges in life, but you can overcome them with your perseverance."
	case palm.LengthMedium:
		a.Health = "Overall good health condition, paying attention to reasonable work and rest schedules can keep you energetic."
		a.Challenges = "You will face some ups and downs in life, but they won't pose major difficulties."
	default:
		a.Health = "Your constitution may be more sensitive, requiring more attention to health and lifestyle."
		a.Challenges = "You may face health or energy challenges during certain periods, it is recommended to develop good habits."
	}

	switch l.Curve {
	case palm.CurveCurved:
		a.General += " The life line is arched, indicating that you are energetic and face life positively."
	case palm.CurveStraight:
		a.General += " The life line is relatively straight, indicating that you are cautious and don't take risks easily."
	default:
		a.General += " The life line is wavy, indicating that your life may experience some fluctuations and changes."
	}
	return a
}

func analyzeHead(h palm.HeadLine) HeadLineAnalysis {
	var a HeadLineAnalysis

	if h.Depth == palm.DepthDeep {
		a.Thinking = "Your thinking is clear and deep, and you can analyze problems in depth."
		a.Decisions = "You will carefully consider various factors when making decisions and are not easily influenced by external factors."
	} else {
		a.Thinking = "Your thinking is flexible and variable, and you easily accept new ideas."
		a.Decisions = "You will consider emotional factors when making decisions, sometimes relying on intuition."
	}

	switch h.Length {
	case palm.LengthLong:
		a.Learning = "Strong learning ability, comprehensive thinking, good at considering problems from multiple angles."
		a.Career = "Suitable for work that requires deep thinking and comprehensive analysis."
	case palm.LengthMedium:
		a.Learning = "Balanced learning ability, with both analytical and practical abilities."
		a.Career = "Suitable for work that requires a combination of theory and practice."
	default:
		a.Learning = "Tend towards concrete and practical thinking, good at solving practical problems."
		a.Career = "Suitable for work that requires strong hands-on ability and quick decision-making."
	}

	switch h.Slope {
	case palm.SlopeAscending:
		a.Thinking += " The head line curves upward, indicating that you have creative thinking and a rich imagination."
	case palm.SlopeHorizontal:
		a.Thinking += " The head line is straight, indicating that your thinking is logical, rational, and objective."
	default:
		a.Thinking += " The head line curves downward, indicating that your thinking is practical, detail-oriented, and pragmatic."
	}
	return a
}

func analyzeHeart(h palm.HeartLine) HeartLineAnalysis {
	var a HeartLineAnalysis

	if h.Depth == palm.DepthDeep {
		a.Emotions = "Your emotions are rich and deep, and you have strong feelings."
		a.Relationships = "You invest sincerity in interpersonal relationships and value emotional connections."
	} else {
		a.Emotions = "Your emotional expression is relatively restrained, not easily swayed by external factors."
		a.Relationships = "You maintain a certain distance in interpersonal relationships and value rational analysis."
	}

	switch h.Length {
	case palm.LengthLong:
		a.Love = "You are generous and open-hearted in love, willing to sacrifice for love."
		a.Balance = "You may need to pay attention to not over-giving and maintain boundaries."
	case palm.LengthMedium:
		a.Love = "You have both passion and reason in love, maintaining a balance."
		a.Balance = "You can find a balance between giving and self-protection."
	default:
		a.Love = "You are cautious in love, needing time to build trust."
		a.Balance = "You may need to learn to express emotions more openly and deepen intimate relationships."
	}

	switch {
	case h.Forks > 1:
		a.Emotions += " The heart line has multiple forks, indicating that your emotional life is rich and colorful, possibly experiencing multiple important relationships."
	case h.Forks == 1:
		a.Emotions += " The heart line has a single fork, indicating that there may be a significant turning point or decisive relationship in your emotional life."
	default:
		a.Emotions += " The heart line has no obvious forks, indicating that your emotional attitude is relatively stable and consistent."
	}
	return a
}

// AnalyzeFingers interprets each finger against the middle finger.
func AnalyzeFingers(f palm.Features) FingerAnalysis {
	var a FingerAnalysis

	switch thumb := f.ThumbRatio(); {
	case thumb > thumbLong:
		a.Thumb = "Your thumb is relatively long, indicating strong willpower and leadership ability, good at turning ideas into actions."
	case thumb < thumbShort:
		a.Thumb = "Your thumb is relatively short, indicating flexible and adaptable work style, not stuck in routine."
	default:
		a.Thumb = "Your thumb length is moderate, indicating a balance between willpower and flexibility, able to stick to goals and adjust direction."
	}

	switch index := f.IndexRatio(); {
	case index > indexLong:
		a.Index = "Your index finger is relatively long, indicating strong confidence and leadership desire, pursuing achievements."
	case index < indexShort:
		a.Index = "Your index finger is relatively short, indicating low-key and modest, not wanting to attract attention."
	default:
		a.Index = "Your index finger length is moderate, indicating confident but not arrogant, having goals but not overstating."
	}

	if f.FingerLengths.Middle > middleLong {
		a.Middle = "Your middle finger is relatively long, indicating strong responsibility and good time management ability, doing things seriously and responsibly."
	} else {
		a.Middle = "Your middle finger length is moderate, indicating both responsibility and not being too stuck in rules."
	}

	switch ring := f.RingRatio(); {
	case ring > ringLong:
		a.Ring = "Your ring finger is relatively long, indicating outstanding artistic talent and strong aesthetic sense and creative ability."
	case ring < ringShort:
		a.Ring = "Your ring finger is relatively short, indicating practical and rational, focusing more on functionality than artistry."
	default:
		a.Ring = "Your ring finger length is moderate, indicating a balance between artistic sense and practicality, able to appreciate beauty and focus on reality."
	}

	switch pinky := f.PinkyRatio(); {
	case pinky > pinkyLong:
		a.Pinky = "Your pinky finger is relatively long, indicating excellent communication ability and good at expressing, possibly having business talent."
	case pinky < pinkyShort:
		a.Pinky = "Your pinky finger is relatively short, indicating direct and concise, not wanting to say too much, focusing on substantive content."
	default:
		a.Pinky = "Your pinky finger length is moderate, indicating a balance in communication ability, able to express and listen."
	}

	a.Dominant, a.Meaning = dominantFinger(f.FingerLengths)
	return a
}

// dominantFinger picks the longest finger. Ties go to the finger nearest the thumb.
func dominantFinger(l palm.FingerLengths) (string, string) {
	fingers := []struct {
		name    string
		length  float64
		meaning string
	}{
		{"Thumb", l.Thumb, "Indicates strong willpower and outstanding leadership ability."},
		{"Index", l.Index, "Indicates a sense of authority, strong decision-making ability, suitable for management roles."},
		{"Middle", l.Middle, "Indicates strong sense of responsibility, emphasis on balance and justice."},
		{"Ring", l.Ring, "Indicates strong artistic perception and unique insight into beauty."},
		{"Pinky", l.Pinky, "Indicates excellent communication skills, strong social and expression abilities."},
	}

	best := fingers[0]
	for _, f := range fingers[1:] {
		if f.length > best.length {
			best = f
		}
	}
	return best.name, best.meaning
}
