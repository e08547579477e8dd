package reading

import (
	"strings"

	"github.com/ayusman/hastarekha/internal/palm"
)

// Finger ratio cut points, each relative to the middle finger.
const (
	thumbLong   = 0.5
	thumbShort  = 0.4
	indexLong   = 0.95
	indexShort  = 0.85
	ringLong    = 1.0
	ringShort   = 0.9
	pinkyLong   = 0.85
	pinkyShort  = 0.75
	middleLong  = 0.15 // absolute length
	wideWidth   = 0.6
	narrowWidth = 0.4
)

func join(fragments ...string) string {
	kept := fragments[:0]
	for _, f := range fragments {
		if f != "" {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}

// Career reads palm shape, head line slope, life line depth and thumb ratio.
func Career(f palm.Features, u UserContext) string {
	var base string
	switch f.Shape {
	case palm.ShapeSquare:
		base = "You are suited for careers that require organization and systematic thinking, such as engineering, scientific research, management, or law. You are planned in your approach, attentive to details, and able to effectively organize resources and teams."
	case palm.ShapeRectangular:
		base = "You are suited for creative and expressive careers, such as arts, design, writing, or performance. Your imagination and innovation ability are your career advantages, enabling you to propose novel ideas and solutions."
	default:
		base = "You are suited for careers requiring good interpersonal relationships and communication skills, such as education, consulting, sales, or service industries. You are good at understanding others' needs and can adapt flexibly to various situations."
	}

	var thinking string
	switch f.Lines.Head.Slope {
	case palm.SlopeAscending:
		thinking = "Your creative thinking enables you to innovate and pioneer, suitable for taking on groundbreaking work or tasks in the initiation phase of projects."
	case palm.SlopeHorizontal:
		thinking = "Your clear logical thinking makes you good at analysis and planning, suitable for work requiring systematic thinking and strategic planning."
	default:
		thinking = "Your practical thinking style makes you good at solving real problems, suitable for work requiring efficient execution and practical operations."
	}

	deep := f.Lines.Life.Depth == palm.DepthDeep
	strongThumb := f.ThumbRatio() > thumbLong
	var execution string
	switch {
	case deep && strongThumb:
		execution = "Your strong willpower and excellent execution ability enable you to continuously invest energy in long-term goals, which is an important factor in your career success."
	case deep || strongThumb:
		execution = "You have good execution ability and endurance, able to persistently advance your work, but sometimes may need to adjust your pace to maintain sustainability."
	default:
		execution = "Your working style is flexible and adaptable, but you may need to improve task continuity and completion rate, establishing more systematic working methods."
	}

	stage := LifeStage(Career, u.Age)
	if u.Age == Age26To35 && u.Gender == GenderFemale {
		stage = "This is the golden period of career development, and you may also face choices between work and family balance. It is recommended to find a balance point suitable for yourself and focus on establishing unique professional advantages."
	}

	return join(base, thinking, execution, stage)
}

// Wealth reads palm shape, pinky ratio and head line slope.
func Wealth(f palm.Features, u UserContext) string {
	square := f.Shape == palm.ShapeSquare
	communicator := f.PinkyRatio() > pinkyLong

	var acquisition string
	switch {
	case square && communicator:
		acquisition = "You have the ability to systematically plan and manage wealth, combined with excellent communication and business acumen, making you suitable for wealth acquisition through business operations or investments."
	case square:
		acquisition = "Your organizational ability and planning skills make you good at managing finances, suitable for accumulating wealth through stable investments and career development."
	case communicator:
		acquisition = "Your communication ability and social intelligence are important channels for wealth acquisition, suitable for creating wealth opportunities through sales, negotiation, or building extensive networking."
	case f.Shape == palm.ShapeRectangular && f.Lines.Head.Slope == palm.SlopeAscending:
		acquisition = "Your creativity and innovative thinking can be important sources of wealth acquisition, suitable for financial returns through creative projects, inventions, or artistic creations."
	default:
		acquisition = "Your wealth acquisition methods are diverse and flexible, possibly creating income through multiple channels and skill combinations."
	}

	var attitude string
	switch f.Lines.Head.Slope {
	case palm.SlopeHorizontal:
		attitude = "You have rational and systematic thinking about finances, good at analyzing risks and returns, which helps make wise financial decisions."
	case palm.SlopeDescending:
		attitude = "You have keen attention to financial details, good at optimizing daily expenses and management, which helps effectively utilize resources."
	default:
		attitude = "You have innovative thinking about finances, may be willing to try new types of investments or wealth growth methods, but need to balance risk and innovation."
	}

	var gender string
	switch u.Gender {
	case GenderFemale:
		gender = "As a woman, you may face special financial considerations such as career interruptions or longer life expectancy. It is recommended to establish independent financial identity and planning to ensure long-term financial security."
	case GenderMale:
		gender = "As a man, you may feel pressure to be the main provider. It is recommended to share financial planning openly with those close to you and avoid taking on risk alone to prove yourself."
	}

	return join(acquisition, attitude, LifeStage(Wealth, u.Age), gender)
}

// Health reads the life line.
func Health(f palm.Features, u UserContext) string {
	life := f.Lines.Life
	deep := life.Depth == palm.DepthDeep
	long := life.Length == palm.LengthLong

	var base string
	switch {
	case deep && long:
		base = "Your life line is deep, long, and clear, indicating that you have a good health foundation and vitality, with strong physical fitness and good recovery ability."
	case deep:
		base = "Your life line is deep and prominent, indicating that you have stronger vitality and recovery ability, with a good physical foundation."
	case long:
		base = "Your life line is long and extended, indicating your lasting vitality and potential for health and longevity, but you need to maintain good habits."
	default:
		base = "Your life line shows that your health condition may be more sensitive, requiring more attention to body signals and healthcare measures."
	}

	var lifestyle string
	switch life.Curve {
	case palm.CurveCurved:
		lifestyle = "You are suited for an active lifestyle, with regular exercise and social activities being beneficial to your health. Maintaining vitality and a positive attitude is an important factor in your health."
	case palm.CurveStraight:
		lifestyle = "You are suited for a regular and stable lifestyle, with planned health management and regular check-ups being important for you. Establishing good daily habits is the foundation of your health."
	default:
		lifestyle = "Your health may be more affected by life changes, and the ability to flexibly adjust your lifestyle and cope with stress is important for you. Maintaining balance and adaptability is key to health."
	}

	var gender string
	switch u.Gender {
	case GenderFemale:
		gender = "As a woman, you may need to pay extra attention to hormone balance, bone health, and mental health. It is recommended to have regular targeted check-ups and pay attention to self-care knowledge."
	case GenderMale:
		gender = "As a man, you may need to pay extra attention to cardiovascular health, prostate health, and stress management. It is recommended to have regular check-ups and maintain appropriate intensity of physical exercise."
	}

	return join(base, lifestyle, LifeStage(Health, u.Age), gender)
}

// Love reads the heart line and ring finger ratio.
func Love(f palm.Features, u UserContext) string {
	heart := f.Lines.Heart
	long := heart.Length == palm.LengthLong
	short := heart.Length == palm.LengthShort
	deep := heart.Depth == palm.DepthDeep

	var expression string
	switch {
	case long && deep:
		expression = "You are emotionally rich and express yourself directly, able to honestly express your feelings, tending to be proactive and enthusiastic in relationships."
	case long && heart.Depth == palm.DepthShallow:
		expression = "You are emotionally rich but express yourself subtly. Although your inner feelings are profound, you may tend to express care through actions rather than words."
	case short && deep:
		expression = "Your emotions are concentrated and intense, with high quality requirements for intimate relationships, and you may wholeheartedly invest in feelings for specific people."
	default:
		expression = "Your emotional expression is balanced and moderate, able to adjust the way and intensity of expression according to the relationship and occasion, focusing on the substance rather than the form of emotions."
	}

	var pattern string
	switch {
	case heart.Curve == palm.CurveCurved && f.RingRatio() > ringLong:
		pattern = "In relationships, you emphasize romance and ideals, pursuing emotional sublimation and spiritual compatibility, longing to grow and explore together with your partner."
	case heart.Curve == palm.CurveStraight:
		pattern = "In relationships, you emphasize practicality and pragmatism, valuing mutual support and daily companionship, expressing love through concrete actions, creating a stable foundation for the relationship."
	case heart.Curve == palm.CurveWavy:
		pattern = "Your love life may be rich and varied. In relationships, you expect freshness and depth, desire both intimacy and personal space, and need to balance these needs."
	default:
		pattern = "Your relationship pattern is balanced and stable, able to balance emotion and reason, find balance between giving and receiving, and establish lasting mutual trust."
	}

	var gender string
	switch u.Gender {
	case GenderFemale:
		gender = "As a woman, you may be more sensitive to emotional communication and connection in relationships. It is recommended to maintain this sensitivity while also paying attention to expressing your own needs and setting boundaries, creating an equal and healthy relationship."
	case GenderMale:
		gender = "As a man, you may focus more on actions and problem-solving in relationships. It is recommended to develop emotional expression and listening skills at the same time, allowing yourself to show vulnerability and needs, establishing deeper connections."
	}

	return join(expression, pattern, LifeStage(Love, u.Age), gender)
}

// Social reads palm shape, heart line, finger spacing and pinky ratio.
func Social(f palm.Features, u UserContext) string {
	shape, spacing := f.Shape, f.Spacing
	heart := f.Lines.Heart
	pinky := f.PinkyRatio()

	var style string
	switch {
	case shape == palm.ShapeRectangular && heart.Length == palm.LengthLong:
		style = "Your social style is outgoing and inclusive. You excel at connecting with various types of people, feel comfortable in social settings, and create a pleasant atmosphere."
	case shape == palm.ShapeSquare && heart.Length == palm.LengthShort:
		style = "Although your social style is rather reserved, you emphasize quality over quantity, tend to develop a few deep friendships, and value sincere and substantial communication."
	case pinky > pinkyLong:
		style = "You have excellent communication skills and social intelligence, able to keenly understand others' needs and emotions, suitable for functioning in environments requiring interpersonal interaction."
	default:
		style = "Your social approach is balanced and moderate, able to adjust your social intensity according to the occasion, enjoying both group activities and valuing time alone."
	}

	var mode string
	switch spacing {
	case palm.SpacingWide:
		mode = "You maintain a certain openness and independence in social interactions, appreciate a diverse network of relationships, are not bound by tradition or convention, and enjoy exploring different types of social connections."
	case palm.SpacingClose:
		mode = "You focus on building close social circles, are very loyal and committed to those close to you, may tend to deeply interact with like-minded people, forming a united small group."
	case palm.SpacingUneven:
		mode = "Your social network may present a multi-layered structure, with different social circles in different areas of life, able to flexibly adjust your role in various social environments."
	default:
		mode = "Your social network is balanced and stable, having both depth and breadth, able to maintain intimate relationships while also accepting new social possibilities."
	}

	var energy string
	switch {
	case shape == palm.ShapeRectangular && spacing == palm.SpacingWide:
		energy = "You have high social energy and needs, may enjoy being the center of social activities, gain energy through interaction with people, suitable for active social environments and team collaboration."
	case shape == palm.ShapeSquare && spacing == palm.SpacingClose:
		energy = "Your social energy is focused and measured, you may prefer planned social activities and deep conversations, prolonged casual socializing may drain your energy."
	default:
		energy = "Your social needs are balanced and flexible, able to adjust social investment according to your state and external environment, enjoying social pleasures while respecting the need for personal recovery time."
	}

	var advice string
	switch {
	case pinky < pinkyShort && heart.Length == palm.LengthShort:
		advice = "You may consider consciously expanding your social skills and network, trying to participate in more group activities or interest communities, which will help increase life opportunities and support systems."
	case pinky > pinkyLong && heart.Depth == palm.DepthShallow:
		advice = "You have excellent social abilities, but may need to pay attention to the depth of emotional investment and genuine connection, ensuring that social interactions are not just superficial but also meet emotional needs."
	case spacing == palm.SpacingClose && shape == palm.ShapeRectangular:
		advice = "You may have some internal conflicts in your social approach. It is recommended to find a way to balance independence and the need for intimacy, allowing yourself to present different social aspects in different situations."
	default:
		advice = "Continue to maintain your balanced social approach, adjust your social network according to changes in life stages, value relationships that can support and inspire each other, while also maintaining an open attitude towards new connections."
	}

	return join(style, mode, energy, LifeStage(Social, u.Age), advice)
}

// Wisdom reads the head line and index finger ratio.
func Wisdom(f palm.Features, u UserContext) string {
	head := f.Lines.Head
	long := head.Length == palm.LengthLong
	deep := head.Depth == palm.DepthDeep
	index := f.IndexRatio()

	var thinking string
	switch {
	case head.Slope == palm.SlopeAscending && long:
		thinking = "Your thinking is creative and imaginative, good at finding new solutions to problems, with a jumping and multi-dimensional thinking style, able to connect knowledge from different fields to generate new insights."
	case head.Slope == palm.SlopeHorizontal && long:
		thinking = "Your thinking is clear and organized, good at logical analysis and systematic thinking, able to break down complex problems and identify key factors, building effective solutions."
	case head.Slope == palm.SlopeDescending && deep:
		thinking = "Your thinking is deep and focused, good at deep thinking and understanding complex concepts, with keen observation of details, able to identify key points that others might overlook."
	case head.Length == palm.LengthShort:
		thinking = "Your thinking is direct and efficient, focusing on practical applications and results, able to make quick decisions and take action, performing excellently in situations requiring decisive action."
	default:
		thinking = "Your thinking is balanced and flexible, able to adjust thinking methods according to the context, integrating intuition and logic, maintaining adaptability in solving different types of problems."
	}

	var learning string
	switch {
	case deep && long:
		learning = "You are suited for deep learning and research, like to thoroughly understand concepts and principles, your learning process may be more systematic and comprehensive, focusing on establishing connections between knowledge and overall frameworks."
	case head.Slope == palm.SlopeAscending:
		learning = "You tend towards exploratory learning, enjoying acquiring knowledge through practice and experience, having a strong interest in innovative learning methods and interdisciplinary content, enjoying the process of discovering new insights."
	case head.Slope == palm.SlopeDescending:
		learning = "You are suited for focused and practical learning, consolidating knowledge through hands-on operation and application, emphasizing skill mastery and solving practical problems, with clear and specific learning goals."
	default:
		learning = "Your learning style is balanced and adaptive, able to choose suitable strategies according to the learning content, maintaining a good balance between theoretical learning and practical application."
	}

	var decision string
	switch {
	case index > indexLong && head.Slope == palm.SlopeAscending:
		decision = "In decision-making, you emphasize innovation and possibility, willing to try new methods and ideas, maintaining an open attitude when facing unknown situations, brave in exploring different choices."
	case index > indexLong:
		decision = "In decision-making, you have confidence and initiative, willing to take responsibility and risks, able to quickly make judgments and take action."
	case index < indexShort:
		decision = "In decision-making, you may be more cautious and thoughtful, valuing information collection and considering multiple factors, pursuing safe and reliable choices."
	default:
		decision = "Your decision-making style balances decisiveness and prudence, able to adjust the depth of the decision-making process according to the importance of the situation."
	}

	var advice string
	switch {
	case head.Slope == palm.SlopeAscending && head.Depth == palm.DepthShallow:
		advice = "It is recommended that you cultivate more structured thinking habits, transforming ideas into feasible plans through recording and organizing thoughts. Participate more in team collaboration to complement your creativity with others' systematic thinking."
	case head.Slope == palm.SlopeHorizontal && deep:
		advice = "It is recommended that you try more interdisciplinary learning and creative activities, expand thinking boundaries, increase flexibility and innovative perspectives. Regularly step out of analytical thinking and try intuitive and emotional decision-making approaches."
	case head.Slope == palm.SlopeDescending:
		advice = "It is recommended that you cultivate a more macro thinking perspective, enhance abstract thinking abilities through reading and learning. Try theoretical learning and conceptual tasks, balancing the knowledge structure of practice and theory."
	default:
		advice = "Continue to maintain your balanced thinking style, regularly reflect on your learning and thinking habits, consciously develop weaker cognitive areas to make your wisdom more comprehensive."
	}

	return join(thinking, learning, decision, LifeStage(Wisdom, u.Age), advice)
}

var focusAdvice = map[Domain]string{
	Career:    "In terms of career development, your palm indicates that you should focus on how to better match your personal traits with career needs, seeking career paths that can stimulate your full potential, rather than just following conventional tracks.",
	Wealth:    "In terms of wealth accumulation, your palm indicates that you may create value by utilizing your unique talents, rather than relying solely on traditional ways of wealth growth. Consider how to convert your advantages into sustainable economic returns.",
	Health:    "In terms of health, your palm indicates that maintaining mind-body balance is crucial for realizing your potential. Finding health practices suitable for your energy pattern will support your long-term growth and development.",
	Love:      "In terms of emotions, your palm indicates that finding a partner who can understand and support your true self will have a positive impact on your potential development. Genuine emotional connection is an important support system for you.",
	Social:    "In terms of social networking, your palm indicates that building quality rather than quantity relationships may be more beneficial for your development. Finding companions who can inspire and support each other will accelerate your growth.",
	Wisdom:    "In terms of wisdom development, your palm indicates that integrating different knowledge domains and forming unique insights is an important direction for your growth. Cross-disciplinary exploration will stimulate your innovative potential.",
	Potential: "In terms of personal potential, your palm indicates that your greatest growth comes from combining your strengths rather than perfecting a single one. Setting goals that stretch several abilities at once will keep you developing.",
}

// Potential combines several lines with palm shape and the user's focus area.
func Potential(f palm.Features, u UserContext) string {
	head, life, heart := f.Lines.Head, f.Lines.Life, f.Lines.Heart

	var base string
	switch {
	case head.Length == palm.LengthLong && life.Depth == palm.DepthDeep:
		base = "You have lasting focus and tenacious willpower, which are important qualities for achieving long-term goals. Your potential lies in persistently investing time and energy in important areas to ultimately reach a professional level."
	case head.Slope == palm.SlopeAscending && heart.Depth == palm.DepthDeep:
		base = "You combine creativity and emotional intelligence, which is a good foundation for development in humanities, arts, and creative fields. Your potential lies in combining inspiration with genuine emotions to create works or results with depth and resonance."
	case f.Shape == palm.ShapeSquare && head.Slope == palm.SlopeHorizontal:
		base = "Your organizational ability and systematic thinking are your significant advantages, which are valuable in management, planning, and scientific fields. Your potential lies in establishing and optimizing systems to improve efficiency and quality."
	default:
		base = "You have a balanced set of abilities and strong adaptability, enabling you to maintain effectiveness in changing environments. Your potential lies in flexibly using multiple strengths to play a role in comprehensive positions."
	}

	var challenge string
	switch {
	case life.Depth == palm.DepthShallow && head.Length == palm.LengthLong:
		challenge = "The challenge you may face is balancing energy and goals. It is recommended to learn energy management techniques, set reasonable progress expectations, and avoid depleting yourself while pursuing long-term goals."
	case heart.Depth == palm.DepthDeep && head.Slope == palm.SlopeHorizontal:
		challenge = "The challenge you may face is balancing emotion and rationality. It is recommended to consider both logical analysis and emotional intuition in important decisions, seeking comprehensive solutions that satisfy both."
	case f.Shape == palm.ShapeRectangular && head.Slope == palm.SlopeDescending:
		challenge = "The challenge you may face is balancing creativity and execution. It is recommended to establish systematic methods to transform ideas into reality, and you can seek partners with complementary skills to strengthen project implementation."
	default:
		challenge = "Each person's growth path has unique challenges. Regular reflection and self-awareness will help you identify and overcome factors that hinder the expression of your potential. Maintaining an open mindset and willingness to learn are key to continuous development."
	}

	return join(base, LifeStage(Potential, u.Age), focusAdvice[u.Focus], challenge)
}
