package reading

// lifeStages holds one paragraph per age bracket for each domain.
// Career 26-35 is split by gender in Career itself.
var lifeStages = map[Domain]map[AgeBracket]string{
	Career: {
		AgeUnder18: "In the early stages of career development, it is recommended that you try different fields to find directions that match your characteristics, and emphasize the cultivation of basic skills.",
		Age18To25:  "This is a critical period for establishing career foundations. It is recommended to balance professional depth and breadth, while developing interpersonal networks to pave the way for future development.",
		Age26To35:  "This is an acceleration period for career development. It is recommended to delve deep into professional fields while expanding management and leadership capabilities to prepare for mid-career transitions.",
		Age36To45:  "This is a career maturity period. You may have accumulated rich experience. It is recommended to think about how to use experience to create greater value, while starting to cultivate and guide the new generation of talent.",
		Age46To60:  "This is a career harvest period. It is recommended to use your experience and wisdom, consider how to pass on knowledge, and prepare for late-career planning.",
		AgeAbove60: "At this stage, you have rich life experience and can consider how to share your professional knowledge and experience, or turn to consulting, guidance, or volunteer services.",
	},
	Wealth: {
		AgeUnder18: "At your age, money is best approached as a skill to learn. Understanding where pocket money goes and practicing small savings goals builds habits that will serve you for decades.",
		Age18To25:  "This stage is key for establishing financial awareness and habits. It is recommended to learn basic financial knowledge, develop saving habits, and start small investment attempts.",
		Age26To35:  "This is an acceleration period for wealth accumulation. It is recommended to balance short-term goals and long-term planning, such as housing, investment, and retirement preparation, while improving career income capabilities.",
		Age36To45:  "This is a critical period for wealth management. It is recommended to optimize investment portfolios, balance risks, and may need to consider family financial planning and education expenses.",
		Age46To60:  "This is an important stage for retirement preparation. It is recommended to assess retirement needs, adjust investment strategies, and consider asset preservation and inheritance planning.",
		AgeAbove60: "This stage focuses on the reasonable use and transfer of wealth. It is recommended to ensure financial security while considering how to use wealth to improve quality of life and achieve personal value.",
	},
	Health: {
		AgeUnder18: "Adolescence is a critical time to establish healthy habits. It is recommended to focus on a balanced diet, adequate rest, active participation in sports, and building a good foundation for physical and mental health.",
		Age18To25:  "This age group may face academic or work pressure. It is recommended to maintain regular routines, moderate exercise, pay attention to mental health, and avoid over-reliance on stimulants.",
		Age26To35:  "This is a critical period for career development and also for consolidating healthy habits. It is recommended to maintain a healthy diet while working busy schedules, exercise regularly, and start paying attention to health check-ups.",
		Age36To45:  "Metabolism begins to change in this age group. It is recommended to pay attention to weight management, increase strength training, focus on cardiovascular health, and maintain a positive and optimistic attitude to cope with stress.",
		Age46To60:  "At this stage, more attention needs to be paid to the prevention of chronic diseases. It is recommended to have regular comprehensive check-ups, adjust diet to reduce high fat and sugar, persist in suitable exercise methods, and pay attention to bone health.",
		AgeAbove60: "At this stage, health is the foundation for enjoying life. It is recommended to stay socially active, persist in gentle and effective exercise, pay attention to balanced nutrition intake, and maintain a positive mental state.",
	},
	Love: {
		AgeUnder18: "This age stage is a period to understand your emotional needs. It is recommended to focus more on self-growth and establishing a healthy self-cognition, laying the foundation for future relationships.",
		Age18To25:  "This is an important stage of emotional exploration and self-awareness. Trying different types of relationships can help you better understand your needs and boundaries, preparing for long-term relationships.",
		Age26To35:  "At this stage, you may face decisions about establishing long-term relationships or families. It is recommended to focus on the consistency of values and life goals when choosing a partner, while maintaining personal growth space.",
		Age36To45:  "This is a stage of relationship deepening or re-evaluation. You may need to find a balance between family, career, and personal development, focusing on improving relationship quality and growing together.",
		Age46To60:  "Relationships at this stage may face new changes and challenges, such as children becoming independent, caring for parents, or retirement planning. You need to adapt to these transitions with your partner and redefine intimacy.",
		AgeAbove60: "Intimate relationships at this stage focus more on companionship, support, and sharing life experiences. It is recommended to focus on the depth of emotional connection and daily small happiness, cherishing the time spent together.",
	},
	Social: {
		AgeUnder18: "During adolescence, friendships are where you practice trust and belonging. It is recommended to choose friends who respect you as you are and to join clubs or teams that match your interests.",
		Age18To25:  "This is a stage of rapidly widening circles through study, work, and new places. It is recommended to invest in a few relationships that can last beyond this period of change.",
		Age26To35:  "Busy schedules at this stage can quietly shrink your social life. It is recommended to protect regular time for friends and to build professional relationships based on mutual help.",
		Age36To45:  "Your network at this stage often centers on family, colleagues, and community. It is recommended to renew old friendships and to look for circles where you can give as well as receive support.",
		Age46To60:  "At this stage the quality of relationships matters more than their number. It is recommended to nurture friendships that share your values and to mentor younger people around you.",
		AgeAbove60: "At this stage, staying socially connected supports both happiness and health. It is recommended to stay active in community groups, keep in touch with family and old friends, and remain open to new acquaintances.",
	},
	Wisdom: {
		AgeUnder18: "Adolescence is the best time to learn how you learn. It is recommended to stay curious, ask questions freely, and build study habits that suit your way of thinking.",
		Age18To25:  "This is a stage of rapid intellectual growth. It is recommended to combine formal study with hands-on experience and to seek mentors who challenge your assumptions.",
		Age26To35:  "At this stage, knowledge turns into expertise through practice. It is recommended to deepen one area while keeping an eye on neighboring fields that can sharpen your perspective.",
		Age36To45:  "This is a stage where experience begins to become judgment. It is recommended to reflect on lessons learned and to question habits of thought that no longer serve you.",
		Age46To60:  "At this stage your insight is valuable to others. It is recommended to share what you know through teaching or mentoring, which will also deepen your own understanding.",
		AgeAbove60: "This stage is rich in accumulated wisdom. It is recommended to keep the mind active with reading, conversation, and new subjects, and to pass on the perspective that only long experience can give.",
	},
	Potential: {
		AgeUnder18: "Your abilities are still taking shape. It is recommended to follow your curiosity, learn widely at school and beyond, and treat mistakes as part of discovering what you are good at.",
		Age18To25:  "This is an important stage for potential exploration and foundation building. It is recommended to try different fields broadly while deeply developing core advantages. Finding directions that inspire your passion will be an important foundation for future achievements.",
		Age26To35:  "This is a stage of capability deepening and professional growth. It is recommended to invest more energy in selected fields while beginning to establish a unique professional style or contribution. Regular reflection and direction adjustment are crucial.",
		Age36To45:  "This is a stage of professional maturity and expanding influence. It is recommended to consider how to transform experience into contributions of greater scope, while also considering knowledge inheritance and nurturing the new generation of talent.",
		Age46To60:  "This is a stage of wisdom integration and value creation. It is recommended to go beyond existing achievements to consider more transformative or legacy projects, while focusing on personal satisfaction and sense of meaning.",
		AgeAbove60: "This is an important stage for experience sharing and inner development. It is recommended to focus on how to pass on wisdom and values in meaningful ways, while exploring new dimensions of inner growth.",
	},
}

// LifeStage returns the age paragraph for a domain. Unknown brackets get the
// closing paragraph of the domain.
func LifeStage(d Domain, age AgeBracket) string {
	stages, ok := lifeStages[d]
	if !ok {
		stages = lifeStages[Potential]
	}
	if s, ok := stages[age]; ok {
		return s
	}
	return stages[AgeAbove60]
}
