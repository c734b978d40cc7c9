package reports

// Topic is one fixed subject a report section is generated for.
type Topic struct {
	ID           string
	Title        string
	Instructions string
}

// DefaultTopics is the section list of every report, in report order.
var DefaultTopics = []Topic{
	{
		ID:           "personality_profile",
		Title:        "Personality Profile",
		Instructions: "Interpret the trait scores as a personality and aptitude profile. Explain what the highest and lowest traits suggest about how the student learns and works.",
	},
	{
		ID:           "strengths",
		Title:        "Key Strengths",
		Instructions: "Describe the student's main strengths and how each one supports the career goal. Refer to the achievements where they are relevant.",
	},
	{
		ID:           "career_paths",
		Title:        "Recommended Career Paths",
		Instructions: "Recommend three to five career paths related to the goal that fit the profile. For each, give one line on why it fits and one on what the work involves.",
	},
	{
		ID:           "skill_gaps",
		Title:        "Skill Gaps and Development Areas",
		Instructions: "Identify the skills the student still needs for the career goal and suggest a concrete way to build each one.",
	},
	{
		ID:           "education_pathway",
		Title:        "Education Pathway",
		Instructions: "Outline the subjects, courses, entrance exams and degrees that lead to the career goal, starting from the student's current academic stage.",
	},
	{
		ID:           "action_plan",
		Title:        "Action Plan",
		Instructions: "Give a step-by-step plan for the next twelve months, split into the next three months, six months and one year.",
	},
}
