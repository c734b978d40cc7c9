package assessment

import "strings"

const (
	defaultStudentName = "Student"
	notProvided        = "Not provided"
	noAchievement      = "None"
)

// AchievementQuestions are the question ids whose answers are reported as achievements.
var AchievementQuestions = [2]string{"question13", "question30"}

// Profile is the student identity derived once per submission.
type Profile struct {
	Name         string    `json:"name"`
	Age          string    `json:"age"`
	AcademicInfo string    `json:"academic_info"`
	Interests    string    `json:"interests"`
	Achievements [2]string `json:"achievements"`
}

// BuildProfile derives a Profile, filling defaults for absent fields.
func BuildProfile(sub Submission) Profile {
	p := Profile{
		Name:         strings.TrimSpace(Stringify(sub.StudentName)),
		Age:          orDefault(sub.Age, notProvided),
		AcademicInfo: orDefault(sub.AcademicInfo, notProvided),
		Interests:    orDefault(sub.Interests, notProvided),
	}
	if p.Name == "" {
		p.Name = defaultStudentName
	}
	for i, id := range AchievementQuestions {
		value, _ := sub.Answers.Get(id)
		p.Achievements[i] = orDefault(value, noAchievement)
	}
	return p
}

func orDefault(v any, fallback string) string {
	if v == nil {
		return fallback
	}
	return Stringify(v)
}
