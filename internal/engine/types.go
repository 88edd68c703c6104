package engine

import (
	"fmt"
	"strings"
)

type Subject string

const (
	SubjectMath     Subject = "math"
	SubjectScience  Subject = "science"
	SubjectHistory  Subject = "history"
	SubjectLanguage Subject = "language"
	SubjectArts     Subject = "arts"

	// SubjectAll scopes a quest to every subject. It is never a trait key.
	SubjectAll Subject = "all"
)

// Subjects lists the trait keys in display order.
var Subjects = []Subject{SubjectMath, SubjectScience, SubjectHistory, SubjectLanguage, SubjectArts}

// BattleSubjects are the subjects an enemy is drawn from when none is requested.
var BattleSubjects = []Subject{SubjectMath, SubjectScience, SubjectHistory}

func (s Subject) IsValid() bool {
	switch s {
	case SubjectMath, SubjectScience, SubjectHistory, SubjectLanguage, SubjectArts:
		return true
	default:
		return false
	}
}

func (s Subject) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

type Grade string

const GradeCollege Grade = "college"

// Grades lists every grade band from first grade to college.
var Grades = []Grade{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11", "12", GradeCollege}

func (g Grade) IsValid() bool {
	for _, v := range Grades {
		if v == g {
			return true
		}
	}
	return false
}

type Difficulty int

const (
	DifficultyBasic        Difficulty = 1
	DifficultyIntermediate Difficulty = 2
	DifficultyAdvanced     Difficulty = 3
	DifficultyExpert       Difficulty = 4
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyBasic && d <= DifficultyExpert
}

// DifficultyForGrade is the default tier for questions that carry none.
func DifficultyForGrade(g Grade) Difficulty {
	switch g {
	case "1", "2", "3", "4":
		return DifficultyBasic
	case "5", "6", "7", "8":
		return DifficultyIntermediate
	case "9", "10", "11", "12":
		return DifficultyAdvanced
	case GradeCollege:
		return DifficultyExpert
	default:
		return DifficultyBasic
	}
}

// Question is an immutable catalog record.
type Question struct {
	Prompt      string     `json:"text" yaml:"text"`
	Answer      string     `json:"answer" yaml:"answer"`
	Difficulty  Difficulty `json:"difficulty" yaml:"difficulty"`
	Options     []string   `json:"options,omitempty" yaml:"options,omitempty"`
	Explanation string     `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// Catalog is the read-only question source consulted by the enemy generator.
type Catalog interface {
	Lookup(subject Subject, grade Grade) []Question
}

func (q Question) String() string {
	return fmt.Sprintf("%s (tier %d)", q.Prompt, q.Difficulty)
}
