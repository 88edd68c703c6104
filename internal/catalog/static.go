// Package catalog provides the read-only question bank the enemy generator
// draws from.
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"edurpg/internal/engine"
)

//go:embed questions.yaml
var embeddedQuestions []byte

// Static is an in-memory catalog keyed by subject then grade.
type Static struct {
	bank map[engine.Subject]map[engine.Grade][]engine.Question
}

// Default parses the embedded question bank.
func Default() (*Static, error) {
	return ParseYAML(embeddedQuestions)
}

// ParseYAML reads a subject -> grade -> questions document. Grades are
// normalized ("College" becomes "college") and missing difficulties are
// filled from the grade band.
func ParseYAML(data []byte) (*Static, error) {
	var raw map[string]map[string][]engine.Question
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse question bank: %w", err)
	}

	s := &Static{bank: map[engine.Subject]map[engine.Grade][]engine.Question{}}
	for subj, grades := range raw {
		subject, err := engine.ParseSubject(subj)
		if err != nil {
			return nil, fmt.Errorf("question bank: %w", err)
		}
		for g, qs := range grades {
			grade, err := engine.ParseGrade(g)
			if err != nil {
				return nil, fmt.Errorf("question bank %s: %w", subject, err)
			}
			for i := range qs {
				if qs[i].Prompt == "" || qs[i].Answer == "" {
					return nil, fmt.Errorf("question bank %s/%s #%d: text and answer are required", subject, grade, i+1)
				}
				if !qs[i].Difficulty.IsValid() {
					qs[i].Difficulty = engine.DifficultyForGrade(grade)
				}
			}
			s.Add(subject, grade, qs...)
		}
	}
	return s, nil
}

func (s *Static) Add(subject engine.Subject, grade engine.Grade, qs ...engine.Question) {
	if s.bank == nil {
		s.bank = map[engine.Subject]map[engine.Grade][]engine.Question{}
	}
	if s.bank[subject] == nil {
		s.bank[subject] = map[engine.Grade][]engine.Question{}
	}
	s.bank[subject][grade] = append(s.bank[subject][grade], qs...)
}

func (s *Static) Lookup(subject engine.Subject, grade engine.Grade) []engine.Question {
	qs := s.bank[subject][grade]
	out := make([]engine.Question, len(qs))
	copy(out, qs)
	return out
}

// Entry is one (subject, grade) bucket.
type Entry struct {
	Subject   engine.Subject
	Grade     engine.Grade
	Questions []engine.Question
}

// Entries lists every bucket in subject then grade order.
func (s *Static) Entries() []Entry {
	var out []Entry
	for subject, grades := range s.bank {
		for grade, qs := range grades {
			out = append(out, Entry{Subject: subject, Grade: grade, Questions: qs})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Subject != out[j].Subject {
			return out[i].Subject < out[j].Subject
		}
		return gradeIndex(out[i].Grade) < gradeIndex(out[j].Grade)
	})
	return out
}

// Count returns the total number of questions.
func (s *Static) Count() int {
	n := 0
	for _, grades := range s.bank {
		for _, qs := range grades {
			n += len(qs)
		}
	}
	return n
}

func gradeIndex(g engine.Grade) int {
	for i, x := range engine.Grades {
		if x == g {
			return i
		}
	}
	return len(engine.Grades)
}
