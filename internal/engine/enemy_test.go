package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func questions(n int, tag string) []Question {
	out := make([]Question, n)
	for i := range out {
		out[i] = Question{Prompt: fmt.Sprintf("%s %d", tag, i), Answer: "x", Difficulty: DifficultyBasic}
	}
	return out
}

func TestGenerateSamplesPoolWithoutReplacement(t *testing.T) {
	cat := mapCatalog{SubjectMath: {"5": questions(8, "g5")}}
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)
	p.Level = 3

	e, err := NewEnemyGenerator(cat, &seqRand{}).Generate(p, SubjectMath)
	require.NoError(t, err)

	assert.Equal(t, "Polynomial Golem", e.Name)
	assert.Equal(t, 130, e.MaxHP)
	assert.Equal(t, e.MaxHP, e.HP)
	assert.Equal(t, Grade("5"), e.GradeLevel)
	require.Len(t, e.Questions, PoolSize)
	seen := map[string]bool{}
	for _, q := range e.Questions {
		assert.False(t, seen[q.Prompt], "duplicate %s", q.Prompt)
		seen[q.Prompt] = true
	}
}

func TestGenerateWidensToOtherGrades(t *testing.T) {
	cat := mapCatalog{SubjectHistory: {
		"5":          questions(2, "g5"),
		GradeCollege: questions(1, "college"),
	}}
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)

	e, err := NewEnemyGenerator(cat, &seqRand{}).Generate(p, SubjectHistory)
	require.NoError(t, err)
	assert.Len(t, e.Questions, 3)
	assert.Equal(t, "g5 0", e.Questions[0].Prompt)
}

func TestGenerateErrors(t *testing.T) {
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)
	gen := NewEnemyGenerator(mapCatalog{}, &seqRand{})

	_, err = gen.Generate(p, SubjectArts)
	assert.ErrorIs(t, err, ErrUnknownSubject)

	_, err = gen.Generate(p, SubjectScience)
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestGenerateRandomSubject(t *testing.T) {
	cat := mapCatalog{SubjectScience: {"5": questions(1, "sci")}}
	p, err := NewPlayer("Ada", "5")
	require.NoError(t, err)

	e, err := NewEnemyGenerator(cat, &seqRand{ints: []int{1, 1}}).Generate(p, "")
	require.NoError(t, err)
	assert.Equal(t, SubjectScience, e.Subject)
	assert.Equal(t, "Physics Phantom", e.Name)
}

func TestRandomQuestionEmptyPool(t *testing.T) {
	_, err := (&Enemy{}).RandomQuestion(&seqRand{})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestEnemySubjectsSkipsArts(t *testing.T) {
	subjects := EnemySubjects()
	assert.Equal(t, []Subject{SubjectMath, SubjectScience, SubjectHistory, SubjectLanguage}, subjects)
	for _, s := range BattleSubjects {
		assert.Contains(t, subjects, s)
	}
}
