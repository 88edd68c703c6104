package engine

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"edurpg/internal/storage"
)

// seqRand replays scripted values. Intn falls back to 0 and Float64 to 0.99,
// which never drops loot.
type seqRand struct {
	ints   []int
	floats []float64
}

func (r *seqRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *seqRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.99
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// stepClock advances by step on every read.
type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) now() time.Time {
	t := c.t
	c.t = c.t.Add(c.step)
	return t
}

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return epoch }

// scriptPrompter answers from queues and returns io.EOF once a queue runs dry.
type scriptPrompter struct {
	choices  []int
	texts    []string
	confirms []bool
	notes    []string
}

func (p *scriptPrompter) Choose(ctx context.Context, title string, options []string) (int, error) {
	if len(p.choices) == 0 {
		return 0, io.EOF
	}
	v := p.choices[0]
	p.choices = p.choices[1:]
	return v, nil
}

func (p *scriptPrompter) Text(ctx context.Context, prompt string) (string, error) {
	if len(p.texts) == 0 {
		return "", io.EOF
	}
	v := p.texts[0]
	p.texts = p.texts[1:]
	return v, nil
}

func (p *scriptPrompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	if len(p.confirms) == 0 {
		return false, io.EOF
	}
	v := p.confirms[0]
	p.confirms = p.confirms[1:]
	return v, nil
}

func (p *scriptPrompter) Notify(severity Severity, message string) {
	p.notes = append(p.notes, message)
}

// mapCatalog is an in-memory question source keyed by subject and grade.
type mapCatalog map[Subject]map[Grade][]Question

func (c mapCatalog) Lookup(subject Subject, grade Grade) []Question {
	return c[subject][grade]
}

func mathCatalog() mapCatalog {
	return mapCatalog{
		SubjectMath: {
			"5": {{Prompt: "2 + 2?", Answer: "4", Difficulty: DifficultyAdvanced}},
		},
	}
}

func newTestService(t *testing.T, prompter *scriptPrompter) *Service {
	t.Helper()

	store, err := storage.OpenFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return NewService(store, mathCatalog(), prompter, Options{
		Rand:  &seqRand{},
		Clock: fixedClock,
	})
}

func mustPlayer(t *testing.T, svc *Service, name string) *Player {
	t.Helper()
	p, err := svc.NewPlayer(context.Background(), name, "5")
	require.NoError(t, err)
	return p
}
