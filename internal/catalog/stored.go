package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"edurpg/internal/engine"
	"edurpg/internal/storage"
)

type document struct {
	Subject   engine.Subject    `json:"subject"`
	Grade     engine.Grade      `json:"grade"`
	Questions []engine.Question `json:"questions"`
}

// Key is the questions collection id for a bucket.
func Key(subject engine.Subject, grade engine.Grade) string {
	return string(subject) + "_" + string(grade)
}

// Stored reads question buckets from the questions collection and falls back
// to another catalog when a bucket is absent or unreadable.
type Stored struct {
	ctx      context.Context
	coll     storage.Collection
	fallback engine.Catalog
	log      *zap.Logger
}

func NewStored(ctx context.Context, coll storage.Collection, fallback engine.Catalog, log *zap.Logger) *Stored {
	if log == nil {
		log = zap.NewNop()
	}
	return &Stored{ctx: ctx, coll: coll, fallback: fallback, log: log}
}

func (s *Stored) Lookup(subject engine.Subject, grade engine.Grade) []engine.Question {
	qs, err := s.load(subject, grade)
	if err == nil && len(qs) > 0 {
		return qs
	}
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.log.Warn("question lookup failed, using fallback",
			zap.String("subject", string(subject)),
			zap.String("grade", string(grade)),
			zap.Error(err))
	}
	if s.fallback == nil {
		return nil
	}
	return s.fallback.Lookup(subject, grade)
}

func (s *Stored) load(subject engine.Subject, grade engine.Grade) ([]engine.Question, error) {
	b, err := s.coll.Get(s.ctx, Key(subject, grade))
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode questions %s: %w", Key(subject, grade), err)
	}
	for i := range doc.Questions {
		if !doc.Questions[i].Difficulty.IsValid() {
			doc.Questions[i].Difficulty = engine.DifficultyForGrade(grade)
		}
	}
	return doc.Questions, nil
}

// Seed writes every bucket of src into the questions collection and returns
// the number of buckets written.
func Seed(ctx context.Context, coll storage.Collection, src *Static) (int, error) {
	docs := map[string][]byte{}
	for _, e := range src.Entries() {
		b, err := json.Marshal(document{Subject: e.Subject, Grade: e.Grade, Questions: e.Questions})
		if err != nil {
			return 0, fmt.Errorf("encode questions %s: %w", Key(e.Subject, e.Grade), err)
		}
		docs[Key(e.Subject, e.Grade)] = b
	}
	if err := storage.PutAll(ctx, coll, docs); err != nil {
		return 0, fmt.Errorf("seed questions: %w", err)
	}
	return len(docs), nil
}
