// Package seed loads listing content (case studies, job openings, team
// members) from a JSON fixture file into the document store. The API only
// reads these collections; seeding is how they get populated.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/strnadel/strnadel-api/internal/errs"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/schema"
	"github.com/strnadel/strnadel-api/pkg/logger"
)

// Fixtures is the file layout:
//
//	{"case_studies": [...], "jobs": [...], "team": [...]}
type Fixtures struct {
	CaseStudies []json.RawMessage `json:"case_studies"`
	Jobs        []json.RawMessage `json:"jobs"`
	Team        []json.RawMessage `json:"team"`
}

// Result counts inserted documents per collection.
type Result map[string]int

type item struct {
	collection string
	entity     interface{}
}

func ReadFile(path string) (*Fixtures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

func Decode(r io.Reader) (*Fixtures, error) {
	var fx Fixtures
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fx); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &fx, nil
}

// prepare validates every fixture and fills defaults. Field paths in the
// returned *errs.ValidationError are prefixed with the section and index,
// e.g. "jobs[2].title". Nothing is returned unless all fixtures are valid.
func (fx *Fixtures) prepare() ([]item, error) {
	var items []item
	var bad []errs.FieldError
	add := func(section string, raws []json.RawMessage, newEntity func() interface{}) {
		for i, raw := range raws {
			e := newEntity()
			if err := schema.Bind(raw, e); err != nil {
				bad = append(bad, prefixed(fmt.Sprintf("%s[%d]", section, i), err)...)
				continue
			}
			items = append(items, item{collection: schema.CollectionOf(e), entity: e})
		}
	}
	add("case_studies", fx.CaseStudies, func() interface{} { return &schema.CaseStudy{} })
	add("jobs", fx.Jobs, func() interface{} { return &schema.JobOpening{} })
	add("team", fx.Team, func() interface{} { return &schema.TeamMember{} })
	if len(bad) > 0 {
		return nil, &errs.ValidationError{Fields: bad}
	}
	return items, nil
}

func prefixed(prefix string, err error) []errs.FieldError {
	var ve *errs.ValidationError
	if !errors.As(err, &ve) {
		return []errs.FieldError{{Field: prefix, Error: err.Error()}}
	}
	out := make([]errs.FieldError, 0, len(ve.Fields))
	for _, f := range ve.Fields {
		f.Field = prefix + "." + f.Field
		out = append(out, f)
	}
	return out
}

// Load validates all fixtures, then inserts them in file order. A validation
// failure inserts nothing. A storage failure stops the load and returns the
// counts inserted so far together with a *errs.StorageError.
func Load(ctx context.Context, repo repository.Repository, fx *Fixtures) (Result, error) {
	items, err := fx.prepare()
	if err != nil {
		return nil, err
	}
	res := Result{}
	for _, it := range items {
		id, err := repo.Insert(ctx, it.collection, it.entity)
		if err != nil {
			return res, &errs.StorageError{Op: "insert", Collection: it.collection, Err: err}
		}
		logger.Debugf("seeded %s/%s", it.collection, id)
		res[it.collection]++
	}
	return res, nil
}
