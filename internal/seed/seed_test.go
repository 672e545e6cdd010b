package seed

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/strnadel/strnadel-api/internal/errs"
	"github.com/strnadel/strnadel-api/internal/repository"
	"github.com/strnadel/strnadel-api/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

const fixtures = `{
  "case_studies": [
    {"title": "Frame for a packaging line", "client": "Acme", "services": ["laser cutting", "welding"], "images": ["https://cdn.example.cz/frame.jpg"]},
    {"title": "Stainless hoppers"}
  ],
  "jobs": [
    {"title": "CNC operator", "requirements": ["shift work"]}
  ],
  "team": [
    {"name": "Petr Strnadel", "role": "CEO", "photo": "https://cdn.example.cz/petr.jpg"}
  ]
}`

func TestLoad(t *testing.T) {
	fx, err := Decode(strings.NewReader(fixtures))
	require.NoError(t, err)

	repo := repository.NewMemoryRepo("seed")
	res, err := Load(context.Background(), repo, fx)
	require.NoError(t, err)
	assert.Equal(t, Result{schema.CaseStudyCollection: 2, schema.JobOpeningCollection: 1, schema.TeamMemberCollection: 1}, res)

	jobs, err := repo.Fetch(context.Background(), schema.JobOpeningCollection, bson.M{}, 0)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Horka nad Moravou, Czech Republic", jobs[0]["location"])
	assert.Equal(t, "Full-time", jobs[0]["type"])
	assert.Equal(t, []interface{}{}, jobs[0]["benefits"])

	studies, err := repo.Fetch(context.Background(), schema.CaseStudyCollection, bson.M{}, 0)
	require.NoError(t, err)
	assert.Equal(t, "Frame for a packaging line", studies[0]["title"])
	assert.Equal(t, "Stainless hoppers", studies[1]["title"])
}

func TestLoadRejectsInvalidFixturesWithoutInserting(t *testing.T) {
	fx, err := Decode(strings.NewReader(`{
	  "case_studies": [{"title": "ok"}, {"title": "bad", "images": ["not a url"]}],
	  "team": [{"name": "Nobody"}]
	}`))
	require.NoError(t, err)

	repo := repository.NewMemoryRepo("seed")
	_, err = Load(context.Background(), repo, fx)
	var ve *errs.ValidationError
	require.ErrorAs(t, err, &ve)

	fields := map[string]bool{}
	for _, f := range ve.Fields {
		fields[f.Field] = true
	}
	assert.True(t, fields["case_studies[1].images[0]"], "%v", ve.Fields)
	assert.True(t, fields["team[0].role"], "%v", ve.Fields)
	assert.Equal(t, 0, repo.Count(schema.CaseStudyCollection))
}

type brokenRepo struct{ ok int }

func (b *brokenRepo) Insert(ctx context.Context, collection string, entity interface{}) (string, error) {
	if b.ok == 0 {
		return "", errors.New("disk full")
	}
	b.ok--
	return "id", nil
}

func (b *brokenRepo) Fetch(ctx context.Context, collection string, filter bson.M, limit int64) ([]repository.Document, error) {
	return nil, nil
}

func TestLoadStopsOnStorageError(t *testing.T) {
	fx, err := Decode(strings.NewReader(fixtures))
	require.NoError(t, err)

	res, err := Load(context.Background(), &brokenRepo{ok: 1}, fx)
	var se *errs.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, schema.CaseStudyCollection, se.Collection)
	assert.Equal(t, Result{schema.CaseStudyCollection: 1}, res)
}

func TestDecodeRejectsUnknownSections(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"inquiries": []}`))
	require.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixtures.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtures), 0o600))
	fx, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, fx.CaseStudies, 2)
	assert.Len(t, fx.Jobs, 1)
	assert.Len(t, fx.Team, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
