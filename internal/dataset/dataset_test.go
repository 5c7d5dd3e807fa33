package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/entity-search/internal/model"
)

func TestSample(t *testing.T) {
	ds, err := Sample()
	require.NoError(t, err)
	require.Len(t, ds.People, 5)
	require.Len(t, ds.Organizations, 4)

	sarah := ds.People[0]
	assert.Equal(t, "Sarah Chen", sarah.FullName)
	assert.Equal(t, "San Francisco", sarah.Location.City)
	require.NotNil(t, sarah.EnrichedAt)
	assert.Equal(t, 2026, sarah.EnrichedAt.Year())

	techstart := ds.Organizations[0]
	total, ok := techstart.TotalRaised()
	require.True(t, ok)
	assert.Equal(t, 12_000_000.0, total)
	assert.Equal(t, "Series A", techstart.LatestRoundType())
	assert.Contains(t, techstart.Investors, "Sequoia Capital")
	require.Len(t, techstart.Executives, 1)
	assert.Equal(t, "CEO", techstart.Executives[0].Title)

	_, ok = ds.Organizations[3].TotalRaised()
	assert.False(t, ok)
}

func TestSample_ReturnsCopies(t *testing.T) {
	a, err := Sample()
	require.NoError(t, err)
	a.People[0].FullName = "changed"

	b, err := Sample()
	require.NoError(t, err)
	assert.Equal(t, "Sarah Chen", b.People[0].FullName)
}

func TestLoadFile_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"people": [{"id": "p1", "full_name": "Ada Park", "title": "Engineer", "location": {"city": "Austin"}}],
		"organizations": [{"id": "o1", "name": "Acme", "funding": {"total_raised": 5000000}}]
	}`), 0o644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.People, 1)
	assert.Equal(t, "Ada Park", ds.People[0].FullName)
	assert.Equal(t, "Austin", ds.People[0].Location.City)
	total, ok := ds.Organizations[0].TotalRaised()
	assert.True(t, ok)
	assert.Equal(t, 5_000_000.0, total)
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
people:
  - id: p1
    full_name: Ada Park
    tags: [rust]
organizations: []
`), 0o644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.People, 1)
	assert.Equal(t, []string{"rust"}, ds.People[0].Tags)
	assert.Empty(t, ds.Organizations)
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: read")

	csvPath := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("a,b"), 0o644))
	_, err = LoadFile(csvPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported file type")

	badPath := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badPath, []byte("people:\n  - unknown_field: 1\n"), 0o644))
	_, err = LoadFile(badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: parse")
}

type fakeStore struct {
	people  []model.Person
	orgs    []model.Organization
	listErr error

	upsertedPeople []model.Person
	upsertedOrgs   []model.Organization
	upsertErr      error
}

func (f *fakeStore) ListPeople(context.Context) ([]model.Person, error) {
	return f.people, f.listErr
}

func (f *fakeStore) ListOrganizations(context.Context) ([]model.Organization, error) {
	return f.orgs, nil
}

func (f *fakeStore) UpsertPeople(_ context.Context, people []model.Person) (int64, error) {
	if f.upsertErr != nil {
		return 0, f.upsertErr
	}
	f.upsertedPeople = append(f.upsertedPeople, people...)
	return int64(len(people)), nil
}

func (f *fakeStore) UpsertOrganizations(_ context.Context, orgs []model.Organization) (int64, error) {
	f.upsertedOrgs = append(f.upsertedOrgs, orgs...)
	return int64(len(orgs)), nil
}

func TestLoadStore(t *testing.T) {
	src := &fakeStore{
		people: []model.Person{{ID: "p1", FullName: "Ada Park"}},
		orgs:   []model.Organization{{ID: "o1", Name: "Acme"}, {ID: "o2", Name: "Globex"}},
	}

	ds, err := LoadStore(context.Background(), src)
	require.NoError(t, err)
	assert.Len(t, ds.People, 1)
	assert.Len(t, ds.Organizations, 2)
}

func TestLoadStore_Error(t *testing.T) {
	src := &fakeStore{listErr: errors.New("connection refused")}

	_, err := LoadStore(context.Background(), src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: list people")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestImport_AssignsMissingIDs(t *testing.T) {
	dst := &fakeStore{}
	ds := &Dataset{
		People:        []model.Person{{FullName: "Ada Park"}, {ID: "p2", FullName: "Ben Ode"}},
		Organizations: []model.Organization{{Name: "Acme"}},
	}

	res, err := Import(context.Background(), dst, ds)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.People)
	assert.Equal(t, int64(1), res.Organizations)

	assert.Len(t, ds.People[0].ID, 36)
	assert.Equal(t, "p2", ds.People[1].ID)
	assert.NotEmpty(t, ds.Organizations[0].ID)
	assert.Equal(t, ds.People[0].ID, dst.upsertedPeople[0].ID)
}

func TestImport_Error(t *testing.T) {
	dst := &fakeStore{upsertErr: errors.New("disk full")}

	_, err := Import(context.Background(), dst, &Dataset{People: []model.Person{{FullName: "Ada"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset: import people")
}

func TestImport_Nil(t *testing.T) {
	res, err := Import(context.Background(), &fakeStore{}, nil)
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{}, res)
}
