package gazetteer

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusnav/config"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/repository"
	"campusnav/internal/errors"
)

func TestBuiltin_IsValidCampusTable(t *testing.T) {
	repo, err := NewRepository(Builtin())
	require.NoError(t, err)

	assert.Equal(t, 24, repo.Len())

	cse, err := repo.FindByKey("cse")
	require.NoError(t, err)
	assert.Equal(t, "CSE Block", cse.Name)
	assert.InDelta(t, 12.192838, cse.Coordinate.Lat, 1e-9)
	assert.Contains(t, cse.Keywords, "computer science")

	keys := make([]string, 0, repo.Len())
	for _, p := range repo.List() {
		keys = append(keys, p.Key)
	}
	assert.True(t, slices.IsSorted(keys))
}

func TestBuiltin_ReturnsCopy(t *testing.T) {
	points := Builtin()
	points[0].Keywords[0] = "mutated"

	assert.NotEqual(t, "mutated", Builtin()[0].Keywords[0])
}

func TestRepository_FindByKeyMissing(t *testing.T) {
	repo, err := NewRepository(Builtin())
	require.NoError(t, err)

	_, err = repo.FindByKey("library")
	assert.ErrorIs(t, err, repository.ErrPointNotFound)
}

func TestNewRepository_Validation(t *testing.T) {
	valid := entity.Coordinate{Lat: 12.19, Lng: 79.08}

	tests := []struct {
		name    string
		points  []entity.PointOfInterest
		details string
	}{
		{name: "empty", points: nil, details: "no points"},
		{name: "missing key", points: []entity.PointOfInterest{{Name: "Gate", Coordinate: valid}}, details: "empty key"},
		{name: "missing name", points: []entity.PointOfInterest{{Key: "gate", Coordinate: valid}}, details: "empty name"},
		{name: "bad coordinate", points: []entity.PointOfInterest{{Key: "gate", Name: "Gate", Coordinate: entity.Coordinate{Lat: 120}}}, details: "invalid coordinate"},
		{name: "duplicate key", points: []entity.PointOfInterest{
			{Key: "gate", Name: "Gate", Coordinate: valid},
			{Key: " gate ", Name: "Main Gate", Coordinate: valid},
		}, details: "duplicate key"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepository(tt.points)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidGazetteer))
			assert.Contains(t, err.Error(), tt.details)
		})
	}
}

func TestNewRepository_NormalizesKeywords(t *testing.T) {
	repo, err := NewRepository([]entity.PointOfInterest{{
		Key:        "library",
		Name:       "Central Library",
		Coordinate: entity.Coordinate{Lat: 12.19, Lng: 79.08},
		Keywords:   []string{" Books ", "books", "", "READING room"},
	}})
	require.NoError(t, err)

	p, err := repo.FindByKey("library")
	require.NoError(t, err)
	assert.Equal(t, []string{"books", "reading room"}, p.Keywords)
}

func TestReadCSV(t *testing.T) {
	points, err := ReadCSV(strings.NewReader(`key,name,lat,lng,keywords
library,Central Library,12.1925,79.0834,library;books;reading room
lab,Physics Lab,12.1931,79.0829
`))
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, "library", points[0].Key)
	assert.Equal(t, "Central Library", points[0].Name)
	assert.InDelta(t, 79.0834, points[0].Coordinate.Lng, 1e-9)
	assert.Equal(t, []string{"library", "books", "reading room"}, points[0].Keywords)
	assert.Empty(t, points[1].Keywords)
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "short row", data: "key,name,lat,lng\nlib,Library,12\n", want: "line 2"},
		{name: "bad lat", data: "key,name,lat,lng\nlib,Library,north,79.08\n", want: "invalid lat at line 2"},
		{name: "bad lng", data: "key,name,lat,lng\nlib,Library,12.1,east\n", want: "invalid lng at line 2"},
		{name: "no header", data: "", want: "header"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadYAML(t *testing.T) {
	points, err := ReadYAML(strings.NewReader(`
points:
  - key: library
    name: Central Library
    coordinate: {lat: 12.1925, lng: 79.0834}
    keywords: [library, books]
`))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Central Library", points[0].Name)
	assert.InDelta(t, 12.1925, points[0].Coordinate.Lat, 1e-9)
	assert.Equal(t, []string{"library", "books"}, points[0].Keywords)

	_, err = ReadYAML(strings.NewReader("points:\n  - key: x\n    floor: 2\n"))
	assert.Error(t, err, "unknown fields are rejected")
}

func TestLoad_Sources(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "campus.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("key,name,lat,lng,keywords\nlib,Library,12.19,79.08,books\n"), 0o600))
	yamlPath := filepath.Join(dir, "campus.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("points:\n  - key: lib\n    name: Library\n    coordinate: {lat: 12.19, lng: 79.08}\n"), 0o600))

	builtin, err := Load("builtin")
	require.NoError(t, err)
	assert.Len(t, builtin, 24)

	fromCSV, err := Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, "lib", fromCSV[0].Key)

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Library", fromYAML[0].Name)

	_, err = Load(filepath.Join(dir, "campus.json"))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidGazetteer))

	_, err = Load(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestNew_FromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()

	repo, err := New(cfg)
	require.NoError(t, err)
	assert.Equal(t, 24, repo.Len())
}
