// Package gazetteer provides the in-memory point-of-interest table and its loaders.
package gazetteer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"campusnav/config"
	"campusnav/internal/domain/constants"
	"campusnav/internal/domain/entity"
	domainerrors "campusnav/internal/domain/errors"
	"campusnav/internal/domain/repository"
)

type memoryRepository struct {
	points []entity.PointOfInterest
	byKey  map[string]int
}

// New loads the configured source and builds the repository.
func New(cfg *config.Config) (repository.GazetteerRepository, error) {
	points, err := Load(cfg.Gazetteer.Source)
	if err != nil {
		return nil, err
	}

	return NewRepository(points)
}

// Load reads points from "builtin" or a .yaml/.yml/.csv file path.
func Load(source string) ([]entity.PointOfInterest, error) {
	source = strings.TrimSpace(source)
	if source == "" || source == constants.GazetteerSourceBuiltin {
		return Builtin(), nil
	}

	switch strings.ToLower(filepath.Ext(source)) {
	case ".yaml", ".yml":
		return LoadYAML(source)
	case ".csv":
		return LoadCSV(source)
	default:
		return nil, domainerrors.ErrInvalidGazetteer.WithDetails(fmt.Sprintf("unsupported source %q", source))
	}
}

// NewRepository validates points and indexes them by key. Keywords are
// lower-cased, trimmed and de-duplicated; the input slice is not modified.
func NewRepository(points []entity.PointOfInterest) (repository.GazetteerRepository, error) {
	if len(points) == 0 {
		return nil, domainerrors.ErrInvalidGazetteer.WithDetails("no points of interest")
	}

	repo := &memoryRepository{
		points: make([]entity.PointOfInterest, 0, len(points)),
		byKey:  make(map[string]int, len(points)),
	}

	var problems []string
	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		p.Key = strings.TrimSpace(p.Key)
		p.Name = strings.TrimSpace(p.Name)

		switch {
		case p.Key == "":
			problems = append(problems, fmt.Sprintf("point %d: empty key", i))

			continue
		case p.Name == "":
			problems = append(problems, fmt.Sprintf("point %q: empty name", p.Key))

			continue
		case !p.Coordinate.IsValid():
			problems = append(problems, fmt.Sprintf("point %q: invalid coordinate %v", p.Key, p.Coordinate))

			continue
		}
		if _, dup := seen[p.Key]; dup {
			problems = append(problems, fmt.Sprintf("point %q: duplicate key", p.Key))

			continue
		}
		seen[p.Key] = struct{}{}

		p.Keywords = normalizeKeywords(p.Keywords)
		repo.points = append(repo.points, p)
	}

	if len(problems) > 0 {
		return nil, domainerrors.ErrInvalidGazetteer.WithDetails(strings.Join(problems, "; "))
	}

	slices.SortFunc(repo.points, func(a, b entity.PointOfInterest) int {
		return strings.Compare(a.Key, b.Key)
	})
	for i, p := range repo.points {
		repo.byKey[p.Key] = i
	}

	return repo, nil
}

func normalizeKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword == "" || slices.Contains(out, keyword) {
			continue
		}
		out = append(out, keyword)
	}

	return out
}

func (r *memoryRepository) List() []entity.PointOfInterest {
	out := make([]entity.PointOfInterest, len(r.points))
	copy(out, r.points)

	return out
}

func (r *memoryRepository) FindByKey(key string) (entity.PointOfInterest, error) {
	i, ok := r.byKey[key]
	if !ok {
		return entity.PointOfInterest{}, repository.ErrPointNotFound
	}

	return r.points[i], nil
}

func (r *memoryRepository) Len() int {
	return len(r.points)
}
