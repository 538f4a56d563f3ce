package gazetteer

import (
	"io"
	"os"

	"campusnav/internal/domain/entity"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type yamlDocument struct {
	Points []entity.PointOfInterest `yaml:"points"`
}

// LoadYAML reads points from a YAML document with a top-level "points" list.
func LoadYAML(path string) ([]entity.PointOfInterest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	return ReadYAML(file)
}

// ReadYAML decodes a YAML gazetteer document. Unknown fields are rejected.
func ReadYAML(r io.Reader) ([]entity.PointOfInterest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc yamlDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "decode gazetteer yaml")
	}

	return doc.Points, nil
}
