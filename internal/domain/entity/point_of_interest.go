package entity

// PointOfInterest is a named campus destination. Records are immutable once the
// gazetteer has loaded them.
type PointOfInterest struct {
	Key        string     `json:"key" yaml:"key"`
	Name       string     `json:"name" yaml:"name"`
	Coordinate Coordinate `json:"coordinate" yaml:"coordinate"`
	Keywords   []string   `json:"keywords,omitempty" yaml:"keywords"`
}
