package gazetteer

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"campusnav/internal/domain/entity"

	"github.com/pkg/errors"
)

const csvColumns = 5

// LoadCSV reads points from a CSV file.
// Expected CSV format: key,name,lat,lng,keywords where keywords are separated by ';'
func LoadCSV(path string) ([]entity.PointOfInterest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer file.Close()

	return ReadCSV(file)
}

// ReadCSV parses CSV records including the header row.
func ReadCSV(r io.Reader) ([]entity.PointOfInterest, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	// Skip header row
	if _, err := reader.Read(); err != nil {
		return nil, errors.Wrap(err, "read gazetteer header")
	}

	var points []entity.PointOfInterest
	lineNum := 1

	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, errors.WithStack(readErr)
		}
		lineNum++

		if len(record) < csvColumns-1 {
			return nil, errors.Errorf("invalid gazetteer csv at line %d: expected %d columns, got %d", lineNum, csvColumns, len(record))
		}

		point, parseErr := parsePoint(record, lineNum)
		if parseErr != nil {
			return nil, parseErr
		}

		points = append(points, point)
	}

	return points, nil
}

func parsePoint(record []string, lineNum int) (entity.PointOfInterest, error) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return entity.PointOfInterest{}, errors.Wrapf(err, "invalid lat at line %d", lineNum)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return entity.PointOfInterest{}, errors.Wrapf(err, "invalid lng at line %d", lineNum)
	}

	var keywords []string
	if len(record) >= csvColumns {
		for keyword := range strings.SplitSeq(record[4], ";") {
			keywords = append(keywords, keyword)
		}
	}

	return entity.PointOfInterest{
		Key:        strings.TrimSpace(record[0]),
		Name:       strings.TrimSpace(record[1]),
		Coordinate: entity.Coordinate{Lat: lat, Lng: lng},
		Keywords:   keywords,
	}, nil
}
