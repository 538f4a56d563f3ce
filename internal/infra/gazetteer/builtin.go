package gazetteer

import "campusnav/internal/domain/entity"

// builtinPoints is the Arunai Engineering College campus table.
var builtinPoints = []entity.PointOfInterest{
	{Key: "gate", Name: "Gate", Coordinate: entity.Coordinate{Lat: 12.193100, Lng: 79.084515}, Keywords: []string{"gate", "entrance", "main gate"}},
	{Key: "center", Name: "Arunai Center", Coordinate: entity.Coordinate{Lat: 12.192708, Lng: 79.083666}, Keywords: []string{"center", "arunai center", "main building"}},
	{Key: "gateway", Name: "Arunai Gateway", Coordinate: entity.Coordinate{Lat: 12.192414, Lng: 79.083265}, Keywords: []string{"gateway", "arunai gateway"}},
	{Key: "acaudi", Name: "AC Auditorium", Coordinate: entity.Coordinate{Lat: 12.192382, Lng: 79.083698}, Keywords: []string{"ac auditorium", "auditorium", "ac audi", "hall"}},
	{Key: "canteen", Name: "Arunai Canteen", Coordinate: entity.Coordinate{Lat: 12.192030, Lng: 79.083649}, Keywords: []string{"canteen", "food", "dining", "cafeteria"}},
	{Key: "hostel1", Name: "Mother Theresa Hostel", Coordinate: entity.Coordinate{Lat: 12.191600, Lng: 79.082926}, Keywords: []string{"mother theresa hostel", "hostel", "girls hostel", "ladies hostel"}},
	{Key: "temple", Name: "Arunai Temple", Coordinate: entity.Coordinate{Lat: 12.192394, Lng: 79.082822}, Keywords: []string{"temple", "arunai temple", "prayer"}},
	{Key: "guest", Name: "Guest House", Coordinate: entity.Coordinate{Lat: 12.192339, Lng: 79.082307}, Keywords: []string{"guest house", "guest", "accommodation"}},
	{Key: "mens", Name: "Mens Hostel", Coordinate: entity.Coordinate{Lat: 12.192641, Lng: 79.082147}, Keywords: []string{"mens hostel", "boys hostel", "men hostel"}},
	{Key: "openaudi", Name: "Open Auditorium", Coordinate: entity.Coordinate{Lat: 12.192992, Lng: 79.082720}, Keywords: []string{"open auditorium", "outdoor auditorium", "open air"}},
	{Key: "mess", Name: "Boys Mess", Coordinate: entity.Coordinate{Lat: 12.193069, Lng: 79.082069}, Keywords: []string{"boys mess", "mess", "dining hall"}},
	{Key: "mech", Name: "Mechanical Dept", Coordinate: entity.Coordinate{Lat: 12.193446, Lng: 79.082622}, Keywords: []string{"mechanical", "mech", "mechanical department", "mechanical block"}},
	{Key: "civil", Name: "Civil Block", Coordinate: entity.Coordinate{Lat: 12.193459, Lng: 79.082442}, Keywords: []string{"civil", "civil block", "civil engineering"}},
	{Key: "it", Name: "IT Block", Coordinate: entity.Coordinate{Lat: 12.193521, Lng: 79.083236}, Keywords: []string{"it", "it block", "information technology"}},
	{Key: "biotech", Name: "Biotech Block", Coordinate: entity.Coordinate{Lat: 12.193817, Lng: 79.082816}, Keywords: []string{"biotech", "biotechnology", "biotech block"}},
	{Key: "wrestroom", Name: "Womens Restroom", Coordinate: entity.Coordinate{Lat: 12.193818, Lng: 79.083408}, Keywords: []string{"womens restroom", "ladies restroom", "women toilet"}},
	{Key: "brestroom1", Name: "Boys Restroom 1", Coordinate: entity.Coordinate{Lat: 12.192795, Lng: 79.082949}, Keywords: []string{"boys restroom", "mens restroom", "toilet"}},
	{Key: "ece", Name: "ECE Block", Coordinate: entity.Coordinate{Lat: 12.192571, Lng: 79.082783}, Keywords: []string{"ece", "ece block", "electronics", "communication"}},
	{Key: "eee", Name: "EEE Block", Coordinate: entity.Coordinate{Lat: 12.193138, Lng: 79.083092}, Keywords: []string{"eee", "eee block", "electrical", "electronics"}},
	{Key: "cse", Name: "CSE Block", Coordinate: entity.Coordinate{Lat: 12.192838, Lng: 79.083230}, Keywords: []string{"cse", "cse block", "computer science", "computer"}},
	{Key: "has", Name: "H A S Block", Coordinate: entity.Coordinate{Lat: 12.193401, Lng: 79.083641}, Keywords: []string{"has", "has block", "humanities"}},
	{Key: "store", Name: "Store", Coordinate: entity.Coordinate{Lat: 12.192168, Lng: 79.084514}, Keywords: []string{"store", "shop", "supplies"}},
	{Key: "parking", Name: "Parking Area", Coordinate: entity.Coordinate{Lat: 12.192153, Lng: 79.084343}, Keywords: []string{"parking", "parking area", "car park"}},
	{Key: "security", Name: "Security Block", Coordinate: entity.Coordinate{Lat: 12.193018, Lng: 79.084381}, Keywords: []string{"security", "security block", "guard"}},
}

// Builtin returns a copy of the compiled-in campus table.
func Builtin() []entity.PointOfInterest {
	points := make([]entity.PointOfInterest, len(builtinPoints))
	for i, p := range builtinPoints {
		p.Keywords = append([]string(nil), p.Keywords...)
		points[i] = p
	}

	return points
}
