package providers

import "strings"

// VenueInfo locates a stadium for weather lookups.
type VenueInfo struct {
	Name      string
	Team      string
	Latitude  float64
	Longitude float64
	IsDome    bool
}

// nflVenues covers current NFL stadiums keyed by canonical name.
// Retractable roofs count as domes; closed is the playoff default.
var nflVenues = map[string]VenueInfo{
	"Highmark Stadium":           {Name: "Highmark Stadium", Team: "Buffalo Bills", Latitude: 42.7738, Longitude: -78.7870},
	"Hard Rock Stadium":          {Name: "Hard Rock Stadium", Team: "Miami Dolphins", Latitude: 25.9580, Longitude: -80.2389},
	"Gillette Stadium":           {Name: "Gillette Stadium", Team: "New England Patriots", Latitude: 42.0909, Longitude: -71.2643},
	"MetLife Stadium":            {Name: "MetLife Stadium", Team: "New York Jets", Latitude: 40.8135, Longitude: -74.0745},
	"M&T Bank Stadium":           {Name: "M&T Bank Stadium", Team: "Baltimore Ravens", Latitude: 39.2780, Longitude: -76.6227},
	"Paycor Stadium":             {Name: "Paycor Stadium", Team: "Cincinnati Bengals", Latitude: 39.0955, Longitude: -84.5161},
	"Huntington Bank Field":      {Name: "Huntington Bank Field", Team: "Cleveland Browns", Latitude: 41.5061, Longitude: -81.6995},
	"Acrisure Stadium":           {Name: "Acrisure Stadium", Team: "Pittsburgh Steelers", Latitude: 40.4468, Longitude: -80.0158},
	"NRG Stadium":                {Name: "NRG Stadium", Team: "Houston Texans", Latitude: 29.6847, Longitude: -95.4107, IsDome: true},
	"Lucas Oil Stadium":          {Name: "Lucas Oil Stadium", Team: "Indianapolis Colts", Latitude: 39.7601, Longitude: -86.1639, IsDome: true},
	"EverBank Stadium":           {Name: "EverBank Stadium", Team: "Jacksonville Jaguars", Latitude: 30.3240, Longitude: -81.6373},
	"Nissan Stadium":             {Name: "Nissan Stadium", Team: "Tennessee Titans", Latitude: 36.1665, Longitude: -86.7713},
	"Empower Field at Mile High": {Name: "Empower Field at Mile High", Team: "Denver Broncos", Latitude: 39.7439, Longitude: -105.0201},
	"GEHA Field at Arrowhead":    {Name: "GEHA Field at Arrowhead", Team: "Kansas City Chiefs", Latitude: 39.0489, Longitude: -94.4839},
	"Allegiant Stadium":          {Name: "Allegiant Stadium", Team: "Las Vegas Raiders", Latitude: 36.0909, Longitude: -115.1833, IsDome: true},
	"SoFi Stadium":               {Name: "SoFi Stadium", Team: "Los Angeles Chargers", Latitude: 33.9535, Longitude: -118.3392, IsDome: true},
	"AT&T Stadium":               {Name: "AT&T Stadium", Team: "Dallas Cowboys", Latitude: 32.7473, Longitude: -97.0945, IsDome: true},
	"Lincoln Financial Field":    {Name: "Lincoln Financial Field", Team: "Philadelphia Eagles", Latitude: 39.9008, Longitude: -75.1675},
	"Northwest Stadium":          {Name: "Northwest Stadium", Team: "Washington Commanders", Latitude: 38.9077, Longitude: -76.8645},
	"Soldier Field":              {Name: "Soldier Field", Team: "Chicago Bears", Latitude: 41.8623, Longitude: -87.6167},
	"Ford Field":                 {Name: "Ford Field", Team: "Detroit Lions", Latitude: 42.3400, Longitude: -83.0456, IsDome: true},
	"Lambeau Field":              {Name: "Lambeau Field", Team: "Green Bay Packers", Latitude: 44.5013, Longitude: -88.0622},
	"U.S. Bank Stadium":          {Name: "U.S. Bank Stadium", Team: "Minnesota Vikings", Latitude: 44.9738, Longitude: -93.2577, IsDome: true},
	"Mercedes-Benz Stadium":      {Name: "Mercedes-Benz Stadium", Team: "Atlanta Falcons", Latitude: 33.7554, Longitude: -84.4010, IsDome: true},
	"Bank of America Stadium":    {Name: "Bank of America Stadium", Team: "Carolina Panthers", Latitude: 35.2258, Longitude: -80.8528},
	"Caesars Superdome":          {Name: "Caesars Superdome", Team: "New Orleans Saints", Latitude: 29.9511, Longitude: -90.0812, IsDome: true},
	"Raymond James Stadium":      {Name: "Raymond James Stadium", Team: "Tampa Bay Buccaneers", Latitude: 27.9759, Longitude: -82.5033},
	"State Farm Stadium":         {Name: "State Farm Stadium", Team: "Arizona Cardinals", Latitude: 33.5276, Longitude: -112.2626, IsDome: true},
	"Levi's Stadium":             {Name: "Levi's Stadium", Team: "San Francisco 49ers", Latitude: 37.4030, Longitude: -121.9700},
	"Lumen Field":                {Name: "Lumen Field", Team: "Seattle Seahawks", Latitude: 47.5952, Longitude: -122.3316},
}

// LookupVenue resolves a venue by exact name first, then by substring in
// either direction so "Arrowhead Stadium" still finds Arrowhead.
func LookupVenue(venue string) (VenueInfo, bool) {
	if info, ok := nflVenues[venue]; ok {
		return info, true
	}
	needle := strings.ToLower(venue)
	if needle == "" {
		return VenueInfo{}, false
	}
	for name, info := range nflVenues {
		haystack := strings.ToLower(name)
		if strings.Contains(haystack, needle) || strings.Contains(needle, haystack) {
			return info, true
		}
	}
	return VenueInfo{}, false
}
