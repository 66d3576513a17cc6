package helpers

import "strings"

// usStates maps two-letter USPS codes to full state names.
var usStates = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut",
	"DE": "Delaware", "FL": "Florida", "GA": "Georgia", "HI": "Hawaii",
	"ID": "Idaho", "IL": "Illinois", "IN": "Indiana", "IA": "Iowa",
	"KS": "Kansas", "KY": "Kentucky", "LA": "Louisiana", "ME": "Maine",
	"MD": "Maryland", "MA": "Massachusetts", "MI": "Michigan",
	"MN": "Minnesota", "MS": "Mississippi", "MO": "Missouri",
	"MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico",
	"NY": "New York", "NC": "North Carolina", "ND": "North Dakota",
	"OH": "Ohio", "OK": "Oklahoma", "OR": "Oregon", "PA": "Pennsylvania",
	"RI": "Rhode Island", "SC": "South Carolina", "SD": "South Dakota",
	"TN": "Tennessee", "TX": "Texas", "UT": "Utah", "VT": "Vermont",
	"VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// StateName resolves a two-letter state code to its full name. The empty
// string is returned for unknown codes.
func StateName(code string) string {
	return usStates[strings.ToUpper(strings.TrimSpace(code))]
}

// LocationMatchesState reports whether a free-text location mentions the
// given state, either by its two-letter code or its full name,
// case-insensitive.
func LocationMatchesState(location, code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || location == "" {
		return false
	}

	loc := strings.ToLower(location)
	if strings.Contains(loc, strings.ToLower(code)) {
		return true
	}

	name := usStates[code]
	return name != "" && strings.Contains(loc, strings.ToLower(name))
}
