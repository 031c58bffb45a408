package refdata

// UnknownLocation is returned for data center ids not in the table,
// including 0 (backend reported no DC at all).
const UnknownLocation = "Unknown"

// dcLocations maps Telegram data center ids to their hosting location.
// 6-8 are CDN DCs.
var dcLocations = map[int]string{
	1: "MIA, Miami, USA, US",
	2: "AMS, Amsterdam, Netherlands, NL",
	3: "MIA, Miami, USA, US",
	4: "AMS, Amsterdam, Netherlands, NL",
	5: "SIN, Singapore, Singapore, SG",
	6: "LON, London, United Kingdom, GB",
	7: "MAD, Madrid, Spain, ES",
	8: "FRA, Frankfurt, Germany, DE",
}

// DCLocation resolves a data center id to its location label.
func DCLocation(id int) string {
	if loc, ok := dcLocations[id]; ok {
		return loc
	}
	return UnknownLocation
}
