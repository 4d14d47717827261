package fuzzydate

// tzEntry is one row of the static timezone table.
type tzEntry struct {
	name   string
	abbr   string
	offset int // minutes east of UTC
}

// tzTable is the fixed, pre-built table the registry resolves against. One
// standard-time entry per zone; daylight-saving transitions are out of scope.
// Ordered by offset, then name, with UTC first. Abbreviations are unique
// across the table so the abbreviation index stays unambiguous.
var tzTable = []tzEntry{
	{"UTC", "UTC", 0},

	{"Pacific/Honolulu", "HST", -10 * 60},
	{"America/Anchorage", "AKST", -9 * 60},
	{"America/Los_Angeles", "PST", -8 * 60},
	{"America/Denver", "MST", -7 * 60},
	{"America/Chicago", "CST", -6 * 60},
	{"America/Bogota", "COT", -5 * 60},
	{"America/New_York", "EST", -5 * 60},
	{"America/Caracas", "VET", -4 * 60},
	{"America/Halifax", "AST", -4 * 60},
	{"America/St_Johns", "NST", -3*60 - 30},
	{"America/Sao_Paulo", "BRT", -3 * 60},
	{"Atlantic/Azores", "AZOT", -1 * 60},
	{"Atlantic/Cape_Verde", "CVT", -1 * 60},

	{"Europe/London", "GMT", 0},
	{"Africa/Lagos", "WAT", 1 * 60},
	{"Europe/Paris", "CET", 1 * 60},
	{"Africa/Johannesburg", "SAST", 2 * 60},
	{"Europe/Helsinki", "EET", 2 * 60},
	{"Africa/Nairobi", "EAT", 3 * 60},
	{"Europe/Moscow", "MSK", 3 * 60},
	{"Asia/Tehran", "IRST", 3*60 + 30},
	{"Asia/Dubai", "GST", 4 * 60},
	{"Asia/Karachi", "PKT", 5 * 60},
	{"Asia/Kolkata", "IST", 5*60 + 30},
	{"Asia/Kathmandu", "NPT", 5*60 + 45},
	{"Asia/Dhaka", "BST", 6 * 60},
	{"Asia/Yangon", "MMT", 6*60 + 30},
	{"Asia/Bangkok", "ICT", 7 * 60},
	{"Asia/Hong_Kong", "HKT", 8 * 60},
	{"Asia/Singapore", "SGT", 8 * 60},
	{"Asia/Tokyo", "JST", 9 * 60},
	{"Australia/Adelaide", "ACST", 9*60 + 30},
	{"Australia/Sydney", "AEST", 10 * 60},
	{"Pacific/Guam", "ChST", 10 * 60},
	{"Pacific/Noumea", "NCT", 11 * 60},
	{"Pacific/Auckland", "NZST", 12 * 60},
	{"Pacific/Chatham", "CHAST", 12*60 + 45},
}
