// Package catalog holds the fixed column schema of the permit-filing CSV:
// a name -> (ordinal index, category) table resolved once at construction
// time, never touched per row. There is no header row read at query time —
// ordinal positions come entirely from this table.
package catalog

// Category is the coarse type tag attached to a column. It determines how
// a field's bytes, and a caller's literal, are coerced for comparison.
type Category int

const (
	Numeric Category = iota
	String
	Boolean
)

func (c Category) String() string {
	switch c {
	case Numeric:
		return "numeric"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	default:
		return "unknown"
	}
}

// Entry is one column catalog mapping.
type Entry struct {
	Name     string
	Index    int
	Category Category
}

// Columns is the canonical schema table for the DOB permit-filing export.
//
// Of two divergent upstream mappings, this is the one kept as canonical
// (see DESIGN.md); it names every ordinal this repo's record
// parser fills in. It is deliberately a plain data literal rather than
// something loaded from JSON/YAML at startup — the schema is a boot-time
// constant, not a per-deployment config file, per the column catalog's
// contract.
var Columns = []Entry{
	{"job_number", 0, Numeric},
	{"doc_number", 1, Numeric},
	{"borough", 2, Numeric},
	{"house_number", 3, String},
	{"street_name", 4, String},
	{"block", 5, Numeric},
	{"lot", 6, Numeric},
	{"bin", 7, Numeric},
	{"city", 8, String},
	{"state", 9, String},
	{"zip", 10, String},
	{"community_board", 11, Numeric},
	{"council_district", 12, Numeric},
	{"census_tract", 13, Numeric},
	{"nta_name", 14, String},
	{"job_type", 15, String},
	{"job_status", 16, String},
	{"building_type", 17, String},
	{"building_class", 18, String},
	{"work_type", 19, String},
	{"permit_type", 20, String},
	{"filing_status", 21, String},
	{"filing_date", 22, Numeric},
	{"issuance_date", 23, Numeric},
	{"expiration_date", 24, Numeric},
	{"latest_action_date", 25, Numeric},
	{"special_action_date", 26, Numeric},
	{"signoff_date", 27, Numeric},
	{"owner_type", 28, String},
	{"owner_name", 29, String},
	{"owner_business_name", 30, String},
	{"owner_house_number", 31, String},
	{"owner_street_name", 32, String},
	{"owner_city", 33, String},
	{"owner_state", 34, String},
	{"owner_zip", 35, String},
	{"owner_phone", 36, String},
	{"applicant_first_name", 37, String},
	{"applicant_last_name", 38, String},
	{"applicant_business_name", 39, String},
	{"applicant_professional_title", 40, String},
	{"applicant_license", 41, String},
	{"applicant_professional_cert", 42, String},
	{"applicant_business_phone", 43, String},
	{"existing_dwelling_units", 44, Numeric},
	{"proposed_dwelling_units", 45, Numeric},
	{"existing_stories", 46, Numeric},
	{"proposed_stories", 47, Numeric},
	{"existing_height", 48, Numeric},
	{"proposed_height", 49, Numeric},
	{"initial_cost", 50, Numeric},
	{"total_est_fee", 51, Numeric},
	{"paid_fee", 52, Numeric},
	{"zoning_district_1", 53, String},
	{"zoning_district_2", 54, String},
	{"zoning_district_3", 55, String},
	{"zoning_district_4", 56, String},
	{"zoning_district_5", 57, String},
	{"special_district_1", 58, String},
	{"special_district_2", 59, String},
	{"residential", 60, Boolean},
	{"plumbing", 61, Boolean},
	{"sprinkler", 62, Boolean},
	{"fire_alarm", 63, Boolean},
	{"mechanical", 64, Boolean},
	{"boiler", 65, Boolean},
	{"fuel_burning", 66, Boolean},
	{"curb_cut", 67, Boolean},
	{"job_no_good_count", 68, Numeric},
	{"latitude", 85, Numeric},
	{"longitude", 86, Numeric},
}

// Catalog is a resolved, lookup-ready view of Columns.
type Catalog struct {
	byName map[string]Entry
}

// New builds a Catalog from the canonical Columns table.
func New() *Catalog {
	return FromEntries(Columns)
}

// FromEntries builds a Catalog from an arbitrary entry set, so callers
// that need to describe a different export vintage aren't forced through
// the package-level Columns table.
func FromEntries(entries []Entry) *Catalog {
	byName := make(map[string]Entry, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	return &Catalog{byName: byName}
}

// Lookup resolves a column name to its ordinal index and category.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}
