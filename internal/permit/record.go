// Package permit implements the Record Parser: decoding a single CSV row
// slice into the typed domain record, invoked only after a row has
// already matched a predicate. It is the one component whose exact field
// set is external to the core's hard problems (tokenizing, indexing, and
// evaluating) — but it still needs a concrete, testable implementation.
package permit

import (
	"math"

	"github.com/nycopendata/dobpermits/internal/tokenize"
)

// Record is the decoded domain row for one permit filing, mirroring the
// catalog's ordinal field layout.
type Record struct {
	JobNumber    int32
	DocNumber    int16
	Borough      uint8
	HouseNumber  string
	StreetName   string
	Block        int32
	Lot          int16
	BIN          int32
	City         string
	State        string
	Zip          string

	CommunityBoard  int16
	CouncilDistrict int16
	CensusTract     int32
	NTAName         string

	JobType       string
	JobStatus     string
	BuildingType  string
	BuildingClass string
	WorkType      string
	PermitType    string
	FilingStatus  string

	FilingDate        int32 // packed YYYYMMDD
	IssuanceDate      int32
	ExpirationDate    int32
	LatestActionDate  int32
	SpecialActionDate int32
	SignoffDate       int32

	OwnerType          string
	OwnerName          string
	OwnerBusinessName  string
	OwnerHouseNumber   string
	OwnerStreetName    string
	OwnerCity          string
	OwnerState         string
	OwnerZip           string
	OwnerPhone         string

	ApplicantFirstName          string
	ApplicantLastName           string
	ApplicantBusinessName       string
	ApplicantProfessionalTitle  string
	ApplicantLicense            string
	ApplicantProfessionalCert   string
	ApplicantBusinessPhone      string

	ExistingDwellingUnits int16
	ProposedDwellingUnits int16
	ExistingStories       int16
	ProposedStories       int16
	ExistingHeight        int32
	ProposedHeight        int32

	InitialCostCents  int64
	TotalEstFeeCents  int64
	PaidFeeCents      int64

	ZoningDistrict1   string
	ZoningDistrict2   string
	ZoningDistrict3   string
	ZoningDistrict4   string
	ZoningDistrict5   string
	SpecialDistrict1  string
	SpecialDistrict2  string

	Residential bool
	Plumbing    bool
	Sprinkler   bool
	FireAlarm   bool
	Mechanical  bool
	Boiler      bool
	FuelBurning bool
	CurbCut     bool

	JobNoGoodCount uint8

	Latitude  float64
	Longitude float64
}

// field returns fields[i], or an empty slice if the row was shorter than
// expected — the same "absent field" behavior the predicate layer uses.
func field(fields [][]byte, i int) []byte {
	if i < 0 || i >= len(fields) {
		return nil
	}
	return fields[i]
}

// ParseRow tokenizes row and maps fields by the ordinal positions the
// column catalog assigns them into a Record. ParseRow never fails on
// malformed numeric data — it defaults to zero, matching the predicate
// layer's own coercion policy — but always succeeds, so its error return
// exists for future external schema hooks rather than any failure this
// implementation currently produces.
func ParseRow(row []byte) (Record, error) {
	fields := tokenize.Fields(row, nil)

	r := Record{
		JobNumber: parseInt32(field(fields, 0)),
		DocNumber: parseInt16(field(fields, 1)),
		Borough:   uint8(parseInt32(field(fields, 2))),

		HouseNumber: unquote(field(fields, 3)),
		StreetName:  unquote(field(fields, 4)),

		Block: parseInt32(field(fields, 5)),
		Lot:   parseInt16(field(fields, 6)),
		BIN:   parseInt32(field(fields, 7)),

		City:  unquote(field(fields, 8)),
		State: unquote(field(fields, 9)),
		Zip:   unquote(field(fields, 10)),

		CommunityBoard:  parseInt16(field(fields, 11)),
		CouncilDistrict: parseInt16(field(fields, 12)),
		CensusTract:     parseInt32(field(fields, 13)),
		NTAName:         unquote(field(fields, 14)),

		JobType:       unquote(field(fields, 15)),
		JobStatus:     unquote(field(fields, 16)),
		BuildingType:  unquote(field(fields, 17)),
		BuildingClass: unquote(field(fields, 18)),
		WorkType:      unquote(field(fields, 19)),
		PermitType:    unquote(field(fields, 20)),
		FilingStatus:  unquote(field(fields, 21)),

		FilingDate:        parseDate(field(fields, 22)),
		IssuanceDate:      parseDate(field(fields, 23)),
		ExpirationDate:    parseDate(field(fields, 24)),
		LatestActionDate:  parseDate(field(fields, 25)),
		SpecialActionDate: parseDate(field(fields, 26)),
		SignoffDate:       parseDate(field(fields, 27)),

		OwnerType:         unquote(field(fields, 28)),
		OwnerName:         unquote(field(fields, 29)),
		OwnerBusinessName: unquote(field(fields, 30)),
		OwnerHouseNumber:  unquote(field(fields, 31)),
		OwnerStreetName:   unquote(field(fields, 32)),
		OwnerCity:         unquote(field(fields, 33)),
		OwnerState:        unquote(field(fields, 34)),
		OwnerZip:          unquote(field(fields, 35)),
		OwnerPhone:        unquote(field(fields, 36)),

		ApplicantFirstName:         unquote(field(fields, 37)),
		ApplicantLastName:          unquote(field(fields, 38)),
		ApplicantBusinessName:      unquote(field(fields, 39)),
		ApplicantProfessionalTitle: unquote(field(fields, 40)),
		ApplicantLicense:           unquote(field(fields, 41)),
		ApplicantProfessionalCert:  unquote(field(fields, 42)),
		ApplicantBusinessPhone:     unquote(field(fields, 43)),

		ExistingDwellingUnits: parseInt16(field(fields, 44)),
		ProposedDwellingUnits: parseInt16(field(fields, 45)),
		ExistingStories:       parseInt16(field(fields, 46)),
		ProposedStories:       parseInt16(field(fields, 47)),
		ExistingHeight:        parseInt32(field(fields, 48)),
		ProposedHeight:        parseInt32(field(fields, 49)),

		InitialCostCents: parseMoneyCents(field(fields, 50)),
		TotalEstFeeCents: parseMoneyCents(field(fields, 51)),
		PaidFeeCents:     parseMoneyCents(field(fields, 52)),

		ZoningDistrict1:  unquote(field(fields, 53)),
		ZoningDistrict2:  unquote(field(fields, 54)),
		ZoningDistrict3:  unquote(field(fields, 55)),
		ZoningDistrict4:  unquote(field(fields, 56)),
		ZoningDistrict5:  unquote(field(fields, 57)),
		SpecialDistrict1: unquote(field(fields, 58)),
		SpecialDistrict2: unquote(field(fields, 59)),

		Residential: isTrue(field(fields, 60)),
		Plumbing:    isTrue(field(fields, 61)),
		Sprinkler:   isTrue(field(fields, 62)),
		FireAlarm:   isTrue(field(fields, 63)),
		Mechanical:  isTrue(field(fields, 64)),
		Boiler:      isTrue(field(fields, 65)),
		FuelBurning: isTrue(field(fields, 66)),
		CurbCut:     isTrue(field(fields, 67)),

		JobNoGoodCount: uint8(parseInt32(field(fields, 68))),

		Latitude:  parseCoordinate(field(fields, 85)),
		Longitude: parseCoordinate(field(fields, 86)),
	}

	return r, nil
}

// parseCoordinate defaults to NaN on an empty field rather than 0 — an
// empty lat/long means "unknown location", not "at the equator/prime
// meridian".
func parseCoordinate(f []byte) float64 {
	if len(f) == 0 {
		return math.NaN()
	}
	return parseFloat64(f)
}
