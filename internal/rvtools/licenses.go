package rvtools

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vLicenseTable = SynonymTable{
	FieldName:       {"Name", "License", "License Name"},
	FieldLicenseKey: {"Key", "License Key"},
	FieldEdition:    {"Edition key", "Edition", "Product"},
	FieldTotal:      {"Total", "total"},
	FieldUsed:       {"Used", "used"},
}

const licenseKeyRedactThreshold = 10

// parseLicenses redacts every key on the way in; the raw key is never
// retained downstream.
func parseLicenses(rows [][]string) []api.License {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vLicenseTable)

	licenses := []api.License{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldName)
		if name == "" {
			continue
		}

		licenses = append(licenses, api.License{
			Name:    name,
			Key:     RedactLicenseKey(row.String(FieldLicenseKey)),
			Edition: row.String(FieldEdition),
			Total:   row.Int(FieldTotal),
			Used:    row.Int(FieldUsed),
		})
	}

	return licenses
}

// RedactLicenseKey masks dash-delimited groups with asterisks of equal
// length, keeping only the final 5 characters visible. Keys at or under the
// threshold pass through unmodified. The transform is one way and
// idempotent in effect.
func RedactLicenseKey(key string) string {
	if len(key) <= licenseKeyRedactThreshold {
		return key
	}

	groups := strings.Split(key, "-")
	masked := make([]string, 0, len(groups))
	for _, g := range groups[:len(groups)-1] {
		masked = append(masked, strings.Repeat("*", len(g)))
	}

	last := groups[len(groups)-1]
	if len(last) > 5 {
		last = strings.Repeat("*", len(last)-5) + last[len(last)-5:]
	}
	masked = append(masked, last)

	return strings.Join(masked, "-")
}
