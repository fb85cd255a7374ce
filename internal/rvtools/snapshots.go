package rvtools

import (
	"time"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vSnapshotTable = SynonymTable{
	FieldVMName:      vmNameSpellings,
	FieldName:        {"Name", "Snapshot Name"},
	FieldDescription: {"Description", "description"},
	FieldCreated:     {"Date / time", "Date/time", "Created", "Date"},
	FieldSizeMiB:     {"Size MiB (vmsn)", "Size MiB", "Size MB"},
	FieldQuiesced:    {"Quiesced", "quiesced"},
}

// parseSnapshots computes each snapshot's age in whole days against now.
// Unparsable timestamps fall back to now, yielding age 0; ages are never
// negative.
func parseSnapshots(rows [][]string, now time.Time) []api.Snapshot {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vSnapshotTable)

	snapshots := []api.Snapshot{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		created, ok := row.Date(FieldCreated)
		if !ok {
			created = now
		}

		age := int(now.Sub(created).Hours() / 24)
		if age < 0 {
			age = 0
		}

		snapshots = append(snapshots, api.Snapshot{
			VM:          vm,
			Name:        row.String(FieldName),
			Description: row.OptionalString(FieldDescription),
			Created:     created,
			AgeDays:     age,
			SizeMiB:     row.Int64(FieldSizeMiB),
			Quiesced:    row.Bool(FieldQuiesced),
		})
	}

	return snapshots
}
