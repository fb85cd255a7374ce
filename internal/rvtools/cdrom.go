package rvtools

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vCDTable = SynonymTable{
	FieldVMName:          vmNameSpellings,
	FieldLabel:           {"Label", "Device", "Device Node"},
	FieldConnected:       {"Connected", "connected"},
	FieldStartsConnected: {"Starts Connected", "Start Connected"},
	FieldDeviceType:      {"Device Type", "Type"},
	FieldISOPath:         {"ISO Path", "Summary", "File"},
}

func parseCDROMs(rows [][]string) []api.CDROM {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vCDTable)

	cdroms := []api.CDROM{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		cdroms = append(cdroms, api.CDROM{
			VM:              vm,
			Label:           row.String(FieldLabel),
			Connected:       row.Bool(FieldConnected),
			StartsConnected: row.Bool(FieldStartsConnected),
			DeviceType:      row.String(FieldDeviceType),
			ISOPath:         row.String(FieldISOPath),
		})
	}

	return cdroms
}
