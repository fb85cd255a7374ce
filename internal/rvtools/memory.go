package rvtools

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vMemoryTable = SynonymTable{
	FieldVMName:      vmNameSpellings,
	FieldSizeMiB:     {"Size MiB", "Size MB", "Memory"},
	FieldHotAdd:      {"Hot Add", "HotAdd"},
	FieldBallooned:   {"Ballooned", "ballooned"},
	FieldReservation: {"Reservation", "reservation"},
	FieldLimit:       {"Limit", "limit"},
}

func parseMemoryConfigs(rows [][]string) []api.MemoryConfig {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vMemoryTable)

	configs := []api.MemoryConfig{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		configs = append(configs, api.MemoryConfig{
			VM:             vm,
			SizeMiB:        row.Int64(FieldSizeMiB),
			HotAdd:         row.Bool(FieldHotAdd),
			BalloonedMiB:   row.Int64(FieldBallooned),
			ReservationMiB: row.Int64(FieldReservation),
			LimitMiB:       row.Int64(FieldLimit),
		})
	}

	return configs
}
