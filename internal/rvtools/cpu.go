package rvtools

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vCPUTable = SynonymTable{
	FieldVMName:         vmNameSpellings,
	FieldSockets:        {"Sockets", "# Sockets"},
	FieldCoresPerSocket: {"Cores p/s", "Cores per Socket", "CoresPerSocket"},
	FieldHotAdd:         {"Hot Add", "HotAdd"},
	FieldHotRemove:      {"Hot Remove", "HotRemove"},
	FieldReservation:    {"Reservation", "reservation"},
	FieldLimit:          {"Limit", "limit"},
}

func parseCPUConfigs(rows [][]string) []api.CPUConfig {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vCPUTable)

	configs := []api.CPUConfig{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		configs = append(configs, api.CPUConfig{
			VM:             vm,
			Sockets:        row.Int(FieldSockets),
			CoresPerSocket: row.Int(FieldCoresPerSocket),
			HotAdd:         row.Bool(FieldHotAdd),
			HotRemove:      row.Bool(FieldHotRemove),
			ReservationMHz: row.Int64(FieldReservation),
			LimitMHz:       row.Int64(FieldLimit),
		})
	}

	return configs
}
