package rvtools

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vDiskTable = SynonymTable{
	FieldVMName:      vmNameSpellings,
	FieldDatacenter:  {"Datacenter", "datacenter"},
	FieldCluster:     {"Cluster", "cluster"},
	FieldPath:        {"Path", "Disk Path", "path"},
	FieldCapacityMiB: {"Capacity MiB", "Capacity MB", "Capacity"},
	FieldDiskMode:    {"Disk Mode", "Mode"},
	FieldController:  {"Controller", "controller"},
	FieldDiskKey:     {"Disk Key", "Key"},
	FieldUnitNumber:  {"Unit #", "Unit"},
	FieldRaw:         {"Raw", "RDM"},
	FieldSharing:     {"Sharing mode", "Sharing Mode", "Sharing"},
}

func parseDisks(rows [][]string) []api.Disk {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vDiskTable)

	disks := []api.Disk{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		sharing := row.String(FieldSharing)
		raw := row.String(FieldRaw)

		disks = append(disks, api.Disk{
			VM:          vm,
			Datacenter:  row.String(FieldDatacenter),
			Cluster:     row.String(FieldCluster),
			Path:        row.String(FieldPath),
			CapacityMiB: row.Int64(FieldCapacityMiB),
			Mode:        row.String(FieldDiskMode),
			Controller:  row.String(FieldController),
			DiskKey:     row.Int(FieldDiskKey),
			UnitNumber:  row.Int(FieldUnitNumber),
			Raw:         raw != "" && raw != "0" && strings.ToLower(raw) != "false",
			Shared:      sharing != "" && sharing != "sharingNone",
		})
	}

	return disks
}

// DatastoreFromPath extracts the datastore name from a disk path of the
// form "[datastoreName] vm/vm.vmdk".
func DatastoreFromPath(path string) string {
	if strings.HasPrefix(path, "[") {
		if end := strings.Index(path, "]"); end > 1 {
			return path[1:end]
		}
	}
	return ""
}
