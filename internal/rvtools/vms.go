package rvtools

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// vmNameSpellings is shared by every VM-keyed sheet. Plain "Name" is not
// among them; sheets that label a column "Name" mean the entity name, never
// the VM column.
var vmNameSpellings = []string{"VM", "VM Name", "vm"}

var vInfoTable = SynonymTable{
	FieldVMName:          vmNameSpellings,
	FieldUUID:            {"SMBIOS UUID", "UUID", "VM UUID"},
	FieldPowerState:      {"Powerstate", "PowerState", "Power State", "powerstate"},
	FieldTemplate:        {"Template", "template"},
	FieldCPUs:            {"CPUs", "CPU", "# CPU", "vCPUs"},
	FieldMemory:          {"Memory", "Memory MB", "Memory MiB"},
	FieldProvisionedMiB:  {"Provisioned MiB", "Provisioned MB", "Provisioned"},
	FieldInUseMiB:        {"In Use MiB", "In Use MB", "In Use"},
	FieldGuestOS:         {"OS according to the configuration file", "OS", "Guest OS"},
	FieldGuestOSTools:    {"OS according to the VMware Tools", "Guest OS according to VMware Tools"},
	FieldHardwareVersion: {"HW version", "HW Version", "Hardware Version"},
	FieldFirmware:        {"Firmware", "firmware"},
	FieldDatacenter:      {"Datacenter", "DataCenter", "datacenter"},
	FieldCluster:         {"Cluster", "cluster"},
	FieldHost:            {"Host", "ESX Host", "host"},
	FieldConsolidation:   {"Consolidation Needed", "ConsolidationNeeded"},
	FieldAnnotation:      {"Annotation", "Notes"},
	FieldDNSName:         {"DNS Name", "DNS name", "Hostname"},
	FieldIPAddress:       {"Primary IP Address", "IP Address", "Primary IP"},
}

func normalizePowerState(s string) api.PowerState {
	switch strings.ToLower(s) {
	case "poweredon", "powered on":
		return api.PoweredOn
	case "suspended":
		return api.Suspended
	default:
		return api.PoweredOff
	}
}

func normalizeFirmware(s string) api.FirmwareType {
	if strings.Contains(strings.ToLower(s), "efi") {
		return api.FirmwareEFI
	}
	return api.FirmwareBIOS
}

// parseVMs converts the vInfo sheet. Rows without a VM name are dropped;
// duplicate names keep the last row parsed.
func parseVMs(rows [][]string) []api.VM {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vInfoTable)

	seen := make(map[string]int)
	vms := make([]api.VM, 0, len(data))

	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldVMName)
		if name == "" {
			continue
		}

		guestOS := row.String(FieldGuestOSTools)
		if guestOS == "" {
			guestOS = row.String(FieldGuestOS)
		}

		vm := api.VM{
			Name:                name,
			UUID:                row.String(FieldUUID),
			PowerState:          normalizePowerState(row.String(FieldPowerState)),
			Template:            row.Bool(FieldTemplate),
			CPUs:                row.Int(FieldCPUs),
			MemoryMB:            row.Int64(FieldMemory),
			ProvisionedMiB:      row.Int64(FieldProvisionedMiB),
			InUseMiB:            row.Int64(FieldInUseMiB),
			GuestOS:             guestOS,
			HardwareVersion:     row.String(FieldHardwareVersion),
			Firmware:            normalizeFirmware(row.String(FieldFirmware)),
			Datacenter:          row.String(FieldDatacenter),
			Cluster:             row.String(FieldCluster),
			Host:                row.String(FieldHost),
			ConsolidationNeeded: row.Bool(FieldConsolidation),
			Annotation:          row.OptionalString(FieldAnnotation),
			DNSName:             row.String(FieldDNSName),
			IPAddress:           row.String(FieldIPAddress),
		}

		// Last parsed wins for duplicate names within one workbook.
		if idx, dup := seen[name]; dup {
			vms[idx] = vm
			continue
		}
		seen[name] = len(vms)
		vms = append(vms, vm)
	}

	return vms
}

var vSourceTable = SynonymTable{
	FieldServer:       {"VI SDK Server", "Server", "vCenter Server"},
	FieldInstanceUUID: {"VI SDK UUID", "Instance UUID"},
	FieldVIVersion:    {"VI SDK Server type", "Version", "vCenter Version"},
	FieldAPIVersion:   {"VI SDK API Version", "API Version", "API version"},
	FieldUser:         {"VI SDK User", "User"},
}

// parseSources extracts vCenter identity rows. RVTools stores these columns
// on vMetaData in newer exports and repeats them on vInfo in older ones, so
// the assembler feeds whichever sheet is present. Duplicate servers collapse
// to one entry.
func parseSources(rows [][]string) []api.Source {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vSourceTable)

	seen := make(map[string]struct{})
	sources := []api.Source{}

	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		server := row.String(FieldServer)
		if server == "" {
			continue
		}
		if _, dup := seen[server]; dup {
			continue
		}
		seen[server] = struct{}{}

		sources = append(sources, api.Source{
			Server:       server,
			InstanceUUID: row.String(FieldInstanceUUID),
			Version:      row.String(FieldVIVersion),
			APIVersion:   row.String(FieldAPIVersion),
			User:         row.String(FieldUser),
		})
	}

	return sources
}
