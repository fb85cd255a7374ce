package rvtools

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vHostTable = SynonymTable{
	FieldHost:       {"Host", "Host Name", "Name"},
	FieldDatacenter: {"Datacenter", "datacenter"},
	FieldCluster:    {"Cluster", "cluster"},
	FieldVendor:     {"Vendor", "vendor"},
	FieldModel:      {"Model", "model"},
	FieldCPUModel:   {"CPU Model", "Cpu Model"},
	FieldSockets:    {"# CPU", "CPUs", "Sockets"},
	FieldCores:      {"# Cores", "Cores", "Total Cores"},
	FieldMemory:     {"# Memory", "Memory", "Memory MB"},
	FieldVMCount:    {"# VMs", "VMs"},
	FieldESXVersion: {"ESX Version", "ESXi Version"},
	FieldObjectID:   {"Object ID", "ObjectID"},
}

// parseHosts keeps the vCenter-reported aggregate counters as exported; the
// assembler never recomputes them from VM rows.
func parseHosts(rows [][]string) []api.Host {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vHostTable)

	hosts := []api.Host{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldHost)
		if name == "" {
			continue
		}

		hosts = append(hosts, api.Host{
			Name:       name,
			Datacenter: row.String(FieldDatacenter),
			Cluster:    row.String(FieldCluster),
			Vendor:     row.String(FieldVendor),
			Model:      row.String(FieldModel),
			CPUModel:   row.String(FieldCPUModel),
			Sockets:    row.Int(FieldSockets),
			Cores:      row.Int(FieldCores),
			MemoryMB:   row.Int64(FieldMemory),
			VMCount:    row.Int(FieldVMCount),
			ESXVersion: row.String(FieldESXVersion),
			ObjectID:   row.String(FieldObjectID),
		})
	}

	return hosts
}

var vClusterTable = SynonymTable{
	FieldName:       {"Name", "Cluster", "Cluster Name"},
	FieldDatacenter: {"Datacenter", "datacenter"},
	FieldHostCount:  {"NumHosts", "# Hosts", "Hosts"},
	FieldCores:      {"NumCpuCores", "# Cores", "Cores"},
	FieldMemory:     {"TotalMemory", "Memory", "# Memory"},
	FieldVMCount:    {"# VMs", "VMs", "NumVMs"},
	FieldHAEnabled:  {"HA enabled", "HA Enabled"},
	FieldDRSEnabled: {"DRS enabled", "DRS Enabled"},
	FieldObjectID:   {"Object ID", "ObjectID"},
}

func parseClusters(rows [][]string) []api.Cluster {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vClusterTable)

	clusters := []api.Cluster{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldName)
		if name == "" {
			continue
		}

		clusters = append(clusters, api.Cluster{
			Name:       name,
			Datacenter: row.String(FieldDatacenter),
			HostCount:  row.Int(FieldHostCount),
			Cores:      row.Int(FieldCores),
			MemoryMB:   row.Int64(FieldMemory),
			VMCount:    row.Int(FieldVMCount),
			HAEnabled:  row.Bool(FieldHAEnabled),
			DRSEnabled: row.Bool(FieldDRSEnabled),
			ObjectID:   row.String(FieldObjectID),
		})
	}

	return clusters
}

var vDatastoreTable = SynonymTable{
	FieldName:           {"Name", "Datastore", "Datastore Name"},
	FieldType:           {"Type", "type"},
	FieldCapacityMiB:    {"Capacity MiB", "Capacity MB", "Capacity"},
	FieldProvisionedMiB: {"Provisioned MiB", "Provisioned MB", "Provisioned"},
	FieldFreeMiB:        {"Free MiB", "Free MB", "Free"},
	FieldHostCount:      {"# Hosts", "Hosts"},
	FieldVMCount:        {"# VMs", "VMs"},
	FieldObjectID:       {"Object ID", "ObjectID"},
}

func parseDatastores(rows [][]string) []api.Datastore {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vDatastoreTable)

	datastores := []api.Datastore{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldName)
		if name == "" {
			continue
		}

		datastores = append(datastores, api.Datastore{
			Name:           name,
			Type:           row.String(FieldType),
			CapacityMiB:    row.Int64(FieldCapacityMiB),
			ProvisionedMiB: row.Int64(FieldProvisionedMiB),
			FreeMiB:        row.Int64(FieldFreeMiB),
			HostCount:      row.Int(FieldHostCount),
			VMCount:        row.Int(FieldVMCount),
			ObjectID:       row.String(FieldObjectID),
		})
	}

	return datastores
}
