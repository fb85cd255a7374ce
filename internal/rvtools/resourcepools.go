package rvtools

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vRPTable = SynonymTable{
	FieldName:       {"Resource pool", "Resource Pool", "Name"},
	FieldPath:       {"Path", "Full Path"},
	FieldDatacenter: {"Datacenter", "datacenter"},
	FieldCluster:    {"Cluster", "cluster"},
	FieldLimit:      {"CPU limit", "CPU Limit"},
	FieldMemory:     {"Mem limit", "Memory limit", "Memory Limit"},
	FieldVMCount:    {"# VMs", "VMs"},
}

func parseResourcePools(rows [][]string) []api.ResourcePool {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vRPTable)

	pools := []api.ResourcePool{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		name := row.String(FieldName)
		if name == "" {
			continue
		}

		path := row.String(FieldPath)
		datacenter := row.String(FieldDatacenter)
		cluster := row.String(FieldCluster)
		if datacenter == "" || cluster == "" {
			dc, cl := hierarchyFromPath(path)
			if datacenter == "" {
				datacenter = dc
			}
			if cluster == "" {
				cluster = cl
			}
		}

		pools = append(pools, api.ResourcePool{
			Name:           name,
			Path:           path,
			Datacenter:     datacenter,
			Cluster:        cluster,
			CPULimitMHz:    row.Int64(FieldLimit),
			MemoryLimitMiB: row.Int64(FieldMemory),
			VMCount:        row.Int(FieldVMCount),
		})
	}

	return pools
}

// hierarchyFromPath derives datacenter and cluster from a slash-delimited
// resource pool path by locating the literal "Resources" segment and
// walking back to the owning cluster. Both vSphere layouts are handled:
// "DC/host/Cluster/Resources/..." and the flatter "DC/Cluster/Resources/...".
func hierarchyFromPath(path string) (datacenter, cluster string) {
	if path == "" {
		return "", ""
	}

	segments := strings.Split(path, "/")
	resourcesIdx := -1
	for i, seg := range segments {
		if seg == "Resources" {
			resourcesIdx = i
			break
		}
	}
	if resourcesIdx < 1 {
		return "", ""
	}

	cluster = segments[resourcesIdx-1]

	// The traditional layout inserts a "host" folder between datacenter and
	// cluster; the flat layout does not.
	dcIdx := resourcesIdx - 2
	if dcIdx >= 0 && segments[dcIdx] == "host" {
		dcIdx--
	}
	if dcIdx >= 0 {
		datacenter = segments[dcIdx]
	}

	return datacenter, cluster
}
