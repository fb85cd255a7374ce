package assessment

import (
	"sort"
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/classifier"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
)

// Filter narrows the filtered-view totals, typically driven by a chart
// selection. Headline totals ignore it.
type Filter struct {
	PowerState *api.PowerState
}

func (f Filter) matches(vm api.VM) bool {
	if f.PowerState != nil && vm.PowerState != *f.PowerState {
		return false
	}
	return true
}

// Compute derives the full metrics bundle from a dataset. Pure and
// re-entrant: same inputs, same bundle; missing optional sheets yield empty
// slices and zero counts, never errors.
func Compute(inv *api.Inventory, set *overrides.Set, filter Filter) api.Metrics {
	m := api.Metrics{}

	for _, vm := range inv.VMs {
		if vm.Template {
			m.Counts.Templates++
			continue
		}
		m.Counts.Total++
		switch vm.PowerState {
		case api.PoweredOn:
			m.Counts.PoweredOn++
		case api.Suspended:
			m.Counts.Suspended++
		default:
			m.Counts.PoweredOff++
		}

		m.Totals.VCPUs += vm.CPUs
		m.Totals.MemoryMB += vm.MemoryMB
		m.Totals.ProvisionedMiB += vm.ProvisionedMiB
		m.Totals.InUseMiB += vm.InUseMiB

		if filter.matches(vm) {
			m.FilteredTotals.VCPUs += vm.CPUs
			m.FilteredTotals.MemoryMB += vm.MemoryMB
			m.FilteredTotals.ProvisionedMiB += vm.ProvisionedMiB
			m.FilteredTotals.InUseMiB += vm.InUseMiB
		}
	}

	m.Clusters = clusterCapacities(inv)
	m.OSDistribution = osDistribution(nonTemplates(inv.VMs))
	m.HardwareVersions = hardwareDistribution(nonTemplates(inv.VMs))
	m.Firmware = firmwareDistribution(nonTemplates(inv.VMs))
	m.Issues = configIssues(inv)
	m.VMsWithSnapshots = vmsWithSnapshots(inv)

	return m
}

func nonTemplates(vms []api.VM) []api.VM {
	out := make([]api.VM, 0, len(vms))
	for _, vm := range vms {
		if !vm.Template {
			out = append(out, vm)
		}
	}
	return out
}

// clusterCapacities joins host-reported capacity against VM demand per
// cluster. Clusters with zero host capacity are omitted rather than shown
// as infinite ratios.
func clusterCapacities(inv *api.Inventory) []api.ClusterCapacity {
	type demand struct {
		vcpus    int
		memoryMB int64
		count    int
	}

	capacity := map[string]*api.ClusterCapacity{}
	for _, h := range inv.Hosts {
		if h.Cluster == "" {
			continue
		}
		c, ok := capacity[h.Cluster]
		if !ok {
			c = &api.ClusterCapacity{Name: h.Cluster, Datacenter: h.Datacenter}
			capacity[h.Cluster] = c
		}
		c.HostCores += h.Cores
		c.HostMemoryMB += h.MemoryMB
	}

	demands := map[string]*demand{}
	for _, vm := range inv.VMs {
		if vm.Template || vm.Cluster == "" {
			continue
		}
		d, ok := demands[vm.Cluster]
		if !ok {
			d = &demand{}
			demands[vm.Cluster] = d
		}
		d.vcpus += vm.CPUs
		d.memoryMB += vm.MemoryMB
		d.count++
	}

	result := []api.ClusterCapacity{}
	for name, c := range capacity {
		if c.HostCores == 0 && c.HostMemoryMB == 0 {
			continue
		}
		if d, ok := demands[name]; ok {
			c.VCPUs = d.vcpus
			c.VMMemoryMB = d.memoryMB
			c.VMCount = d.count
		}
		if c.HostCores > 0 {
			c.CPUOvercommit = float64(c.VCPUs) / float64(c.HostCores)
		}
		if c.HostMemoryMB > 0 {
			c.MemoryOvercommit = float64(c.VMMemoryMB) / float64(c.HostMemoryMB)
		}
		result = append(result, *c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func hardwareDistribution(vms []api.VM) []api.Bucket {
	counts := map[string]int{}
	for _, vm := range vms {
		v := vm.HardwareVersion
		if v == "" {
			v = unknownBucket
		}
		counts[v]++
	}
	return topBuckets(counts, 0)
}

func firmwareDistribution(vms []api.VM) []api.Bucket {
	counts := map[string]int{}
	for _, vm := range vms {
		if strings.Contains(strings.ToLower(string(vm.Firmware)), "efi") {
			counts["UEFI"]++
		} else {
			counts["BIOS"]++
		}
	}
	return topBuckets(counts, 0)
}

func vmsWithSnapshots(inv *api.Inventory) int {
	seen := map[string]struct{}{}
	for _, s := range inv.Snapshots {
		seen[s.VM] = struct{}{}
	}
	return len(seen)
}

// configIssues counts configuration problems per category. Total is a raw
// sum; a VM matching several categories counts once per category, which is
// the documented behavior.
func configIssues(inv *api.Inventory) api.ConfigIssues {
	issues := api.ConfigIssues{}

	for _, t := range inv.Tools {
		if classifier.ToolsNotInstalled(t.Status) {
			issues.ToolsNotInstalled++
		}
	}

	for _, vm := range inv.VMs {
		if vm.Template {
			continue
		}
		if hw := classifier.HardwareVersionNumber(vm.HardwareVersion); hw > 0 && hw < classifier.MinHardwareVersion {
			issues.OutdatedHardware++
		}
		if vm.ConsolidationNeeded {
			issues.ConsolidationNeeded++
		}
	}

	for _, s := range inv.Snapshots {
		if s.AgeDays > classifier.SnapshotBlockerAgeDays {
			issues.OldSnapshots++
		}
	}

	cdSeen := map[string]struct{}{}
	for _, cd := range inv.CDROMs {
		if cd.Connected {
			cdSeen[cd.VM] = struct{}{}
		}
	}
	issues.ConnectedCDROMs = len(cdSeen)

	issues.Total = issues.ToolsNotInstalled + issues.OldSnapshots +
		issues.ConnectedCDROMs + issues.OutdatedHardware

	return issues
}
