package waves

import (
	"fmt"
	"sort"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/identity"
)

// MaxWaveSize caps how many VMs travel together; larger groups are split
// into numbered batches.
const MaxWaveSize = 20

// Plan groups the scoped VMs into ordered migration waves. Every input VM
// lands in exactly one wave; empty waves are never emitted.
func Plan(vms []api.VM, scores map[string]api.Complexity, nicsByVM map[string][]api.NIC, mode api.WaveMode) []api.Wave {
	if len(vms) == 0 {
		return []api.Wave{}
	}

	switch mode {
	case api.WaveModeNetwork:
		return planByNetwork(vms, scores, nicsByVM)
	default:
		return planByComplexity(vms, scores)
	}
}

type group struct {
	name string
	vms  []api.VM
}

// planByNetwork keeps VMs sharing a network group together, ordering waves
// by ascending aggregate complexity so the simplest groups migrate first.
func planByNetwork(vms []api.VM, scores map[string]api.Complexity, nicsByVM map[string][]api.NIC) []api.Wave {
	byNetwork := map[string][]api.VM{}
	for _, vm := range vms {
		key := networkKey(vm, nicsByVM)
		byNetwork[key] = append(byNetwork[key], vm)
	}

	groups := make([]group, 0, len(byNetwork))
	for name, members := range byNetwork {
		groups = append(groups, group{name: name, vms: members})
	}

	// Lower mean score means higher complexity; simplest first means
	// highest average score first.
	sort.Slice(groups, func(i, j int) bool {
		si, sj := averageScore(groups[i].vms, scores), averageScore(groups[j].vms, scores)
		if si != sj {
			return si > sj
		}
		return groups[i].name < groups[j].name
	})

	return buildWaves(groups, scores, "Network")
}

// planByComplexity buckets VMs into the fixed tiers and emits waves tier by
// tier, simplest first.
func planByComplexity(vms []api.VM, scores map[string]api.Complexity) []api.Wave {
	tiers := map[api.ComplexityTier][]api.VM{}
	for _, vm := range vms {
		tier := api.TierModerate
		if s, ok := scores[identity.ForVM(vm).String()]; ok {
			tier = s.Tier
		}
		tiers[tier] = append(tiers[tier], vm)
	}

	groups := []group{}
	for _, tier := range []api.ComplexityTier{api.TierLow, api.TierModerate, api.TierHigh} {
		if members, ok := tiers[tier]; ok && len(members) > 0 {
			groups = append(groups, group{name: string(tier), vms: members})
		}
	}

	return buildWaves(groups, scores, "Complexity")
}

func networkKey(vm api.VM, nicsByVM map[string][]api.NIC) string {
	for _, nic := range nicsByVM[vm.Name] {
		if key := nic.GroupName(); key != "" {
			return key
		}
	}
	return "unassigned"
}

func averageScore(vms []api.VM, scores map[string]api.Complexity) float64 {
	if len(vms) == 0 {
		return 0
	}
	total := 0
	for _, vm := range vms {
		if s, ok := scores[identity.ForVM(vm).String()]; ok {
			total += s.Score
		} else {
			total += 100
		}
	}
	return float64(total) / float64(len(vms))
}

// buildWaves splits each group into batches of at most MaxWaveSize and
// fills in the aggregate resource totals.
func buildWaves(groups []group, scores map[string]api.Complexity, prefix string) []api.Wave {
	result := []api.Wave{}

	for _, g := range groups {
		// Deterministic member order within a group.
		sort.Slice(g.vms, func(i, j int) bool { return g.vms[i].Name < g.vms[j].Name })

		for start := 0; start < len(g.vms); start += MaxWaveSize {
			end := start + MaxWaveSize
			if end > len(g.vms) {
				end = len(g.vms)
			}
			batch := g.vms[start:end]

			wave := api.Wave{
				Index: len(result) + 1,
				Name:  fmt.Sprintf("%s: %s", prefix, g.name),
			}
			for _, vm := range batch {
				wave.VMIDs = append(wave.VMIDs, identity.ForVM(vm).String())
				wave.VCPUs += vm.CPUs
				wave.MemoryMB += vm.MemoryMB
				wave.StorageMiB += vm.ProvisionedMiB
			}
			wave.Complexity = 100 - averageScore(batch, scores)
			result = append(result, wave)
		}
	}

	return result
}
