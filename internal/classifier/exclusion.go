package classifier

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/identity"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
)

// AutoExclusions evaluates the rule table over every VM and returns one
// record per VM that matched at least one rule. The auto-exclusion reason
// is retained even when a user override later force-includes the VM.
func AutoExclusions(vms []api.VM) []api.AutoExclusion {
	excluded := []api.AutoExclusion{}
	for _, vm := range vms {
		categories := categoriesFor(vm)
		if len(categories) == 0 {
			continue
		}
		excluded = append(excluded, api.AutoExclusion{
			VMID:       identity.ForVM(vm).String(),
			VMName:     vm.Name,
			Categories: categories,
		})
	}
	return excluded
}

// EffectiveExcluded resolves the three-tier precedence: an explicit user
// override always beats the auto-exclusion default.
func EffectiveExcluded(autoExcluded bool, userOverride *bool) bool {
	if userOverride != nil {
		return *userOverride
	}
	return autoExcluded
}

// Summarize tallies the exclusion state of a VM population under a given
// override set. Breakdown counts partition by category; a VM matching
// several rules contributes to each of its categories.
func Summarize(vms []api.VM, autoExclusions []api.AutoExclusion, set *overrides.Set) api.ExclusionSummary {
	autoByID := make(map[string][]api.ExclusionCategory, len(autoExclusions))
	for _, ae := range autoExclusions {
		autoByID[ae.VMID] = ae.Categories
	}

	summary := api.ExclusionSummary{
		Breakdown: map[api.ExclusionCategory]int{},
	}

	for _, vm := range vms {
		id := identity.ForVM(vm).String()
		categories, auto := autoByID[id]
		if auto {
			summary.AutoExcluded++
			for _, c := range categories {
				summary.Breakdown[c]++
			}
		}

		var userOverride *bool
		if set != nil {
			userOverride = set.IsExcluded(id)
		}
		if EffectiveExcluded(auto, userOverride) {
			summary.EffectiveExcluded++
		}
	}

	return summary
}

// InScope filters the VM population down to migration scope: non-template
// VMs whose effective exclusion state is false.
func InScope(vms []api.VM, autoExclusions []api.AutoExclusion, set *overrides.Set) []api.VM {
	autoByID := make(map[string]struct{}, len(autoExclusions))
	for _, ae := range autoExclusions {
		autoByID[ae.VMID] = struct{}{}
	}

	scoped := []api.VM{}
	for _, vm := range vms {
		id := identity.ForVM(vm).String()
		_, auto := autoByID[id]

		var userOverride *bool
		if set != nil {
			userOverride = set.IsExcluded(id)
		}
		if EffectiveExcluded(auto, userOverride) {
			continue
		}
		scoped = append(scoped, vm)
	}
	return scoped
}
