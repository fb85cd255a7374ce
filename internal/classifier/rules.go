package classifier

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// signature is one entry of the data-driven exclusion rule table: substring
// patterns matched case-insensitively against VM name and guest OS. Adding
// a signature is a table edit, not a control-flow change.
type signature struct {
	category     api.ExclusionCategory
	namePatterns []string
	osPatterns   []string
}

// RuleTableVersion bumps when the signature table changes, so persisted
// assessments can record which vintage classified them.
const RuleTableVersion = 3

var signatureTable = []signature{
	{
		category: api.ExcludedVMwareInfra,
		namePatterns: []string{
			"vcenter", "vcsa", "vcls", "nsx", "vsan witness", "vsan-witness",
			"vcf-", "esx-agent", "stctlvm", "vrealize", "vrops", "vrli",
			"srm-", "replication appliance",
		},
		osPatterns: []string{
			"vmware photon",
		},
	},
	{
		category: api.ExcludedWindowsInfra,
		namePatterns: []string{
			"-dc-", "-dc0", "-dc1", "-dc2", "domain controller",
			"domaincontroller", "-adds", "-dns0", "-dns1", "-wsus",
		},
		osPatterns: []string{
			"domain controller",
		},
	},
}

func (s signature) matches(vm api.VM) bool {
	name := strings.ToLower(vm.Name)
	os := strings.ToLower(vm.GuestOS)

	for _, p := range s.namePatterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	for _, p := range s.osPatterns {
		if os != "" && strings.Contains(os, p) {
			return true
		}
	}
	return false
}

// categoriesFor evaluates the fixed rule order for one VM. A VM can match
// more than one category.
func categoriesFor(vm api.VM) []api.ExclusionCategory {
	var categories []api.ExclusionCategory

	if vm.Template {
		categories = append(categories, api.ExcludedTemplates)
	}
	// Suspended VMs stay in scope; only actively powered-off ones are
	// auto-excluded.
	if vm.PowerState == api.PoweredOff {
		categories = append(categories, api.ExcludedPoweredOff)
	}
	for _, sig := range signatureTable {
		if sig.matches(vm) {
			categories = append(categories, sig.category)
		}
	}

	return categories
}
