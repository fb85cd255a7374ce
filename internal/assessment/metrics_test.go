package assessment_test

import (
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/assessment"
)

func powerState(p api.PowerState) *api.PowerState { return &p }

var _ = Describe("Compute", func() {
	var inv *api.Inventory

	BeforeEach(func() {
		inv = &api.Inventory{
			VMs: []api.VM{
				{Name: "db-1", PowerState: api.PoweredOn, Cluster: "prod", CPUs: 8, MemoryMB: 32768, ProvisionedMiB: 204800, InUseMiB: 102400, GuestOS: "Red Hat Enterprise Linux 8 (64-bit)", HardwareVersion: "vmx-11", Firmware: api.FirmwareBIOS},
				{Name: "web-1", PowerState: api.PoweredOn, Cluster: "prod", CPUs: 2, MemoryMB: 4096, ProvisionedMiB: 40960, InUseMiB: 20480, GuestOS: "Microsoft Windows Server 2019 (64-bit)", HardwareVersion: "vmx-15", Firmware: api.FirmwareEFI},
				{Name: "app-1", PowerState: api.PoweredOff, Cluster: "prod", CPUs: 2, MemoryMB: 8192, ProvisionedMiB: 81920, InUseMiB: 40960, GuestOS: "Ubuntu Linux (64-bit)", HardwareVersion: "vmx-14", Firmware: api.FirmwareBIOS, ConsolidationNeeded: true},
				{Name: "parked-1", PowerState: api.Suspended, Cluster: "empty-cluster", CPUs: 1, MemoryMB: 1024, ProvisionedMiB: 10240, InUseMiB: 5120, GuestOS: "CentOS 7 (64-bit)", HardwareVersion: "vmx-15"},
				{Name: "gold-template", Template: true, PowerState: api.PoweredOff, Cluster: "prod", CPUs: 2, MemoryMB: 4096, ProvisionedMiB: 40960, GuestOS: "Red Hat Enterprise Linux 8 (64-bit)"},
			},
			Hosts: []api.Host{
				{Name: "esx-1", Cluster: "prod", Datacenter: "dc1", Cores: 24, MemoryMB: 262144},
				{Name: "esx-2", Cluster: "prod", Datacenter: "dc1", Cores: 24, MemoryMB: 262144},
				{Name: "ghost-host", Cluster: "empty-cluster", Datacenter: "dc1", Cores: 0, MemoryMB: 0},
			},
			Snapshots: []api.Snapshot{
				{VM: "db-1", Name: "pre-upgrade", AgeDays: 120},
				{VM: "db-1", Name: "nightly", AgeDays: 2},
			},
			Tools: []api.ToolsStatus{
				{VM: "db-1", Status: "toolsNotInstalled"},
				{VM: "web-1", Status: "toolsOk", Running: true},
			},
			CDROMs: []api.CDROM{
				{VM: "web-1", Connected: true},
				{VM: "web-1", Label: "CD/DVD drive 2", Connected: true},
			},
		}
	})

	It("counts templates separately from the population", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})

		Expect(m.Counts.Total).To(Equal(4))
		Expect(m.Counts.Templates).To(Equal(1))
		Expect(m.Counts.PoweredOn).To(Equal(2))
		Expect(m.Counts.PoweredOff).To(Equal(1))
		Expect(m.Counts.Suspended).To(Equal(1))

		By("excluding template resources from the totals")
		Expect(m.Totals.VCPUs).To(Equal(13))
		Expect(m.Totals.MemoryMB).To(Equal(int64(46080)))
	})

	It("applies the filter to filtered totals only", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{PowerState: powerState(api.PoweredOn)})

		Expect(m.FilteredTotals.VCPUs).To(Equal(10))
		Expect(m.FilteredTotals.MemoryMB).To(Equal(int64(36864)))

		By("keeping the headline totals unfiltered")
		Expect(m.Totals.VCPUs).To(Equal(13))
	})

	It("omits clusters with zero reported capacity from overcommit data", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})

		Expect(m.Clusters).To(HaveLen(1))
		Expect(m.Clusters[0].Name).To(Equal("prod"))
		Expect(m.Clusters[0].HostCores).To(Equal(48))
		Expect(m.Clusters[0].VCPUs).To(Equal(12))
		Expect(m.Clusters[0].CPUOvercommit).To(BeNumerically("~", 0.25, 0.001))
	})

	It("counts VMs with snapshots distinctly", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})
		Expect(m.VMsWithSnapshots).To(Equal(1))
	})

	It("sums config issues as a raw per-category total", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})

		Expect(m.Issues.ToolsNotInstalled).To(Equal(1))
		Expect(m.Issues.OldSnapshots).To(Equal(1))
		Expect(m.Issues.ConnectedCDROMs).To(Equal(1))
		Expect(m.Issues.OutdatedHardware).To(Equal(1))
		Expect(m.Issues.ConsolidationNeeded).To(Equal(1))

		By("leaving consolidation out of the headline total")
		Expect(m.Issues.Total).To(Equal(4))
	})

	It("buckets firmware into UEFI and BIOS", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})

		counts := map[string]int{}
		for _, b := range m.Firmware {
			counts[b.Name] = b.Count
		}
		Expect(counts["UEFI"]).To(Equal(1))
		Expect(counts["BIOS"]).To(Equal(3))
	})

	It("buckets guest OS with specific names winning over generic ones", func() {
		m := assessment.Compute(inv, nil, assessment.Filter{})

		names := map[string]int{}
		for _, b := range m.OSDistribution {
			names[b.Name] = b.Count
		}
		Expect(names["Windows Server 2019"]).To(Equal(1))
		Expect(names["Red Hat Enterprise Linux"]).To(Equal(1))
		Expect(names["Ubuntu"]).To(Equal(1))
		Expect(names["CentOS"]).To(Equal(1))
	})

	It("caps the OS distribution at the top ten buckets", func() {
		many := &api.Inventory{}
		distros := []string{
			"Red Hat Enterprise Linux 8 (64-bit)", "CentOS 7 (64-bit)", "Ubuntu Linux (64-bit)",
			"SUSE Linux Enterprise 15 (64-bit)", "Debian GNU/Linux 11 (64-bit)", "Oracle Linux 8 (64-bit)",
			"Microsoft Windows Server 2022 (64-bit)", "Microsoft Windows Server 2019 (64-bit)",
			"Microsoft Windows Server 2016 (64-bit)", "Microsoft Windows Server 2012 (64-bit)",
			"Microsoft Windows 10 (64-bit)", "Other Linux (64-bit)",
		}
		for i, os := range distros {
			many.VMs = append(many.VMs, api.VM{Name: fmt.Sprintf("vm-%d", i), GuestOS: os, PowerState: api.PoweredOn})
		}

		m := assessment.Compute(many, nil, assessment.Filter{})
		Expect(m.OSDistribution).To(HaveLen(10))
	})

	It("never errors on an empty inventory", func() {
		m := assessment.Compute(&api.Inventory{}, nil, assessment.Filter{})

		Expect(m.Counts.Total).To(Equal(0))
		Expect(m.Clusters).To(BeEmpty())
		Expect(m.Issues.Total).To(Equal(0))
	})
})
