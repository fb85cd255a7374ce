package v1alpha1

import "time"

type VMCounts struct {
	Total      int `json:"total"`
	PoweredOn  int `json:"poweredOn"`
	PoweredOff int `json:"poweredOff"`
	Suspended  int `json:"suspended"`
	Templates  int `json:"templates"`
}

type ResourceTotals struct {
	VCPUs          int   `json:"vcpus"`
	MemoryMB       int64 `json:"memoryMB"`
	ProvisionedMiB int64 `json:"provisionedMiB"`
	InUseMiB       int64 `json:"inUseMiB"`
}

// ClusterCapacity joins host-reported capacity with VM demand per cluster.
// Clusters with zero reported capacity are omitted from overcommit lists.
type ClusterCapacity struct {
	Name             string  `json:"name"`
	Datacenter       string  `json:"datacenter,omitempty"`
	HostCores        int     `json:"hostCores"`
	HostMemoryMB     int64   `json:"hostMemoryMB"`
	VCPUs            int     `json:"vcpus"`
	VMMemoryMB       int64   `json:"vmMemoryMB"`
	VMCount          int     `json:"vmCount"`
	CPUOvercommit    float64 `json:"cpuOvercommit"`
	MemoryOvercommit float64 `json:"memoryOvercommit"`
}

type Bucket struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ConfigIssues.Total is a raw sum across categories; a VM matching several
// categories is counted once per category.
type ConfigIssues struct {
	ToolsNotInstalled   int `json:"toolsNotInstalled"`
	OutdatedHardware    int `json:"outdatedHardware"`
	OldSnapshots        int `json:"oldSnapshots"`
	ConnectedCDROMs     int `json:"connectedCdroms"`
	ConsolidationNeeded int `json:"consolidationNeeded"`
	Total               int `json:"total"`
}

type Metrics struct {
	Counts           VMCounts          `json:"counts"`
	Totals           ResourceTotals    `json:"totals"`
	FilteredTotals   ResourceTotals    `json:"filteredTotals"`
	Clusters         []ClusterCapacity `json:"clusters,omitempty"`
	OSDistribution   []Bucket          `json:"osDistribution,omitempty"`
	HardwareVersions []Bucket          `json:"hardwareVersions,omitempty"`
	Firmware         []Bucket          `json:"firmware,omitempty"`
	Issues           ConfigIssues      `json:"issues"`
	VMsWithSnapshots int               `json:"vmsWithSnapshots"`
}

type ExclusionCategory string

const (
	ExcludedTemplates    ExclusionCategory = "templates"
	ExcludedPoweredOff   ExclusionCategory = "poweredOff"
	ExcludedVMwareInfra  ExclusionCategory = "vmwareInfrastructure"
	ExcludedWindowsInfra ExclusionCategory = "windowsInfrastructure"
)

// AutoExclusion records why a VM was removed from migration scope by
// default. The categories are retained for display even when a user
// override force-includes the VM.
type AutoExclusion struct {
	VMID       string              `json:"vmId"`
	VMName     string              `json:"vmName"`
	Categories []ExclusionCategory `json:"categories"`
}

type ExclusionSummary struct {
	AutoExcluded      int                       `json:"autoExcluded"`
	Breakdown         map[ExclusionCategory]int `json:"breakdown"`
	EffectiveExcluded int                       `json:"effectiveExcluded"`
}

type ComplexityTier string

const (
	TierLow      ComplexityTier = "low"
	TierModerate ComplexityTier = "moderate"
	TierHigh     ComplexityTier = "high"
)

type Complexity struct {
	VMID        string         `json:"vmId"`
	VMName      string         `json:"vmName"`
	Score       int            `json:"score"`
	Blockers    int            `json:"blockers"`
	Warnings    int            `json:"warnings"`
	OSSupported bool           `json:"osSupported"`
	Tier        ComplexityTier `json:"tier"`
}

type ReadinessBand string

const (
	BandReady            ReadinessBand = "ready"
	BandNeedsPreparation ReadinessBand = "needsPreparation"
	BandBlocked          ReadinessBand = "blocked"
)

type Readiness struct {
	Score         int           `json:"score"`
	Band          ReadinessBand `json:"band"`
	Blockers      int           `json:"blockers"`
	Warnings      int           `json:"warnings"`
	UnsupportedOS int           `json:"unsupportedOS"`
}

type WaveMode string

const (
	WaveModeNetwork    WaveMode = "network"
	WaveModeComplexity WaveMode = "complexity"
)

type Wave struct {
	Index      int      `json:"index"`
	Name       string   `json:"name"`
	VMIDs      []string `json:"vmIds"`
	VCPUs      int      `json:"vcpus"`
	MemoryMB   int64    `json:"memoryMB"`
	StorageMiB int64    `json:"storageMiB"`
	Complexity float64  `json:"complexity"`
}

type Assessment struct {
	Inventory      *Inventory       `json:"inventory"`
	Fingerprint    string           `json:"fingerprint,omitempty"`
	Metrics        Metrics          `json:"metrics"`
	Exclusions     ExclusionSummary `json:"exclusions"`
	AutoExclusions []AutoExclusion  `json:"autoExclusions,omitempty"`
	Complexity     []Complexity     `json:"complexity,omitempty"`
	Readiness      Readiness        `json:"readiness"`
	Waves          []Wave           `json:"waves,omitempty"`
	GeneratedAt    time.Time        `json:"generatedAt"`
}
