package v1alpha1

import "time"

type PowerState string

const (
	PoweredOn  PowerState = "poweredOn"
	PoweredOff PowerState = "poweredOff"
	Suspended  PowerState = "suspended"
)

type FirmwareType string

const (
	FirmwareBIOS FirmwareType = "bios"
	FirmwareEFI  FirmwareType = "efi"
)

// VM is one row of the vInfo sheet. Records are immutable after assembly;
// user exclusion and workload overrides live in a separate override set
// keyed by the VM identity, never on the record itself.
type VM struct {
	Name                string       `json:"name"`
	UUID                string       `json:"uuid,omitempty"`
	PowerState          PowerState   `json:"powerState"`
	Template            bool         `json:"template"`
	CPUs                int          `json:"cpus"`
	MemoryMB            int64        `json:"memoryMB"`
	ProvisionedMiB      int64        `json:"provisionedMiB"`
	InUseMiB            int64        `json:"inUseMiB"`
	GuestOS             string       `json:"guestOS"`
	HardwareVersion     string       `json:"hardwareVersion"`
	Firmware            FirmwareType `json:"firmware"`
	Datacenter          string       `json:"datacenter"`
	Cluster             string       `json:"cluster"`
	Host                string       `json:"host"`
	ConsolidationNeeded bool         `json:"consolidationNeeded"`
	Annotation          *string      `json:"annotation,omitempty"`
	DNSName             string       `json:"dnsName,omitempty"`
	IPAddress           string       `json:"ipAddress,omitempty"`
}

type Disk struct {
	VM          string `json:"vm"`
	Datacenter  string `json:"datacenter,omitempty"`
	Cluster     string `json:"cluster,omitempty"`
	Path        string `json:"path"`
	CapacityMiB int64  `json:"capacityMiB"`
	Mode        string `json:"mode,omitempty"`
	Controller  string `json:"controller,omitempty"`
	DiskKey     int    `json:"diskKey,omitempty"`
	UnitNumber  int    `json:"unitNumber,omitempty"`
	Raw         bool   `json:"raw"`
	Shared      bool   `json:"shared"`
}

type NIC struct {
	VM              string `json:"vm"`
	Adapter         string `json:"adapter,omitempty"`
	MAC             string `json:"mac,omitempty"`
	Network         string `json:"network,omitempty"`
	PortGroup       string `json:"portGroup,omitempty"`
	Switch          string `json:"switch,omitempty"`
	Connected       bool   `json:"connected"`
	StartsConnected bool   `json:"startsConnected"`
	IPAddress       string `json:"ipAddress,omitempty"`
}

// GroupName resolves the network grouping key, preferring the explicit
// port group over the generic network name.
func (n NIC) GroupName() string {
	if n.PortGroup != "" {
		return n.PortGroup
	}
	return n.Network
}

type Snapshot struct {
	VM          string    `json:"vm"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Created     time.Time `json:"created"`
	AgeDays     int       `json:"ageDays"`
	SizeMiB     int64     `json:"sizeMiB"`
	Quiesced    bool      `json:"quiesced"`
}

type ToolsStatus struct {
	VM      string `json:"vm"`
	Status  string `json:"status"`
	Running bool   `json:"running"`
	Version string `json:"version,omitempty"`
	Upgrade string `json:"upgradePolicy,omitempty"`
}

type CPUConfig struct {
	VM             string `json:"vm"`
	Sockets        int    `json:"sockets"`
	CoresPerSocket int    `json:"coresPerSocket"`
	HotAdd         bool   `json:"hotAdd"`
	HotRemove      bool   `json:"hotRemove"`
	ReservationMHz int64  `json:"reservationMHz,omitempty"`
	LimitMHz       int64  `json:"limitMHz,omitempty"`
}

type MemoryConfig struct {
	VM             string `json:"vm"`
	SizeMiB        int64  `json:"sizeMiB"`
	HotAdd         bool   `json:"hotAdd"`
	BalloonedMiB   int64  `json:"balloonedMiB,omitempty"`
	ReservationMiB int64  `json:"reservationMiB,omitempty"`
	LimitMiB       int64  `json:"limitMiB,omitempty"`
}

// Host carries the aggregate counters reported by vCenter at export time.
// They are taken as-is, not recomputed from the VM sheets.
type Host struct {
	Name       string `json:"name"`
	Datacenter string `json:"datacenter,omitempty"`
	Cluster    string `json:"cluster,omitempty"`
	Vendor     string `json:"vendor,omitempty"`
	Model      string `json:"model,omitempty"`
	CPUModel   string `json:"cpuModel,omitempty"`
	Sockets    int    `json:"sockets"`
	Cores      int    `json:"cores"`
	MemoryMB   int64  `json:"memoryMB"`
	VMCount    int    `json:"vmCount"`
	ESXVersion string `json:"esxVersion,omitempty"`
	ObjectID   string `json:"objectId,omitempty"`
}

type Cluster struct {
	Name       string `json:"name"`
	Datacenter string `json:"datacenter,omitempty"`
	HostCount  int    `json:"hostCount"`
	Cores      int    `json:"cores"`
	MemoryMB   int64  `json:"memoryMB"`
	VMCount    int    `json:"vmCount"`
	HAEnabled  bool   `json:"haEnabled"`
	DRSEnabled bool   `json:"drsEnabled"`
	ObjectID   string `json:"objectId,omitempty"`
}

type Datastore struct {
	Name           string `json:"name"`
	Type           string `json:"type,omitempty"`
	CapacityMiB    int64  `json:"capacityMiB"`
	ProvisionedMiB int64  `json:"provisionedMiB"`
	FreeMiB        int64  `json:"freeMiB"`
	HostCount      int    `json:"hostCount"`
	VMCount        int    `json:"vmCount"`
	ObjectID       string `json:"objectId,omitempty"`
}

type ResourcePool struct {
	Name           string `json:"name"`
	Path           string `json:"path,omitempty"`
	Datacenter     string `json:"datacenter,omitempty"`
	Cluster        string `json:"cluster,omitempty"`
	CPULimitMHz    int64  `json:"cpuLimitMHz,omitempty"`
	MemoryLimitMiB int64  `json:"memoryLimitMiB,omitempty"`
	VMCount        int    `json:"vmCount"`
}

type CDROM struct {
	VM              string `json:"vm"`
	Label           string `json:"label,omitempty"`
	Connected       bool   `json:"connected"`
	StartsConnected bool   `json:"startsConnected"`
	DeviceType      string `json:"deviceType,omitempty"`
	ISOPath         string `json:"isoPath,omitempty"`
}

// License holds one vCenter license entry. Keys are redacted at parse time;
// the raw key never leaves the parser.
type License struct {
	Name    string `json:"name"`
	Key     string `json:"key,omitempty"`
	Edition string `json:"edition,omitempty"`
	Total   int    `json:"total"`
	Used    int    `json:"used"`
}

type Source struct {
	Server       string `json:"server"`
	InstanceUUID string `json:"instanceUuid,omitempty"`
	Version      string `json:"version,omitempty"`
	APIVersion   string `json:"apiVersion,omitempty"`
	User         string `json:"user,omitempty"`
}

// Inventory is the normalized dataset assembled from one workbook. It is
// created once per successful upload and replaced wholesale on re-upload.
// Satellite slices are keyed to VMs by name; orphaned rows are retained.
type Inventory struct {
	FileName       string    `json:"fileName,omitempty"`
	CollectedAt    time.Time `json:"collectedAt,omitempty"`
	VCenterVersion string    `json:"vcenterVersion,omitempty"`

	VMs           []VM           `json:"vms"`
	CPUs          []CPUConfig    `json:"cpus,omitempty"`
	Memory        []MemoryConfig `json:"memory,omitempty"`
	Disks         []Disk         `json:"disks"`
	NICs          []NIC          `json:"nics,omitempty"`
	Snapshots     []Snapshot     `json:"snapshots,omitempty"`
	Tools         []ToolsStatus  `json:"tools,omitempty"`
	Hosts         []Host         `json:"hosts,omitempty"`
	Clusters      []Cluster      `json:"clusters,omitempty"`
	Datastores    []Datastore    `json:"datastores,omitempty"`
	ResourcePools []ResourcePool `json:"resourcePools,omitempty"`
	CDROMs        []CDROM        `json:"cdroms,omitempty"`
	Licenses      []License      `json:"licenses,omitempty"`
	Sources       []Source       `json:"sources,omitempty"`
}

func (i *Inventory) SnapshotsByVM() map[string][]Snapshot {
	m := make(map[string][]Snapshot)
	for _, s := range i.Snapshots {
		m[s.VM] = append(m[s.VM], s)
	}
	return m
}

func (i *Inventory) NICsByVM() map[string][]NIC {
	m := make(map[string][]NIC)
	for _, n := range i.NICs {
		m[n.VM] = append(m[n.VM], n)
	}
	return m
}

func (i *Inventory) DisksByVM() map[string][]Disk {
	m := make(map[string][]Disk)
	for _, d := range i.Disks {
		m[d.VM] = append(m[d.VM], d)
	}
	return m
}

func (i *Inventory) CDROMsByVM() map[string][]CDROM {
	m := make(map[string][]CDROM)
	for _, c := range i.CDROMs {
		m[c.VM] = append(m[c.VM], c)
	}
	return m
}

func (i *Inventory) ToolsByVM() map[string]ToolsStatus {
	m := make(map[string]ToolsStatus, len(i.Tools))
	for _, t := range i.Tools {
		m[t.VM] = t
	}
	return m
}
