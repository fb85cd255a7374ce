package rvtools

import "sort"

// Field is a canonical column name. Sheet parsers address cells through
// fields only; the physical header spelling is resolved once per sheet.
type Field string

const (
	FieldVMName          Field = "vmName"
	FieldUUID            Field = "uuid"
	FieldPowerState      Field = "powerState"
	FieldTemplate        Field = "template"
	FieldCPUs            Field = "cpus"
	FieldMemory          Field = "memory"
	FieldProvisionedMiB  Field = "provisionedMiB"
	FieldInUseMiB        Field = "inUseMiB"
	FieldGuestOS         Field = "guestOS"
	FieldGuestOSTools    Field = "guestOSTools"
	FieldHardwareVersion Field = "hardwareVersion"
	FieldFirmware        Field = "firmware"
	FieldDatacenter      Field = "datacenter"
	FieldCluster         Field = "cluster"
	FieldHost            Field = "host"
	FieldConsolidation   Field = "consolidationNeeded"
	FieldAnnotation      Field = "annotation"
	FieldDNSName         Field = "dnsName"
	FieldIPAddress       Field = "ipAddress"

	FieldPath        Field = "path"
	FieldCapacityMiB Field = "capacityMiB"
	FieldDiskMode    Field = "diskMode"
	FieldController  Field = "controller"
	FieldDiskKey     Field = "diskKey"
	FieldUnitNumber  Field = "unitNumber"
	FieldRaw         Field = "raw"
	FieldSharing     Field = "sharing"

	FieldAdapter         Field = "adapter"
	FieldMAC             Field = "mac"
	FieldNetworkName     Field = "networkName"
	FieldPortGroup       Field = "portGroup"
	FieldSwitch          Field = "switch"
	FieldConnected       Field = "connected"
	FieldStartsConnected Field = "startsConnected"

	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldCreated     Field = "created"
	FieldSizeMiB     Field = "sizeMiB"
	FieldQuiesced    Field = "quiesced"

	FieldToolsStatus  Field = "toolsStatus"
	FieldToolsRunning Field = "toolsRunning"
	FieldToolsVersion Field = "toolsVersion"
	FieldToolsUpgrade Field = "toolsUpgrade"

	FieldSockets        Field = "sockets"
	FieldCoresPerSocket Field = "coresPerSocket"
	FieldHotAdd         Field = "hotAdd"
	FieldHotRemove      Field = "hotRemove"
	FieldReservation    Field = "reservation"
	FieldLimit          Field = "limit"
	FieldBallooned      Field = "ballooned"

	FieldVendor     Field = "vendor"
	FieldModel      Field = "model"
	FieldCPUModel   Field = "cpuModel"
	FieldCores      Field = "cores"
	FieldVMCount    Field = "vmCount"
	FieldESXVersion Field = "esxVersion"
	FieldObjectID   Field = "objectId"
	FieldHostCount  Field = "hostCount"
	FieldHAEnabled  Field = "haEnabled"
	FieldDRSEnabled Field = "drsEnabled"

	FieldType         Field = "type"
	FieldFreeMiB      Field = "freeMiB"
	FieldLabel        Field = "label"
	FieldDeviceType   Field = "deviceType"
	FieldISOPath      Field = "isoPath"
	FieldLicenseKey   Field = "licenseKey"
	FieldEdition      Field = "edition"
	FieldTotal        Field = "total"
	FieldUsed         Field = "used"
	FieldServer       Field = "server"
	FieldInstanceUUID Field = "instanceUuid"
	FieldAPIVersion   Field = "apiVersion"
	FieldUser         Field = "user"
	FieldVIVersion    Field = "viVersion"
)

// SynonymTable maps a canonical field to the exact header spellings that
// resolve to it. Matching is exact and case sensitive; the table enumerates
// the case variants RVTools has shipped over the years. Headers that match
// no entry are ignored, so new columns in future exports are harmless.
type SynonymTable map[Field][]string

// ColumnMap is the result of resolving a header row: canonical field to
// zero-based column index. Absent fields are simply not present; the typed
// cell accessors return defaults for them.
type ColumnMap map[Field]int

// ResolveColumns matches a header row against a synonym table. Fields claim
// their spellings in sorted field order, so a spelling listed under two
// fields binds to the same one on every run. When two headers resolve to the
// same field the first occurrence wins.
func ResolveColumns(header []string, table SynonymTable) ColumnMap {
	fields := make([]Field, 0, len(table))
	for field := range table {
		fields = append(fields, field)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })

	lookup := make(map[string]Field, len(table)*2)
	for _, field := range fields {
		for _, s := range table[field] {
			if _, claimed := lookup[s]; !claimed {
				lookup[s] = field
			}
		}
	}

	cols := make(ColumnMap, len(header))
	for i, h := range header {
		field, ok := lookup[h]
		if !ok {
			continue
		}
		if _, taken := cols[field]; taken {
			continue
		}
		cols[field] = i
	}
	return cols
}
