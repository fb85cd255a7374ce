package v1alpha1

import "time"

// Override is one user-entered adjustment, keyed by the VM identity string.
// Nil fields mean "no override for this aspect".
type Override struct {
	VMID         string    `json:"vmId"`
	VMName       string    `json:"vmName"`
	Excluded     *bool     `json:"excluded,omitempty"`
	WorkloadType *string   `json:"workloadType,omitempty"`
	Notes        *string   `json:"notes,omitempty"`
	ModifiedAt   time.Time `json:"modifiedAt"`
}

// OverrideEnvelope is the export/import JSON contract for the external
// key-value store. The environment fingerprint scopes the overrides to the
// workbook they were entered against.
type OverrideEnvelope struct {
	Version                int                 `json:"version"`
	EnvironmentFingerprint string              `json:"environmentFingerprint"`
	Overrides              map[string]Override `json:"overrides"`
	CreatedAt              time.Time           `json:"createdAt"`
	ModifiedAt             time.Time           `json:"modifiedAt"`
}

const OverrideEnvelopeVersion = 1
