package overrides

import (
	"encoding/json"
	"fmt"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// ImportResult reports what an envelope import did. A fingerprint mismatch
// is flagged but the imported data is kept; the caller decides whether to
// surface a stale-overrides notice.
type ImportResult struct {
	Applied             int  `json:"applied"`
	EnvironmentMismatch bool `json:"environmentMismatch"`
}

// Export serializes the set into the persistence envelope.
func (s *Set) Export() ([]byte, error) {
	envelope := api.OverrideEnvelope{
		Version:                api.OverrideEnvelopeVersion,
		EnvironmentFingerprint: s.fingerprint,
		Overrides:              make(map[string]api.Override, len(s.byID)),
		CreatedAt:              s.createdAt,
		ModifiedAt:             s.now(),
	}
	for id, o := range s.byID {
		envelope.Overrides[id] = o
	}
	return json.Marshal(envelope)
}

// Import parses an envelope and builds a new set. A corrupt envelope
// applies nothing; partial application never happens.
func Import(data []byte, currentFingerprint string) (*Set, ImportResult, error) {
	var envelope api.OverrideEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, ImportResult{}, fmt.Errorf("malformed override envelope: %w", err)
	}
	if envelope.Version == 0 || envelope.Overrides == nil {
		return nil, ImportResult{}, fmt.Errorf("override envelope missing required fields")
	}

	set := NewSet(envelope.EnvironmentFingerprint)
	set.createdAt = envelope.CreatedAt
	for id, o := range envelope.Overrides {
		if o.VMID == "" {
			o.VMID = id
		}
		set.byID[id] = o
	}

	result := ImportResult{
		Applied:             len(set.byID),
		EnvironmentMismatch: envelope.EnvironmentFingerprint != currentFingerprint,
	}
	return set, result, nil
}
