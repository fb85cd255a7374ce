package overrides

import (
	"time"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// Set holds user overrides for one environment, keyed by VM identity
// string. Records are stored as-is; query functions are pure reads. The
// clock is injected so envelope timestamps are deterministic under test.
type Set struct {
	fingerprint string
	createdAt   time.Time
	byID        map[string]api.Override
	now         func() time.Time
}

func NewSet(environmentFingerprint string) *Set {
	return NewSetWithClock(environmentFingerprint, time.Now)
}

func NewSetWithClock(environmentFingerprint string, now func() time.Time) *Set {
	return &Set{
		fingerprint: environmentFingerprint,
		createdAt:   now(),
		byID:        make(map[string]api.Override),
		now:         now,
	}
}

func (s *Set) Fingerprint() string {
	return s.fingerprint
}

func (s *Set) Len() int {
	return len(s.byID)
}

func (s *Set) Put(o api.Override) {
	o.ModifiedAt = s.now()
	s.byID[o.VMID] = o
}

func (s *Set) Get(vmID string) (api.Override, bool) {
	o, ok := s.byID[vmID]
	return o, ok
}

func (s *Set) Delete(vmID string) {
	delete(s.byID, vmID)
}

// IsExcluded returns the user's exclusion override, or nil when the user
// has not touched this VM and the auto-exclusion default applies.
func (s *Set) IsExcluded(vmID string) *bool {
	if o, ok := s.byID[vmID]; ok && o.Excluded != nil {
		v := *o.Excluded
		return &v
	}
	return nil
}

func (s *Set) WorkloadType(vmID string) string {
	if o, ok := s.byID[vmID]; ok && o.WorkloadType != nil {
		return *o.WorkloadType
	}
	return ""
}

func (s *Set) Notes(vmID string) string {
	if o, ok := s.byID[vmID]; ok && o.Notes != nil {
		return *o.Notes
	}
	return ""
}
