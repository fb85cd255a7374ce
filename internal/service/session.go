package service

import (
	"context"
	"sync"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
)

// Session holds the single current assessment. Uploading a new workbook
// replaces it wholesale; a failed upload keeps the prior assessment intact.
type Session struct {
	service *AssessmentService

	mu        sync.RWMutex
	current   *api.Assessment
	overrides *overrides.Set
	waveMode  api.WaveMode
}

func NewSession(service *AssessmentService, defaultWaveMode api.WaveMode) *Session {
	return &Session{
		service:  service,
		waveMode: defaultWaveMode,
	}
}

// Load parses and assesses an uploaded workbook. On success the result
// becomes the current assessment and a fresh override set is started for
// the new environment. On failure nothing changes.
func (s *Session) Load(ctx context.Context, fileName string, content []byte) (*api.Assessment, error) {
	s.mu.RLock()
	mode := s.waveMode
	s.mu.RUnlock()

	result, err := s.service.Assess(ctx, fileName, content, nil, mode)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = result
	s.overrides = overrides.NewSet(result.Fingerprint)
	return result, nil
}

// ParseWaveMode validates a user-supplied mode string against the service's
// configured default.
func (s *Session) ParseWaveMode(mode string) (api.WaveMode, error) {
	return s.service.ParseWaveMode(mode)
}

func (s *Session) Current() (*api.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, NewErrNoAssessment()
	}
	return s.current, nil
}

// SetWaveMode switches the planning mode and replans against the current
// inventory when one is loaded.
func (s *Session) SetWaveMode(mode api.WaveMode) (*api.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.waveMode = mode
	if s.current == nil {
		return nil, NewErrNoAssessment()
	}
	s.current = s.service.Reassess(s.current.Inventory, s.overrides, mode)
	return s.current, nil
}

// PutOverride records a user override and recomputes the assessment.
func (s *Session) PutOverride(o api.Override) (*api.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, NewErrNoAssessment()
	}
	s.overrides.Put(o)
	s.current = s.service.Reassess(s.current.Inventory, s.overrides, s.waveMode)
	return s.current, nil
}

// DeleteOverride removes a user override and recomputes the assessment.
func (s *Session) DeleteOverride(vmID string) (*api.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, NewErrNoAssessment()
	}
	s.overrides.Delete(vmID)
	s.current = s.service.Reassess(s.current.Inventory, s.overrides, s.waveMode)
	return s.current, nil
}

// ExportOverrides serializes the current override set for download.
func (s *Session) ExportOverrides() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.overrides == nil {
		return nil, NewErrNoAssessment()
	}
	return s.overrides.Export()
}

// ImportOverrides replaces the override set from an uploaded envelope. A
// corrupt envelope changes nothing; an environment mismatch is applied but
// flagged in the returned result.
func (s *Session) ImportOverrides(data []byte) (*overrides.ImportResult, *api.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, nil, NewErrNoAssessment()
	}

	set, result, err := overrides.Import(data, s.current.Fingerprint)
	if err != nil {
		return nil, nil, NewErrFileCorrupted(err.Error())
	}

	s.overrides = set
	s.current = s.service.Reassess(s.current.Inventory, s.overrides, s.waveMode)
	return &result, s.current, nil
}
