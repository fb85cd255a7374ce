package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/assessment"
	"github.com/kubev2v/rvtools-assessor/internal/classifier"
	"github.com/kubev2v/rvtools-assessor/internal/identity"
	"github.com/kubev2v/rvtools-assessor/internal/overrides"
	"github.com/kubev2v/rvtools-assessor/internal/rvtools"
	"github.com/kubev2v/rvtools-assessor/internal/waves"
	"github.com/kubev2v/rvtools-assessor/pkg/metrics"
)

// AssessmentService turns an uploaded RVTools export into a full
// assessment: normalized inventory, derived metrics, exclusions,
// per-VM complexity, readiness and migration waves.
type AssessmentService struct {
	parser          *rvtools.Parser
	now             func() time.Time
	defaultWaveMode api.WaveMode
}

func NewAssessmentService(defaultWaveMode api.WaveMode) *AssessmentService {
	return NewAssessmentServiceWithClock(defaultWaveMode, time.Now)
}

func NewAssessmentServiceWithClock(defaultWaveMode api.WaveMode, now func() time.Time) *AssessmentService {
	return &AssessmentService{
		parser:          rvtools.NewParserWithClock(now),
		now:             now,
		defaultWaveMode: defaultWaveMode,
	}
}

// ParseWaveMode validates a user-supplied mode string. Empty selects the
// configured default.
func (as *AssessmentService) ParseWaveMode(mode string) (api.WaveMode, error) {
	switch api.WaveMode(mode) {
	case "":
		return as.defaultWaveMode, nil
	case api.WaveModeComplexity:
		return api.WaveModeComplexity, nil
	case api.WaveModeNetwork:
		return api.WaveModeNetwork, nil
	default:
		return "", NewErrInvalidWaveMode(mode)
	}
}

// Assess runs the full pipeline over one workbook. The override set may be
// nil; the assessment then reflects auto-exclusions only. Pure with respect
// to its inputs; a failed parse leaves no partial state behind.
func (as *AssessmentService) Assess(ctx context.Context, fileName string, content []byte, set *overrides.Set, mode api.WaveMode) (*api.Assessment, error) {
	start := as.now()

	if !rvtools.IsExcelFile(content) {
		metrics.IncreaseParseTotalMetric("rejected")
		return nil, NewErrRVToolsFileCorrupted("not a valid Excel file")
	}

	inv, err := as.parser.Parse(fileName, content)
	if err != nil {
		metrics.IncreaseParseTotalMetric("failed")
		return nil, NewErrRVToolsFileCorrupted(err.Error())
	}
	metrics.IncreaseParseTotalMetric("ok")

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := as.Reassess(inv, set, mode)

	metrics.ObserveAssessmentDuration(as.now().Sub(start))
	zap.S().Named("service").Infof("Assessed %s: %d VMs, readiness %d (%s), %d waves",
		fileName, result.Metrics.Counts.Total, result.Readiness.Score, result.Readiness.Band, len(result.Waves))

	return result, nil
}

// Reassess recomputes everything derived from an already-parsed inventory,
// typically after an override edit or a wave mode switch. Cheap relative to
// parsing; the inventory is never mutated.
func (as *AssessmentService) Reassess(inv *api.Inventory, set *overrides.Set, mode api.WaveMode) *api.Assessment {
	autoExclusions := classifier.AutoExclusions(inv.VMs)
	scoped := classifier.InScope(inv.VMs, autoExclusions, set)

	sat := classifier.SatellitesFor(inv)
	scores := make([]api.Complexity, 0, len(scoped))
	scoreByID := make(map[string]api.Complexity, len(scoped))
	for _, vm := range scoped {
		s := classifier.Score(vm, classifier.Inspect(vm, sat))
		scores = append(scores, s)
		scoreByID[s.VMID] = s
	}

	return &api.Assessment{
		Inventory:      inv,
		Fingerprint:    identity.Fingerprint(inv),
		Metrics:        assessment.Compute(inv, set, assessment.Filter{}),
		Exclusions:     classifier.Summarize(inv.VMs, autoExclusions, set),
		AutoExclusions: autoExclusions,
		Complexity:     scores,
		Readiness:      classifier.Readiness(scores),
		Waves:          waves.Plan(scoped, scoreByID, sat.NICs, mode),
		GeneratedAt:    as.now(),
	}
}
