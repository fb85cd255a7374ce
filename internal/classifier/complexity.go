package classifier

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/identity"
)

// Fixed thresholds and penalties. These are cut in stone so scores stay
// explainable and reproducible run to run.
const (
	// Hardware versions below the minimum raise a warning; at or below the
	// blocker level migration tooling refuses the VM outright.
	MinHardwareVersion     = 13
	BlockerHardwareVersion = 9

	// Snapshot age thresholds in days.
	SnapshotWarningAgeDays = 30
	SnapshotBlockerAgeDays = 90

	complexityBaseline = 100
	blockerPenalty     = 15
	warningPenalty     = 5
	unsupportedPenalty = 10

	readyThreshold       = 80
	preparationThreshold = 60
)

// unsupportedOSPatterns lists guest OS substrings with no supported
// migration path.
var unsupportedOSPatterns = []string{
	"windows 2000", "windows xp", "windows server 2003", "windows server 2008",
	"centos 5", "centos 6", "red hat enterprise linux 5",
	"suse linux enterprise 10", "suse linux enterprise 11",
	"other (32-bit)", "other (64-bit)",
}

// Findings are the raw signals per VM feeding complexity and readiness.
type Findings struct {
	Blockers    []string
	Warnings    []string
	OSSupported bool
}

// Satellites carries the per-VM lookups the inspection needs. Built once
// per dataset via the Inventory index helpers.
type Satellites struct {
	Snapshots map[string][]api.Snapshot
	Tools     map[string]api.ToolsStatus
	NICs      map[string][]api.NIC
	CDROMs    map[string][]api.CDROM
}

func SatellitesFor(inv *api.Inventory) Satellites {
	return Satellites{
		Snapshots: inv.SnapshotsByVM(),
		Tools:     inv.ToolsByVM(),
		NICs:      inv.NICsByVM(),
		CDROMs:    inv.CDROMsByVM(),
	}
}

func OSSupported(guestOS string) bool {
	os := strings.ToLower(guestOS)
	for _, p := range unsupportedOSPatterns {
		if strings.Contains(os, p) {
			return false
		}
	}
	return true
}

// HardwareVersionNumber extracts the numeric part of strings like "vmx-13".
// Unparsable versions return 0 and are treated as unknown, not as blockers.
func HardwareVersionNumber(version string) int {
	n := 0
	found := false
	for _, c := range version {
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			found = true
		} else if found {
			break
		}
	}
	return n
}

// Inspect gathers blockers and warnings for one VM.
func Inspect(vm api.VM, sat Satellites) Findings {
	f := Findings{OSSupported: OSSupported(vm.GuestOS)}

	if hw := HardwareVersionNumber(vm.HardwareVersion); hw > 0 {
		switch {
		case hw <= BlockerHardwareVersion:
			f.Blockers = append(f.Blockers, "hardware version severely outdated")
		case hw < MinHardwareVersion:
			f.Warnings = append(f.Warnings, "hardware version below minimum")
		}
	}

	for _, snap := range sat.Snapshots[vm.Name] {
		switch {
		case snap.AgeDays > SnapshotBlockerAgeDays:
			f.Blockers = append(f.Blockers, "snapshot older than blocker threshold")
		case snap.AgeDays > SnapshotWarningAgeDays:
			f.Warnings = append(f.Warnings, "stale snapshot")
		}
	}

	if tools, ok := sat.Tools[vm.Name]; ok && ToolsNotInstalled(tools.Status) {
		f.Warnings = append(f.Warnings, "vmware tools not installed")
	}

	if vm.PowerState == api.PoweredOn {
		for _, nic := range sat.NICs[vm.Name] {
			if !nic.Connected {
				f.Blockers = append(f.Blockers, "network adapter disconnected")
				break
			}
		}
	}

	for _, cd := range sat.CDROMs[vm.Name] {
		if cd.Connected {
			f.Warnings = append(f.Warnings, "cd/dvd device connected")
			break
		}
	}

	if vm.ConsolidationNeeded {
		f.Warnings = append(f.Warnings, "disk consolidation needed")
	}

	return f
}

// ToolsNotInstalled mirrors the tools sheet status vocabulary.
func ToolsNotInstalled(status string) bool {
	s := strings.ToLower(status)
	return s == "toolsnotinstalled" || s == "not installed"
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func tierFor(score int) api.ComplexityTier {
	switch {
	case score >= readyThreshold:
		return api.TierLow
	case score >= preparationThreshold:
		return api.TierModerate
	default:
		return api.TierHigh
	}
}

// Score turns findings into the per-VM complexity record. Baseline minus
// fixed penalties, clamped to [0,100].
func Score(vm api.VM, f Findings) api.Complexity {
	score := complexityBaseline
	score -= len(f.Blockers) * blockerPenalty
	score -= len(f.Warnings) * warningPenalty
	if !f.OSSupported {
		score -= unsupportedPenalty
	}
	score = clampScore(score)

	return api.Complexity{
		VMID:        identity.ForVM(vm).String(),
		VMName:      vm.Name,
		Score:       score,
		Blockers:    len(f.Blockers),
		Warnings:    len(f.Warnings),
		OSSupported: f.OSSupported,
		Tier:        tierFor(score),
	}
}

// Readiness is the population-level score: 100 minus weighted blocker,
// warning and unsupported-OS counts, clamped to [0,100], with the fixed
// three-tier banding.
func Readiness(scores []api.Complexity) api.Readiness {
	r := api.Readiness{}
	for _, s := range scores {
		r.Blockers += s.Blockers
		r.Warnings += s.Warnings
		if !s.OSSupported {
			r.UnsupportedOS++
		}
	}

	r.Score = clampScore(complexityBaseline -
		r.Blockers*blockerPenalty -
		r.Warnings*warningPenalty -
		r.UnsupportedOS*unsupportedPenalty)

	switch {
	case r.Score >= readyThreshold:
		r.Band = api.BandReady
	case r.Score >= preparationThreshold:
		r.Band = api.BandNeedsPreparation
	default:
		r.Band = api.BandBlocked
	}
	return r
}
