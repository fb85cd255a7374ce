package service_test

import (
	"bytes"
	"context"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/service"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type sheetConfig struct {
	Headers []string
	Rows    [][]string
}

func buildWorkbook(sheets map[string]sheetConfig) []byte {
	f := excelize.NewFile()
	defer f.Close()

	for sheetName, config := range sheets {
		_, err := f.NewSheet(sheetName)
		Expect(err).To(Succeed())

		for colIndex, header := range config.Headers {
			ref, _ := excelize.ColumnNumberToName(colIndex + 1)
			Expect(f.SetCellValue(sheetName, ref+"1", header)).To(Succeed())
		}
		for rowIndex, row := range config.Rows {
			for colIndex, value := range row {
				col, _ := excelize.ColumnNumberToName(colIndex + 1)
				ref := col + fmt.Sprintf("%d", rowIndex+2)
				Expect(f.SetCellValue(sheetName, ref, value)).To(Succeed())
			}
		}
	}

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	Expect(err).To(Succeed())
	return buf.Bytes()
}

// Three ordinary workloads: a Linux database server carrying an old
// snapshot and no tools, plus Windows and Linux application servers.
func threeVMWorkbook() []byte {
	return buildWorkbook(map[string]sheetConfig{
		"vInfo": {
			Headers: []string{"VM", "Powerstate", "CPUs", "Memory", "Provisioned MiB", "In Use MiB", "OS according to the configuration file", "HW version", "Datacenter", "Cluster", "VI SDK Server", "VI SDK UUID"},
			Rows: [][]string{
				{"db-server", "poweredOn", "8", "32768", "204800", "102400", "Red Hat Enterprise Linux 8 (64-bit)", "vmx-15", "dc1", "prod", "vcenter.local", "vc-uuid-1"},
				{"web-server", "poweredOn", "2", "4096", "40960", "20480", "Microsoft Windows Server 2019 (64-bit)", "vmx-15", "dc1", "prod", "vcenter.local", "vc-uuid-1"},
				{"app-server", "poweredOn", "4", "8192", "81920", "40960", "Ubuntu Linux (64-bit)", "vmx-15", "dc1", "prod", "vcenter.local", "vc-uuid-1"},
			},
		},
		"vDisk": {
			Headers: []string{"VM", "Capacity MiB", "Path"},
			Rows: [][]string{
				{"db-server", "204800", "[ds1] db-server/db-server.vmdk"},
				{"web-server", "40960", "[ds1] web-server/web-server.vmdk"},
				{"app-server", "81920", "[ds2] app-server/app-server.vmdk"},
			},
		},
		"vSnapshot": {
			Headers: []string{"VM", "Name", "Date / time"},
			Rows: [][]string{
				{"db-server", "pre-migration", "2025/01/15 08:00:00"},
			},
		},
		"vTools": {
			Headers: []string{"VM", "Tools"},
			Rows: [][]string{
				{"db-server", "toolsNotInstalled"},
				{"web-server", "toolsOk"},
				{"app-server", "toolsOk"},
			},
		},
	})
}

var _ = Describe("AssessmentService", func() {
	var srv *service.AssessmentService

	BeforeEach(func() {
		srv = service.NewAssessmentServiceWithClock(api.WaveModeComplexity, func() time.Time { return testNow })
	})

	Describe("Assess", func() {
		It("rejects non-Excel content with a typed error", func() {
			result, err := srv.Assess(context.Background(), "bogus.txt", []byte("plain text"), nil, api.WaveModeComplexity)
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&service.ErrFileCorrupted{}))
		})

		It("assesses the three-VM estate end to end", func() {
			result, err := srv.Assess(context.Background(), "estate.xlsx", threeVMWorkbook(), nil, api.WaveModeComplexity)
			Expect(err).ToNot(HaveOccurred())

			Expect(result.Metrics.Counts.Total).To(Equal(3))
			Expect(result.Metrics.VMsWithSnapshots).To(Equal(1))
			Expect(result.Metrics.Issues.ToolsNotInstalled).To(Equal(1))
			Expect(result.Metrics.Issues.OldSnapshots).To(Equal(1))

			By("surfacing the old snapshot as the single blocker")
			Expect(result.Readiness.Blockers).To(Equal(1))

			By("scoring every in-scope VM")
			Expect(result.Complexity).To(HaveLen(3))

			By("stamping the environment fingerprint")
			Expect(result.Fingerprint).To(ContainSubstring("vcenter.local"))

			By("planning waves that cover every in-scope VM")
			covered := 0
			for _, w := range result.Waves {
				covered += len(w.VMIDs)
			}
			Expect(covered).To(Equal(3))
		})
	})

	Describe("ParseWaveMode", func() {
		It("accepts the two modes and empty for the default", func() {
			mode, err := srv.ParseWaveMode("")
			Expect(err).ToNot(HaveOccurred())
			Expect(mode).To(Equal(api.WaveModeComplexity))

			mode, err = srv.ParseWaveMode("network")
			Expect(err).ToNot(HaveOccurred())
			Expect(mode).To(Equal(api.WaveModeNetwork))

			_, err = srv.ParseWaveMode("alphabetical")
			Expect(err).To(BeAssignableToTypeOf(&service.ErrInvalidWaveMode{}))
		})
	})
})

var _ = Describe("Session", func() {
	var session *service.Session

	BeforeEach(func() {
		srv := service.NewAssessmentServiceWithClock(api.WaveModeComplexity, func() time.Time { return testNow })
		session = service.NewSession(srv, api.WaveModeComplexity)
	})

	It("reports no assessment before the first upload", func() {
		_, err := session.Current()
		Expect(err).To(BeAssignableToTypeOf(&service.ErrNoAssessment{}))
	})

	It("keeps the prior assessment when an upload fails", func() {
		first, err := session.Load(context.Background(), "estate.xlsx", threeVMWorkbook())
		Expect(err).ToNot(HaveOccurred())

		_, err = session.Load(context.Background(), "broken.xlsx", []byte("garbage"))
		Expect(err).To(HaveOccurred())

		current, err := session.Current()
		Expect(err).ToNot(HaveOccurred())
		Expect(current).To(Equal(first))
	})

	It("recomputes exclusions after an override edit", func() {
		result, err := session.Load(context.Background(), "estate.xlsx", threeVMWorkbook())
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Exclusions.EffectiveExcluded).To(Equal(0))

		excluded := true
		updated, err := session.PutOverride(api.Override{
			VMID:     result.Complexity[0].VMID,
			Excluded: &excluded,
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(updated.Exclusions.EffectiveExcluded).To(Equal(1))
		Expect(updated.Complexity).To(HaveLen(2))

		By("restoring scope when the override is removed")
		restored, err := session.DeleteOverride(result.Complexity[0].VMID)
		Expect(err).ToNot(HaveOccurred())
		Expect(restored.Complexity).To(HaveLen(3))
	})

	It("round-trips overrides through export and import", func() {
		result, err := session.Load(context.Background(), "estate.xlsx", threeVMWorkbook())
		Expect(err).ToNot(HaveOccurred())

		excluded := true
		_, err = session.PutOverride(api.Override{VMID: result.Complexity[0].VMID, Excluded: &excluded})
		Expect(err).ToNot(HaveOccurred())

		data, err := session.ExportOverrides()
		Expect(err).ToNot(HaveOccurred())

		importResult, updated, err := session.ImportOverrides(data)
		Expect(err).ToNot(HaveOccurred())
		Expect(importResult.EnvironmentMismatch).To(BeFalse())
		Expect(importResult.Applied).To(Equal(1))
		Expect(updated.Exclusions.EffectiveExcluded).To(Equal(1))
	})

	It("rejects a corrupt override envelope without losing state", func() {
		_, err := session.Load(context.Background(), "estate.xlsx", threeVMWorkbook())
		Expect(err).ToNot(HaveOccurred())

		_, _, err = session.ImportOverrides([]byte("not json"))
		Expect(err).To(BeAssignableToTypeOf(&service.ErrFileCorrupted{}))

		current, err := session.Current()
		Expect(err).ToNot(HaveOccurred())
		Expect(current.Exclusions.EffectiveExcluded).To(Equal(0))
	})

	It("replans when the wave mode changes", func() {
		_, err := session.Load(context.Background(), "estate.xlsx", threeVMWorkbook())
		Expect(err).ToNot(HaveOccurred())

		updated, err := session.SetWaveMode(api.WaveModeNetwork)
		Expect(err).ToNot(HaveOccurred())
		for _, w := range updated.Waves {
			Expect(w.Name).To(HavePrefix("Network:"))
		}
	})
})
