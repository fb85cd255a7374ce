package rvtools_test

import (
	"bytes"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
	"github.com/kubev2v/rvtools-assessor/internal/rvtools"
)

// Helper functions for Excel operations
func newSheet(f *excelize.File, sheet string) int {
	index, err := f.NewSheet(sheet)
	Expect(err).To(Succeed())
	return index
}

func setCellValue(f *excelize.File, sheet, ref string, value any) {
	Expect(f.SetCellValue(sheet, ref, value)).To(Succeed())
}

func columnToLetter(col int) string {
	name, _ := excelize.ColumnNumberToName(col + 1)
	return name
}

type SheetConfig struct {
	Headers []string
	Rows    [][]string
}

func buildWorkbook(sheetConfigs map[string]SheetConfig) []byte {
	f := excelize.NewFile()
	defer f.Close()

	var firstIndex int
	for sheetName, config := range sheetConfigs {
		sheetIndex := newSheet(f, sheetName)
		if firstIndex == 0 {
			firstIndex = sheetIndex
		}

		for colIndex, header := range config.Headers {
			setCellValue(f, sheetName, columnToLetter(colIndex)+"1", header)
		}
		for rowIndex, row := range config.Rows {
			for colIndex, value := range row {
				cellRef := columnToLetter(colIndex) + fmt.Sprintf("%d", rowIndex+2)
				setCellValue(f, sheetName, cellRef, value)
			}
		}
	}

	f.SetActiveSheet(firstIndex)

	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	Expect(err).To(Succeed())
	return buf.Bytes()
}

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func createSampleWorkbook() []byte {
	return buildWorkbook(map[string]SheetConfig{
		"vInfo": {
			Headers: []string{"VM", "Powerstate", "Template", "CPUs", "Memory", "Provisioned MiB", "In Use MiB", "OS according to the configuration file", "OS according to the VMware Tools", "HW version", "Firmware", "Datacenter", "Cluster", "Consolidation Needed", "VI SDK Server", "VI SDK UUID"},
			Rows: [][]string{
				{"db-server-1", "poweredOn", "False", "4", "16384", "102,400", "51,200", "Red Hat Enterprise Linux 8 (64-bit)", "", "vmx-11", "bios", "dc1", "prod", "False", "vcenter.local", "vc-uuid-1"},
				{"web-server-1", "poweredOn", "False", "2", "4096", "40960", "20480", "Microsoft Windows Server 2019 (64-bit)", "Microsoft Windows Server 2019 Datacenter", "vmx-15", "efi", "dc1", "prod", "False", "vcenter.local", "vc-uuid-1"},
				{"app-server-1", "poweredOff", "False", "2", "8192", "81920", "40960", "Ubuntu Linux (64-bit)", "", "vmx-14", "bios", "dc1", "prod", "True", "vcenter.local", "vc-uuid-1"},
				{"", "poweredOn", "False", "8", "32768", "0", "0", "ghost row", "", "", "", "", "", "", "", ""},
				{"db-server-1", "suspended", "False", "8", "32768", "204,800", "102,400", "Red Hat Enterprise Linux 9 (64-bit)", "", "vmx-13", "bios", "dc1", "prod", "False", "vcenter.local", "vc-uuid-1"},
				{"golden-template", "poweredOff", "True", "2", "4096", "40960", "0", "Red Hat Enterprise Linux 8 (64-bit)", "", "vmx-15", "bios", "dc1", "prod", "False", "vcenter.local", "vc-uuid-1"},
			},
		},
		"vDisk": {
			Headers: []string{"VM", "Disk", "Capacity MiB", "Path", "Raw", "Disk Mode"},
			Rows: [][]string{
				{"db-server-1", "Hard disk 1", "102,400", "[datastore1] db-server-1/db-server-1.vmdk", "False", "persistent"},
				{"web-server-1", "Hard disk 1", "40960", "[datastore2] web-server-1/web-server-1.vmdk", "False", "persistent"},
			},
		},
		"vNetwork": {
			Headers: []string{"VM", "Adapter", "Network", "Port Group", "Connected"},
			Rows: [][]string{
				{"db-server-1", "vmxnet3", "VM Network", "pg-backend", "True"},
				{"web-server-1", "vmxnet3", "VM Network", "", "True"},
			},
		},
		"vSnapshot": {
			Headers: []string{"VM", "Name", "Date / time", "Size MiB (vmsn)"},
			Rows: [][]string{
				{"db-server-1", "pre-upgrade", "2025/03/01 10:00:00", "2048"},
				{"db-server-1", "nightly", "not-a-date", "128"},
			},
		},
		"vTools": {
			Headers: []string{"VM", "Tools", "Tools Version"},
			Rows: [][]string{
				{"db-server-1", "toolsNotInstalled", "0"},
				{"web-server-1", "toolsOk", "12352"},
			},
		},
		"vRP": {
			Headers: []string{"Resource pool", "Path"},
			Rows: [][]string{
				{"Workloads", "dc1/host/prod/Resources/Workloads"},
				{"Flat", "dc2/edge/Resources/Flat"},
			},
		},
		"vLicense": {
			Headers: []string{"Name", "Key", "Edition key"},
			Rows: [][]string{
				{"vCenter Server", "ABCDE-12345-FGHIJ-67890-KLMNO", "vc.standard"},
				{"Short", "TRIAL", "eval"},
			},
		},
	})
}

var _ = Describe("Parser", func() {
	var parser *rvtools.Parser

	BeforeEach(func() {
		parser = rvtools.NewParserWithClock(func() time.Time { return testNow })
	})

	Context("with invalid content", func() {
		It("rejects content that is not a workbook", func() {
			inventory, err := parser.Parse("bogus.xlsx", []byte("not an excel file"))
			Expect(err).To(HaveOccurred())
			Expect(inventory).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&rvtools.ErrWorkbookCorrupted{}))
		})

		It("rejects a workbook missing a mandatory sheet", func() {
			content := buildWorkbook(map[string]SheetConfig{
				"vInfo": {Headers: []string{"VM"}, Rows: [][]string{{"lonely-vm"}}},
			})

			inventory, err := parser.Parse("partial.xlsx", content)
			Expect(err).To(HaveOccurred())
			Expect(inventory).To(BeNil())
			Expect(err).To(BeAssignableToTypeOf(&rvtools.ErrSheetMissing{}))
			Expect(err.Error()).To(ContainSubstring("vDisk"))
		})
	})

	Context("with a representative workbook", func() {
		var inventory *api.Inventory

		BeforeEach(func() {
			var err error
			inventory, err = parser.Parse("sample.xlsx", createSampleWorkbook())
			Expect(err).ToNot(HaveOccurred())
			Expect(inventory).ToNot(BeNil())
		})

		It("drops rows without a VM name and keeps the last duplicate", func() {
			Expect(inventory.VMs).To(HaveLen(4))

			names := make([]string, 0, len(inventory.VMs))
			for _, vm := range inventory.VMs {
				names = append(names, vm.Name)
			}
			Expect(names).To(ConsistOf("db-server-1", "web-server-1", "app-server-1", "golden-template"))

			By("verifying the duplicate db-server-1 row was replaced, not appended")
			var db api.VM
			for _, vm := range inventory.VMs {
				if vm.Name == "db-server-1" {
					db = vm
				}
			}
			Expect(db.CPUs).To(Equal(8))
			Expect(db.PowerState).To(Equal(api.Suspended))
			Expect(db.MemoryMB).To(Equal(int64(32768)))
		})

		It("parses thousand-separated numeric cells", func() {
			for _, vm := range inventory.VMs {
				if vm.Name == "db-server-1" {
					Expect(vm.ProvisionedMiB).To(Equal(int64(204800)))
					Expect(vm.InUseMiB).To(Equal(int64(102400)))
				}
			}
		})

		It("prefers the tools-reported guest OS when present", func() {
			for _, vm := range inventory.VMs {
				switch vm.Name {
				case "web-server-1":
					Expect(vm.GuestOS).To(Equal("Microsoft Windows Server 2019 Datacenter"))
					Expect(vm.Firmware).To(Equal(api.FirmwareEFI))
				case "app-server-1":
					Expect(vm.GuestOS).To(Equal("Ubuntu Linux (64-bit)"))
					Expect(vm.ConsolidationNeeded).To(BeTrue())
				}
			}
		})

		It("flags template rows", func() {
			for _, vm := range inventory.VMs {
				Expect(vm.Template).To(Equal(vm.Name == "golden-template"))
			}
		})

		It("computes snapshot age in whole days against the injected clock", func() {
			Expect(inventory.Snapshots).To(HaveLen(2))

			byName := map[string]api.Snapshot{}
			for _, s := range inventory.Snapshots {
				byName[s.Name] = s
			}

			Expect(byName["pre-upgrade"].AgeDays).To(Equal(92))

			By("falling back to now for unparsable timestamps")
			Expect(byName["nightly"].AgeDays).To(Equal(0))
			Expect(byName["nightly"].Created).To(Equal(testNow))
		})

		It("prefers the port group over the network name for grouping", func() {
			nicsByVM := inventory.NICsByVM()
			Expect(nicsByVM["db-server-1"][0].GroupName()).To(Equal("pg-backend"))
			Expect(nicsByVM["web-server-1"][0].GroupName()).To(Equal("VM Network"))
		})

		It("redacts license keys on ingest", func() {
			Expect(inventory.Licenses).To(HaveLen(2))

			byName := map[string]api.License{}
			for _, l := range inventory.Licenses {
				byName[l.Name] = l
			}

			Expect(byName["vCenter Server"].Key).To(Equal("*****-*****-*****-*****-KLMNO"))

			By("passing keys at or under the threshold through unmodified")
			Expect(byName["Short"].Key).To(Equal("TRIAL"))
		})

		It("derives resource pool hierarchy from both path layouts", func() {
			Expect(inventory.ResourcePools).To(HaveLen(2))

			byName := map[string]api.ResourcePool{}
			for _, rp := range inventory.ResourcePools {
				byName[rp.Name] = rp
			}

			Expect(byName["Workloads"].Datacenter).To(Equal("dc1"))
			Expect(byName["Workloads"].Cluster).To(Equal("prod"))
			Expect(byName["Flat"].Datacenter).To(Equal("dc2"))
			Expect(byName["Flat"].Cluster).To(Equal("edge"))
		})

		It("falls back to vInfo for source info when vMetaData is absent", func() {
			Expect(inventory.Sources).To(HaveLen(1))
			Expect(inventory.Sources[0].Server).To(Equal("vcenter.local"))
			Expect(inventory.Sources[0].InstanceUUID).To(Equal("vc-uuid-1"))
		})

		It("extracts datastore names from disk paths", func() {
			Expect(inventory.Disks).To(HaveLen(2))
			Expect(rvtools.DatastoreFromPath(inventory.Disks[0].Path)).ToNot(BeEmpty())
		})
	})

	Describe("IsExcelFile", func() {
		It("accepts a real workbook and rejects other content", func() {
			Expect(rvtools.IsExcelFile(createSampleWorkbook())).To(BeTrue())
			Expect(rvtools.IsExcelFile([]byte("PK but not a zip"))).To(BeFalse())
			Expect(rvtools.IsExcelFile([]byte("plain text"))).To(BeFalse())
			Expect(rvtools.IsExcelFile([]byte{})).To(BeFalse())
		})
	})

	Describe("RedactLicenseKey", func() {
		It("masks groups and keeps the last five characters", func() {
			Expect(rvtools.RedactLicenseKey("ABCDE-12345-FGHIJ-67890-KLMNO")).To(Equal("*****-*****-*****-*****-KLMNO"))
		})

		It("is idempotent in effect", func() {
			once := rvtools.RedactLicenseKey("ABCDE-12345-FGHIJ-67890-KLMNO")
			Expect(rvtools.RedactLicenseKey(once)).To(Equal(once))
		})

		It("leaves short keys alone", func() {
			Expect(rvtools.RedactLicenseKey("TRIAL")).To(Equal("TRIAL"))
			Expect(rvtools.RedactLicenseKey("")).To(Equal(""))
		})
	})
})
