package rvtools

import (
	"bytes"
	"slices"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

const (
	SheetVMInfo        = "vInfo"
	SheetCPU           = "vCPU"
	SheetMemory        = "vMemory"
	SheetDisk          = "vDisk"
	SheetNetwork       = "vNetwork"
	SheetSnapshot      = "vSnapshot"
	SheetTools         = "vTools"
	SheetHost          = "vHost"
	SheetCluster       = "vCluster"
	SheetDatastore     = "vDatastore"
	SheetResourcePool  = "vRP"
	SheetCD            = "vCD"
	SheetLicense       = "vLicense"
	SheetMetaData      = "vMetaData"
)

var mandatorySheets = []string{SheetVMInfo, SheetDisk}

// Parser assembles a normalized inventory from one RVTools workbook. The
// clock is injected so snapshot ages are deterministic under test.
type Parser struct {
	now func() time.Time
}

func NewParser() *Parser {
	return &Parser{now: time.Now}
}

func NewParserWithClock(now func() time.Time) *Parser {
	return &Parser{now: now}
}

// Parse reads the workbook, validates mandatory sheets and runs every sheet
// parser. Optional sheets that are absent yield empty slices. The returned
// inventory is a pure construction; no state outlives the call.
func (p *Parser) Parse(fileName string, content []byte) (*api.Inventory, error) {
	excelFile, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, NewErrWorkbookCorrupted(err)
	}
	defer excelFile.Close()

	sheets := excelFile.GetSheetList()
	for _, name := range mandatorySheets {
		if !slices.Contains(sheets, name) {
			return nil, NewErrSheetMissing(name)
		}
	}

	now := p.now()

	zap.S().Named("rvtools").Infof("Process VMs")
	vms := parseVMs(readSheet(excelFile, sheets, SheetVMInfo))

	zap.S().Named("rvtools").Infof("Process satellite sheets")
	inventory := &api.Inventory{
		FileName:      fileName,
		CollectedAt:   now,
		VMs:           vms,
		CPUs:          parseCPUConfigs(readSheet(excelFile, sheets, SheetCPU)),
		Memory:        parseMemoryConfigs(readSheet(excelFile, sheets, SheetMemory)),
		Disks:         parseDisks(readSheet(excelFile, sheets, SheetDisk)),
		NICs:          parseNICs(readSheet(excelFile, sheets, SheetNetwork)),
		Snapshots:     parseSnapshots(readSheet(excelFile, sheets, SheetSnapshot), now),
		Tools:         parseTools(readSheet(excelFile, sheets, SheetTools)),
		Hosts:         parseHosts(readSheet(excelFile, sheets, SheetHost)),
		Clusters:      parseClusters(readSheet(excelFile, sheets, SheetCluster)),
		Datastores:    parseDatastores(readSheet(excelFile, sheets, SheetDatastore)),
		ResourcePools: parseResourcePools(readSheet(excelFile, sheets, SheetResourcePool)),
		CDROMs:        parseCDROMs(readSheet(excelFile, sheets, SheetCD)),
		Licenses:      parseLicenses(readSheet(excelFile, sheets, SheetLicense)),
	}

	zap.S().Named("rvtools").Infof("Process source info")
	inventory.Sources = parseSources(readSheet(excelFile, sheets, SheetMetaData))
	if len(inventory.Sources) == 0 {
		// Older exports repeat the VI SDK columns on every vInfo row.
		inventory.Sources = parseSources(readSheet(excelFile, sheets, SheetVMInfo))
	}
	if len(inventory.Sources) > 0 {
		inventory.VCenterVersion = inventory.Sources[0].Version
	}

	zap.S().Named("rvtools").Infof("Parsed %d VMs, %d disks, %d snapshots",
		len(inventory.VMs), len(inventory.Disks), len(inventory.Snapshots))

	return inventory, nil
}
