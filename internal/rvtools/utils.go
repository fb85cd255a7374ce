package rvtools

import (
	"bytes"
	"slices"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func readSheet(excelFile *excelize.File, sheets []string, sheetName string) [][]string {
	if !slices.Contains(sheets, sheetName) {
		return [][]string{}
	}

	rows, err := excelFile.GetRows(sheetName)
	if err != nil {
		zap.S().Named("rvtools").Warnf("Could not read %s sheet: %v", sheetName, err)
		return [][]string{}
	}

	return rows
}

func splitSheet(rows [][]string) (header []string, data [][]string) {
	if len(rows) == 0 {
		return []string{}, [][]string{}
	}
	return rows[0], rows[1:]
}

// IsExcelFile sniffs the zip magic and confirms the archive opens as a
// workbook.
func IsExcelFile(content []byte) bool {
	if len(content) < 2 {
		return false
	}

	if content[0] == 0x50 && content[1] == 0x4B {
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return false
		}
		defer f.Close()
		return true
	}

	return false
}
