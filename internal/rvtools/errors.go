package rvtools

import "fmt"

// ErrWorkbookCorrupted marks content that cannot be opened as a workbook.
type ErrWorkbookCorrupted struct {
	error
}

func NewErrWorkbookCorrupted(cause error) *ErrWorkbookCorrupted {
	return &ErrWorkbookCorrupted{fmt.Errorf("error opening Excel file: %v", cause)}
}

// ErrSheetMissing marks a mandatory sheet absent from the workbook. The
// ingestion attempt is fatal; the caller keeps its prior dataset.
type ErrSheetMissing struct {
	error
	Sheet string
}

func NewErrSheetMissing(sheet string) *ErrSheetMissing {
	return &ErrSheetMissing{
		error: fmt.Errorf("mandatory sheet %q not found in workbook", sheet),
		Sheet: sheet,
	}
}
