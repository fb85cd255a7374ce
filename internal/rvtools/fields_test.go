package rvtools_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/rvtools-assessor/internal/rvtools"
)

var _ = Describe("ResolveColumns", func() {
	It("binds an ambiguous spelling to the same field on every resolution", func() {
		table := rvtools.SynonymTable{
			rvtools.FieldVMName: {"VM", "Name"},
			rvtools.FieldName:   {"Name", "Snapshot Name"},
		}
		header := []string{"VM", "Name", "Date / time"}

		for i := 0; i < 200; i++ {
			cols := rvtools.ResolveColumns(header, table)
			Expect(cols).To(HaveKeyWithValue(rvtools.FieldVMName, 0))
			Expect(cols).To(HaveKeyWithValue(rvtools.FieldName, 1))
		}
	})

	It("keeps the first column when two headers resolve to the same field", func() {
		table := rvtools.SynonymTable{
			rvtools.FieldVMName: {"VM", "VM Name"},
		}
		cols := rvtools.ResolveColumns([]string{"VM", "VM Name"}, table)
		Expect(cols).To(HaveKeyWithValue(rvtools.FieldVMName, 0))
	})

	It("ignores headers with no synonym entry", func() {
		table := rvtools.SynonymTable{
			rvtools.FieldVMName: {"VM"},
		}
		cols := rvtools.ResolveColumns([]string{"VM", "Brand New Column"}, table)
		Expect(cols).To(HaveLen(1))
	})
})
