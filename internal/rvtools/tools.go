package rvtools

import (
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vToolsTable = SynonymTable{
	FieldVMName:       vmNameSpellings,
	FieldToolsStatus:  {"Tools", "Tools Status", "VMware Tools"},
	FieldToolsRunning: {"Tools running status", "Running"},
	FieldToolsVersion: {"Tools Version", "Version"},
	FieldToolsUpgrade: {"Upgrade Policy", "Tools upgrade policy"},
}

func parseTools(rows [][]string) []api.ToolsStatus {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vToolsTable)

	tools := []api.ToolsStatus{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		running := strings.EqualFold(row.String(FieldToolsRunning), "guestToolsRunning")

		tools = append(tools, api.ToolsStatus{
			VM:      vm,
			Status:  row.String(FieldToolsStatus),
			Running: running,
			Version: row.String(FieldToolsVersion),
			Upgrade: row.String(FieldToolsUpgrade),
		})
	}

	return tools
}
