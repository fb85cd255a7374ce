package rvtools

import (
	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

var vNetworkTable = SynonymTable{
	FieldVMName:          vmNameSpellings,
	FieldAdapter:         {"Adapter", "Adapter Type"},
	FieldMAC:             {"Mac Address", "MAC Address", "MAC"},
	FieldNetworkName:     {"Network", "Network Name"},
	FieldPortGroup:       {"Port Group", "Portgroup", "DV Port Group"},
	FieldSwitch:          {"Switch", "DV Switch", "vSwitch"},
	FieldConnected:       {"Connected", "connected"},
	FieldStartsConnected: {"Starts Connected", "Start Connected"},
	FieldIPAddress:       {"IPv4 Address", "IP Address"},
}

func parseNICs(rows [][]string) []api.NIC {
	header, data := splitSheet(rows)
	cols := ResolveColumns(header, vNetworkTable)

	nics := []api.NIC{}
	for _, cells := range data {
		if len(cells) == 0 {
			continue
		}

		row := NewRow(cells, cols)
		vm := row.String(FieldVMName)
		if vm == "" {
			continue
		}

		nics = append(nics, api.NIC{
			VM:              vm,
			Adapter:         row.String(FieldAdapter),
			MAC:             row.String(FieldMAC),
			Network:         row.String(FieldNetworkName),
			PortGroup:       row.String(FieldPortGroup),
			Switch:          row.String(FieldSwitch),
			Connected:       row.Bool(FieldConnected),
			StartsConnected: row.Bool(FieldStartsConnected),
			IPAddress:       row.String(FieldIPAddress),
		})
	}

	return nics
}
