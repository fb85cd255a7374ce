package identity

import (
	"fmt"
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// Separator joins identity components in the serialized form. A VM name
// containing the sequence would corrupt round-tripping; Parse rejects such
// input instead of guessing.
const Separator = "::"

// Identity is the stable identifier of a VM across re-uploads of the same
// environment: keyed by SMBIOS UUID when the export carries one, else by
// placement (name + datacenter + cluster).
type Identity struct {
	Name       string
	UUID       string
	Datacenter string
	Cluster    string
}

// ForVM derives the identity for a parsed record. Pure: identical records
// always yield identical identities.
func ForVM(vm api.VM) Identity {
	if vm.UUID != "" {
		return Identity{Name: vm.Name, UUID: vm.UUID}
	}
	return Identity{Name: vm.Name, Datacenter: vm.Datacenter, Cluster: vm.Cluster}
}

func (id Identity) ByUUID() bool {
	return id.UUID != ""
}

// String serializes for the persistence boundary: "name::uuid" or
// "name::datacenter::cluster".
func (id Identity) String() string {
	if id.ByUUID() {
		return id.Name + Separator + id.UUID
	}
	return id.Name + Separator + id.Datacenter + Separator + id.Cluster
}

// Parse is the exact inverse of String, disambiguating the two forms by
// token count.
func Parse(s string) (Identity, error) {
	parts := strings.Split(s, Separator)
	switch len(parts) {
	case 2:
		return Identity{Name: parts[0], UUID: parts[1]}, nil
	case 3:
		return Identity{Name: parts[0], Datacenter: parts[1], Cluster: parts[2]}, nil
	default:
		return Identity{}, fmt.Errorf("malformed VM identifier: %q", s)
	}
}
