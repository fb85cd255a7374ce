package identity

import (
	"fmt"
	"sort"
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// Fingerprint digests the environment a dataset was exported from: first
// source server, its instance UUID, and the sorted cluster list. Used only
// for equality comparison when validating persisted overrides.
func Fingerprint(inv *api.Inventory) string {
	var server, instanceUUID string
	if len(inv.Sources) > 0 {
		server = inv.Sources[0].Server
		instanceUUID = inv.Sources[0].InstanceUUID
	}

	names := make(map[string]struct{})
	for _, c := range inv.Clusters {
		if c.Name != "" {
			names[c.Name] = struct{}{}
		}
	}
	for _, vm := range inv.VMs {
		if vm.Cluster != "" {
			names[vm.Cluster] = struct{}{}
		}
	}

	clusters := make([]string, 0, len(names))
	for name := range names {
		clusters = append(clusters, name)
	}
	sort.Strings(clusters)

	return server + "|" + instanceUUID + "|" + strings.Join(clusters, ",")
}

// ShortFingerprint produces an 8-character hex display digest. Rolling
// multiply-and-XOR hash; not cryptographic, collisions are tolerated.
func ShortFingerprint(fingerprint string) string {
	var h uint32 = 2166136261
	for i := 0; i < len(fingerprint); i++ {
		h ^= uint32(fingerprint[i])
		h *= 16777619
	}
	return fmt.Sprintf("%08x", h)
}
