package assessment

import (
	"sort"
	"strings"

	api "github.com/kubev2v/rvtools-assessor/api/v1alpha1"
)

// osBucket matches guest OS free text into one fixed category. Entries are
// checked in order, specific before generic, so "Windows Server 2019"
// never falls through to plain "Windows".
type osBucket struct {
	name     string
	patterns []string
}

var osBuckets = []osBucket{
	{"Windows Server 2022", []string{"server 2022"}},
	{"Windows Server 2019", []string{"server 2019"}},
	{"Windows Server 2016", []string{"server 2016"}},
	{"Windows Server 2012", []string{"server 2012"}},
	{"Windows Server 2008", []string{"server 2008"}},
	{"Windows Server (other)", []string{"windows server"}},
	{"Windows Desktop", []string{"windows"}},
	{"Red Hat Enterprise Linux", []string{"red hat", "rhel"}},
	{"CentOS", []string{"centos"}},
	{"Ubuntu", []string{"ubuntu"}},
	{"SUSE", []string{"suse", "sles"}},
	{"Debian", []string{"debian"}},
	{"Oracle Linux", []string{"oracle"}},
	{"Other Linux", []string{"linux"}},
}

const unknownBucket = "Unknown"

func bucketForOS(guestOS string) string {
	os := strings.ToLower(strings.TrimSpace(guestOS))
	if os == "" {
		return unknownBucket
	}
	for _, b := range osBuckets {
		for _, p := range b.patterns {
			if strings.Contains(os, p) {
				return b.name
			}
		}
	}
	return unknownBucket
}

const topOSBuckets = 10

// osDistribution buckets every VM and keeps the top entries by count,
// sorted descending with a name tie-break for determinism.
func osDistribution(vms []api.VM) []api.Bucket {
	counts := map[string]int{}
	for _, vm := range vms {
		counts[bucketForOS(vm.GuestOS)]++
	}
	return topBuckets(counts, topOSBuckets)
}

func topBuckets(counts map[string]int, limit int) []api.Bucket {
	buckets := make([]api.Bucket, 0, len(counts))
	for name, count := range counts {
		buckets = append(buckets, api.Bucket{Name: name, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Name < buckets[j].Name
	})
	if limit > 0 && len(buckets) > limit {
		buckets = buckets[:limit]
	}
	return buckets
}
