package placement

import "sort"

// Prioritize implements prioritizeContainers: given a fixed host order and
// each host's containers in per-host preference order, produce a single
// ordering that round-robins across hosts — the first container of every
// host (most-loaded host first) before any host's second container, and so
// on.
//
// Go maps give no iteration-order guarantee, so ties between equally-loaded
// hosts are broken by the explicit host order passed in rather than by
// grouping through a map; callers that want stable tie-breaking should pass
// hosts in the order they were first observed.
func Prioritize(hosts []string, containersByHost map[string][]string) []string {
	ordered := make([]string, len(hosts))
	copy(ordered, hosts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(containersByHost[ordered[i]]) > len(containersByHost[ordered[j]])
	})

	var out []string
	for round := 0; ; round++ {
		addedAny := false
		for _, h := range ordered {
			if cs := containersByHost[h]; round < len(cs) {
				out = append(out, cs[round])
				addedAny = true
			}
		}
		if !addedAny {
			return out
		}
	}
}
