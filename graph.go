package nexus

import "sort"

// Topology is a read-only snapshot of which hooks currently share a nexus,
// for debugging and the extensions/topology visualizer. Grounded on the
// teacher's ReactiveGraph (graph.go): adjacency-list traversal re-targeted
// from "walk reactive dependents" to "enumerate fused hook groups." This is
// pure introspection — it never mutates membership; fusion itself happens
// directly in hook.go/manager.go under the manager lock.
type Topology struct {
	Groups [][]*Hook
}

// Snapshot walks every hook reachable from roots and groups them by shared
// nexus. Hooks not reachable from any root are omitted.
func Snapshot(roots []*Hook) Topology {
	seen := make(map[nexusID]bool)
	var groups [][]*Hook
	for _, h := range roots {
		id := h.nexus().id
		if seen[id] {
			continue
		}
		seen[id] = true
		members := h.nexus().memberList()
		sort.Slice(members, func(i, j int) bool { return members[i].id < members[j].id })
		groups = append(groups, members)
	}
	return Topology{Groups: groups}
}

// appendUnique appends h to list unless an equal-identity hook is already
// present, mirroring the teacher's graph.go helper of the same intent.
func appendUnique(list []*Hook, h *Hook) []*Hook {
	for _, existing := range list {
		if existing == h {
			return list
		}
	}
	return append(list, h)
}

// removeElement drops h from list if present, preserving order.
func removeElement(list []*Hook, h *Hook) []*Hook {
	for i, existing := range list {
		if existing == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
