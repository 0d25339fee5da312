package domain

// TraceChain walks the "who depends on me" relation from start up toward a
// root, producing the ordered labels of the explanation path. The walk picks
// the first dependent in original declaration order; this is a documented,
// stable tie-break, not a shortest-path search. Dependents are arena indices,
// so every hop lands on a resolved (name, version) node by construction.
//
// A visited set of (name, version) pairs bounds the walk: when the chosen
// dependent has already been visited the walk stops and reports a cycle
// instead of looping forever.
func (ix *DependencyIndex) TraceChain(start PackageRecord) (labels []string, cycle bool) {
	labels = []string{start.Label()}

	visited := map[versionKey]bool{
		{name: start.Name, version: start.Version}: true,
	}

	current, ok := ix.Lookup(start.Name, start.Version)
	if !ok {
		// The start record is not itself a resolved node; nothing to walk.
		return labels, false
	}

	for len(current.Dependents) > 0 {
		rec := ix.records[current.Dependents[0]]
		key := versionKey{name: rec.Name, version: rec.Version}
		if visited[key] {
			return labels, true
		}
		visited[key] = true
		labels = append(labels, rec.Label())
		current, _ = ix.Lookup(rec.Name, rec.Version)
	}

	// Current node is a root: no dependent remains.
	return labels, false
}
