package query

// DeclaredFields lists the field names a spec makes available without
// running it. Only the first top-level entry is inspected: a leaf declares
// itself, a sub-selection declares its direct leaf children.
func DeclaredFields(spec Spec) map[string]string {
	fields := make(map[string]string)
	if len(spec.Fields) == 0 {
		return fields
	}

	first := spec.Fields[0]
	if first.IsLeaf() {
		fields[first.Name] = first.Name
		return fields
	}

	for _, child := range first.Children {
		if child.IsLeaf() {
			fields[child.Name] = child.Name
		}
	}

	return fields
}
