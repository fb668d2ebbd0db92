package codec

// isInlineable reports whether an element may be inlined directly into
// a collection's residual slice instead of being propagated as a child
// node: it's a primitive, or a byte slice / string shorter than
// InlineThreshold units.
func isInlineable(v any) bool {
	if IsPrimitive(v) {
		return true
	}
	switch x := v.(type) {
	case []byte:
		return len(x) < InlineThreshold
	case string:
		return len(x) < InlineThreshold
	}
	return false
}

// partitionSequence applies the collection rule to an ordered sequence:
// elements that may be inlined stay in the residual slice verbatim;
// everything else is replaced with nil in the residual and appended, in
// index order, to the returned children slice.
func partitionSequence(items []any) (residual []any, propIdx []int, children []any) {
	residual = make([]any, len(items))
	for i, v := range items {
		if isInlineable(v) {
			residual[i] = v
			continue
		}
		propIdx = append(propIdx, i)
		children = append(children, v)
	}
	return residual, propIdx, children
}

// scatterChildren rebuilds a full-length sequence from a residual slice
// (with nils at propagated indices) and the deserialized children, in
// the same index order partitionSequence recorded. Any child that is
// still a Placeholder gets a fixup callback registered against ctx so
// the slot is patched in place once the real value resolves — this is
// how forward references and cycles (spec.md §8 scenario 5) are
// reconnected as the driver unwinds.
func scatterChildren(ctx *Context, residual []any, propIdx []int, children []any, set func(idx int, v any)) error {
	if len(propIdx) != len(children) {
		return MalformedHeaderError
	}

	propagated := make(map[int]bool, len(propIdx))
	for _, idx := range propIdx {
		propagated[idx] = true
	}

	for i, idx := range propIdx {
		if idx < 0 || idx >= len(residual) {
			return MalformedHeaderError
		}
		child := children[i]
		if ph, ok := child.(Placeholder); ok {
			slot := idx
			ctx.AddFixup(ph.ID, func(real any) {
				set(slot, real)
			})
			continue
		}
		set(idx, child)
	}

	for i, v := range residual {
		if !propagated[i] {
			set(i, v)
		}
	}
	return nil
}
