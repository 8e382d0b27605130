package proptree

import (
	"sort"

	"github.com/nebuladds/xcdr-core/pkg/xtypes"
)

// PropertyRecord is one flat, declaration-order record as the generator
// emits it: a synthetic root at depth 0 followed by one record per member,
// in the order steps 1-7 of Finish expect to consume them.
type PropertyRecord struct {
	MemberID                uint32
	Depth                   uint32
	Extensibility           xtypes.Extensibility
	ParentExtensibility     xtypes.Extensibility
	BitBound                xtypes.BitBound
	IsOptional              bool
	MustUnderstand          bool
	Ignore                  bool
	ImplementationExtension bool
}

// KeyEndpointMap is a nested map from member-id path to sub-map, describing
// the set of key paths declared for a type via @key annotations or a
// keylist. An empty sub-map terminates a key path (leaf key).
type KeyEndpointMap map[uint32]KeyEndpointMap

// Finish links a flat vector of property records (plus the key-endpoint map
// that annotates them) into a fully-built tree, implementing the seven
// construction steps: parent/first-member, sibling links, key propagation,
// unsorted/sorted key lists, and bottom-up xtypes-necessary. Records must
// start with a single depth-0 root and otherwise be in pre-order
// declaration order (a record's depth is its parent's depth + 1, and a
// record never precedes its own parent).
func Finish(records []PropertyRecord, keys KeyEndpointMap) *EntityProperty {
	if len(records) == 0 {
		return nil
	}

	nodes := make([]*EntityProperty, len(records))
	for i, rec := range records {
		nodes[i] = &EntityProperty{
			MemberID:                rec.MemberID,
			Depth:                   rec.Depth,
			Extensibility:           rec.Extensibility,
			ParentExtensibility:     rec.ParentExtensibility,
			BitBound:                rec.BitBound,
			IsOptional:              rec.IsOptional,
			MustUnderstand:          rec.MustUnderstand,
			Ignore:                  rec.Ignore,
			ImplementationExtension: rec.ImplementationExtension,
		}
	}
	root := nodes[0]

	// Step 1: parent / first-member, by a depth walk. stackAtDepth[d] holds
	// the most recently seen node at depth d; a record's parent is whatever
	// currently occupies depth-1 in the stack.
	stackAtDepth := []*EntityProperty{root}
	for _, n := range nodes[1:] {
		d := int(n.Depth)
		if d-1 < len(stackAtDepth) {
			parent := stackAtDepth[d-1]
			n.Parent = parent
			if parent.FirstMember == nil {
				parent.FirstMember = n
			}
		}
		if d < len(stackAtDepth) {
			stackAtDepth = stackAtDepth[:d]
		}
		stackAtDepth = append(stackAtDepth, n)
	}

	// Step 2: next-on-level / prev-on-level, by tracking the last sibling
	// seen so far under each parent.
	lastUnderParent := make(map[*EntityProperty]*EntityProperty, len(nodes))
	for _, n := range nodes[1:] {
		if prev, ok := lastUnderParent[n.Parent]; ok {
			prev.NextOnLevel = n
			n.PrevOnLevel = prev
		}
		lastUnderParent[n.Parent] = n
	}

	// Step 3/4: key propagation. An empty (or nil) key-endpoint map means
	// every member is implicitly a key; otherwise is-key is propagated down
	// the declared paths.
	if len(keys) == 0 {
		markSubtreeAsKey(root)
	} else {
		propagateKeys(root, keys)
	}

	// Step 5/6: unsorted- and sorted-key sibling lists, built per parent
	// from the same sibling groups step 2 walked.
	siblingGroups := make(map[*EntityProperty][]*EntityProperty)
	var order []*EntityProperty
	for _, n := range nodes[1:] {
		if _, seen := siblingGroups[n.Parent]; !seen {
			order = append(order, n.Parent)
		}
		siblingGroups[n.Parent] = append(siblingGroups[n.Parent], n)
	}
	for _, parent := range order {
		siblings := siblingGroups[parent]
		linkUnsortedKeys(parent, siblings)
		linkSortedKeys(parent, siblings)
	}

	// Step 7: xtypes-necessary, bottom-up.
	computeXTypesNecessary(root)

	return root
}

// markSubtreeAsKey recursively flags every member (not the root itself) as
// a key, the "keyless type ⇒ every field is key" rule.
func markSubtreeAsKey(node *EntityProperty) {
	for m := node.FirstMember; m != nil; m = m.NextOnLevel {
		m.IsKey = true
		markSubtreeAsKey(m)
	}
}

// propagateKeys walks node's members against the corresponding level of the
// key-endpoint map: an entry mapping to an empty sub-map marks a leaf key;
// a non-empty sub-map marks the member as a key too, so the key lists reach
// it, and recurses into its own children, where only the members on the
// declared path become keys.
func propagateKeys(node *EntityProperty, level KeyEndpointMap) {
	for m := node.FirstMember; m != nil; m = m.NextOnLevel {
		sub, declared := level[m.MemberID]
		if !declared {
			continue
		}
		m.IsKey = true
		if len(sub) == 0 {
			continue
		}
		propagateKeys(m, sub)
	}
}

// linkUnsortedKeys builds the key-only sibling list in declaration order.
func linkUnsortedKeys(parent *EntityProperty, siblings []*EntityProperty) {
	var prev *EntityProperty
	for _, n := range siblings {
		if !n.IsKey {
			continue
		}
		if prev == nil {
			parent.FirstUnsortedKey = n
		} else {
			prev.NextUnsortedKey = n
			n.PrevUnsortedKey = prev
		}
		prev = n
	}
}

// linkSortedKeys builds the key-only sibling list in member-id ascending
// order via a stable sort, so siblings sharing a member id (not expected,
// but not itself a Finish precondition) keep their declaration-order
// relative position.
func linkSortedKeys(parent *EntityProperty, siblings []*EntityProperty) {
	keyed := make([]*EntityProperty, 0, len(siblings))
	for _, n := range siblings {
		if n.IsKey {
			keyed = append(keyed, n)
		}
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].MemberID < keyed[j].MemberID })

	var prev *EntityProperty
	for _, n := range keyed {
		if prev == nil {
			parent.FirstSortedKey = n
		} else {
			prev.NextSortedKey = n
			n.PrevSortedKey = prev
		}
		prev = n
	}
}

// computeXTypesNecessary sets XTypesNecessary bottom-up: true if the node
// itself is optional or not final, or if any child is xtypes-necessary.
func computeXTypesNecessary(node *EntityProperty) bool {
	necessary := node.IsOptional || node.Extensibility != xtypes.Final
	for m := node.FirstMember; m != nil; m = m.NextOnLevel {
		if computeXTypesNecessary(m) {
			necessary = true
		}
	}
	node.XTypesNecessary = necessary
	return necessary
}
