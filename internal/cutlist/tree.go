// =============================================================================
// TigerTamer - Part Tree
// =============================================================================
//
// PartTree is the intermediate representation behind WidthFile.Combine: atomic
// part records are folded into a nested map keyed room → cab → length → note →
// type, with an accumulated piece count at the leaf. Records that describe the
// same physical cut land on the same leaf no matter how upstream spread them
// across rows, so flattening the tree yields the minimal combined record set.
//
// Every level has its own key type on purpose: the original data mixes
// numeric-looking strings at several levels (a length "12" and a room "12"
// must never collide).
//
// The tree is transient — built, flattened, and discarded inside one Combine
// or export call. Flattening walks keys in sorted order at every level, so
// the output is deterministic regardless of insertion order.
//
// =============================================================================

package cutlist

import (
	"fmt"
	"sort"
	"strings"
)

// Leaf-inward node types. The innermost map accumulates piece counts per
// part type.
type (
	// PartTree maps room ids ("R1") to their cab nodes.
	PartTree map[string]CabNode

	// CabNode maps cab ids ("7") to their length nodes.
	CabNode map[string]LengthNode

	// LengthNode maps length strings ("42.375") to their note nodes.
	LengthNode map[string]NoteNode

	// NoteNode maps note text (often empty) to per-type piece counts.
	NoteNode map[string]TypeCounts

	// TypeCounts maps part types ("BR") to an accumulated count.
	TypeCounts map[string]int
)

// NewPartTree returns an empty tree.
func NewPartTree() PartTree {
	return make(PartTree)
}

// Fold inserts an atomic part record into the tree, creating intermediate
// nodes as needed and summing the count at the leaf. The record's location
// must be atomic (one room, one cab); the quantity annotation is ignored in
// the key and reflected in the count.
func (t PartTree) Fold(p *PartRecord) {
	room, cab, found := strings.Cut(StripQuantity(p.Location), ":")
	if !found {
		// No ":" at all; treat the whole token as a cab in room 1.
		room, cab = "R1", room
	}
	cabs, ok := t[room]
	if !ok {
		cabs = make(CabNode)
		t[room] = cabs
	}
	lengths, ok := cabs[cab]
	if !ok {
		lengths = make(LengthNode)
		cabs[cab] = lengths
	}
	notes, ok := lengths[p.Length]
	if !ok {
		notes = make(NoteNode)
		lengths[p.Length] = notes
	}
	types, ok := notes[p.Note]
	if !ok {
		types = make(TypeCounts)
		notes[p.Note] = types
	}
	types[p.Type] += p.Count
}

// Merge deep-merges another tree into this one, summing leaf counts.
func (t PartTree) Merge(other PartTree) {
	for room, cabs := range other {
		if _, ok := t[room]; !ok {
			t[room] = make(CabNode)
		}
		for cab, lengths := range cabs {
			if _, ok := t[room][cab]; !ok {
				t[room][cab] = make(LengthNode)
			}
			for length, notes := range lengths {
				if _, ok := t[room][cab][length]; !ok {
					t[room][cab][length] = make(NoteNode)
				}
				for note, types := range notes {
					if _, ok := t[room][cab][length][note]; !ok {
						t[room][cab][length][note] = make(TypeCounts)
					}
					for typ, count := range types {
						t[room][cab][length][note][typ] += count
					}
				}
			}
		}
	}
}

// ToRecords flattens the tree into width-scoped part records, one per leaf.
// A leaf with count 1 gets a bare "room:cab" location; anything higher gets
// the "(n)" annotation.
func (t PartTree) ToRecords() []*PartRecord {
	var parts []*PartRecord
	t.walk(func(room, cab, length, note, typ string, count int) {
		location := room + ":" + cab
		if count > 1 {
			location = fmt.Sprintf("%s(%d)", location, count)
		}
		parts = append(parts, &PartRecord{
			Count:    count,
			Length:   length,
			Type:     typ,
			Location: location,
			Note:     note,
		})
	})
	return parts
}

// ToLines flattens the tree into raw re-exportable CSV lines using the
// master column layout, with the given stock width. Debug re-export only;
// the .tiger serializer works from ToRecords.
func (t PartTree) ToLines(width string) []string {
	var lines []string
	for _, p := range t.ToRecords() {
		p.Width = width
		lines = append(lines, p.ToCSVLine())
	}
	return lines
}

// walk visits every leaf in sorted key order at each level.
func (t PartTree) walk(fn func(room, cab, length, note, typ string, count int)) {
	for _, room := range sortedKeys(t) {
		cabs := t[room]
		for _, cab := range sortedKeys(cabs) {
			lengths := cabs[cab]
			for _, length := range sortedKeys(lengths) {
				notes := lengths[length]
				for _, note := range sortedKeys(notes) {
					types := notes[note]
					for _, typ := range sortedKeys(types) {
						fn(room, cab, length, note, typ, types[typ])
					}
				}
			}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
