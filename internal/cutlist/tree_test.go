package cutlist_test

import (
	"testing"

	"github.com/mozaik-tools/tigertamer/internal/cutlist"
	"github.com/stretchr/testify/require"
)

// scopedPart builds a width-scoped (width-less) record for tree tests.
func scopedPart(t *testing.T, count int, location, length, typ, note string) *cutlist.PartRecord {
	t.Helper()
	p := defaultPart(t, map[string]string{"no": location, "length": length, "type": typ, "note": note})
	p.Count = count
	p.Width = ""
	return p
}

func TestFoldAccumulatesMatchingLeaves(t *testing.T) {
	tree := cutlist.NewPartTree()
	tree.Fold(scopedPart(t, 1, "R1:1", "42", "BR", ""))
	tree.Fold(scopedPart(t, 2, "R1:1(2)", "42", "BR", ""))

	parts := tree.ToRecords()
	require.Len(t, parts, 1)
	require.Equal(t, 3, parts[0].Count)
	require.Equal(t, "R1:1(3)", parts[0].Location)
}

func TestFoldKeepsDistinctLeavesApart(t *testing.T) {
	tree := cutlist.NewPartTree()
	tree.Fold(scopedPart(t, 1, "R1:1", "42", "BR", ""))
	tree.Fold(scopedPart(t, 1, "R1:1", "42", "TR", ""))
	tree.Fold(scopedPart(t, 1, "R1:1", "43", "BR", ""))
	tree.Fold(scopedPart(t, 1, "R1:1", "42", "BR", "Door"))
	tree.Fold(scopedPart(t, 1, "R2:1", "42", "BR", ""))

	require.Len(t, tree.ToRecords(), 5)
}

func TestFoldKeyTypesNeverCollide(t *testing.T) {
	// A length "12" and a room/cab "12" live at different levels and must
	// never merge.
	tree := cutlist.NewPartTree()
	tree.Fold(scopedPart(t, 1, "R12:12", "12", "BR", ""))
	tree.Fold(scopedPart(t, 1, "R12:12", "13", "BR", ""))
	tree.Fold(scopedPart(t, 1, "R13:12", "12", "BR", ""))

	require.Len(t, tree.ToRecords(), 3)
}

func TestFoldRoomlessLocation(t *testing.T) {
	tree := cutlist.NewPartTree()
	tree.Fold(scopedPart(t, 1, "3", "42", "BR", ""))

	parts := tree.ToRecords()
	require.Len(t, parts, 1)
	require.Equal(t, "R1:3", parts[0].Location)
}

func TestMergeSumsLeaves(t *testing.T) {
	a := cutlist.NewPartTree()
	a.Fold(scopedPart(t, 2, "R1:1(2)", "42", "BR", ""))
	a.Fold(scopedPart(t, 1, "R1:2", "42", "BR", ""))

	b := cutlist.NewPartTree()
	b.Fold(scopedPart(t, 1, "R1:1", "42", "BR", ""))
	b.Fold(scopedPart(t, 1, "R2:1", "42", "BR", ""))

	a.Merge(b)
	parts := a.ToRecords()
	require.Len(t, parts, 3)
	require.Equal(t, "R1:1(3)", parts[0].Location)
	require.Equal(t, 3, parts[0].Count)
	require.Equal(t, "R1:2", parts[1].Location)
	require.Equal(t, "R2:1", parts[2].Location)
}

func TestToRecordsDeterministicOrder(t *testing.T) {
	build := func(order []int) []*cutlist.PartRecord {
		parts := []*cutlist.PartRecord{
			scopedPart(t, 1, "R2:1", "42", "BR", ""),
			scopedPart(t, 1, "R1:2", "42", "BR", ""),
			scopedPart(t, 1, "R1:1", "43", "BR", ""),
			scopedPart(t, 1, "R1:1", "42", "BR", ""),
		}
		tree := cutlist.NewPartTree()
		for _, i := range order {
			tree.Fold(parts[i])
		}
		return tree.ToRecords()
	}

	first := build([]int{0, 1, 2, 3})
	for _, order := range [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}} {
		other := build(order)
		require.Len(t, other, len(first))
		for i := range first {
			require.True(t, first[i].Equal(other[i]),
				"order %v differs at %d: %v vs %v", order, i, first[i], other[i])
		}
	}
}

func TestToLines(t *testing.T) {
	tree := cutlist.NewPartTree()
	tree.Fold(scopedPart(t, 1, "R1:1", "42", "BR", "Frame"))
	tree.Fold(scopedPart(t, 2, "R1:1(2)", "42", "BR", "Frame"))
	tree.Fold(scopedPart(t, 1, "R2:3", "36.5", "TR", ""))

	lines := tree.ToLines("2")
	require.Equal(t, []string{
		"3,2,42,BR,R1:1(3),Frame",
		"1,2,36.5,TR,R2:3,",
	}, lines)
}
