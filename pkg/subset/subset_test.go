package subset

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelect_OrderIndependent(t *testing.T) {
	idsA := []string{"a", "b", "c"}
	idsB := []string{"c", "a", "b"} // same multiset, different order

	selA, err := Select(idsA, 0.05, 1)
	require.NoError(t, err)
	selB, err := Select(idsB, 0.05, 1)
	require.NoError(t, err)

	require.Equal(t, selA.Seed, selB.Seed, "seed must depend only on the id multiset")
}

func TestSelect_CountBounds(t *testing.T) {
	ids := make([]string, 1)
	ids[0] = "only"
	sel, err := Select(ids, 0.05, 1)
	require.NoError(t, err)
	require.Equal(t, []int{0}, sel.PublicIndices, "n=1 must select the sole index")

	ids = make([]string, 100)
	for i := range ids {
		ids[i] = randString(t, i)
	}
	sel, err = Select(ids, 0.05, 1)
	require.NoError(t, err)
	require.Len(t, sel.PublicIndices, 5, "k = max(1, ceil(0.05*100)) = 5")
}

func TestVerifySelection(t *testing.T) {
	ids := []string{"x", "y", "z", "w"}
	sel, err := Select(ids, 0.05, 1)
	require.NoError(t, err)

	ok, err := VerifySelection(ids, 0.05, 1, sel.PublicIndices)
	require.NoError(t, err)
	require.True(t, ok)

	tampered := append([]int{}, sel.PublicIndices...)
	tampered[0] = (tampered[0] + 1) % len(ids)
	ok, err = VerifySelection(ids, 0.05, 1, tampered)
	require.NoError(t, err)
	require.False(t, ok)
}

func randString(t *testing.T, seed int) string {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	buf := make([]byte, 8)
	r.Read(buf)
	return string(buf)
}
