package idx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/rolesvc/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEqual(t, idx.Zero, id)

	parsed, err := idx.Parse(string(id))
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.True(t, idx.Valid(string(id)))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := idx.Parse("")
	require.ErrorIs(t, err, idx.ErrInvalid)

	_, err = idx.Parse("not-a-ulid")
	require.ErrorIs(t, err, idx.ErrInvalid)

	require.False(t, idx.Valid("u1"))
	require.False(t, idx.Valid(" "+string(idx.New())))
	require.False(t, idx.Valid("01ARZ3NDEKTSV4RRFFQ69G5FA")) // one short
}

func TestNewAtSortsByTime(t *testing.T) {
	a := idx.NewAt(time.Unix(1, 0).UTC())
	b := idx.NewAt(time.Unix(2, 0).UTC())
	require.Less(t, string(a), string(b))

	// Same millisecond stays monotonic.
	now := time.Now().UTC()
	c, d := idx.NewAt(now), idx.NewAt(now)
	require.Less(t, string(c), string(d))
}
