package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDRoundTrip(t *testing.T) {
	require := require.New(t)

	var raw [IDLen]byte
	for i := range raw {
		raw[i] = byte(i)
	}

	id, err := ToID(raw[:])
	require.NoError(err)

	parsed, err := FromString(id.String())
	require.NoError(err)
	require.Equal(id, parsed)
}

func TestToIDWrongLength(t *testing.T) {
	_, err := ToID([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestShortSetEqualsAndDifference(t *testing.T) {
	require := require.New(t)

	a := NewShortSet(2)
	a.Add(ShortID{1})
	a.Add(ShortID{2})

	b := NewShortSet(2)
	b.Add(ShortID{2})
	b.Add(ShortID{1})

	require.True(a.Equals(b))

	b.Add(ShortID{3})
	require.False(a.Equals(b))

	diff := b.Difference(a)
	require.Equal(1, diff.Len())
	require.True(diff.Contains(ShortID{3}))
}

func TestShortSetListIsSorted(t *testing.T) {
	s := NewShortSet(3)
	s.Add(ShortID{3})
	s.Add(ShortID{1})
	s.Add(ShortID{2})

	list := s.List()
	for i := 1; i < len(list); i++ {
		require.True(t, lessShort(list[i-1], list[i]))
	}
}
