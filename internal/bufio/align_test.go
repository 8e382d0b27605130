package bufio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlignUp(t *testing.T) {
	cases := []struct {
		pos, mod, want int
	}{
		{1, 4, 4},
		{4, 4, 4},
		{5, 4, 8},
		{0, 8, 0},
		{7, 8, 8},
		{8, 8, 8},
		{9, 8, 16},
		{3, 1, 3},
		{3, 0, 3},
	}
	for _, c := range cases {
		require.Equal(t, c.want, AlignUp(c.pos, c.mod))
	}
}
