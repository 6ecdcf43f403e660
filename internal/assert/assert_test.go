package assert

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNotNil(t *testing.T) {
	var nilPointer *int
	var nilMap map[string]int

	require.PanicsWithValue(t, "expected value to be not nil", func() { NotNil(nil, "value") })
	require.PanicsWithValue(t, "expected pointer to be not nil", func() { NotNil(nilPointer, "pointer") })
	require.Panics(t, func() { NotNil(nilMap, "map") })

	one := 1
	require.NotPanics(t, func() { NotNil(&one, "pointer") })
	require.NotPanics(t, func() { NotNil(0, "zero") })
	require.NotPanics(t, func() { NotNil(map[string]int{}, "map") })
}
