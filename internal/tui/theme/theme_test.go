package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusErrBarUsesErrorColor(t *testing.T) {
	require.Equal(t, Error.GetForeground(), StatusErrBar.GetForeground())
	require.Equal(t, ColorSurface0, StatusErrBar.GetBackground())
}
