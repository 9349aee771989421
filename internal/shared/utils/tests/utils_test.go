package tests

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-inotebook/internal/shared/utils"
)

func TestPtr(t *testing.T) {
	p := utils.Ptr(42)
	require.Equal(t, 42, *p)
}

func TestNonEmpty(t *testing.T) {
	require.Nil(t, utils.NonEmpty(""))
	require.Nil(t, utils.NonEmpty("   "))

	p := utils.NonEmpty("  work ")
	require.NotNil(t, p)
	require.Equal(t, "work", *p)
}
