package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-fxa-oauth/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestCoalesce(t *testing.T) {
	require.Equal(t, "configured", utils.Coalesce(nil, "configured"))
	require.Equal(t, "override", utils.Coalesce(utils.Ptr("override"), "configured"))
	require.Equal(t, "", utils.Coalesce(utils.Ptr(""), "configured"))
}

func TestValue(t *testing.T) {
	require.Equal(t, 0, utils.Value[int](nil))
	require.Equal(t, 7, utils.Value(utils.Ptr(7)))
}
