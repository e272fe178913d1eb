package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrySetFromEnv(t *testing.T) {
	val := "default"
	TrySetFromEnv("POINT_TEST_UNSET_VALUE", &val)
	assert.Equal(t, "default", val)

	t.Setenv("POINT_TEST_VALUE", "override")
	TrySetFromEnv("POINT_TEST_VALUE", &val)
	assert.Equal(t, "override", val)
}

func TestTrySetIntFromEnv(t *testing.T) {
	n := 10
	require.NoError(t, TrySetIntFromEnv("POINT_TEST_UNSET_INT", &n))
	assert.Equal(t, 10, n)

	t.Setenv("POINT_TEST_INT", "64")
	require.NoError(t, TrySetIntFromEnv("POINT_TEST_INT", &n))
	assert.Equal(t, 64, n)

	t.Setenv("POINT_TEST_INT", "many")
	assert.Error(t, TrySetIntFromEnv("POINT_TEST_INT", &n))
	assert.Equal(t, 64, n)
}
