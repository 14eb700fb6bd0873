package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-planner/internal/geometry"
)

func TestParsePoint(t *testing.T) {
	p, err := parsePoint("3.5, -2")
	require.NoError(t, err)
	assert.Equal(t, geometry.Point{3.5, -2}, p)

	for _, bad := range []string{"", "1", "1,2,3", "a,1", "1,b"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}
