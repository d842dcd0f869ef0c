package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionWithCommit(t *testing.T) {
	require := require.New(t)

	require.Equal(Version, VersionWithCommit(""))
	require.Equal(Version, VersionWithCommit("abc"))
	require.Equal(Version+"-0123abcd", VersionWithCommit("0123abcdef"))
}
