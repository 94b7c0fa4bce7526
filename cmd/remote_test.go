package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseOwnerRepo_Valid(t *testing.T) {
	owner, repo, err := parseOwnerRepo("myorg/myrepo")
	require.NoError(t, err)
	require.Equal(t, "myorg", owner)
	require.Equal(t, "myrepo", repo)
}

func TestParseOwnerRepo_NestedPath(t *testing.T) {
	_, _, err := parseOwnerRepo("myorg/myrepo/extra")
	require.Error(t, err)
}

func TestParseOwnerRepo_NoSlash(t *testing.T) {
	_, _, err := parseOwnerRepo("myrepo")
	require.Error(t, err)
	require.Contains(t, err.Error(), "expected owner/repo")
}

func TestParseOwnerRepo_EmptyOwner(t *testing.T) {
	_, _, err := parseOwnerRepo("/myrepo")
	require.Error(t, err)
}

func TestParseOwnerRepo_EmptyRepo(t *testing.T) {
	_, _, err := parseOwnerRepo("myorg/")
	require.Error(t, err)
}

func TestParseOwnerRepo_Empty(t *testing.T) {
	_, _, err := parseOwnerRepo("")
	require.Error(t, err)
}

func TestRemoteCmd_HasExpectedFlags(t *testing.T) {
	flags := remoteCmd.Flags()

	require.NotNil(t, flags.Lookup("token"))
	require.NotNil(t, flags.Lookup("github-app-id"))
	require.NotNil(t, flags.Lookup("github-app-key-path"))
	require.NotNil(t, flags.Lookup("github-url"))
}
