package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild_Defaults(t *testing.T) {
	eff := NewBuilder().Build()
	require.Equal(t, DefaultRemote, eff.Remote)
	require.Equal(t, DefaultFetchDepth, eff.FetchDepth)
	require.Equal(t, "", eff.DefaultBranch)
}

func TestBuild_UserOverrides(t *testing.T) {
	remote := "upstream"
	depth := 50
	branch := "trunk"

	eff := NewBuilder().Add(&Config{
		Remote:        &remote,
		FetchDepth:    &depth,
		DefaultBranch: &branch,
	}).Build()

	require.Equal(t, "upstream", eff.Remote)
	require.Equal(t, 50, eff.FetchDepth)
	require.Equal(t, "trunk", eff.DefaultBranch)
}

func TestBuild_LaterAdditionsWin(t *testing.T) {
	first := "upstream"
	second := "fork"

	eff := NewBuilder().
		Add(&Config{Remote: &first}).
		Add(&Config{Remote: &second}).
		Build()

	require.Equal(t, "fork", eff.Remote)
}

func TestBuild_NilConfigIgnored(t *testing.T) {
	eff := NewBuilder().Add(nil).Build()
	require.Equal(t, DefaultRemote, eff.Remote)
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("remote: upstream\nfetch-depth: 25\ndefault-branch: trunk\n"))
	require.NoError(t, err)
	require.Equal(t, "upstream", *cfg.Remote)
	require.Equal(t, 25, *cfg.FetchDepth)
	require.Equal(t, "trunk", *cfg.DefaultBranch)
}

func TestLoadFromBytes_PartialConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("fetch-depth: 10\n"))
	require.NoError(t, err)
	require.Nil(t, cfg.Remote)
	require.Equal(t, 10, *cfg.FetchDepth)

	eff := NewBuilder().Add(cfg).Build()
	require.Equal(t, DefaultRemote, eff.Remote)
	require.Equal(t, 10, eff.FetchDepth)
}

func TestLoadFromBytes_Invalid(t *testing.T) {
	_, err := LoadFromBytes([]byte("remote: [unclosed"))
	require.Error(t, err)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitrange.yml")
	require.NoError(t, os.WriteFile(path, []byte("remote: mirror\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	require.Equal(t, "mirror", *cfg.Remote)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}
