package svnlook

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSvnlook writes a shell script standing in for the real tool and
// returns a Repos configured to invoke it.
func fakeSvnlook(t *testing.T, script string) *Repos {
	t.Helper()
	requireShell(t)

	path := filepath.Join(t.TempDir(), "svnlook")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))

	repos := NewRepos("/tmp/repo")
	repos.Executable = path
	return repos
}

func TestReposYoungest(t *testing.T) {
	repos := fakeSvnlook(t, `echo "42"`)

	head, err := repos.Youngest()
	require.NoError(t, err)
	assert.Equal(t, 42, head)
}

func TestReposYoungestGarbage(t *testing.T) {
	repos := fakeSvnlook(t, `echo "not a number"`)

	_, err := repos.Youngest()
	assert.ErrorIs(t, err, ErrParse)
}

func TestReposYoungestExitFailure(t *testing.T) {
	repos := fakeSvnlook(t, `exit 1`)

	_, err := repos.Youngest()
	exit := &ExitError{}
	require.ErrorAs(t, err, &exit)
	assert.Equal(t, 1, exit.Status)
}

func TestReposInfo(t *testing.T) {
	repos := fakeSvnlook(t, `printf 'alice\n2020-01-02 03:04:05 +0000 (Thu, 02 Jan 2020)\n5\nhello\n'`)

	info, err := repos.Info(7)
	require.NoError(t, err)
	assert.Equal(t, 7, info.Revision)
	assert.Equal(t, "alice", info.Committer)
	assert.Equal(t, "hello", info.Message)
}

func TestReposChanged(t *testing.T) {
	repos := fakeSvnlook(t, `printf 'A   trunk/new.c\nD   trunk/old.c\n'`)

	it, err := repos.Changed(7)
	require.NoError(t, err)
	defer it.Close()

	change, err := it.Next()
	require.NoError(t, err)
	assert.Equal(t, Added, change.Status)

	change, err = it.Next()
	require.NoError(t, err)
	assert.Equal(t, Deleted, change.Status)

	_, err = it.Next()
	assert.Equal(t, io.EOF, err)
}

func TestReposCat(t *testing.T) {
	repos := fakeSvnlook(t, `printf 'file contents'`)

	cmd, err := repos.Cat(7, "trunk/file.c")
	require.NoError(t, err)
	defer cmd.Close()

	out, err := io.ReadAll(cmd)
	require.NoError(t, err)
	assert.Equal(t, "file contents", string(out))
}

func TestDiffBuilderArgs(t *testing.T) {
	repos := NewRepos("/tmp/repo")

	args := repos.Diff(9).
		NoDiffDeleted().
		DiffCopyFrom().
		ContextLines(5).
		Args()

	assert.Equal(t, []string{
		"diff",
		"--no-diff-deleted",
		"--diff-copy-from",
		"-x", "-U5",
		"-r", "9",
		"--", "/tmp/repo",
	}, args)
}

func TestDiffBuilderSpawn(t *testing.T) {
	repos := fakeSvnlook(t, `printf 'Index: trunk/new.c\n'`)

	cmd, err := repos.Diff(9).IgnoreProperties().Spawn()
	require.NoError(t, err)
	defer cmd.Close()

	out, err := io.ReadAll(cmd)
	require.NoError(t, err)
	assert.Equal(t, "Index: trunk/new.c\n", string(out))
}
