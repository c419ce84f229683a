package hooks

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/commitprefix/git"
	"github.com/randalmurphal/commitprefix/testutil"
)

func newInstaller(t *testing.T) *Installer {
	t.Helper()
	return &Installer{Dir: filepath.Join(t.TempDir(), "hooks")}
}

func TestParseHook(t *testing.T) {
	h, err := ParseHook("prepare-commit-msg")
	require.NoError(t, err)
	assert.Equal(t, PrepareCommitMsg, h)

	_, err = ParseHook("pre-commit")
	assert.Error(t, err)
}

func TestInstall_NewHook(t *testing.T) {
	inst := newInstaller(t)
	inst.Args = []string{"--branch-is-user-prefixed"}

	require.NoError(t, inst.Install(CommitMsg))

	content := testutil.ReadFileString(t, inst.Path(CommitMsg))
	assert.True(t, strings.HasPrefix(content, "#!/bin/sh\n"))
	assert.Contains(t, content, `commit-prefix --branch-is-user-prefixed "$@" || exit $?`)
	assert.Contains(t, content, sectionBegin)
	assert.Contains(t, content, sectionEnd)

	info, err := os.Stat(inst.Path(CommitMsg))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestInstall_Reinstall(t *testing.T) {
	inst := newInstaller(t)
	require.NoError(t, inst.Install(CommitMsg))

	inst.Args = []string{"--allow-main"}
	require.NoError(t, inst.Install(CommitMsg))

	content := testutil.ReadFileString(t, inst.Path(CommitMsg))
	assert.Equal(t, 1, strings.Count(content, sectionBegin))
	assert.Contains(t, content, "commit-prefix --allow-main")
}

func TestInstall_ForeignHook(t *testing.T) {
	inst := newInstaller(t)
	require.NoError(t, os.MkdirAll(inst.Dir, 0o755))
	original := "#!/bin/sh\necho lint\n"
	require.NoError(t, os.WriteFile(inst.Path(CommitMsg), []byte(original), 0o644))

	err := inst.Install(CommitMsg)
	assert.True(t, errors.Is(err, ErrForeignHook))
	assert.Equal(t, original, testutil.ReadFileString(t, inst.Path(CommitMsg)))

	inst.Force = true
	require.NoError(t, inst.Install(CommitMsg))

	content := testutil.ReadFileString(t, inst.Path(CommitMsg))
	assert.True(t, strings.HasPrefix(content, original))
	assert.Contains(t, content, sectionBegin)

	info, err := os.Stat(inst.Path(CommitMsg))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestUninstall_RemovesOwnScript(t *testing.T) {
	inst := newInstaller(t)
	require.NoError(t, inst.Install(PrepareCommitMsg))

	removed, err := inst.Uninstall(PrepareCommitMsg)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(inst.Path(PrepareCommitMsg))
	assert.True(t, os.IsNotExist(err))
}

func TestUninstall_KeepsUserContent(t *testing.T) {
	inst := newInstaller(t)
	inst.Force = true
	require.NoError(t, os.MkdirAll(inst.Dir, 0o755))
	original := "#!/bin/sh\necho lint\n"
	require.NoError(t, os.WriteFile(inst.Path(CommitMsg), []byte(original), 0o755))
	require.NoError(t, inst.Install(CommitMsg))

	removed, err := inst.Uninstall(CommitMsg)
	require.NoError(t, err)

	assert.True(t, removed)
	assert.Equal(t, original, testutil.ReadFileString(t, inst.Path(CommitMsg)))
}

func TestUninstall_NotInstalled(t *testing.T) {
	inst := newInstaller(t)

	removed, err := inst.Uninstall(CommitMsg)
	require.NoError(t, err)
	assert.False(t, removed)

	require.NoError(t, os.MkdirAll(inst.Dir, 0o755))
	require.NoError(t, os.WriteFile(inst.Path(CommitMsg), []byte("#!/bin/sh\n"), 0o755))

	removed, err = inst.Uninstall(CommitMsg)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.FileExists(t, inst.Path(CommitMsg))
}

func TestStatus(t *testing.T) {
	inst := newInstaller(t)
	require.NoError(t, inst.Install(CommitMsg))
	require.NoError(t, os.WriteFile(inst.Path(PrepareCommitMsg), []byte("#!/bin/sh\n"), 0o644))

	statuses, err := inst.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, Status{
		Hook:       CommitMsg,
		Path:       inst.Path(CommitMsg),
		Exists:     true,
		Installed:  true,
		Executable: true,
	}, statuses[0])
	assert.Equal(t, Status{
		Hook:   PrepareCommitMsg,
		Path:   inst.Path(PrepareCommitMsg),
		Exists: true,
	}, statuses[1])
}

func TestStatus_Empty(t *testing.T) {
	statuses, err := newInstaller(t).Status()
	require.NoError(t, err)

	for _, st := range statuses {
		assert.False(t, st.Exists, st.Hook)
		assert.False(t, st.Installed, st.Hook)
	}
}

func TestForRepo(t *testing.T) {
	hooksDir := filepath.Join(t.TempDir(), "custom-hooks")
	runner := git.NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--git-dir").Return(".git", nil)
	runner.OnCommand("git", "rev-parse", "--git-path", "hooks").Return(hooksDir, nil)

	gitCtx, err := git.NewContext(t.TempDir(), git.WithRunner(runner))
	require.NoError(t, err)

	inst, err := ForRepo(gitCtx)
	require.NoError(t, err)
	assert.Equal(t, hooksDir, inst.Dir)
}

func TestForRepo_RealRepo(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	gitCtx, err := git.NewContext(dir)
	require.NoError(t, err)

	inst, err := ForRepo(gitCtx)
	require.NoError(t, err)
	require.NoError(t, inst.Install(CommitMsg))

	assert.FileExists(t, filepath.Join(dir, ".git", "hooks", "commit-msg"))
}

func TestShellQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"commit-prefix", "commit-prefix"},
		{"--types=feat,fix", "--types=feat,fix"},
		{"/opt/my tools/commit-prefix", "'/opt/my tools/commit-prefix'"},
		{"it's", `'it'\''s'`},
		{"", "''"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, shellQuote(tt.in), tt.in)
	}
}
