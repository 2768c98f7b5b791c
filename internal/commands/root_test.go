package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	cmd := NewRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.Regexp(t, `^dir-tree v\S+\n$`, out.String())
}

func TestRootCmd_RejectsInvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"json and markdown", []string{"--json", "--markdown"}, "mutually exclusive"},
		{"negative depth", []string{"--depth=-2"}, "--depth must not be negative"},
		{"unknown engine", []string{"--engine", "fnmatch"}, "fnmatch"},
		{"too many args", []string{"a", "b"}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := NewRootCmd()
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRootCmd_ArgumentAndDirConflict(t *testing.T) {
	dir := t.TempDir()
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dir", dir, dir})

	assert.Error(t, cmd.Execute())
}

func TestRootCmd_RendersToOutputFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("secret.txt\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), nil, 0o644))
	outFile := filepath.Join(t.TempDir(), "tree.txt")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"-q", "-o", outFile, root})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	// secret.txt is the last listed entry, so readme.md keeps the tee.
	expected := root + "\n" +
		"├── .gitignore\n" +
		"├── readme.md\n"
	assert.Equal(t, expected, string(data))
}

func TestRootCmd_VisibleLast(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".gitignore"), []byte("secret.txt\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "readme.md"), nil, 0o644))
	outFile := filepath.Join(t.TempDir(), "tree.txt")

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"-q", "--visible-last", "-o", outFile, "--dir", root})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	assert.Equal(t, root+"\n├── .gitignore\n└── readme.md\n", string(data))
}
