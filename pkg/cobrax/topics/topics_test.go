package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func helpFS() fstest.MapFS {
	return fstest.MapFS{
		"help/rc-addon.md":     {Data: []byte("# RC addon\n\nGenerated on install.\n")},
		"help/layout.txt":      {Data: []byte("bin/ config/ macos/setup")},
		"help/option-repo.md":  {Data: []byte("# --repo\n")},
		"help/nested/deep.md":  {Data: []byte("deep topic")},
		"help/notes.json":      {Data: []byte("{}")},
		"elsewhere/ignored.md": {Data: []byte("not under help")},
	}
}

func TestLoad(t *testing.T) {
	m, err := Load(helpFS(), "help", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"deep", "layout", "option-repo", "rc-addon"}, m.Names())

	topic, ok := m.Get("rc-addon")
	require.True(t, ok)
	assert.Equal(t, ".md", topic.Format())
	assert.Contains(t, topic.Content, "Generated on install.")

	_, ok = m.Get("notes")
	assert.False(t, ok, "unsupported extension")
	_, ok = m.Get("ignored")
	assert.False(t, ok, "outside the topics dir")
}

func TestLoadCustomExtensions(t *testing.T) {
	m, err := Load(helpFS(), "help", Options{Extensions: []string{".json"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"notes"}, m.Names())
}

func TestLoadMissingDir(t *testing.T) {
	m, err := Load(helpFS(), "nope", Options{})
	require.NoError(t, err)
	assert.Empty(t, m.Names())
}

func TestGetFlagStyle(t *testing.T) {
	m, err := Load(helpFS(), "help", Options{})
	require.NoError(t, err)

	for _, name := range []string{"--repo", "-repo", "repo", "option-repo"} {
		topic, ok := m.Get(name)
		require.True(t, ok, name)
		assert.Equal(t, "option-repo", topic.Name)
	}
}

func TestWriteIndex(t *testing.T) {
	m, err := Load(helpFS(), "help", Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	m.WriteIndex(&buf, "dotstrap")
	out := buf.String()

	assert.Contains(t, out, "General topics:\n  deep\n  layout\n  rc-addon\n")
	assert.Contains(t, out, "Option topics:\n  --repo\n")
	assert.Contains(t, out, "Use 'dotstrap help <topic>'")

	empty, err := Load(fstest.MapFS{}, "help", Options{})
	require.NoError(t, err)
	buf.Reset()
	empty.WriteIndex(&buf, "dotstrap")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func TestInstall(t *testing.T) {
	m, err := Load(helpFS(), "help", Options{})
	require.NoError(t, err)

	newRoot := func() (*cobra.Command, *bytes.Buffer) {
		root := &cobra.Command{Use: "dotstrap", Short: "bootstrap tool"}
		root.AddCommand(&cobra.Command{Use: "install", Short: "Install everything", Run: func(*cobra.Command, []string) {}})
		Install(root, m)
		var buf bytes.Buffer
		root.SetOut(&buf)
		root.SetErr(&buf)
		return root, &buf
	}

	root, buf := newRoot()
	root.SetArgs([]string{"help", "layout"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "bin/ config/ macos/setup", buf.String())

	root, buf = newRoot()
	root.SetArgs([]string{"help", "topics"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Available help topics:")

	root, buf = newRoot()
	root.SetArgs([]string{"help", "install"})
	require.NoError(t, root.Execute())
	assert.Contains(t, buf.String(), "Install everything")
}

func TestGlamourRenderer(t *testing.T) {
	r := NewGlamourRenderer(false)

	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	out := r.Render("# Title\n\nSome *text*.\n", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "text")
}
