package topics

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/option-dry-run.txt":     {Data: []byte("Information about dry-run mode")},
		"help/format-strings.md":      {Data: []byte("# Format strings\n\nUse $(name).")},
		"help/config.txxt":            {Data: []byte("Configuration Guide")},
		"help/ignore.json":            {Data: []byte("{}")},
		"help/nested/import-rules.md": {Data: []byte("# Rules")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS())
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name    string
			exists  bool
			content string
		}{
			{"option-dry-run", true, "Information about dry-run mode"},
			{"format-strings", true, "# Format strings\n\nUse $(name)."},
			{"import-rules", true, "# Rules"},
			{"config", false, ""},
			{"ignore", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, ok := tm.GetTopic(tt.name)
				assert.Equal(t, tt.exists, ok)
				if ok {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})

	t.Run("nil filesystem", func(t *testing.T) {
		tm := New(nil)
		require.NoError(t, tm.scanTopics())
		assert.Empty(t, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	for _, name := range []string{"dry-run", "--dry-run", "-dry-run", "option-dry-run"} {
		t.Run(name, func(t *testing.T) {
			topic, ok := tm.GetTopic(name)
			require.True(t, ok)
			assert.Equal(t, "option-dry-run", topic.Name)
		})
	}

	_, ok := tm.GetTopic("nope")
	assert.False(t, ok)
}

func TestWriteList(t *testing.T) {
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())

	var buf bytes.Buffer
	tm.WriteList(&buf, "viur")
	out := buf.String()
	assert.Contains(t, out, "General topics:\n  format-strings\n  import-rules\n")
	assert.Contains(t, out, "Option topics:\n  --dry-run\n")
	assert.Contains(t, out, "Use 'viur help <topic>'")

	buf.Reset()
	New(nil).WriteList(&buf, "viur")
	assert.Equal(t, "No help topics available.\n", buf.String())
}

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	root := &cobra.Command{Use: "viur", Short: "root help text"}
	root.AddCommand(&cobra.Command{Use: "export", Short: "export help text", Run: func(*cobra.Command, []string) {}})
	root.SetOut(&out)
	root.SetErr(&out)
	_, err := Initialize(root, testFS())
	require.NoError(t, err)
	return root, &out
}

func TestInitialize(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"topic", []string{"help", "format-strings"}, "Use $(name)."},
		{"flag topic", []string{"help", "dry-run"}, "Information about dry-run mode"},
		{"topic list", []string{"help", "topics"}, "Available help topics:"},
		{"command", []string{"help", "export"}, "export help text"},
		{"root", []string{"help"}, "root help text"},
		{"unknown", []string{"help", "nothing"}, "Unknown help topic"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, out := newRoot(t)
			root.SetArgs(tt.args)
			require.NoError(t, root.Execute())
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRenderers(t *testing.T) {
	plain := &PlainRenderer{}
	assert.Equal(t, "# Title", plain.Render("# Title", ".md"))

	g := &GlamourRenderer{Style: "notty", Width: 40}
	assert.Equal(t, "plain text", g.Render("plain text", ".txt"))
	rendered := g.Render("# Title\n\nSome *text*.", ".md")
	assert.Contains(t, rendered, "Title")
	assert.False(t, strings.HasPrefix(rendered, "# Title\n\nSome *text*."))
}
