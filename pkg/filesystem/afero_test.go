package filesystem

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeString(t *testing.T, fsys afero.Fs, name, content string) {
	t.Helper()
	f, err := Create(fsys, name)
	require.NoError(t, err)
	_, err = io.WriteString(f, content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
}

func TestCreate(t *testing.T) {
	fsys := NewMemory()

	writeString(t, fsys, "/a/b/c.txt", "hello")
	data, err := afero.ReadFile(fsys, "/a/b/c.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	writeString(t, fsys, "/a/b/c.txt", "x")
	data, _ = afero.ReadFile(fsys, "/a/b/c.txt")
	assert.Equal(t, "x", string(data))

	_, err = Create(afero.NewReadOnlyFs(fsys), "/new/x.txt")
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	fsys := NewMemory()
	require.NoError(t, afero.WriteFile(fsys, "/src.py", []byte("print()"), 0600))

	require.NoError(t, CopyFile(fsys, "/src.py", "/src.py.bak"))

	data, err := afero.ReadFile(fsys, "/src.py.bak")
	require.NoError(t, err)
	assert.Equal(t, "print()", string(data))
	info, err := fsys.Stat("/src.py.bak")
	require.NoError(t, err)
	assert.Equal(t, "-rw-------", info.Mode().Perm().String())

	assert.Error(t, CopyFile(fsys, "/missing", "/x"))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"a/b.pdf", "a-b.pdf"},
		{"..", "_"},
		{"", "_"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeName(tt.in))
		})
	}
}
