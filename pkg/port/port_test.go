package port

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/viur/pkg/errors"
	"github.com/arthur-debert/viur/pkg/filesystem"
	"github.com/arthur-debert/viur/pkg/testutil"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacy = `from server import skeleton
from server.bones import stringBone, selectcountryBone, selectBone

class Customer(skeleton):
	name = stringBone(descr="Name")

	def onItemAdded(self, skel):
		pass
`

func TestLookup(t *testing.T) {
	require.Len(t, Lookup, 30)
	assert.Equal(t, Replacement{"onItemAdded", "onAdded"}, Lookup[0])
	assert.Equal(t, Replacement{"baseBone", "BaseBone"}, Lookup[6])
	assert.Equal(t, Replacement{"userBone", "UserBone"}, Lookup[29])
}

func TestApply(t *testing.T) {
	got, count := Apply(legacy)
	assert.Equal(t, 5, count)
	assert.Contains(t, got, "from viur.core import skeleton")
	assert.Contains(t, got, "from server.bones import StringBone, SelectcountryBone, SelectBone")
	assert.Contains(t, got, "def onAdded(self, skel)")

	same, count := Apply("print('hello')\n")
	assert.Zero(t, count)
	assert.Equal(t, "print('hello')\n", same)
}

func newTree(t *testing.T) afero.Fs {
	t.Helper()
	fs := filesystem.NewMemory()
	files := map[string]string{
		"/project/modules/customer.py": legacy,
		"/project/modules/plain.py":    "print('hello')\n",
		"/project/modules/notes.txt":   "stringBone",
		"/project/viur/core/bones.py":  "stringBone",
		"/project/deploy/html5/app.py": "stringBone",
		"/project/skeletons/ORDER.PY":  "textBone",
	}
	testutil.CreateFiles(t, fs, files)
	return fs
}

func TestRun(t *testing.T) {
	fs := newTree(t)
	var out bytes.Buffer

	result, err := Run(fs, Options{Root: "/project", Logger: zerolog.Nop()}, &out)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	assert.ElementsMatch(t, []string{"/project/modules/customer.py", "/project/skeletons/ORDER.PY"}, result.Modified)
	assert.Contains(t, out.String(), "Modified /project/modules/customer.py")

	testutil.AssertFileContent(t, fs, "/project/modules/customer.py.bak", legacy)
	assert.Contains(t, testutil.ReadFile(t, fs, "/project/modules/customer.py"), "StringBone")
	testutil.AssertFileContent(t, fs, "/project/viur/core/bones.py", "stringBone")
}

func TestRun_NoBackup(t *testing.T) {
	fs := newTree(t)

	_, err := Run(fs, Options{Root: "/project", NoBackup: true, Logger: zerolog.Nop()}, &bytes.Buffer{})
	require.NoError(t, err)

	testutil.AssertNoFile(t, fs, "/project/modules/customer.py.bak")
}

func TestRun_DryRun(t *testing.T) {
	fs := newTree(t)
	var out bytes.Buffer

	result, err := Run(fs, Options{Root: "/project", DryRun: true, Logger: zerolog.Nop()}, &out)
	require.NoError(t, err)
	assert.Len(t, result.Modified, 2)

	diff := out.String()
	assert.Contains(t, diff, "--- /project/modules/customer.py")
	assert.Contains(t, diff, "-\tname = stringBone(descr=\"Name\")")
	assert.Contains(t, diff, "+\tname = StringBone(descr=\"Name\")")

	testutil.AssertFileContent(t, fs, "/project/modules/customer.py", legacy)
}

func TestRun_RootNameIsNotIgnored(t *testing.T) {
	fs := filesystem.NewMemory()
	testutil.CreateFile(t, fs, "/srv/viur-shop/main.py", "textBone")

	result, err := Run(fs, Options{Root: "/srv/viur-shop", DryRun: true, Logger: zerolog.Nop()}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Len(t, result.Modified, 1)
}

func TestRun_InvalidRoot(t *testing.T) {
	_, err := Run(filesystem.NewMemory(), Options{Root: "/nope", Logger: zerolog.Nop()}, &bytes.Buffer{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
