package lookup

import (
	"os"
	"sync/atomic"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// countingFS counts the filesystem operations a lookup performs.
type countingFS struct {
	billy.Filesystem

	opens atomic.Int64
	stats atomic.Int64
}

func (c *countingFS) Open(name string) (billy.File, error) {
	c.opens.Add(1)

	return c.Filesystem.Open(name)
}

func (c *countingFS) Stat(name string) (os.FileInfo, error) {
	c.stats.Add(1)

	return c.Filesystem.Stat(name)
}

func (c *countingFS) ops() int64 { return c.opens.Load() + c.stats.Load() }

// newDatadir returns an in-memory filesystem containing files, keyed by path.
func newDatadir(t *testing.T, files map[string]string) *countingFS {
	t.Helper()

	fs := memfs.New()

	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0o644))
	}

	return &countingFS{Filesystem: fs}
}
