package filesystem

import (
	"io"
	"os"
)

// GacheFs lets gache caches persist through API(), so the title and query
// caches follow the backend switch made in tests.
type GacheFs struct{}

func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
