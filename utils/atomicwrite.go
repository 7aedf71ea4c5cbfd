package utils

import (
	"io/fs"
	"os"
	"path/filepath"
)

// AtomicWrite writes data to a temporary file in the same directory and renames it over name.
// The temporary file is removed if anything fails before the rename.
func AtomicWrite(name string, data []byte, perm fs.FileMode) (err error) {
	dir := filepath.Dir(name)
	fd, err := os.CreateTemp(dir, "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return err
	}
	tmp := fd.Name()
	defer func() {
		if err != nil {
			fd.Close()
			os.Remove(tmp)
		}
	}()

	if _, err = fd.Write(data); err != nil {
		return err
	}
	// os.CreateTemp always creates file with 0600
	if perm != 0600 {
		if err = fd.Chmod(perm); err != nil {
			return err
		}
	}
	if err = fd.Sync(); err != nil {
		return err
	}
	if err = fd.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, name)
}
