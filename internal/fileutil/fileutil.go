/*
Copyright IBM Corp. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package fileutil

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileExists reports whether a regular file exists at filePath along with
// its size. A directory at filePath is an error.
func FileExists(filePath string) (bool, int64, error) {
	info, err := os.Stat(filePath)
	switch {
	case os.IsNotExist(err):
		return false, 0, nil
	case err != nil:
		return false, 0, errors.Wrapf(err, "error checking if file [%s] exists", filePath)
	case info.IsDir():
		return false, 0, errors.Errorf("the supplied path [%s] is a dir", filePath)
	}
	return true, info.Size(), nil
}

// CreateDirIfMissing creates dirPath and its parents when needed, then
// reports whether the directory holds no entries. Wallet stores use the
// result to tell a fresh store from an existing one.
func CreateDirIfMissing(dirPath string) (bool, error) {
	if err := os.MkdirAll(dirPath, 0o755); err != nil {
		return false, errors.Wrapf(err, "error while creating dir: %s", dirPath)
	}
	if err := SyncDir(filepath.Dir(dirPath)); err != nil {
		return false, err
	}

	dir, err := os.Open(dirPath)
	if err != nil {
		return false, errors.Wrapf(err, "error opening dir [%s]", dirPath)
	}
	defer dir.Close()

	_, err = dir.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "error checking if dir [%s] is empty", dirPath)
	}
	return false, nil
}
