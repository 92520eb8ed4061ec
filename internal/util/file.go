package util

import (
	"errors"
	"fmt"
	"github.com/mitchellh/go-homedir"
	"github.com/natefinch/atomic"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// CheckFilePermissionsForExecution checks whether the given filePath owner, group and permissions
// are safe to use this file for execution by ecthermal.
func CheckFilePermissionsForExecution(filePath string) (bool, error) {
	file, err := filepath.EvalSymlinks(filePath)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(file)
	if os.IsNotExist(err) {
		return false, errors.New("file not found")
	}

	stat := info.Sys().(*syscall.Stat_t)
	if stat.Uid != 0 {
		return false, errors.New("owner is not root")
	}

	if stat.Gid != 0 {
		groupWrite := info.Mode() & os.FileMode(0o020)
		if groupWrite != 0 {
			return false, errors.New("group is not root but has write permission")
		}
	}

	otherWrite := info.Mode() & os.FileMode(0o002)
	if otherWrite != 0 {
		return false, errors.New("others have write permission")
	}

	return true, nil
}

// ExpandPath resolves a leading "~" to the home directory of the current user
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

// ReadStringFromFile returns the whitespace trimmed content of the given file
func ReadStringFromFile(path string) (string, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func ReadIntFromFile(path string) (value int, err error) {
	text, err := ReadStringFromFile(path)
	if err != nil {
		return -1, err
	}
	if len(text) <= 0 {
		return -1, fmt.Errorf("file is empty: %s", path)
	}
	return strconv.Atoi(text)
}

// WriteIntToFileAtomic replaces the content of path with the given value,
// readers never observe a partially written file.
func WriteIntToFileAtomic(value int, path string) error {
	path, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if evaluatedPath, err := filepath.EvalSymlinks(path); err == nil && len(evaluatedPath) > 0 {
		path = evaluatedPath
	}
	return atomic.WriteFile(path, strings.NewReader(strconv.Itoa(value)))
}

// WriteIntToFile writes a single integer to a sysfs style attribute, which
// cannot be replaced atomically.
func WriteIntToFile(value int, path string) error {
	if evaluatedPath, err := filepath.EvalSymlinks(path); err == nil && len(evaluatedPath) > 0 {
		path = evaluatedPath
	}
	return os.WriteFile(path, []byte(strconv.Itoa(value)), 0644)
}
