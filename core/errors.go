package core

import (
	"errors"
	"fmt"
	"io/fs"
)

var (
	ErrInvalidConfig      = errors.New("invalid configuration")
	ErrUnsupportedSetting = errors.New("unsupported setting")
	ErrUnresolvedContext  = errors.New("context is not resolved")
)

type PathOp int

const (
	NotExist PathOp = iota
	Exist
)

// PathError reports a file system precondition violation
type PathError struct {
	Op       PathOp
	Location string
}

func (e *PathError) Error() string {
	if e.Op == Exist {
		return fmt.Sprintf("the file or directory already exists: %s", e.Location)
	}
	return fmt.Sprintf("the file or directory does not exist: %s", e.Location)
}

func (e *PathError) Is(target error) bool {
	switch e.Op {
	case Exist:
		return target == fs.ErrExist
	default:
		return target == fs.ErrNotExist
	}
}

type InvalidConfigError struct {
	Location string
	Line     int
	Column   int
	Message  string
	Err      error
}

func (e *InvalidConfigError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s(%d:%d)", e.Location, e.Line, e.Column)
	}
	return fmt.Sprintf("%s(%d:%d): %s", e.Location, e.Line, e.Column, e.Message)
}

func (e *InvalidConfigError) Unwrap() error        { return e.Err }
func (e *InvalidConfigError) Is(target error) bool { return target == ErrInvalidConfig }

// UnsupportedSettingError means a recognized configuration item holds a value nothing implements
type UnsupportedSettingError struct {
	Item     string
	Value    string
	Location string
	Err      error
}

func (e *UnsupportedSettingError) Error() string {
	return fmt.Sprintf("%s: unsupported %s: %q", e.Location, e.Item, e.Value)
}

func (e *UnsupportedSettingError) Unwrap() error        { return e.Err }
func (e *UnsupportedSettingError) Is(target error) bool { return target == ErrUnsupportedSetting }
