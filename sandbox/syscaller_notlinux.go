//go:build !linux
// +build !linux

package sandbox

import (
	"errors"
	"syscall"
)

type unsupportedSyscaller struct{}

func NewSyscaller() Syscaller {
	return &unsupportedSyscaller{}
}

func (*unsupportedSyscaller) Chroot(path string) error {
	return errors.New("Not implemented on non-linux platforms")
}

func (*unsupportedSyscaller) Chdir(path string) error {
	return errors.New("Not implemented on non-linux platforms")
}

func (*unsupportedSyscaller) PIDNamespaceAttr() (*syscall.SysProcAttr, error) {
	return nil, errors.New("Not implemented on non-linux platforms")
}
