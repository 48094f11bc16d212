//go:build linux
// +build linux

package sandbox

import (
	"syscall"

	"golang.org/x/sys/unix"
)

type LinuxSyscaller struct{}

func NewSyscaller() Syscaller {
	return &LinuxSyscaller{}
}

func (*LinuxSyscaller) Chroot(path string) error {
	return unix.Chroot(path)
}

func (*LinuxSyscaller) Chdir(path string) error {
	return unix.Chdir(path)
}

// PIDNamespaceAttr asks clone for the namespace instead of unsharing it here:
// after unshare(CLONE_NEWPID) the Go runtime cannot fork again.
func (*LinuxSyscaller) PIDNamespaceAttr() (*syscall.SysProcAttr, error) {
	return &syscall.SysProcAttr{Cloneflags: unix.CLONE_NEWPID}, nil
}
