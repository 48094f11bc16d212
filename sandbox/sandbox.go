// Package sandbox confines the current process before a command is run.
//
// Confinement is a one-way transition:
//
//	Unconfined --ChangeRoot--> RootChanged --IsolatePIDs--> Confined
//
// Each transition can be taken once. A *Confined value can only be produced by
// the last transition, and the ProcessRunner refuses to start a command
// without one. The root change applies to this process; the new process-ID
// namespace is carried by the *Confined value and created when the command is
// cloned, so the command is always pid 1 of a namespace whose root is already
// the workspace. Network, mount, user and resource isolation are not provided.
package sandbox // import "code.cloudfoundry.org/grootrun/sandbox"

import (
	"sync"
	"syscall"

	"code.cloudfoundry.org/lager/v3"
	errorspkg "github.com/pkg/errors"
)

//go:generate counterfeiter . Syscaller
type Syscaller interface {
	Chroot(path string) error
	Chdir(path string) error
	// PIDNamespaceAttr returns the attributes that start a child in a new
	// pid namespace.
	PIDNamespaceAttr() (*syscall.SysProcAttr, error)
}

type transition struct {
	mutex sync.Mutex
	taken bool
}

func (t *transition) take(name string) error {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if t.taken {
		return errorspkg.Errorf("%s has already been attempted", name)
	}
	t.taken = true

	return nil
}

type Unconfined struct {
	syscaller Syscaller
	rootPath  string
	changed   transition
}

type RootChanged struct {
	syscaller Syscaller
	rootPath  string
	isolated  transition
}

type Confined struct {
	rootPath    string
	sysProcAttr *syscall.SysProcAttr
}

func New(syscaller Syscaller, rootPath string) *Unconfined {
	return &Unconfined{
		syscaller: syscaller,
		rootPath:  rootPath,
	}
}

func (u *Unconfined) ChangeRoot(logger lager.Logger) (*RootChanged, error) {
	logger = logger.Session("changing-root", lager.Data{"rootPath": u.rootPath})
	logger.Debug("starting")
	defer logger.Debug("ending")

	if err := u.changed.take("root change"); err != nil {
		return nil, err
	}

	if err := u.syscaller.Chroot(u.rootPath); err != nil {
		logger.Error("chroot-failed", err)
		return nil, errorspkg.Wrapf(err, "changing root to `%s`", u.rootPath)
	}

	if err := u.syscaller.Chdir("/"); err != nil {
		logger.Error("chdir-failed", err)
		return nil, errorspkg.Wrap(err, "changing directory to the new root")
	}

	return &RootChanged{
		syscaller: u.syscaller,
		rootPath:  u.rootPath,
	}, nil
}

func (r *RootChanged) IsolatePIDs(logger lager.Logger) (*Confined, error) {
	logger = logger.Session("isolating-pids")
	logger.Debug("starting")
	defer logger.Debug("ending")

	if err := r.isolated.take("pid namespace isolation"); err != nil {
		return nil, err
	}

	attr, err := r.syscaller.PIDNamespaceAttr()
	if err != nil {
		logger.Error("pid-namespace-failed", err)
		return nil, errorspkg.Wrap(err, "preparing the pid namespace")
	}

	return &Confined{rootPath: r.rootPath, sysProcAttr: attr}, nil
}

// RootPath is the host path that became the root of this process.
func (c *Confined) RootPath() string {
	return c.rootPath
}

// SysProcAttr is a copy of the attributes the command has to be started with.
func (c *Confined) SysProcAttr() *syscall.SysProcAttr {
	if c.sysProcAttr == nil {
		return nil
	}

	attr := *c.sysProcAttr
	return &attr
}

type Isolator struct {
	syscaller Syscaller
}

func NewIsolator(syscaller Syscaller) *Isolator {
	return &Isolator{
		syscaller: syscaller,
	}
}

func (i *Isolator) Isolate(logger lager.Logger, rootPath string) (*Confined, error) {
	logger = logger.Session("isolating", lager.Data{"rootPath": rootPath})
	logger.Info("starting")
	defer logger.Info("ending")

	rootChanged, err := New(i.syscaller, rootPath).ChangeRoot(logger)
	if err != nil {
		return nil, err
	}

	return rootChanged.IsolatePIDs(logger)
}
