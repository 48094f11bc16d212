package sandbox

import (
	"errors"
	"io"
	"os/exec"

	"code.cloudfoundry.org/commandrunner"
	"code.cloudfoundry.org/lager/v3"
	specs "github.com/opencontainers/runtime-spec/specs-go"
	errorspkg "github.com/pkg/errors"
)

// UnknownExitCode is reported when a command did not exit normally, for
// example when it was killed by a signal.
const UnknownExitCode = 1

type exitCoder interface {
	ExitCode() int
}

type ProcessRunner struct {
	commandRunner commandrunner.CommandRunner
	stdin         io.Reader
	stdout        io.Writer
	stderr        io.Writer
}

func NewProcessRunner(commandRunner commandrunner.CommandRunner, stdin io.Reader, stdout, stderr io.Writer) *ProcessRunner {
	return &ProcessRunner{
		commandRunner: commandRunner,
		stdin:         stdin,
		stdout:        stdout,
		stderr:        stderr,
	}
}

func (r *ProcessRunner) Run(logger lager.Logger, confined *Confined, process specs.Process) (int, error) {
	logger = logger.Session("running-process", lager.Data{"args": process.Args, "cwd": process.Cwd})
	logger.Info("starting")
	defer logger.Info("ending")

	if confined == nil {
		return 0, errors.New("refusing to run a command outside of a confined root")
	}

	if len(process.Args) == 0 {
		return 0, errors.New("no command given")
	}

	cmd := exec.Command(process.Args[0], process.Args[1:]...)
	cmd.Dir = process.Cwd
	cmd.Env = process.Env
	if cmd.Env == nil {
		// a nil Env would inherit the launcher environment
		cmd.Env = []string{}
	}
	cmd.SysProcAttr = confined.SysProcAttr()
	cmd.Stdin = r.stdin
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := r.commandRunner.Run(cmd)
	if err == nil {
		return 0, nil
	}

	var exitErr exitCoder
	if errors.As(err, &exitErr) {
		exitCode := exitErr.ExitCode()
		if exitCode < 0 {
			exitCode = UnknownExitCode
		}
		logger.Debug("process-failed", lager.Data{"exitCode": exitCode})
		return exitCode, nil
	}

	logger.Error("starting-process-failed", err)
	return 0, errorspkg.Wrapf(err, "starting `%s`", process.Args[0])
}
