package runner

import (
	"fmt"
	"io"
	"net"
	"os/exec"

	"code.cloudfoundry.org/lager/v3"
	"github.com/onsi/gomega/gexec"
)

type Runner struct {
	GrootrunBin string
	ConfigPath  string

	RegistryURL     string
	AuthURL         string
	Architecture    string
	WorkspaceParent string

	LogLevelSet bool
	LogLevel    lager.LogLevel
	LogFile     string
	MetronHost  net.IP
	MetronPort  uint16

	SkipDigestVerification bool

	Stdout io.Writer
	Stderr io.Writer
}

// Run starts `grootrun run <image> <args...>`. Stdout and stderr are also
// captured by the returned session.
func (r Runner) Run(image string, args ...string) (*gexec.Session, error) {
	cmd := r.makeCmd("run", append([]string{image}, args...))
	return gexec.Start(cmd, r.Stdout, r.Stderr)
}

func (r Runner) makeCmd(subcommand string, args []string) *exec.Cmd {
	allArgs := []string{}
	if r.LogLevelSet {
		allArgs = append(allArgs, "--log-level", r.logLevel(r.LogLevel))
	}
	if r.LogFile != "" {
		allArgs = append(allArgs, "--log-file", r.LogFile)
	}
	if r.RegistryURL != "" {
		allArgs = append(allArgs, "--registry-url", r.RegistryURL)
	}
	if r.AuthURL != "" {
		allArgs = append(allArgs, "--auth-url", r.AuthURL)
	}
	if r.Architecture != "" {
		allArgs = append(allArgs, "--architecture", r.Architecture)
	}
	if r.WorkspaceParent != "" {
		allArgs = append(allArgs, "--workspace-parent", r.WorkspaceParent)
	}
	if r.MetronHost != nil && r.MetronPort != 0 {
		metronEndpoint := fmt.Sprintf("%s:%d", r.MetronHost.String(), r.MetronPort)
		allArgs = append(allArgs, "--metron-endpoint", metronEndpoint)
	}
	if r.SkipDigestVerification {
		allArgs = append(allArgs, "--skip-digest-verification")
	}
	if r.ConfigPath != "" {
		allArgs = append(allArgs, "--config", r.ConfigPath)
	}

	allArgs = append(allArgs, subcommand)
	allArgs = append(allArgs, args...)

	return exec.Command(r.GrootrunBin, allArgs...)
}

func (r Runner) logLevel(ll lager.LogLevel) string {
	switch ll {
	case lager.DEBUG:
		return "debug"
	case lager.INFO:
		return "info"
	case lager.FATAL:
		return "fatal"
	default:
		return "error"
	}
}
