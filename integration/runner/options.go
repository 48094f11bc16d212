package runner

import (
	"io"
	"net"

	"code.cloudfoundry.org/lager/v3"
)

///////////////////////////////////////////////////////////////////////////////
// Registry
///////////////////////////////////////////////////////////////////////////////

func (r Runner) WithRegistry(registryURL, authURL string) Runner {
	nr := r
	nr.RegistryURL = registryURL
	nr.AuthURL = authURL
	return nr
}

func (r Runner) WithArchitecture(architecture string) Runner {
	nr := r
	nr.Architecture = architecture
	return nr
}

func (r Runner) WithSkipDigestVerification() Runner {
	nr := r
	nr.SkipDigestVerification = true
	return nr
}

///////////////////////////////////////////////////////////////////////////////
// Workspace
///////////////////////////////////////////////////////////////////////////////

func (r Runner) WithWorkspaceParent(path string) Runner {
	nr := r
	nr.WorkspaceParent = path
	return nr
}

///////////////////////////////////////////////////////////////////////////////
// Logging and metrics
///////////////////////////////////////////////////////////////////////////////

func (r Runner) WithLogLevel(level lager.LogLevel) Runner {
	nr := r
	nr.LogLevel = level
	nr.LogLevelSet = true
	return nr
}

func (r Runner) WithoutLogLevel() Runner {
	nr := r
	nr.LogLevelSet = false
	return nr
}

func (r Runner) WithLogFile(path string) Runner {
	nr := r
	nr.LogFile = path
	return nr
}

func (r Runner) WithMetronEndpoint(host net.IP, port uint16) Runner {
	nr := r
	nr.MetronHost = host
	nr.MetronPort = port
	return nr
}

func (r Runner) WithConfig(path string) Runner {
	nr := r
	nr.ConfigPath = path
	return nr
}

///////////////////////////////////////////////////////////////////////////////
// Output
///////////////////////////////////////////////////////////////////////////////

func (r Runner) WithStdout(stdout io.Writer) Runner {
	nr := r
	nr.Stdout = stdout
	return nr
}

func (r Runner) WithStderr(stderr io.Writer) Runner {
	nr := r
	nr.Stderr = stderr
	return nr
}
