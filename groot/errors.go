package groot

type RegistryErr struct {
	error
}

type MalformedResponseErr struct {
	error
}

type NoManifestForArchitectureErr struct {
	error
}

type WorkspaceErr struct {
	error
}

type UnpackErr struct {
	error
}

type IsolationErr struct {
	error
}

type LaunchErr struct {
	error
}

func NewRegistryErr(err error) error {
	return &RegistryErr{err}
}

func NewMalformedResponseErr(err error) error {
	return &MalformedResponseErr{err}
}

func NewNoManifestForArchitectureErr(err error) error {
	return &NoManifestForArchitectureErr{err}
}

func NewWorkspaceErr(err error) error {
	return &WorkspaceErr{err}
}

func NewUnpackErr(err error) error {
	return &UnpackErr{err}
}

func NewIsolationErr(err error) error {
	return &IsolationErr{err}
}

func NewLaunchErr(err error) error {
	return &LaunchErr{err}
}
