package svc

// DefaultName is the service name used when none was set at build time.
const DefaultName = "joblogs-formatter"

// Svc is the build identity of the running binary.
type Svc struct {
	Name    string
	Version string
}

var svc Svc

// GetName returns the service name, DefaultName when unset.
func (s Svc) GetName() string {
	if s.Name == "" {
		return DefaultName
	}
	return s.Name
}

// GetVersion returns the service version, "dev" when unset.
func (s Svc) GetVersion() string {
	if s.Version == "" {
		return "dev"
	}
	return s.Version
}

// SetName sets the service name once. Later calls and empty names are ignored.
func SetName(name string) {
	if svc.Name != "" || name == "" {
		return
	}
	svc.Name = name
}

// SetVersion sets the service version once. Later calls and empty versions are ignored.
func SetVersion(version string) {
	if svc.Version != "" || version == "" {
		return
	}
	svc.Version = version
}

// Info returns the build identity.
func Info() Svc {
	return svc
}
