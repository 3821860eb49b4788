package propchain

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"sync"
)

// SystemPropertiesSourceName is the name of the SystemSource.
const SystemPropertiesSourceName = "systemProperties"

// SystemSource exposes properties describing the running process and its user:
//
//	user.name, user.home, user.dir, host.name, os.name, os.arch, go.version,
//	tmp.dir, file.separator, path.separator, line.separator
//
// Values are computed once, on first use. Properties that cannot be determined are absent.
type SystemSource struct {
	once  sync.Once
	inner *MapSource
}

func NewSystemSource() *SystemSource {
	return &SystemSource{}
}

func (s *SystemSource) Name() string {
	return SystemPropertiesSourceName
}

func (s *SystemSource) Lookup(key string) (any, bool) {
	return s.load().Lookup(key)
}

func (s *SystemSource) Keys() []string {
	return s.load().Keys()
}

func (s *SystemSource) load() *MapSource {
	s.once.Do(func() {
		s.inner = NewStringSource(SystemPropertiesSourceName, systemProperties())
	})
	return s.inner
}

func systemProperties() map[string]string {
	props := map[string]string{
		"os.name":        runtime.GOOS,
		"os.arch":        runtime.GOARCH,
		"go.version":     runtime.Version(),
		"tmp.dir":        os.TempDir(),
		"file.separator": string(filepath.Separator),
		"path.separator": string(os.PathListSeparator),
		"line.separator": "\n",
	}
	if runtime.GOOS == "windows" {
		props["line.separator"] = "\r\n"
	}

	if current, err := user.Current(); err == nil {
		props["user.name"] = current.Username
	}
	if home, err := os.UserHomeDir(); err == nil {
		props["user.home"] = home
	}
	if dir, err := os.Getwd(); err == nil {
		props["user.dir"] = dir
	}
	if host, err := os.Hostname(); err == nil {
		props["host.name"] = host
	}
	return props
}
