package propchain

import (
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/a-peyrard/propchain/set"
	"github.com/a-peyrard/propchain/str"
)

// SystemEnvironmentSourceName is the name of the EnvSource.
const SystemEnvironmentSourceName = "systemEnvironment"

var separatorReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvSource exposes the environment variables of the process.
//
// Keys are looked up verbatim first, then in relaxed forms, so "user.name" also matches
// user_name, USER_NAME, and for camel case keys the screaming snake case form ("maxIdle" matches MAX_IDLE).
type EnvSource struct {
	once  sync.Once
	names []string
}

func NewEnvSource() *EnvSource {
	return &EnvSource{}
}

func (e *EnvSource) Name() string {
	return SystemEnvironmentSourceName
}

func (e *EnvSource) Lookup(key string) (any, bool) {
	if key == "" {
		return nil, false
	}
	for _, candidate := range envCandidates(key) {
		if value, found := os.LookupEnv(candidate); found {
			return value, true
		}
	}
	return nil, false
}

// Keys lists the variable names as seen the first time Keys was called.
func (e *EnvSource) Keys() []string {
	e.once.Do(func() {
		e.loadNames()
	})
	return e.names
}

func (e *EnvSource) loadNames() {
	props := os.Environ()
	e.names = make([]string, 0, len(props))
	for _, prop := range props {
		name, _, _ := strings.Cut(prop, "=")
		if name != "" {
			e.names = append(e.names, name)
		}
	}
	sort.Strings(e.names)
}

func envCandidates(key string) []string {
	replaced := separatorReplacer.Replace(key)
	candidates := []string{
		key,
		replaced,
		strings.ToUpper(key),
		strings.ToUpper(replaced),
		str.ToScreamingSnakeCase(key),
	}

	seen := set.New[string]()
	unique := candidates[:0]
	for _, c := range candidates {
		if c != "" && seen.Add(c) {
			unique = append(unique, c)
		}
	}
	return unique
}
