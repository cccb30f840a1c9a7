// Package properties resolves named options from, in order, a caller
// supplied map, process-wide system properties and environment variables.
//
// A key such as "log.level" is looked up as:
//
//  1. options["log.level"]
//  2. system property "contractd.properties.log.level", then "log.level"
//  3. environment variable CONTRACTD_PROPERTIES_LOG_LEVEL, then LOG_LEVEL
//
// The first non-empty value wins.
package properties

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// SystemPrefix namespaces system property names.
	SystemPrefix = "contractd.properties."

	// EnvPrefix namespaces environment variable names.
	EnvPrefix = "CONTRACTD_PROPERTIES_"
)

// Fetcher reads raw system properties and environment variables. An unset
// value is returned as "".
type Fetcher interface {
	SystemProperty(name string) string
	EnvVar(name string) string
}

// processFetcher reads the process registry and the OS environment.
type processFetcher struct{}

func (processFetcher) SystemProperty(name string) string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return registry[name]
}

func (processFetcher) EnvVar(name string) string {
	v, _ := os.LookupEnv(name)
	return v
}

var (
	registryMu sync.RWMutex
	registry   = map[string]string{}

	fetcherMu sync.RWMutex
	fetcher   Fetcher = processFetcher{}
)

// SetSystemProperty records a process-wide system property. The CLI sets
// these from -D key=value flags.
func SetSystemProperty(name, value string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = value
}

// ClearSystemProperties removes every recorded system property.
func ClearSystemProperties() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = map[string]string{}
}

// SetFetcher replaces the fetcher used for system properties and
// environment variables and returns the previous one. A nil f restores the
// process fetcher. Call it at configuration time only.
func SetFetcher(f Fetcher) Fetcher {
	if f == nil {
		f = processFetcher{}
	}
	fetcherMu.Lock()
	defer fetcherMu.Unlock()
	prev := fetcher
	fetcher = f
	return prev
}

func currentFetcher() Fetcher {
	fetcherMu.RLock()
	defer fetcherMu.RUnlock()
	return fetcher
}

// Get resolves key and returns "" when no source has a value.
func Get(options map[string]string, key string) string {
	v, _ := Lookup(options, key)
	return v
}

// Source names where a resolved value came from.
type Source string

const (
	SourceNone    Source = ""
	SourceOptions Source = "options"
	SourceSystem  Source = "system"
	SourceEnv     Source = "env"
)

// Lookup resolves key and reports which source supplied the value.
func Lookup(options map[string]string, key string) (string, Source) {
	if v := options[key]; v != "" {
		return v, SourceOptions
	}
	f := currentFetcher()
	for _, name := range []string{SystemPrefix + key, key} {
		if v := f.SystemProperty(name); v != "" {
			return v, SourceSystem
		}
	}
	env := EnvName(key)
	for _, name := range []string{EnvPrefix + env, env} {
		if v := f.EnvVar(name); v != "" {
			return v, SourceEnv
		}
	}
	return "", SourceNone
}

// Has reports whether any source has a non-empty value for key.
func Has(options map[string]string, key string) bool {
	_, src := Lookup(options, key)
	return src != SourceNone
}

// IsSet reports whether key resolves, from system properties or the
// environment, to a true boolean ("true", "1", "t" and so on).
func IsSet(key string) bool {
	b, err := strconv.ParseBool(Get(nil, key))
	return err == nil && b
}

var envReplacer = strings.NewReplacer(".", "_", "-", "_")

// EnvName returns the environment variable name for key without the
// prefix: upper-cased, with dots and dashes turned into underscores.
func EnvName(key string) string {
	return cases.Upper(language.Und).String(envReplacer.Replace(key))
}
