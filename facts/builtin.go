package facts

import (
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/ardnew/mung"
)

// builtins returns the facts describing the local host.
func builtins() map[string]string {
	hostname := getHostname()
	short, domain, _ := strings.Cut(hostname, ".")

	return map[string]string{
		"hostname": short,
		"fqdn":     hostname,
		"domain":   domain,
		"os":       getOS(),
		"arch":     getArch(),
		"user":     getUser(),
		"cwd":      getCwd(),
	}
}

func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		return ""
	}

	return hostname
}

// getOS honors GOHOSTOS and GOOS so facts can be faked for another target.
func getOS() string {
	if o, ok := os.LookupEnv("GOHOSTOS"); ok {
		return o
	}

	if o, ok := os.LookupEnv("GOOS"); ok {
		return o
	}

	return runtime.GOOS
}

func getArch() string {
	if a, ok := os.LookupEnv("GOHOSTARCH"); ok {
		return a
	}

	if a, ok := os.LookupEnv("GOARCH"); ok {
		return a
	}

	return runtime.GOARCH
}

func getUser() string {
	u, err := user.Current()
	if err != nil {
		return os.Getenv("USER")
	}

	return u.Username
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return cwd
}

// environ converts a "KEY=VALUE" list to a map.
func environ(list []string) map[string]string {
	result := make(map[string]string, len(list))

	for _, entry := range list {
		key, value, ok := strings.Cut(entry, "=")
		if ok {
			result[key] = value
		}
	}

	return result
}

func mungPrefix(subject string, prefix ...string) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()
}

func mungPrefixIf(
	subject string,
	predicate func(string) bool,
	prefix ...string,
) string {
	return mung.Make(
		mung.WithSubjectItems(subject),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
		mung.WithFilter(predicate),
	).String()
}
