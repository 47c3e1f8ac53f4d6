package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/extlookup/log"
)

// resolve is a [kong.ConfigurationLoader] that parses YAML config files.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolve, "/path/to/config.yaml")
//
// The top level of the document maps flag names to values. Flag names may
// be written with hyphens or underscores:
//
//	datadir: /etc/puppet/extdata
//	precedence:
//	  - host/%{fqdn}
//	  - domain/%{domain}
//	  - common
//	fact:
//	  environment: production
//	log_level: debug
//
// Numbers are passed to Kong as strings. Command-line flags override config
// file values. A malformed file is reported and otherwise ignored.
func resolve(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var doc map[string]any

	err = yaml.Unmarshal(data, &doc)
	if err != nil {
		log.Warn("ignoring malformed configuration", slog.Any("error", err))

		return config{}, nil
	}

	cfg := make(config, len(doc))
	for k, v := range doc {
		cfg[k] = normalize(v)
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (r config) Validate(*kong.Application) error {
	return nil
}

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	for _, name := range []string{
		flag.Name,
		strings.ReplaceAll(flag.Name, "-", "_"),
	} {
		if value, ok := r[name]; ok {
			return value, nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// normalize converts decoded YAML into values Kong's mappers accept.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x)

	case int64:
		return strconv.FormatInt(x, 10)

	case uint64:
		return strconv.FormatUint(x, 10)

	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)

	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalize(item)
		}

		return out

	case map[string]any:
		out := make(map[string]any, len(x))
		for k, item := range x {
			out[k] = normalize(item)
		}

		return out

	default:
		return v
	}
}
