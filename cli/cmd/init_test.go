package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// initCLI mirrors the shape of the top-level flags.
type initCLI struct {
	Datadir    string            `default:"/etc/extlookup"`
	Precedence []string          `default:"host/%{fqdn},common" sep:","`
	Fact       map[string]string `short:"f"`
	Session    string
	Pretty     bool
	PprofMode  string `default:"cpu" name:"pprof-mode"`
}

func initContext(t *testing.T, confPath string, args ...string) context.Context {
	t.Helper()

	var cli initCLI

	parser, err := kong.New(&cli, kong.Vars{ConfigIdentifier: confPath})
	if err != nil {
		t.Fatal(err)
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		t.Fatal(err)
	}

	return WithContext(context.Background(), ktx)
}

func TestInitRun(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		force   bool
		exists  bool
		wantErr error
	}{
		{name: "create_new_config"},
		{name: "overwrite_existing_with_force", force: true, exists: true},
		{name: "fail_without_force", exists: true, wantErr: ErrFileExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			confPath := filepath.Join(t.TempDir(), "config.yaml")

			if tt.exists {
				if err := os.WriteFile(confPath, []byte("existing: content\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}

			ctx := initContext(t, confPath, "--fact=role=web", "--pretty")

			err := (&Init{Force: tt.force}).Run(ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Init.Run() error = %v, want %v", err, tt.wantErr)
			}

			if tt.wantErr != nil {
				return
			}

			content, err := os.ReadFile(confPath)
			if err != nil {
				t.Fatal(err)
			}

			var got map[string]any
			if err := yaml.Unmarshal(content, &got); err != nil {
				t.Fatalf("generated config is not YAML: %v\n%s", err, content)
			}

			if got["datadir"] != "/etc/extlookup" {
				t.Errorf("datadir = %v", got["datadir"])
			}

			if got["pretty"] != true {
				t.Errorf("pretty = %v", got["pretty"])
			}

			if _, ok := got["existing"]; ok {
				t.Error("existing content was not overwritten")
			}

			if _, ok := got["session"]; ok {
				t.Error("unset flags should be omitted")
			}

			if _, ok := got["pprof-mode"]; ok {
				t.Error("profiling flags should be omitted")
			}

			if _, ok := got["help"]; ok {
				t.Error("help flag should be omitted")
			}
		})
	}
}

func TestInitConfigOrder(t *testing.T) {
	t.Parallel()

	ktx := kongContextFrom(initContext(t, "unused", "-f", "b=2", "-f", "a=1"))

	ms := (&Init{}).config(ktx)

	keys := make([]string, len(ms))
	for i, item := range ms {
		keys[i], _ = item.Key.(string)
	}

	want := []string{"datadir", "precedence", "fact", "pretty"}
	if len(keys) != len(want) {
		t.Fatalf("config keys = %q, want %q", keys, want)
	}

	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("config keys = %q, want %q", keys, want)

			break
		}
	}

	facts, ok := ms[2].Value.(yaml.MapSlice)
	if !ok || len(facts) != 2 || facts[0].Key != "a" || facts[1].Key != "b" {
		t.Errorf("fact = %#v, want sorted mapping", ms[2].Value)
	}
}

func TestInitWithInvalidPath(t *testing.T) {
	t.Parallel()

	ctx := initContext(t, "/nonexistent/directory/config.yaml")

	err := (&Init{}).Run(ctx)
	if !errors.Is(err, ErrWriteConfig) {
		t.Errorf("Init.Run() error = %v, want %v", err, ErrWriteConfig)
	}
}

func TestFlagValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"nil", nil, nil},
		{"bool", false, false},
		{"string", "x", "x"},
		{"empty_string", "", nil},
		{"int", 42, "42"},
		{"float", 3.5, "3.5"},
		{"strings", []string{"a"}, []string{"a"}},
		{"empty_strings", []string{}, nil},
		{"empty_map", map[string]string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := flagValue(tt.in)

			if want, ok := tt.want.([]string); ok {
				s, _ := got.([]string)
				if len(s) != len(want) || s[0] != want[0] {
					t.Errorf("flagValue(%v) = %#v, want %#v", tt.in, got, tt.want)
				}

				return
			}

			if got != tt.want {
				t.Errorf("flagValue(%v) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}
