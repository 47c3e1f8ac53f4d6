package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/extlookup/cli/cmd"
	"github.com/ardnew/extlookup/facts"
	"github.com/ardnew/extlookup/log"
	"github.com/ardnew/extlookup/lookup"
	"github.com/ardnew/extlookup/pkg"
)

// defaultPrecedence is searched when no precedence is configured.
var defaultPrecedence = []string{"host/%{fqdn}", "domain/%{domain}", "common"}

// stdout receives command output.
var stdout io.Writer = os.Stdout

// CLI is the top-level command-line interface for extlookup.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Version kong.VersionFlag `help:"Print version and exit"`

	Datadir    string            `default:"${datadir}"    help:"Directory the precedence templates are relative to"                   short:"d" type:"path"`
	Precedence []string          `default:"${precedence}" help:"Data file path templates without extension, highest priority first"   short:"p" env:"EXTLOOKUP_PRECEDENCE" sep:","`
	Session    string            `                        help:"Cache session identifier (default: the fqdn fact)"`
	Facts      []string          `                        help:"YAML file(s) of facts for %{name} placeholders"                       short:"F" type:"existingfile"`
	Fact       map[string]string `                        help:"Define a fact"                                                         short:"f" placeholder:"NAME=VALUE"`
	FactExpr   map[string]string `                        help:"Define a fact computed by an expression over the other facts"                    placeholder:"NAME=EXPR"  mapsep:"none"`
	Output     string            `default:"text"          help:"Output format"                                                         short:"o" enum:"${outputEnum}"`

	Lookup cmd.Lookup `cmd:"" default:"withargs" help:"Resolve a key (default command)"`
	Files  cmd.Files  `cmd:""                    help:"List the data files a lookup searches"`
	Keys   cmd.Keys   `cmd:""                    help:"List keys defined along the search path"`
	Init   cmd.Init   `cmd:""                    help:"Initialize configuration file"`
}

// Run executes the extlookup CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	err := mkdirAllRequired()
	if err != nil {
		return err
	}

	configFilePath := configPath(baseConfig + configExt)

	vars := kong.Vars{
		cmd.ConfigIdentifier: configFilePath,
		cmd.CacheIdentifier:  cacheDir(),
		"version":            pkg.Version,
		"datadir":            configPath(dataDirName),
		"precedence":         strings.Join(defaultPrecedence, ","),
		"outputEnum":         strings.Join(cmd.Outputs, ","),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	// Parse command line
	parser, err := kong.New(&cli,
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.Exit(exit),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.DefaultEnvars(strings.TrimSuffix(pkg.EnvPrefix, "_")),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(kong.JSON, configPath(baseConfig+".json")),
		kong.Configuration(resolve, configFilePath),
		vars,
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Finalize logger configuration with all parsed values including
	// TimeLayout and Caller which don't use TextUnmarshaler.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	target, err := cli.target(ctx)
	if err != nil {
		return err
	}

	// Stuff additional context values for use by commands
	ctx = cmd.WithContext(ctx, ktx)
	ctx = cmd.WithTarget(ctx, target)

	// Execute the selected command
	return ktx.Run(ctx)
}

// target builds the lookup engine and request from the parsed flags.
func (c *CLI) target(ctx context.Context) (cmd.Target, error) {
	output, err := cmd.ParseOutput(c.Output)
	if err != nil {
		return cmd.Target{}, err
	}

	set, err := c.facts()
	if err != nil {
		return cmd.Target{}, err
	}

	session := c.Session
	if session == "" {
		session, err = set.Resolve("fqdn")
		if err != nil {
			return cmd.Target{}, err
		}
	}

	log.DebugContext(ctx, "lookup target",
		slog.String("session", session),
		slog.String("datadir", c.Datadir),
		slog.String("precedence", strings.Join(c.Precedence, ",")),
		slog.Int("facts", len(set.Names())),
	)

	return cmd.Target{
		Engine: lookup.New(nil, lookup.WithLogger(log.Default())),
		Request: lookup.Request{
			Session:    session,
			Datadir:    c.Datadir,
			Precedence: c.Precedence,
			Resolver:   set,
		},
		Output: output,
		Stdout: stdout,
	}, nil
}

// facts returns the fact set for %{name} placeholders. Facts given on the
// command line override facts files, and later files override earlier ones.
func (c *CLI) facts() (*facts.Set, error) {
	opts := make([]facts.Option, 0, len(c.FactExpr))
	for name, source := range c.FactExpr {
		opts = append(opts, facts.WithExpr(name, source))
	}

	set := facts.New(opts...)

	for _, path := range c.Facts {
		err := set.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	for name, value := range c.Fact {
		set.Define(name, value)
	}

	return set, nil
}
