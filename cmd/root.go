package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kamusis/mtlist/internal/config"
	"github.com/kamusis/mtlist/internal/serverlist"
	"github.com/spf13/cobra"
)

// rootFlags holds flag values for the root command.
type rootFlags struct {
	address   string
	showKeys  bool
	listField string
	timeout   time.Duration
	config    string
	verbose   bool
}

// directoryFetcher is the part of serverlist.Fetcher the query needs.
type directoryFetcher interface {
	Fetch(ctx context.Context, address string) (serverlist.Directory, error)
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var f rootFlags
	c := &cobra.Command{
		Use:   "mtlist [key]",
		Short: "Query a JSON server list for its fields or one field per server",
		Long: `mtlist downloads a server list (by default the public Minetest list)
and either prints the field names found across all servers (--show-keys)
or prints one field per server as "address:port<TAB>value".

Array values print one line per element.

Examples:
  mtlist --show-keys
  mtlist name
  mtlist -a https://servers.example.net/list mods`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true, // don't print usage on operational errors
		SilenceErrors: true, // Execute prints the error
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd, args, f)
		},
	}
	c.Flags().StringVarP(&f.address, "address", "a", serverlist.DefaultAddress, "Address of the server list")
	c.Flags().BoolVarP(&f.showKeys, "show-keys", "s", false, "List available keys")
	c.Flags().StringVar(&f.listField, "list-field", serverlist.DefaultListField, "Top-level field holding the server array")
	c.Flags().DurationVar(&f.timeout, "timeout", serverlist.DefaultTimeout, "Timeout for the HTTP request")
	c.Flags().StringVar(&f.config, "config", "", "Config file (default ~/.mtlist/mtlist.yaml)")
	c.Flags().BoolVarP(&f.verbose, "verbose", "V", false, "Verbose output on stderr")
	c.SetVersionTemplate(versionTemplate())
	return c
}

// Execute is called by main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printErr("", err.Error())
		os.Exit(1)
	}
}

func runRoot(cmd *cobra.Command, args []string, f rootFlags) error {
	if len(args) == 0 && !f.showKeys {
		return cmd.Help()
	}

	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return err
	}

	q := query{address: cfg.Address, showKeys: f.showKeys, verbose: f.verbose}
	if len(args) == 1 {
		q.key, q.hasKey = args[0], true
	}
	return runQuery(cmd.Context(), cmd.OutOrStdout(), serverlist.NewFetcher(cfg.FetchOptions()), q)
}

// resolveConfig layers defaults, the YAML file, MTLIST_* variables and
// explicitly set flags, in that order.
func resolveConfig(cmd *cobra.Command, f rootFlags) (*config.Config, error) {
	cfg, err := config.Load(f.config)
	if err != nil {
		return nil, fmt.Errorf("cannot load config: %w", err)
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.Address = f.address
	}
	if flags.Changed("list-field") {
		cfg.ListField = f.listField
	}
	if flags.Changed("timeout") {
		cfg.Timeout = config.Duration(f.timeout)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// query is one invocation's worth of work.
type query struct {
	address  string
	showKeys bool
	key      string
	hasKey   bool
	verbose  bool
}

// runQuery fetches the directory once, prints the key listing if asked and
// then the projection. The listing is written before the projection can fail.
func runQuery(ctx context.Context, w io.Writer, fetcher directoryFetcher, q query) error {
	if q.verbose {
		printInfo("", fmt.Sprintf("fetching %s", q.address))
	}
	dir, err := fetcher.Fetch(ctx, q.address)
	if err != nil {
		return err
	}
	if q.verbose {
		printInfo("", fmt.Sprintf("%d servers", len(dir)))
	}

	if q.showKeys {
		if _, err := fmt.Fprintf(w, "available keys: %s\n", strings.Join(serverlist.Keys(dir), ", ")); err != nil {
			return err
		}
	}
	if !q.hasKey {
		return nil
	}

	lines, err := serverlist.Project(dir, q.key)
	if err != nil {
		var uk *serverlist.UnknownKeyError
		if errors.As(err, &uk) {
			return fmt.Errorf("%w %q (run with --show-keys to list available keys)", err, uk.Key)
		}
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l.String()); err != nil {
			return err
		}
	}
	return nil
}
