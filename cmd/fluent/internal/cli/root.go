package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	fluent "github.com/goliatone/go-fluent"
	"github.com/goliatone/go-fluent/cmd/fluent/internal/bootstrap"
)

var moduleBuilder = bootstrap.BuildModule

var (
	highlight = color.New(color.FgGreen).SprintFunc()
	warn      = color.New(color.FgYellow).SprintFunc()
	alert     = color.New(color.FgRed).SprintFunc()
	muted     = color.New(color.Faint).SprintFunc()
)

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type globalOptions struct {
	configPath string
	locale     string
	domainMode bool
	hostname   string
	frontend   bool
	noColor    bool
}

// NewRootCmd builds the fluent command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "fluent",
		Short:        "Resolve localised links and status flags from a locale catalogue",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Catalogue file (YAML or JSON)")
	flags.StringVarP(&opts.locale, "locale", "l", "", "Active locale of the execution context")
	flags.BoolVar(&opts.domainMode, "domain-mode", false, "Resolve links with domain bindings enabled")
	flags.StringVar(&opts.hostname, "host", "", "Active hostname of the request")
	flags.BoolVar(&opts.frontend, "frontend", true, "Resolve as the public site rather than the editor")
	flags.BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	cmd.AddCommand(
		linkCmd(opts),
		flagsCmd(opts),
		localesCmd(opts),
		alternatesCmd(opts),
	)
	return cmd
}

func (o *globalOptions) module() (*fluent.Module, error) {
	return moduleBuilder(bootstrap.Options{ConfigPath: o.configPath})
}

func (o *globalOptions) stack() *fluent.Stack {
	return fluent.NewStack(fluent.ExecutionContext{
		Locale:         o.locale,
		IsDomainMode:   o.domainMode,
		IsFrontend:     o.frontend,
		ActiveHostname: o.hostname,
	})
}

// nodeFlags registers the flags describing the node named by the first
// positional argument.
func nodeFlags(cmd *cobra.Command, opts *bootstrap.NodeOptions) {
	cmd.Flags().StringVar(&opts.ID, "id", "", "Node id (random when omitted)")
	cmd.Flags().StringVar(&opts.ParentID, "parent", "", "Parent node id; marks the node as nested")
	cmd.Flags().BoolVar(&opts.Root, "root", false, "Treat the node as the site home page")
	cmd.Flags().BoolVar(&opts.Transient, "transient", false, "Treat the node as not yet persisted")
}
