package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-fluent/cmd/fluent/internal/bootstrap"
)

func linkCmd(global *globalOptions) *cobra.Command {
	var (
		node       bootstrap.NodeOptions
		code       string
		parentLink string
		absolute   bool
		relative   bool
	)

	c := &cobra.Command{
		Use:   "link <segment>",
		Short: "Resolve the localised link of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if absolute && relative {
				return fmt.Errorf("--absolute and --relative are mutually exclusive")
			}
			node.Segment = args[0]
			page, err := bootstrap.BuildNode(node)
			if err != nil {
				return err
			}
			module, err := global.module()
			if err != nil {
				return err
			}

			stack := global.stack()
			resolve := module.ResolveLink
			switch {
			case absolute:
				resolve = module.AbsoluteLink
			case relative:
				resolve = module.RelativeLink
			}

			link, err := resolve(stack, page, parentLink, code)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}

	nodeFlags(c, &node)
	c.Flags().StringVar(&code, "code", "", "Locale to resolve (defaults to --locale)")
	c.Flags().StringVar(&parentLink, "parent-link", "", "Parent's relative link, used for nested nodes")
	c.Flags().BoolVar(&absolute, "absolute", false, "Print an absolute URL")
	c.Flags().BoolVar(&relative, "relative", false, "Print the link relative to the site base path")
	return c
}
