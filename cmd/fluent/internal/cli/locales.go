package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	fluent "github.com/goliatone/go-fluent"
	"github.com/goliatone/go-fluent/cmd/fluent/internal/bootstrap"
)

func localesCmd(global *globalOptions) *cobra.Command {
	var node bootstrap.NodeOptions

	c := &cobra.Command{
		Use:   "locales [segment]",
		Short: "List the catalogue, or a node's link in every locale",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := global.module()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				printCatalogue(out, module)
				return nil
			}

			node.Segment = args[0]
			page, err := bootstrap.BuildNode(node)
			if err != nil {
				return err
			}
			infos, err := module.Locales(global.stack(), page, nil)
			if err != nil {
				return err
			}
			for _, info := range infos {
				code := info.Code
				if info.LinkingMode == fluent.LinkingModeCurrent {
					code = highlight(code)
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", code, info.HrefLang, info.AbsoluteLink)
			}
			return nil
		},
	}

	nodeFlags(c, &node)
	return c
}

func printCatalogue(out io.Writer, module *fluent.Module) {
	for _, locale := range module.CatalogueLocales() {
		domain := muted("-")
		if locale.Domain != nil {
			domain = locale.Domain.Hostname
		}
		code := locale.Code
		if locale.IsDefault {
			code = highlight(code)
		}
		fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", code, locale.URLSegment, domain, locale.Title)
	}
}

func alternatesCmd(global *globalOptions) *cobra.Command {
	var node bootstrap.NodeOptions

	c := &cobra.Command{
		Use:   "alternates <segment>",
		Short: "Print the hreflang alternates of a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			module, err := global.module()
			if err != nil {
				return err
			}
			node.Segment = args[0]
			page, err := bootstrap.BuildNode(node)
			if err != nil {
				return err
			}
			alternates, err := module.Alternates(global.stack(), page, nil)
			if err != nil {
				return err
			}
			for _, alternate := range alternates {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", alternate.HrefLang, alternate.Href)
			}
			return nil
		},
	}

	nodeFlags(c, &node)
	return c
}
