package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	fluent "github.com/goliatone/go-fluent"
	"github.com/goliatone/go-fluent/cmd/fluent/internal/bootstrap"
)

func flagsCmd(global *globalOptions) *cobra.Command {
	var (
		code     string
		draft    string
		live     string
		archived string
		raw      string
	)

	c := &cobra.Command{
		Use:   "flags",
		Short: "Compute the status flags of a node from its per-locale rows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := global.module()
			if err != nil {
				return err
			}

			nodeID := uuid.New()
			index := fluent.NewExistenceIndex()
			stages := map[fluent.Stage]string{
				fluent.StageDraft:    draft,
				fluent.StageLive:     live,
				fluent.StageArchived: archived,
			}
			for stage, list := range stages {
				for _, locale := range bootstrap.SplitLocales(list) {
					index.Mark(nodeID, locale, stage)
				}
			}

			rawFlags := fluent.Flags{}
			for _, key := range bootstrap.SplitLocales(raw) {
				rawFlags[key] = fluent.FlagDescriptor{Text: key}
			}

			stack := global.stack()
			computed, err := module.ComputeStatusFlags(stack, nodeID, code, rawFlags, index)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(computed) == 0 {
				fmt.Fprintln(out, muted("no flags"))
			}
			for _, key := range computed.Names() {
				fmt.Fprintf(out, "%s\t%s\n", paintFlag(key), computed[key].Text)
			}

			record, err := module.RecordLocale(stack, nodeID, code, index)
			if err != nil {
				return err
			}
			if record.IsInherited() {
				fmt.Fprintf(out, "source\t%s\n", record.SourceLocale.Code)
			}
			if message, ok := module.StatusMessage(record); ok {
				fmt.Fprintf(out, "message\t%s\n", message.Code)
			}
			return nil
		},
	}

	c.Flags().StringVar(&code, "code", "", "Locale to compute flags for (defaults to --locale)")
	c.Flags().StringVar(&draft, "draft", "", "Comma separated locales with a draft row")
	c.Flags().StringVar(&live, "live", "", "Comma separated locales with a published row")
	c.Flags().StringVar(&archived, "archived", "", "Comma separated locales with an archived row")
	c.Flags().StringVar(&raw, "raw", "", "Comma separated flags already set on the node")
	return c
}

func paintFlag(key string) string {
	switch key {
	case fluent.FlagNoSource:
		return alert(key)
	case fluent.FlagInvisible:
		return warn(key)
	default:
		return key
	}
}
