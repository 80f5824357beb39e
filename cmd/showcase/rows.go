package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-showcase"
	"github.com/goliatone/go-showcase/internal/listing"
)

type rowsOptions struct {
	category string
	tag      string
	kind     string
	asJSON   bool
}

func newRowsCommand(opts *cliOptions, v *viper.Viper) *cobra.Command {
	rowsOpts := &rowsOptions{}
	cmd := &cobra.Command{
		Use:   "rows",
		Short: "Print the composed listing rows for a filter state",
		Example: `  showcase rows --source files --files-dir ./content
  showcase rows --category all --type news
  showcase rows --tag AR --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			module, err := buildModule(opts, v)
			if err != nil {
				return err
			}
			defer module.Close()

			module.Load(cmd.Context())
			session := module.Session()
			if session.Failed() {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: snapshot fetch failed, showing an empty listing")
			}

			state := listing.State{}
			if rowsOpts.category != "" {
				state = state.SelectCategory(rowsOpts.category)
			}
			if rowsOpts.kind != "" {
				state = state.SelectType(rowsOpts.kind)
			}
			if rowsOpts.tag != "" {
				state = state.SelectTag(rowsOpts.tag)
			}
			view := session.SetState(state)

			if rowsOpts.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}
			return printRows(cmd.OutOrStdout(), view)
		},
	}

	cmd.Flags().StringVar(&rowsOpts.category, "category", "", "category key")
	cmd.Flags().StringVar(&rowsOpts.tag, "tag", "", "tag label")
	cmd.Flags().StringVar(&rowsOpts.kind, "type", "", "item type (case, news, shop), only under the all category")
	cmd.Flags().BoolVar(&rowsOpts.asJSON, "json", false, "print the view as JSON")
	return cmd
}

func printRows(w io.Writer, view showcase.View) error {
	if _, err := fmt.Fprintf(w, "%d items in %d rows\n", view.Total, len(view.Rows)); err != nil {
		return err
	}
	for i, row := range view.Rows {
		titles := make([]string, 0, len(row.Items))
		for _, item := range row.Items {
			titles = append(titles, fmt.Sprintf("%s (%s)", item.Title, item.Kind))
		}
		if _, err := fmt.Fprintf(w, "%2d %-7s %s\n", i+1, row.Kind, strings.Join(titles, " | ")); err != nil {
			return err
		}
	}
	return nil
}
