package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/use-agent/gridiron/cleaner"
	"github.com/use-agent/gridiron/pages"
)

func newTablesCmd() *cobra.Command {
	var selector string
	cmd := &cobra.Command{
		Use:   "tables FILE",
		Short: "List the tables on a saved page, including comment-hidden ones",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readHTML(args[0])
			if err != nil {
				return err
			}
			if selector != "" {
				out, err := cleaner.ApplyCSSSelector(raw, selector)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
				return err
			}
			tables, err := cleaner.ListTables(raw)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tROWS\tHIDDEN\tCLASSES")
			for _, t := range tables {
				fmt.Fprintf(tw, "%s\t%d\t%t\t%s\n", t.ID, t.Rows, t.Hidden, strings.Join(t.Classes, " "))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&selector, "selector", "s", "", "print the unwrapped markup matching this CSS selector")
	return cmd
}

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List the supported page types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "PAGE\tPATH\tDESCRIPTION")
			for _, p := range pages.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Path, p.Description)
			}
			return tw.Flush()
		},
	}
}
