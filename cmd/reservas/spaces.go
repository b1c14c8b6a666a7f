package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	spacesCmd := &cobra.Command{
		Use:     "spaces",
		Aliases: []string{"areas"},
		Short:   "List the bookable amenity spaces",
		RunE:    spaces,
	}

	RootCmd.AddCommand(spacesCmd)
}

func spaces(cmd *cobra.Command, args []string) error {
	items, err := run.service.Spaces(cmd.Context(), run.rc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOME\tCAPACIDADE\tDESCRIÇÃO")
	for _, s := range items {
		desc := ""
		if s.Description != nil {
			desc = *s.Description
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", s.ID, s.Name, s.Capacity, desc)
	}
	return w.Flush()
}
