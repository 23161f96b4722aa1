package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newShowCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "show <collection.css|collection.js>",
		Short: "Print the html tags of a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, _, err := loadBasset(cmd, stderr)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, b.Show(args[0]))
			return nil
		},
	}
}
