package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/syntax-framework/basset/asset"
	"github.com/syntax-framework/basset/internal/style"
)

func newCollectionsCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "collections",
		Short: "List the collections and their assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, _, err := loadBasset(cmd, stderr)
			if err != nil {
				return err
			}
			names := b.Names()
			if len(names) == 0 {
				fmt.Fprintln(stdout, style.Dim.Render("No collections configured"))
				return nil
			}

			tbl := style.NewTable(
				style.Column{Name: "COLLECTION", Width: 12},
				style.Column{Name: "STYLES", Align: style.AlignRight},
				style.Column{Name: "SCRIPTS", Align: style.AlignRight},
				style.Column{Name: "COMPILED"},
			)
			for _, name := range names {
				collection := b.Collection(name, nil)
				compiled := ""
				for _, group := range []asset.Group{asset.Styles, asset.Scripts} {
					if collection.IsCompiled(group) {
						compiled += collection.CompiledName(group) + " "
					}
				}
				tbl.AddRow(
					name,
					strconv.Itoa(len(collection.Assets(asset.Styles))),
					strconv.Itoa(len(collection.Assets(asset.Scripts))),
					compiled,
				)
			}
			fmt.Fprint(stdout, tbl.Render())
			return nil
		},
	}
}
