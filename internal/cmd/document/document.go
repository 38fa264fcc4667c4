// Package document provides document-related commands.
package document

import (
	"github.com/spf13/cobra"
)

// NewCmdDocument creates the document command.
func NewCmdDocument() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "document",
		Aliases: []string{"doc", "documents"},
		Short:   "Work with documents",
		Long:    `Commands for fetching documents and rendering their Portable Text fields.`,
	}

	cmd.AddCommand(NewCmdView())

	return cmd
}
