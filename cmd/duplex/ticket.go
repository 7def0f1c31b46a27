package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aschiffer/duplex/internal/ticket"
)

var ticketCmd = &cobra.Command{
	Use:   "ticket",
	Short: "Manage merge tickets",
	Long: `Ticket manages merge tickets: small YAML files describing one merge job.
A ticket prepared next to the scans lets the same merge be rerun with
duplex merge --ticket <file> and no other flags.`,
}

// --- init subcommand ---

var ticketInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a starter merge ticket",
	Long: `Init writes an editable ticket prefilled with the scanner defaults to the
given path, or to duplex-ticket.yaml in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTicketInit,
}

func runTicketInit(cmd *cobra.Command, args []string) error {
	path := "duplex-ticket.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := ticket.Starter().Write(path); err != nil {
		return err
	}
	fmt.Println("Wrote starter ticket:", path)
	return nil
}

func init() {
	ticketInitCmd.Flags().Bool("force", false, "overwrite an existing ticket")

	ticketCmd.AddCommand(ticketInitCmd)
	rootCmd.AddCommand(ticketCmd)
}
