package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"tokenscope/internal/eventid"
)

func newEventIDCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eventid",
		Short: "Create and parse event identifiers",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Build an event identifier from its parts (event index is 1-based)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, _ := cmd.Flags().GetUint32("ledger")
			tx, _ := cmd.Flags().GetUint32("tx")
			op, _ := cmd.Flags().GetUint32("op")
			index, _ := cmd.Flags().GetUint64("index")

			id, err := eventid.CreateFromParts(ledger, tx, op, index)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	createCmd.Flags().Uint32("ledger", 0, "ledger sequence")
	createCmd.Flags().Uint32("tx", 0, "transaction order within the ledger")
	createCmd.Flags().Uint32("op", 0, "operation index within the transaction")
	createCmd.Flags().Uint64("index", 1, "event index within the operation (1-based)")

	parseCmd := &cobra.Command{
		Use:   "parse <id>...",
		Short: "Split event identifiers into their parts (event index is 0-based)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			for _, arg := range args {
				parts, err := eventid.Parse(arg)
				if err != nil {
					return err
				}
				if err := enc.Encode(parts); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.AddCommand(createCmd, parseCmd)
	return cmd
}
