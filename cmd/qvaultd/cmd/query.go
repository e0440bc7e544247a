package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func queryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Read the local state",
	}
	cmd.AddCommand(smartCmd(), contractCmd(), codesCmd(), heightCmd())
	return cmd
}

func smartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smart [contract] [json-query]",
		Short: "Run a contract query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			bz, err := a.QuerySmart(cmd.Context(), args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			return printJSON(cmd, json.RawMessage(bz))
		},
	}
}

func contractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "contract [address]",
		Short: "Show the registry record of a contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			info, err := a.ContractInfo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, info)
		},
	}
}

func codesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "codes",
		Short: "List the codes contracts can be created from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()
			return printJSON(cmd, a.Codes())
		},
	}
}

func heightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "height",
		Short: "Show the height of the last committed transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			height, err := a.LastHeight(cmd.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), height)
			return err
		},
	}
}
