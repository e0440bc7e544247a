package cmd

import (
	"fmt"
	"strconv"

	"github.com/btcq-org/qvault/app"
	"github.com/spf13/cobra"
)

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Run a transaction against the local state",
	}
	cmd.AddCommand(instantiateCmd(), executeCmd())
	return cmd
}

type instantiateResult struct {
	Contract string `json:"contract"`
	*app.Result
}

func instantiateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instantiate [code-id] [json-msg]",
		Short: "Create a contract from a registered code",
		Example: `qvaultd tx instantiate 2 '{}' --from qbtc1... --label vault
qvaultd tx instantiate 1 '{"name":"Wrapped Bitcoin","symbol":"WBTC","decimals":8,"initial_balances":[]}' --from qbtc1...`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			codeID, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid code id %q: %w", args[0], err)
			}
			from, _ := cmd.Flags().GetString(flagFrom)
			label, _ := cmd.Flags().GetString(flagLabel)

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			contract, res, err := a.Instantiate(cmd.Context(), from, codeID, []byte(args[1]), label)
			if err != nil {
				return err
			}
			return printJSON(cmd, instantiateResult{Contract: contract, Result: res})
		},
	}
	cmd.Flags().String(flagFrom, "", "Address of the sender")
	cmd.Flags().String(flagLabel, "", "Human readable contract label")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}

func executeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "execute [contract] [json-msg]",
		Short:   "Execute a contract and every message it dispatches",
		Example: `qvaultd tx execute qbtc1... "$(qvaultd msg withdraw --token qbtc1... --amount 100)" --from qbtc1...`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, _ := cmd.Flags().GetString(flagFrom)

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.Execute(cmd.Context(), from, args[0], []byte(args[1]))
			if err != nil {
				return err
			}
			return printJSON(cmd, res)
		},
	}
	cmd.Flags().String(flagFrom, "", "Address of the sender")
	_ = cmd.MarkFlagRequired(flagFrom)
	return cmd
}
