package cmd

import (
	"fmt"

	"github.com/btcq-org/qvault/common"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const flagPrefix = "prefix"

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Local test accounts",
	}
	cmd.AddCommand(deriveCmd())
	return cmd
}

func deriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive [name...]",
		Short: "Print the deterministic address of each named test account",
		Long: `Print the deterministic address of each named test account. The
address is a hash of the name, there is no key behind it: use it only as
--from on a local host.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString(flagPrefix)
			for _, name := range args {
				addr, err := common.DeriveAddress(prefix, name)
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, addr); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addPrefixFlag(cmd.Flags())
	return cmd
}

func addPrefixFlag(fs *pflag.FlagSet) {
	fs.String(flagPrefix, common.AccountAddressPrefix, "Bech32 prefix of the derived addresses")
}
