package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/btcq-org/qvault/common"
	cw20types "github.com/btcq-org/qvault/x/cw20/types"
	vaulttypes "github.com/btcq-org/qvault/x/vault/types"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func msgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "msg",
		Short: "Build contract messages",
		Long: `Print execute messages for use with "qvaultd tx execute". Nothing is
validated against state.`,
	}
	cmd.AddCommand(withdrawMsgCmd(), depositMsgCmd())
	return cmd
}

func withdrawMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Print a vault withdraw message, executed against the vault",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, _ := cmd.Flags().GetString(flagToken)
			amount, err := amountFlag(cmd)
			if err != nil {
				return err
			}
			msg := vaulttypes.ExecuteMsg{Withdraw: &vaulttypes.WithdrawMsg{Cw20Address: token, Amount: amount}}
			bz, err := msg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagToken, "", "Address of the cw20 token")
	addAmountFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired(flagToken)
	_ = cmd.MarkFlagRequired(flagAmount)
	return cmd
}

func depositMsgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Print a cw20 send message that deposits into a vault, executed against the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vault, _ := cmd.Flags().GetString(flagVault)
			token, _ := cmd.Flags().GetString(flagToken)
			amount, err := amountFlag(cmd)
			if err != nil {
				return err
			}
			hook, err := vaulttypes.NewDepositHook(token, amount)
			if err != nil {
				return err
			}
			msg := cw20types.ExecuteMsg{Send: &cw20types.SendMsg{Contract: vault, Amount: amount, Msg: hook}}
			bz, err := msg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bz))
			return err
		},
	}
	cmd.Flags().String(flagVault, "", "Address of the vault")
	cmd.Flags().String(flagToken, "", "Address of the cw20 token the vault is told about")
	addAmountFlags(cmd.Flags())
	_ = cmd.MarkFlagRequired(flagVault)
	_ = cmd.MarkFlagRequired(flagToken)
	_ = cmd.MarkFlagRequired(flagAmount)
	return cmd
}

// amountFlag reads --amount as a display amount scaled by --decimals. With
// the default of zero decimals the amount is taken in base units.
func amountFlag(cmd *cobra.Command) (math.Uint, error) {
	s, _ := cmd.Flags().GetString(flagAmount)
	decimals, _ := cmd.Flags().GetUint8(flagDecimals)
	amount, err := common.ParseDecimalAmount(s, decimals)
	if err != nil {
		return amount, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount, nil
}

func addAmountFlags(fs *pflag.FlagSet) {
	fs.String(flagAmount, "", "Amount to move, in base units unless --decimals is set")
	fs.Uint8(flagDecimals, 0, "Decimals of the token, to give --amount in display units (e.g. 1.5)")
}
