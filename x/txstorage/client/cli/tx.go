package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cosmos/cosmos-sdk/client"

	"blobchain/x/txstorage/types"
)

// GetTxCmd returns the transaction commands for this module
func GetTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                        types.ModuleName,
		Short:                      fmt.Sprintf("%s transactions subcommands", types.ModuleName),
		DisableFlagParsing:         true,
		SuggestionsMinimumDistance: 2,
		RunE:                       client.ValidateCmd,
	}

	cmd.AddCommand(CmdStore())
	cmd.AddCommand(CmdRenew())
	cmd.AddCommand(CmdCheckProof())
	cmd.AddCommand(CmdAuthorizeAccount())
	cmd.AddCommand(CmdAuthorizePreimage())
	return cmd
}
