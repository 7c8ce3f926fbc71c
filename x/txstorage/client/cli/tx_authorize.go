package cli

import (
	"encoding/hex"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/spf13/cobra"

	"blobchain/x/txstorage/types"
)

func CmdAuthorizeAccount() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize-account [account] [transactions] [bytes]",
		Short: "Grant an account storage quota (authority only)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			transactions, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return err
			}
			byteLimit, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return err
			}

			msg := types.MsgAuthorizeAccount{
				Authority:    clientCtx.GetFromAddress().String(),
				Account:      args[0],
				Transactions: uint32(transactions),
				Bytes:        byteLimit,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), &msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

func CmdAuthorizePreimage() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authorize-preimage [content-hash-hex] [bytes]",
		Short: "Grant storage quota for a specific payload by content hash (authority only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			hashHex := args[0]
			if len(hashHex) >= 2 && (hashHex[0:2] == "0x" || hashHex[0:2] == "0X") {
				hashHex = hashHex[2:]
			}
			hash, err := hex.DecodeString(hashHex)
			if err != nil {
				return err
			}
			byteLimit, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return err
			}

			msg := types.MsgAuthorizePreimage{
				Authority:   clientCtx.GetFromAddress().String(),
				ContentHash: hash,
				Bytes:       byteLimit,
			}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), &msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
