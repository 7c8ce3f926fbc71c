package cli

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/cosmos/cosmos-sdk/client"
	"github.com/cosmos/cosmos-sdk/client/flags"
	"github.com/cosmos/cosmos-sdk/client/tx"
	"github.com/spf13/cobra"

	"blobchain/x/txstorage/types"
)

func CmdStore() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store [data-file]",
		Short: "Store the contents of a file for one storage period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			msg := types.MsgStore{
				Creator: clientCtx.GetFromAddress().String(),
				Data:    data,
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

func CmdRenew() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew [block] [index]",
		Short: "Re-commit a retained payload for another storage period",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			block, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			index, err := strconv.ParseUint(args[1], 10, 32)
			if err != nil {
				return err
			}

			msg := types.MsgRenew{
				Creator: clientCtx.GetFromAddress().String(),
				Block:   block,
				Index:   uint32(index),
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), &msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}

// CmdCheckProof submits a storage proof. It expects a JSON file on disk
// containing:
//
//	{ "chunk": "<base64>", "path": ["<base64>", ...] }
func CmdCheckProof() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-proof [proof-json-file]",
		Short: "Submit the storage proof for this block's challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, err := client.GetClientTxContext(cmd)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var proof types.StorageProof
			if err := json.Unmarshal(data, &proof); err != nil {
				return err
			}

			msg := types.MsgCheckProof{Proof: proof}
			if err := msg.ValidateBasic(); err != nil {
				return err
			}

			return tx.GenerateOrBroadcastTxCLI(clientCtx, cmd.Flags(), &msg)
		},
	}
	flags.AddTxFlagsToCmd(cmd)
	return cmd
}
