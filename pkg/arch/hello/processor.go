package hello

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/arch-labs/arch-go/pkg/arch"
)

// CodeInvalidAccountCount is the custom error code reported when the
// instruction is not invoked with exactly one account.
const CodeInvalidAccountCount = 501

// outputTxVersion is the version of the anchoring transaction handed to the
// host for signing. Lock time stays at zero.
const outputTxVersion = 2

// ProcessInstruction greets the name carried in the instruction payload. It
// writes "Hello <name>" into the account's data buffer, resized to the exact
// greeting length, then hands the host a signing request for a transaction
// anchoring the new state, funded by the first input of the fee transaction
// supplied by the caller.
//
// ProcessInstruction implements arch.Handler.
func ProcessInstruction(rt arch.Runtime, programID arch.Pubkey, accounts []*arch.AccountInfo, instructionData []byte) error {
	log := logrus.StandardLogger().WithField("program", "helloworld")

	if len(accounts) != 1 {
		return arch.CustomError(CodeInvalidAccountCount)
	}

	log.WithField("bitcoin_block_height", rt.GetBitcoinBlockHeight()).Info("processing hello instruction")

	account := accounts[0]

	params, err := UnmarshalParams(instructionData)
	if err != nil {
		return errors.Wrapf(arch.ErrInvalidInstructionData, "failed to deserialize instruction params (%v)", err)
	}

	var feeTx wire.MsgTx
	if err := feeTx.Deserialize(bytes.NewReader(params.FeeTx)); err != nil {
		return errors.Wrapf(arch.ErrInvalidInstructionData, "failed to deserialize fee transaction (%v)", err)
	}
	if len(feeTx.TxIn) == 0 {
		return errors.Wrap(arch.ErrInvalidArgument, "fee transaction has no inputs")
	}

	greeting := []byte(fmt.Sprintf("Hello %s", params.Name))

	// The buffer always ends up exactly greeting sized, shrinking included,
	// so readers never observe stale trailing bytes.
	if len(account.Data) != len(greeting) {
		if err := rt.ReallocAccount(account, len(greeting), true); err != nil {
			return errors.Wrap(err, "failed to resize account data")
		}
	}

	log.WithField("script_pubkey", fmt.Sprintf("%x", rt.GetAccountScriptPubkey(account.Key))).Info("resolved account script pubkey")

	copy(account.Data, greeting)

	tx := wire.NewMsgTx(outputTxVersion)
	rt.AddStateTransition(tx, account)

	feeInput := *feeTx.TxIn[0]
	tx.AddTxIn(&feeInput)

	var serialized bytes.Buffer
	if err := tx.Serialize(&serialized); err != nil {
		return errors.Wrap(err, "failed to serialize transaction")
	}

	return rt.SetTransactionToSign(accounts, arch.TransactionToSign{
		TxBytes: serialized.Bytes(),
		InputsToSign: []arch.InputToSign{{
			Index:  0,
			Signer: account.Key,
		}},
	})
}
