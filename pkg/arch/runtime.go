package arch

import (
	"github.com/btcsuite/btcd/wire"
)

// Runtime is the host capability surface available to a program while it
// executes an instruction. Implementations are injected into the entrypoint,
// which keeps program logic independent of any particular host.
type Runtime interface {
	// GetBitcoinBlockHeight returns the height of the anchored Bitcoin chain
	// as observed by the host.
	GetBitcoinBlockHeight() uint64

	// GetAccountScriptPubkey returns the script pubkey whose outputs carry
	// the account's anchored state.
	GetAccountScriptPubkey(key Pubkey) []byte

	// ReallocAccount resizes account.Data to exactly newLength bytes. When
	// growing with zeroInit set, newly exposed bytes are zeroed. The host may
	// refuse a resize that exceeds its limits.
	ReallocAccount(account *AccountInfo, newLength int, zeroInit bool) error

	// AddStateTransition appends the account's state transition pair to tx:
	// an input spending the account's anchoring utxo and an output paying the
	// account's script pubkey. The transaction is mutated in place.
	AddStateTransition(tx *wire.MsgTx, account *AccountInfo)

	// SetTransactionToSign submits a partially constructed transaction for
	// host side signing and broadcast. The host validates the request before
	// accepting it.
	SetTransactionToSign(accounts []*AccountInfo, tx TransactionToSign) error
}

// Handler is the entry function a program exports to the runtime. Programs
// with multiple operations route between them inside the handler.
type Handler func(rt Runtime, programID Pubkey, accounts []*AccountInfo, instructionData []byte) error

// Execute runs handler and reports the outcome the way the host consumes it:
// CodeSuccess on success, the mapped error code otherwise.
func Execute(rt Runtime, handler Handler, programID Pubkey, accounts []*AccountInfo, instructionData []byte) ErrorCode {
	return ErrorCodeOf(handler(rt, programID, accounts, instructionData))
}
