package arch

import (
	"github.com/btcsuite/btcd/wire"
)

// StateTransitionValue is the amount, in satoshis, carried by a state
// transition output. It sits above the dust threshold for version 1 witness
// outputs.
const StateTransitionValue = 546

// AppendStateTransition appends account's state transition pair to tx: an
// input spending the account's current anchoring utxo and an output paying
// scriptPubkey. Runtime implementations share this encoder so every host
// anchors accounts identically.
func AppendStateTransition(tx *wire.MsgTx, account *AccountInfo, scriptPubkey []byte) {
	prevOut := account.Utxo.OutPoint()
	tx.AddTxIn(wire.NewTxIn(&prevOut, nil, nil))
	tx.AddTxOut(wire.NewTxOut(StateTransitionValue, scriptPubkey))
}
