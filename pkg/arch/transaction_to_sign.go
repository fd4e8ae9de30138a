package arch

import (
	"bytes"

	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"
)

// InputToSign marks a transaction input the host must sign with an account's
// key before broadcast.
type InputToSign struct {
	Index  uint32
	Signer Pubkey
}

// TransactionToSign is a signing request: a serialized, partially constructed
// Bitcoin transaction together with the inputs the host signs on behalf of
// the named accounts.
type TransactionToSign struct {
	TxBytes      []byte
	InputsToSign []InputToSign
}

// Validate checks that TxBytes parses as a transaction and that every input
// to sign references an input that exists.
func (t TransactionToSign) Validate() error {
	var tx wire.MsgTx
	if err := tx.Deserialize(bytes.NewReader(t.TxBytes)); err != nil {
		return errors.Wrap(err, "failed to deserialize transaction bytes")
	}

	for _, in := range t.InputsToSign {
		if in.Index >= uint32(len(tx.TxIn)) {
			return errors.Errorf("input to sign out of range: %d", in.Index)
		}
	}

	return nil
}
