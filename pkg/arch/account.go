package arch

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// UtxoMeta identifies the unspent output currently anchoring an account's
// state on the Bitcoin chain.
type UtxoMeta struct {
	Txid [32]byte
	Vout uint32
}

// OutPoint returns the utxo as a wire outpoint.
func (u UtxoMeta) OutPoint() wire.OutPoint {
	return wire.OutPoint{
		Hash:  chainhash.Hash(u.Txid),
		Index: u.Vout,
	}
}

func (u UtxoMeta) String() string {
	hash := chainhash.Hash(u.Txid)
	return fmt.Sprintf("%s:%d", hash.String(), u.Vout)
}

// AccountInfo is the view of an account handed to a program while it executes.
//
// Data is the account's state buffer. Programs mutate it in place, but any
// change to its length goes through Runtime.ReallocAccount so the host can
// enforce size limits and zero fill rules.
type AccountInfo struct {
	Key  Pubkey
	Utxo UtxoMeta
	Data []byte

	Owner Pubkey

	IsSigner     bool
	IsWritable   bool
	IsExecutable bool
}

// AccountMeta represents the account information required
// for building transactions.
type AccountMeta struct {
	Pubkey     Pubkey
	IsSigner   bool
	IsWritable bool
}

// NewAccountMeta creates a new AccountMeta representing a writable
// account.
func NewAccountMeta(pub Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		Pubkey:     pub,
		IsSigner:   isSigner,
		IsWritable: true,
	}
}

// NewReadonlyAccountMeta creates a new AccountMeta representing a read
// only account.
func NewReadonlyAccountMeta(pub Pubkey, isSigner bool) AccountMeta {
	return AccountMeta{
		Pubkey:     pub,
		IsSigner:   isSigner,
		IsWritable: false,
	}
}
