package arch

import (
	"bytes"
	"crypto/rand"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateAccountInfo(t *testing.T) *AccountInfo {
	account := &AccountInfo{
		Key:        generateKeypair(t).Pubkey(),
		Utxo:       UtxoMeta{Vout: 1},
		IsSigner:   true,
		IsWritable: true,
	}

	_, err := rand.Read(account.Utxo.Txid[:])
	require.NoError(t, err)

	return account
}

func TestUtxoMeta(t *testing.T) {
	var utxo UtxoMeta
	utxo.Txid[0] = 0x01
	utxo.Vout = 5

	outPoint := utxo.OutPoint()
	assert.Equal(t, utxo.Txid, [32]byte(outPoint.Hash))
	assert.EqualValues(t, 5, outPoint.Index)

	// Txids render reversed, the way block explorers print them.
	assert.Equal(t, strings.Repeat("0", 62)+"01:5", utxo.String())
}

func TestAppendStateTransition(t *testing.T) {
	account := generateAccountInfo(t)
	script, err := account.Key.TaprootScript()
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	AppendStateTransition(tx, account, script)

	require.Len(t, tx.TxIn, 1)
	assert.Equal(t, account.Utxo.OutPoint(), tx.TxIn[0].PreviousOutPoint)
	assert.EqualValues(t, wire.MaxTxInSequenceNum, tx.TxIn[0].Sequence)

	require.Len(t, tx.TxOut, 1)
	assert.EqualValues(t, StateTransitionValue, tx.TxOut[0].Value)
	assert.Equal(t, script, tx.TxOut[0].PkScript)
}

func TestTransactionToSign_Validate(t *testing.T) {
	account := generateAccountInfo(t)
	script, err := account.Key.TaprootScript()
	require.NoError(t, err)

	tx := wire.NewMsgTx(2)
	AppendStateTransition(tx, account, script)

	var serialized bytes.Buffer
	require.NoError(t, tx.Serialize(&serialized))

	valid := TransactionToSign{
		TxBytes:      serialized.Bytes(),
		InputsToSign: []InputToSign{{Index: 0, Signer: account.Key}},
	}
	assert.NoError(t, valid.Validate())

	outOfRange := TransactionToSign{
		TxBytes:      serialized.Bytes(),
		InputsToSign: []InputToSign{{Index: 1, Signer: account.Key}},
	}
	err = outOfRange.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")

	garbage := TransactionToSign{TxBytes: []byte{0xde, 0xad, 0xbe, 0xef}}
	assert.Error(t, garbage.Validate())
}
