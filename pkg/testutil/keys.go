package testutil

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arch-labs/arch-go/pkg/arch"
)

// GenerateKeypair generates a random keypair.
func GenerateKeypair(t *testing.T) *arch.Keypair {
	keypair, err := arch.NewKeypair()
	require.NoError(t, err)
	return keypair
}

// GeneratePubkey generates a random key backed pubkey.
func GeneratePubkey(t *testing.T) arch.Pubkey {
	return GenerateKeypair(t).Pubkey()
}

// GenerateUtxo generates a random anchoring outpoint.
func GenerateUtxo(t *testing.T) arch.UtxoMeta {
	var utxo arch.UtxoMeta
	_, err := rand.Read(utxo.Txid[:])
	require.NoError(t, err)
	utxo.Vout = 1
	return utxo
}

// GenerateAccountInfo generates a writable signer account with a random key,
// a random anchoring utxo, and a zeroed data buffer of dataLen bytes.
func GenerateAccountInfo(t *testing.T, dataLen int) *arch.AccountInfo {
	return &arch.AccountInfo{
		Key:        GeneratePubkey(t),
		Utxo:       GenerateUtxo(t),
		Data:       make([]byte, dataLen),
		Owner:      arch.SystemProgramID,
		IsSigner:   true,
		IsWritable: true,
	}
}
