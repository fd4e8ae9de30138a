package arch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generateKeypair(t *testing.T) *Keypair {
	keypair, err := NewKeypair()
	require.NoError(t, err)
	return keypair
}

func TestNewTransaction_SignerCollection(t *testing.T) {
	program := generateKeypair(t).Pubkey()
	a := generateKeypair(t).Pubkey()
	b := generateKeypair(t).Pubkey()
	readonly := generateKeypair(t).Pubkey()

	tx := NewTransaction(
		NewInstruction(program, []byte{1}, NewAccountMeta(a, true), NewReadonlyAccountMeta(readonly, false)),
		NewInstruction(program, []byte{2}, NewAccountMeta(b, true), NewAccountMeta(a, true)),
	)

	assert.Equal(t, TransactionVersion, tx.Version)

	// Distinct signers in order of first appearance, non-signers excluded.
	assert.Equal(t, []Pubkey{a, b}, tx.Message.Signers)
	assert.Len(t, tx.Signatures, 2)
	assert.Len(t, tx.Message.Instructions, 2)
}

func TestTransaction_SignAndVerify(t *testing.T) {
	program := generateKeypair(t).Pubkey()
	signer := generateKeypair(t)

	tx := NewTransaction(
		NewInstruction(program, []byte{1, 2, 3}, NewAccountMeta(signer.Pubkey(), true)),
	)

	assert.Error(t, tx.Verify())

	require.NoError(t, tx.Sign(signer))
	assert.NoError(t, tx.Verify())
	assert.Equal(t, tx.Signatures[0][:], tx.Signature())

	outsider := generateKeypair(t)
	err := tx.Sign(outsider)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not in the signer list")

	// Tampering with the message invalidates the signature.
	tx.Message.Instructions[0].Data = []byte{4, 5, 6}
	assert.Error(t, tx.Verify())
}

func TestTransaction_MarshalRoundTrip(t *testing.T) {
	program := generateKeypair(t).Pubkey()
	signer := generateKeypair(t)

	tx := NewTransaction(
		NewInstruction(program, []byte{1, 2, 3}, NewAccountMeta(signer.Pubkey(), true)),
	)
	require.NoError(t, tx.Sign(signer))

	raw, err := tx.Marshal()
	require.NoError(t, err)

	decoded, err := UnmarshalTransaction(raw)
	require.NoError(t, err)

	assert.Equal(t, tx.Version, decoded.Version)
	assert.Equal(t, tx.Signatures, decoded.Signatures)
	assert.Equal(t, tx.Message.Signers, decoded.Message.Signers)
	assert.NoError(t, decoded.Verify())

	_, err = UnmarshalTransaction(raw[:len(raw)-4])
	assert.Error(t, err)
}

func TestMessage_Digest(t *testing.T) {
	program := generateKeypair(t).Pubkey()
	signer := generateKeypair(t).Pubkey()

	message := Message{
		Signers: []Pubkey{signer},
		Instructions: []Instruction{
			NewInstruction(program, []byte{1}, NewAccountMeta(signer, true)),
		},
	}

	a, err := message.Digest()
	require.NoError(t, err)
	b, err := message.Digest()
	require.NoError(t, err)
	assert.Equal(t, a, b)

	message.Instructions[0].Data = []byte{2}
	c, err := message.Digest()
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
