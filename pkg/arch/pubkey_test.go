package arch

import (
	"bytes"
	"crypto/sha256"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubkey_RoundTrip(t *testing.T) {
	keypair, err := NewKeypair()
	require.NoError(t, err)

	pub := keypair.Pubkey()
	decoded, err := PubkeyFromString(pub.String())
	require.NoError(t, err)
	assert.Equal(t, pub, decoded)

	_, err = PubkeyFromBytes(make([]byte, PubkeyLength-1))
	assert.Error(t, err)
	_, err = PubkeyFromString("0OIl")
	assert.Error(t, err)
}

func TestKeypairFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)

	a, err := KeypairFromSeed(seed)
	require.NoError(t, err)
	b, err := KeypairFromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.Pubkey(), b.Pubkey())

	_, err = KeypairFromSeed(make([]byte, 16))
	assert.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	keypair, err := NewKeypair()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("state transition"))
	sig, err := keypair.Sign(digest[:])
	require.NoError(t, err)

	assert.True(t, VerifySignature(keypair.Pubkey(), digest[:], sig))

	otherDigest := sha256.Sum256([]byte("different state transition"))
	assert.False(t, VerifySignature(keypair.Pubkey(), otherDigest[:], sig))

	otherKeypair, err := NewKeypair()
	require.NoError(t, err)
	assert.False(t, VerifySignature(otherKeypair.Pubkey(), digest[:], sig))

	// A zeroed key is not a valid curve point and never verifies.
	assert.False(t, VerifySignature(Pubkey{}, digest[:], sig))
}

func TestTaprootScript(t *testing.T) {
	keypair, err := NewKeypair()
	require.NoError(t, err)
	pub := keypair.Pubkey()

	script, err := pub.TaprootScript()
	require.NoError(t, err)

	require.Len(t, script, 34)
	assert.EqualValues(t, txscript.OP_1, script[0])
	assert.EqualValues(t, PubkeyLength, script[1])
	assert.Equal(t, pub[:], script[2:])

	addr, err := pub.TaprootAddress(&chaincfg.RegressionNetParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr, "bcrt1p"), addr)
}
