package arch

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// PubkeyLength is the byte length of account, program and derived keys.
	PubkeyLength = 32

	// SignatureLength is the byte length of a BIP-340 schnorr signature.
	SignatureLength = 64
)

// SystemProgramID is the reserved identity of the system program.
var SystemProgramID Pubkey

// Pubkey is a 32 byte account identity. Keys backed by a private key hold the
// x-only serialization of a secp256k1 point; program derived addresses hold
// raw hash output and have no private key.
type Pubkey [PubkeyLength]byte

// PubkeyFromBytes creates a Pubkey from its raw bytes.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var pub Pubkey
	if len(b) != PubkeyLength {
		return pub, errors.Errorf("invalid pubkey length: %d", len(b))
	}
	copy(pub[:], b)
	return pub, nil
}

// PubkeyFromString creates a Pubkey from its base58 string form.
func PubkeyFromString(s string) (Pubkey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return Pubkey{}, errors.Wrap(err, "invalid base58 encoded pubkey")
	}
	return PubkeyFromBytes(raw)
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// TaprootScript returns the version 1 witness program paying directly to the
// key. Nodes apply their own key tweaking when deriving deposit addresses;
// this untweaked form is what local runtimes and diagnostics use.
func (p Pubkey) TaprootScript() ([]byte, error) {
	return txscript.NewScriptBuilder().
		AddOp(txscript.OP_1).
		AddData(p[:]).
		Script()
}

// TaprootAddress renders the key as a taproot address on the given network.
func (p Pubkey) TaprootAddress(net *chaincfg.Params) (string, error) {
	addr, err := btcutil.NewAddressTaproot(p[:], net)
	if err != nil {
		return "", errors.Wrap(err, "failed to derive taproot address")
	}
	return addr.EncodeAddress(), nil
}

// Signature is a BIP-340 schnorr signature over a message digest.
type Signature [SignatureLength]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

// VerifySignature reports whether sig is a valid signature of digest by pub.
func VerifySignature(pub Pubkey, digest []byte, sig Signature) bool {
	parsedPub, err := schnorr.ParsePubKey(pub[:])
	if err != nil {
		return false
	}
	parsedSig, err := schnorr.ParseSignature(sig[:])
	if err != nil {
		return false
	}
	return parsedSig.Verify(digest, parsedPub)
}

// Keypair holds a secp256k1 private key and signs for its x-only pubkey.
type Keypair struct {
	priv *btcec.PrivateKey
	pub  Pubkey
}

// NewKeypair generates a new random keypair.
func NewKeypair() (*Keypair, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate private key")
	}
	return newKeypair(priv), nil
}

// KeypairFromSeed creates a keypair from a 32 byte secret.
func KeypairFromSeed(seed []byte) (*Keypair, error) {
	if len(seed) != PubkeyLength {
		return nil, errors.Errorf("invalid seed length: %d", len(seed))
	}
	priv, _ := btcec.PrivKeyFromBytes(seed)
	return newKeypair(priv), nil
}

func newKeypair(priv *btcec.PrivateKey) *Keypair {
	var pub Pubkey
	copy(pub[:], schnorr.SerializePubKey(priv.PubKey()))
	return &Keypair{priv: priv, pub: pub}
}

// Pubkey returns the x-only public key.
func (k *Keypair) Pubkey() Pubkey {
	return k.pub
}

// Sign signs a 32 byte message digest.
func (k *Keypair) Sign(digest []byte) (Signature, error) {
	sig, err := schnorr.Sign(k.priv, digest)
	if err != nil {
		return Signature{}, errors.Wrap(err, "failed to sign digest")
	}

	var out Signature
	copy(out[:], sig.Serialize())
	return out, nil
}
