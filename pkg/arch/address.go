package arch

import (
	"crypto/sha256"
	"math"

	"github.com/jdgcs/ed25519/edwards25519"
	"github.com/pkg/errors"
)

const (
	maxSeeds      = 16
	maxSeedLength = 32
)

var (
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrMaxSeedLengthExceeded = errors.New("max seed length exceeded")

	ErrInvalidPublicKey = errors.New("invalid public key")
)

// CreateProgramAddress derives an address from a program id and a set of
// seeds.
//
// Derived addresses must _not_ lie on the ed25519 curve, ensuring there is no
// associated private key. In the event that the program and seed parameters
// result in a valid curve point, ErrInvalidPublicKey is returned.
func CreateProgramAddress(program Pubkey, seeds ...[]byte) (Pubkey, error) {
	if len(seeds) > maxSeeds {
		return Pubkey{}, ErrTooManySeeds
	}

	h := sha256.New()
	for _, s := range seeds {
		if len(s) > maxSeedLength {
			return Pubkey{}, ErrMaxSeedLengthExceeded
		}

		if _, err := h.Write(s); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	for _, v := range [][]byte{program[:], []byte("ProgramDerivedAddress")} {
		if _, err := h.Write(v); err != nil {
			return Pubkey{}, errors.Wrap(err, "failed to hash seed")
		}
	}

	var pub [PubkeyLength]byte
	copy(pub[:], h.Sum(nil))

	// Reject hashes that decompress to a valid edwards point; those could
	// have a private key somewhere.
	var A edwards25519.ExtendedGroupElement
	if A.FromBytes(&pub) {
		return Pubkey{}, ErrInvalidPublicKey
	}

	return pub, nil
}

// FindProgramAddressAndBump walks bump seeds from 255 downward until the
// derivation falls off the curve, returning the address and the bump that
// produced it.
func FindProgramAddressAndBump(program Pubkey, seeds ...[]byte) (Pubkey, uint8, error) {
	bumpSeed := []byte{math.MaxUint8}
	for i := 0; i < math.MaxUint8; i++ {
		pub, err := CreateProgramAddress(program, append(seeds, bumpSeed)...)
		if err == nil {
			return pub, bumpSeed[0], nil
		}
		if err != ErrInvalidPublicKey {
			return Pubkey{}, 0, err
		}

		bumpSeed[0]--
	}

	return Pubkey{}, 0, errors.New("unable to find a viable program address")
}

// FindProgramAddress is FindProgramAddressAndBump without the bump.
func FindProgramAddress(program Pubkey, seeds ...[]byte) (Pubkey, error) {
	pub, _, err := FindProgramAddressAndBump(program, seeds...)
	return pub, err
}
