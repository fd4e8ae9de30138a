package arch

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/near/borsh-go"
	"github.com/pkg/errors"
)

// TransactionVersion is the only runtime transaction version current nodes
// accept.
const TransactionVersion uint32 = 0

// Message is the signed body of a runtime transaction: the ordered signer set
// and the instructions they authorize.
type Message struct {
	Signers      []Pubkey
	Instructions []Instruction
}

// Marshal returns the canonical borsh serialization of the message.
func (m Message) Marshal() ([]byte, error) {
	raw, err := borsh.Serialize(m)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize message")
	}
	return raw, nil
}

// Digest returns the digest signers commit to.
func (m Message) Digest() ([sha256.Size]byte, error) {
	raw, err := m.Marshal()
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(raw), nil
}

// Transaction is a runtime transaction in the form nodes accept it.
type Transaction struct {
	Version    uint32
	Signatures []Signature
	Message    Message
}

// NewTransaction builds an unsigned transaction from instructions. The signer
// list is every distinct signer account across the instructions, in order of
// first appearance; signature slots are allocated but empty.
func NewTransaction(instructions ...Instruction) Transaction {
	var signers []Pubkey
	seen := make(map[Pubkey]struct{})
	for _, ixn := range instructions {
		for _, account := range ixn.Accounts {
			if !account.IsSigner {
				continue
			}
			if _, ok := seen[account.Pubkey]; ok {
				continue
			}

			seen[account.Pubkey] = struct{}{}
			signers = append(signers, account.Pubkey)
		}
	}

	return Transaction{
		Version:    TransactionVersion,
		Signatures: make([]Signature, len(signers)),
		Message: Message{
			Signers:      signers,
			Instructions: instructions,
		},
	}
}

// Signature returns the first signature, which doubles as the id nodes index
// the transaction under.
func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

// Sign places each keypair's signature in its signer slot. Signing with a key
// that is not in the signer list is an error.
func (t *Transaction) Sign(signers ...*Keypair) error {
	digest, err := t.Message.Digest()
	if err != nil {
		return err
	}

	for _, s := range signers {
		index := t.signerIndex(s.Pubkey())
		if index < 0 {
			return errors.Errorf("signing account %s is not in the signer list", s.Pubkey())
		}

		sig, err := s.Sign(digest[:])
		if err != nil {
			return err
		}

		t.Signatures[index] = sig
	}

	return nil
}

// Verify checks every signature slot against its signer.
func (t *Transaction) Verify() error {
	digest, err := t.Message.Digest()
	if err != nil {
		return err
	}

	var empty Signature
	for i, sig := range t.Signatures {
		if sig == empty {
			return errors.Errorf("missing signature for %s", t.Message.Signers[i])
		}
		if !VerifySignature(t.Message.Signers[i], digest[:], sig) {
			return errors.Errorf("invalid signature for %s", t.Message.Signers[i])
		}
	}

	return nil
}

func (t *Transaction) signerIndex(pub Pubkey) int {
	for i, signer := range t.Message.Signers {
		if signer == pub {
			return i
		}
	}
	return -1
}

// Marshal returns the borsh serialization submitted to nodes.
func (t Transaction) Marshal() ([]byte, error) {
	raw, err := borsh.Serialize(t)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize transaction")
	}
	return raw, nil
}

// UnmarshalTransaction decodes a serialized runtime transaction.
func UnmarshalTransaction(raw []byte) (Transaction, error) {
	var tx Transaction
	if err := borsh.Deserialize(&tx, raw); err != nil {
		return tx, errors.Wrap(err, "failed to deserialize transaction")
	}
	return tx, nil
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("version: %d\n", t.Version))
	sb.WriteString("signatures:\n")
	for i, sig := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", t.Message.Signers[i], sig))
	}
	sb.WriteString("instructions:\n")
	for i, ixn := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("  %d: program=%s accounts=%d data=%d bytes\n", i, ixn.ProgramID, len(ixn.Accounts), len(ixn.Data)))
	}
	return sb.String()
}
