package hello

import (
	"github.com/pkg/errors"

	"github.com/arch-labs/arch-go/pkg/arch"
)

// Hello builds an instruction invoking program to greet name. feeTx is the
// serialized transaction whose first input funds the anchoring transaction's
// network fee. The greeted account is the instruction's only account and must
// sign.
func Hello(program, account arch.Pubkey, name string, feeTx []byte) (arch.Instruction, error) {
	data, err := HelloWorldParams{Name: name, FeeTx: feeTx}.Marshal()
	if err != nil {
		return arch.Instruction{}, err
	}

	return arch.NewInstruction(
		program,
		data,
		arch.NewAccountMeta(account, true),
	), nil
}

// DecompiledHello is the parsed view of a hello instruction.
type DecompiledHello struct {
	Account arch.Pubkey
	Params  HelloWorldParams
}

// DecompileHello parses an instruction built by Hello against the given
// program id.
func DecompileHello(program arch.Pubkey, ixn arch.Instruction) (*DecompiledHello, error) {
	if ixn.ProgramID != program {
		return nil, arch.ErrIncorrectProgram
	}
	if len(ixn.Accounts) != 1 {
		return nil, errors.Errorf("invalid number of accounts: %d", len(ixn.Accounts))
	}

	params, err := UnmarshalParams(ixn.Data)
	if err != nil {
		return nil, err
	}

	return &DecompiledHello{
		Account: ixn.Accounts[0].Pubkey,
		Params:  *params,
	}, nil
}
