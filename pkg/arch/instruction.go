package arch

import (
	"github.com/pkg/errors"
)

var (
	ErrIncorrectProgram     = errors.New("incorrect program")
	ErrIncorrectInstruction = errors.New("incorrect instruction")
)

// Instruction invokes a program with a data payload against a set of
// annotated accounts.
type Instruction struct {
	ProgramID Pubkey
	Accounts  []AccountMeta
	Data      []byte
}

// NewInstruction creates a new Instruction.
func NewInstruction(programID Pubkey, data []byte, accounts ...AccountMeta) Instruction {
	return Instruction{
		ProgramID: programID,
		Accounts:  accounts,
		Data:      data,
	}
}
