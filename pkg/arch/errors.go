package arch

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// ErrorCode is the numeric error space shared with the host runtime. Builtin
// kinds occupy the upper 32 bits of the code; custom program error codes
// occupy the lower 32 bits.
type ErrorCode uint64

// CodeSuccess is reported when instruction processing returns no error.
const CodeSuccess ErrorCode = 0

const (
	CodeCustomZero ErrorCode = (1 + iota) << 32
	CodeInvalidArgument
	CodeInvalidInstructionData
	CodeInvalidAccountData
	CodeAccountDataTooSmall
	CodeInsufficientFunds
	CodeIncorrectProgramID
	CodeMissingRequiredSignature
	CodeAccountAlreadyInitialized
	CodeUninitializedAccount
	CodeNotEnoughAccountKeys
	CodeAccountBorrowFailed
	CodeMaxSeedLengthExceeded
	CodeInvalidSeeds
	CodeBorshIOError
	CodeAccountNotRentExempt
	CodeUnsupportedSysvar
	CodeIllegalOwner
	CodeInvalidRealloc
)

// CodeUnknown is reported for errors that carry no mapped code.
const CodeUnknown ErrorCode = math.MaxUint64

// CustomError is the numerical error returned by a program.
type CustomError uint32

func (c CustomError) Error() string {
	return fmt.Sprintf("custom program error: %x", uint32(c))
}

// programError is a builtin failure kind with a fixed code in the runtime's
// error space.
type programError struct {
	code ErrorCode
	msg  string
}

func (e *programError) Error() string {
	return e.msg
}

// Builtin program errors shared by the runtime and programs.
var (
	ErrInvalidArgument        = &programError{CodeInvalidArgument, "invalid argument"}
	ErrInvalidInstructionData = &programError{CodeInvalidInstructionData, "invalid instruction data"}
	ErrInvalidAccountData     = &programError{CodeInvalidAccountData, "invalid account data"}
	ErrAccountDataTooSmall    = &programError{CodeAccountDataTooSmall, "account data too small"}
	ErrNotEnoughAccountKeys   = &programError{CodeNotEnoughAccountKeys, "not enough account keys"}
	ErrInvalidRealloc         = &programError{CodeInvalidRealloc, "invalid realloc"}
)

// ErrorCodeOf resolves the code reported to the host for err. Custom program
// errors pass through their low 32 bits, builtin kinds map to their fixed
// codes, and anything else reports CodeUnknown.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return CodeSuccess
	}

	var custom CustomError
	if errors.As(err, &custom) {
		if custom == 0 {
			return CodeCustomZero
		}
		return ErrorCode(custom)
	}

	var builtin *programError
	if errors.As(err, &builtin) {
		return builtin.code
	}

	return CodeUnknown
}
