package archtest

import (
	"sync"

	"github.com/btcsuite/btcd/wire"
	"github.com/pkg/errors"

	"github.com/arch-labs/arch-go/pkg/arch"
)

const defaultMaxAccountSize = 10 * 1024 * 1024

// Runtime is an in memory arch.Runtime for tests. It serves configured chain
// state, applies reallocs to the account views it is handed, and records
// every host call for assertions.
type Runtime struct {
	mu sync.Mutex

	blockHeight    uint64
	maxAccountSize int
	scriptPubkeyFn func(arch.Pubkey) []byte
	reallocErr     error
	submitErr      error

	// Host calls, recorded in order of arrival.
	HeightReads   int
	ScriptLookups []arch.Pubkey
	Reallocs      []ReallocCall
	Submitted     []arch.TransactionToSign
}

// ReallocCall records one resize request.
type ReallocCall struct {
	Account   arch.Pubkey
	NewLength int
	ZeroInit  bool
}

// Option configures a Runtime.
type Option func(*Runtime)

// WithBlockHeight sets the Bitcoin block height the runtime reports.
func WithBlockHeight(height uint64) Option {
	return func(r *Runtime) {
		r.blockHeight = height
	}
}

// WithMaxAccountSize caps the account size reallocs may grow to.
func WithMaxAccountSize(n int) Option {
	return func(r *Runtime) {
		r.maxAccountSize = n
	}
}

// WithScriptPubkeyFn overrides the default taproot script derivation.
func WithScriptPubkeyFn(fn func(arch.Pubkey) []byte) Option {
	return func(r *Runtime) {
		r.scriptPubkeyFn = fn
	}
}

// WithReallocError makes every realloc fail with err.
func WithReallocError(err error) Option {
	return func(r *Runtime) {
		r.reallocErr = err
	}
}

// WithSubmitError makes every signing submission fail with err.
func WithSubmitError(err error) Option {
	return func(r *Runtime) {
		r.submitErr = err
	}
}

// NewRuntime creates a Runtime with the provided options applied.
func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		blockHeight:    850_000,
		maxAccountSize: defaultMaxAccountSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Runtime) GetBitcoinBlockHeight() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.HeightReads++
	return r.blockHeight
}

func (r *Runtime) GetAccountScriptPubkey(key arch.Pubkey) []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ScriptLookups = append(r.ScriptLookups, key)
	return r.scriptFor(key)
}

func (r *Runtime) ReallocAccount(account *arch.AccountInfo, newLength int, zeroInit bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Reallocs = append(r.Reallocs, ReallocCall{
		Account:   account.Key,
		NewLength: newLength,
		ZeroInit:  zeroInit,
	})

	if r.reallocErr != nil {
		return r.reallocErr
	}
	if newLength < 0 || newLength > r.maxAccountSize {
		return errors.Wrapf(arch.ErrInvalidRealloc, "new length %d out of range", newLength)
	}

	// A fresh allocation is always zeroed; the zeroInit flag is recorded for
	// assertions rather than changing behavior here.
	resized := make([]byte, newLength)
	copy(resized, account.Data)
	account.Data = resized

	return nil
}

func (r *Runtime) AddStateTransition(tx *wire.MsgTx, account *arch.AccountInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	arch.AppendStateTransition(tx, account, r.scriptFor(account.Key))
}

func (r *Runtime) SetTransactionToSign(accounts []*arch.AccountInfo, tx arch.TransactionToSign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.submitErr != nil {
		return r.submitErr
	}

	if err := tx.Validate(); err != nil {
		return err
	}
	for _, in := range tx.InputsToSign {
		if !containsKey(accounts, in.Signer) {
			return errors.Errorf("signer %s is not an execution account", in.Signer)
		}
	}

	r.Submitted = append(r.Submitted, tx)
	return nil
}

// scriptFor derives key's script pubkey without recording a lookup, so
// internal uses don't pollute ScriptLookups.
func (r *Runtime) scriptFor(key arch.Pubkey) []byte {
	if r.scriptPubkeyFn != nil {
		return r.scriptPubkeyFn(key)
	}

	// A 32 byte data push always encodes.
	script, _ := key.TaprootScript()
	return script
}

func containsKey(accounts []*arch.AccountInfo, key arch.Pubkey) bool {
	for _, account := range accounts {
		if account.Key == key {
			return true
		}
	}
	return false
}
