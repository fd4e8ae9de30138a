package arch

import (
	"encoding/base64"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"

	"github.com/arch-labs/arch-go/pkg/retry"
	"github.com/arch-labs/arch-go/pkg/retry/backoff"
)

const (
	// PollRate is the rate at which transaction status should be polled at.
	PollRate = 500 * time.Millisecond

	nodeUnhealthyCode = -32005
)

// Terminal and intermediate statuses reported for a submitted transaction.
const (
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

var (
	ErrNoAccountInfo       = errors.New("no account info")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// AccountView is the node's view of an account.
type AccountView struct {
	Owner        Pubkey
	Data         []byte
	Utxo         UtxoMeta
	IsExecutable bool
}

// ProcessedTransaction is a transaction in the node's history together with
// its status and, once anchored, the Bitcoin txid carrying its state.
type ProcessedTransaction struct {
	Transaction Transaction
	Status      string
	BitcoinTxid *string
}

// Processed returns whether the transaction reached its terminal success
// state.
func (p ProcessedTransaction) Processed() bool {
	return p.Status == StatusProcessed
}

// Failed returns whether the transaction reached its terminal failure state.
func (p ProcessedTransaction) Failed() bool {
	return p.Status == StatusFailed
}

// Client provides an interaction with a node's JSON RPC API.
type Client interface {
	GetBlockCount() (uint64, error)
	GetAccountAddress(Pubkey) (string, error)
	ReadAccountInfo(Pubkey) (AccountView, error)
	SendTransaction(Transaction) (string, error)
	GetProcessedTransaction(txid string) (*ProcessedTransaction, error)
}

var (
	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

type client struct {
	log     *logrus.Entry
	client  jsonrpc.RPCClient
	retrier retry.Retrier
}

// New returns a client using the specified endpoint.
func New(endpoint string) Client {
	return NewWithRPCOptions(endpoint, nil)
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint string, opts *jsonrpc.RPCClientOpts) Client {
	return &client{
		log:    logrus.StandardLogger().WithField("type", "arch/client"),
		client: jsonrpc.NewClientWithOpts(endpoint, opts),
		retrier: retry.NewRetrier(
			retry.RetriableErrors(errRateLimited, errServiceError),
			retry.Limit(3),
			retry.BackoffWithJitter(backoff.BinaryExponential(time.Second), 10*time.Second, 0.1),
		),
	}
}

func (c *client) call(out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier.Retry(func() error {
		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		return err
	}
	if rpcErr.Code == 429 {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == nodeUnhealthyCode {
		return errServiceError
	}

	return err
}

func (c *client) GetBlockCount() (height uint64, err error) {
	if err := c.call(&height, "get_block_count"); err != nil {
		return 0, errors.Wrap(err, "get_block_count() failed to send request")
	}

	return height, nil
}

func (c *client) GetAccountAddress(pub Pubkey) (string, error) {
	var address string
	if err := c.call(&address, "get_account_address", base58.Encode(pub[:])); err != nil {
		return "", errors.Wrap(err, "get_account_address() failed to send request")
	}

	return address, nil
}

func (c *client) ReadAccountInfo(pub Pubkey) (view AccountView, err error) {
	type rpcResponse struct {
		Owner string `json:"owner"`
		Data  string `json:"data"`
		Utxo  struct {
			Txid string `json:"txid"`
			Vout uint32 `json:"vout"`
		} `json:"utxo"`
		IsExecutable bool `json:"is_executable"`
	}

	var resp *rpcResponse
	if err := c.call(&resp, "read_account_info", base58.Encode(pub[:])); err != nil {
		return view, errors.Wrap(err, "read_account_info() failed to send request")
	}

	if resp == nil {
		return view, ErrNoAccountInfo
	}

	view.Owner, err = PubkeyFromString(resp.Owner)
	if err != nil {
		return view, errors.Wrap(err, "invalid base58 encoded owner")
	}

	view.Data, err = base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		return view, errors.Wrap(err, "invalid base64 encoded data")
	}

	txid, err := chainhash.NewHashFromStr(resp.Utxo.Txid)
	if err != nil {
		return view, errors.Wrap(err, "invalid utxo txid")
	}

	view.Utxo = UtxoMeta{Txid: [32]byte(*txid), Vout: resp.Utxo.Vout}
	view.IsExecutable = resp.IsExecutable

	return view, nil
}

func (c *client) SendTransaction(txn Transaction) (string, error) {
	raw, err := txn.Marshal()
	if err != nil {
		return "", err
	}

	var txid string
	if err := c.call(&txid, "send_transaction", base64.StdEncoding.EncodeToString(raw)); err != nil {
		return "", errors.Wrap(err, "send_transaction() failed to send request")
	}

	return txid, nil
}

func (c *client) GetProcessedTransaction(txid string) (*ProcessedTransaction, error) {
	type rpcResponse struct {
		RuntimeTransaction string  `json:"runtime_transaction"`
		Status             string  `json:"status"`
		BitcoinTxid        *string `json:"bitcoin_txid"`
	}

	var resp *rpcResponse
	if err := c.call(&resp, "get_processed_transaction", txid); err != nil {
		return nil, errors.Wrap(err, "get_processed_transaction() failed to send request")
	}

	if resp == nil {
		return nil, ErrTransactionNotFound
	}

	raw, err := base64.StdEncoding.DecodeString(resp.RuntimeTransaction)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 encoded transaction")
	}

	txn, err := UnmarshalTransaction(raw)
	if err != nil {
		return nil, err
	}

	return &ProcessedTransaction{
		Transaction: txn,
		Status:      resp.Status,
		BitcoinTxid: resp.BitcoinTxid,
	}, nil
}
