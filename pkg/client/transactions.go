package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

const waitMaxInterval = 2 * time.Second

var waitInitialInterval = 500 * time.Millisecond

type Transactions struct {
	options Options
}

// Creates new transaction api section
func NewTransactions(options Options) *Transactions {
	return &Transactions{
		options: options,
	}
}

// DecodeTransactionInfo reads a confirmed transaction record as returned by the node.
func DecodeTransactionInfo(data []byte) (*proto.TransactionInfo, error) {
	ti := new(proto.TransactionInfo)
	if err := json.Unmarshal(data, ti); err != nil {
		return nil, &ParseError{Err: err}
	}
	return ti, nil
}

// Get confirmed transaction info
func (a *Transactions) Info(ctx context.Context, id proto.ID) (*proto.TransactionInfo, *Response, error) {
	return a.info(ctx, fmt.Sprintf("/transactions/info/%s", id.String()))
}

// Get transaction that is in the UTX
func (a *Transactions) UnconfirmedInfo(ctx context.Context, id proto.ID) (*proto.TransactionInfo, *Response, error) {
	return a.info(ctx, fmt.Sprintf("/transactions/unconfirmed/info/%s", id.String()))
}

func (a *Transactions) info(ctx context.Context, path string) (*proto.TransactionInfo, *Response, error) {
	buf := new(bytes.Buffer)
	response, err := get(ctx, a.options, path, buf)
	if err != nil {
		return nil, response, err
	}
	ti, err := DecodeTransactionInfo(buf.Bytes())
	if err != nil {
		return nil, response, err
	}
	return ti, response, nil
}

// Get the number of unconfirmed transactions in the UTX pool
func (a *Transactions) UnconfirmedSize(ctx context.Context) (uint64, *Response, error) {
	out := make(map[string]uint64)
	response, err := get(ctx, a.options, "/transactions/unconfirmed/size", &out)
	if err != nil {
		return 0, response, err
	}

	return out["size"], response, nil
}

// Broadcast a signed transaction. The returned ID is the one reported by the node.
func (a *Transactions) Broadcast(ctx context.Context, transaction proto.SignedTransaction) (proto.ID, *Response, error) {
	url, err := joinUrl(a.options.BaseUrl, "/transactions/broadcast")
	if err != nil {
		return proto.ID{}, nil, err
	}

	bts, err := json.Marshal(transaction)
	if err != nil {
		return proto.ID{}, nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url.String(), bytes.NewReader(bts))
	if err != nil {
		return proto.ID{}, nil, err
	}

	out := struct {
		ID proto.ID `json:"id"`
	}{}
	response, err := doHTTP(ctx, a.options, req, &out)
	if err != nil {
		return proto.ID{}, response, err
	}
	return out.ID, response, nil
}

// WaitForTransaction polls the node until the transaction is confirmed or the timeout elapses.
// Only "not found" replies and transport failures are retried. The timeout must be positive,
// cancellation of ctx is reported with the context error.
func (a *Transactions) WaitForTransaction(ctx context.Context, id proto.ID, timeout time.Duration) (*proto.TransactionInfo, error) {
	if timeout <= 0 {
		return nil, errors.Errorf("invalid wait timeout %s", timeout)
	}
	logger := a.options.logger()
	var (
		info      *proto.TransactionInfo
		permanent bool
	)
	poll := func() error {
		metricWaitAttempts.Inc()
		ti, _, err := a.Info(ctx, id)
		if err != nil {
			if retryable(err) {
				logger.Debug("Transaction is not confirmed yet", zap.Stringer("id", id), zap.Error(err))
				return err
			}
			permanent = true
			return backoff.Permanent(err)
		}
		info = ti
		return nil
	}
	bo := backoff.WithContext(
		backoff.NewExponentialBackOff(
			backoff.WithInitialInterval(waitInitialInterval),
			backoff.WithMaxInterval(waitMaxInterval),
			backoff.WithMaxElapsedTime(timeout),
		), ctx,
	)
	if err := backoff.Retry(poll, bo); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if permanent {
			return nil, err
		}
		return nil, errors.Wrapf(err, "transaction %s is not confirmed in %s", id.String(), timeout)
	}
	return info, nil
}

func retryable(err error) bool {
	var re *RequestError
	if !errors.As(err, &re) {
		return false
	}
	return re.StatusCode == 0 || re.NotFound()
}
