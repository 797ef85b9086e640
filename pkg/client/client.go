package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/wavesplatform/wavestx/pkg/proto"
)

// ApiKeyHeader is an HTTP header name for API Key
const ApiKeyHeader = "X-API-Key" // #nosec: it's a header name

const defaultTimeout = 10 * time.Second

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Options struct {
	BaseUrl string
	ChainID proto.Scheme
	Client  Doer
	ApiKey  string
	Logger  *zap.Logger
}

var (
	MainNetOptions = Options{
		BaseUrl: "https://nodes.wavesnodes.com",
		ChainID: proto.MainNetScheme,
	}
	TestNetOptions = Options{
		BaseUrl: "https://nodes-testnet.wavesnodes.com",
		ChainID: proto.TestNetScheme,
	}
	StageNetOptions = Options{
		BaseUrl: "https://nodes-stagenet.wavesnodes.com",
		ChainID: proto.StageNetScheme,
	}
)

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

var defaultOptions = Options{
	BaseUrl: MainNetOptions.BaseUrl,
	ChainID: MainNetOptions.ChainID,
	Client:  &http.Client{Timeout: defaultTimeout},
	Logger:  zap.NewNop(),
}

// OptionsForScheme returns the default options of a known network.
func OptionsForScheme(scheme proto.Scheme) (Options, error) {
	switch scheme {
	case proto.MainNetScheme:
		return MainNetOptions, nil
	case proto.TestNetScheme:
		return TestNetOptions, nil
	case proto.StageNetScheme:
		return StageNetOptions, nil
	default:
		return Options{}, errors.Errorf("no default node for network '%c'", scheme)
	}
}

type Client struct {
	options      Options
	Addresses    *Addresses
	Aliases      *Aliases
	Blocks       *Blocks
	Leasing      *Leasing
	Transactions *Transactions
}

type Response struct {
	*http.Response
}

// NewClient creates new client instance.
// If no options provided will use default.
func NewClient(options ...Options) (*Client, error) {
	if len(options) > 1 {
		return nil, errors.New("too many options provided. Expects no or just one item")
	}

	opts := defaultOptions

	if len(options) == 1 {
		option := options[0]
		if option.BaseUrl != "" {
			opts.BaseUrl = option.BaseUrl
		}
		if option.Client != nil {
			opts.Client = option.Client
		}
		if option.ApiKey != "" {
			opts.ApiKey = option.ApiKey
		}
		if option.ChainID != 0 {
			opts.ChainID = option.ChainID
		}
		if option.Logger != nil {
			opts.Logger = option.Logger
		}
	}

	c := &Client{
		options:      opts,
		Addresses:    NewAddresses(opts),
		Aliases:      NewAliases(opts),
		Blocks:       NewBlocks(opts),
		Leasing:      NewLeasing(opts),
		Transactions: NewTransactions(opts),
	}

	return c, nil
}

func (a *Client) GetOptions() Options {
	return a.options
}

func withContext(ctx context.Context, req *http.Request) *http.Request {
	return req.WithContext(ctx)
}

func newResponse(response *http.Response) *Response {
	return &Response{
		Response: response,
	}
}

func (a *Client) Do(ctx context.Context, req *http.Request, v any) (*Response, error) {
	return doHTTP(ctx, a.options, req, v)
}

func doHTTP(ctx context.Context, options Options, req *http.Request, v any) (*Response, error) {
	req = withContext(ctx, req)
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	req.Header.Set("Content-Type", "application/json")
	if options.ApiKey != "" {
		req.Header.Set(ApiKeyHeader, options.ApiKey)
	}
	logger := options.logger()
	path := req.URL.Path
	r := route(options.BaseUrl, path)

	start := time.Now()
	resp, err := options.Client.Do(req)
	if err != nil {
		observeRequest(req.Method, r, "error", start)
		logger.Debug("Request failed", zap.String("method", req.Method), zap.String("path", path), zap.Error(err))
		return nil, transportError(err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close() // No error handling intentionally
	}(resp.Body)
	observeRequest(req.Method, r, strconv.Itoa(resp.StatusCode), start)
	logger.Debug("Request completed",
		zap.String("method", req.Method), zap.String("path", path), zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	response := newResponse(resp)

	if response.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(response.Body)
		return response, statusError(response.StatusCode, body)
	}

	select {
	case <-ctx.Done():
		return response, ctx.Err()
	default:
	}

	if v != nil {
		if w, ok := v.(io.Writer); ok {
			if _, err := io.Copy(w, resp.Body); err != nil {
				return nil, err
			}
		} else {
			if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
				return response, &ParseError{Err: err}
			}
		}
	}

	return response, err
}

// get requests the node path and decodes the reply into v.
func get(ctx context.Context, options Options, path string, v any) (*Response, error) {
	u, err := joinUrl(options.BaseUrl, path)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	return doHTTP(ctx, options, req, v)
}

func joinUrl(baseRaw string, pathRaw string) (*url.URL, error) {
	base, err := url.Parse(baseRaw)
	if err != nil {
		return nil, err
	}

	rel, err := url.Parse(pathRaw)
	if err != nil {
		return nil, err
	}
	if rel.IsAbs() {
		return nil, errors.New("path must be relative URL")
	}
	res := base.JoinPath(rel.EscapedPath())

	q := res.Query()
	for k, vals := range rel.Query() {
		for _, v := range vals {
			q.Add(k, v)
		}
	}
	res.RawQuery = q.Encode()

	return res, nil
}
