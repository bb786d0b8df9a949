package transport

import (
	"encoding/base64"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/hostbridge/hostbridge/errors"
)

// DefaultHeader is the request header that carries the outbound frame.
// The frame rides base64 encoded in the header rather than the body so
// embedders that can only intercept a custom scheme's headers still see
// it.
const DefaultHeader = "Bridge-Data"

// Client is an HTTP transport. Each RoundTrip issues one POST with the
// frame in the request header and reads the reply frame, also base64,
// from the response body. An empty body is an empty reply.
type Client struct {
	url    string
	header string
	hc     *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithHeader overrides the header name carrying the frame.
func WithHeader(name string) ClientOption {
	return func(c *Client) {
		c.header = name
	}
}

// NewClient creates an HTTP transport posting frames to url.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		header: DefaultHeader,
		hc:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RoundTrip sends one frame and blocks for the peer's reply.
func (c *Client) RoundTrip(frame []byte) ([]byte, error) {
	req, err := http.NewRequest(http.MethodPost, c.url, nil)
	if err != nil {
		return nil, errors.TransportFailure(err)
	}
	req.Header.Set(c.header, base64.StdEncoding.EncodeToString(frame))

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.TransportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.PhaseTransport, errors.KindTransportFailure).
			Detail("unexpected status %d", resp.StatusCode).Build()
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.TransportFailure(err)
	}
	if len(body) == 0 {
		return nil, nil
	}

	reply, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		return nil, errors.TransportFailure(err)
	}
	return reply, nil
}

// Handler serves the other side of the HTTP transport: it decodes the
// frame from the request header, hands it to handle, and writes the
// response frame base64 encoded into the body.
//
// The HTTP carrier is flat-call-only: each request is one complete
// Evaluate and its response body the terminating Respond. The serving
// side cannot issue nested Evaluates mid-chain, because the only reply
// channel is the response to the request being held; sessions that need
// server-initiated reentrancy use the loopback transport. A Respond
// posted to a Handler therefore has no conversation to resume, and like
// any handler failure it is answered with an error status so the
// posting side sees a transport failure rather than a silent
// "no further action".
type Handler struct {
	handle   func(frame []byte) ([]byte, error)
	header   string
	maxFrame int
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithHandlerHeader overrides the header name carrying the frame.
func WithHandlerHeader(name string) HandlerOption {
	return func(h *Handler) {
		h.header = name
	}
}

// WithMaxFrameSize rejects decoded frames larger than n bytes.
func WithMaxFrameSize(n int) HandlerOption {
	return func(h *Handler) {
		h.maxFrame = n
	}
}

// NewHandler creates an http.Handler answering bridge frames with
// handle, typically a dispatcher's HandleFrame.
func NewHandler(handle func(frame []byte) ([]byte, error), opts ...HandlerOption) *Handler {
	h := &Handler{
		handle: handle,
		header: DefaultHeader,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	encoded := r.Header.Get(h.header)
	if encoded == "" {
		http.Error(w, "missing frame header", http.StatusBadRequest)
		return
	}

	frame, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		http.Error(w, "undecodable frame header", http.StatusBadRequest)
		return
	}
	if h.maxFrame > 0 && len(frame) > h.maxFrame {
		http.Error(w, "frame too large", http.StatusRequestEntityTooLarge)
		return
	}

	resp, err := h.handle(frame)
	if err != nil {
		Logger().Debug("frame handler failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if len(resp) == 0 {
		w.WriteHeader(http.StatusOK)
		return
	}
	if _, err := io.WriteString(w, base64.StdEncoding.EncodeToString(resp)); err != nil {
		Logger().Debug("response write failed", zap.Error(err))
	}
}
