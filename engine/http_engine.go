package engine

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/andybalholm/brotli"
	tls "github.com/refraction-networking/utls"

	"github.com/hvilla/scrapeproxy/models"
)

// maxBodyBytes caps response body reads to prevent unbounded memory use.
const maxBodyBytes = 10 << 20

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to
// http/1.1 only. Computed once at init time and reused for every
// connection. Without this the server may negotiate HTTP/2, which Go's
// http.Transport cannot speak over a utls connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// HTTPEngine is the lightweight fetcher: a single GET through a pooled
// client with a Chrome TLS fingerprint and no JavaScript execution.
//
// Certificate verification is intentionally disabled: the service values
// reachability of badly-configured targets over transport trust, and the
// content is relayed to the caller verbatim either way.
type HTTPEngine struct {
	client  *http.Client
	timeout time.Duration
}

// NewHTTPEngine creates an HTTPEngine with the given per-fetch timeout.
func NewHTTPEngine(timeout time.Duration) *HTTPEngine {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{
				ServerName:         host,
				InsecureSkipVerify: true,
			}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("http_engine: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}
	return &HTTPEngine{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		timeout: timeout,
	}
}

// Fetch issues the GET and shapes the outcome into a FetchResult.
//
// Only transport-level failures (DNS, connect, TLS, timeout) produce
// Success=false. Any HTTP response, 4xx and 5xx included, is a successful
// fetch: the caller learns about HTTP errors through StatusCode.
func (e *HTTPEngine) Fetch(ctx context.Context, targetURL string) *models.FetchResult {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return lightweightFailure(err)
	}

	req.Header.Set("User-Agent", randomUserAgent())
	for k, v := range NaturalHeaders(targetURL) {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return lightweightFailure(err)
	}
	defer resp.Body.Close()

	body, err := decodeBody(resp)
	if err != nil {
		return lightweightFailure(err)
	}

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return &models.FetchResult{
		Success:    true,
		StatusCode: resp.StatusCode,
		Content:    string(body),
		Headers:    headers,
		URL:        resp.Request.URL.String(),
		Title:      extractTitle(body),
		Method:     models.MethodLightweight,
	}
}

func lightweightFailure(err error) *models.FetchResult {
	return &models.FetchResult{
		Success:    false,
		StatusCode: 0,
		Method:     models.MethodLightweight,
		Error:      err.Error(),
	}
}

// decodeBody reads the response body, undoing the Content-Encoding we
// invited with the Accept-Encoding header.
func decodeBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("http_engine: gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
	case "br":
		reader = brotli.NewReader(resp.Body)
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("http_engine: read body: %w", err)
	}
	return body, nil
}
