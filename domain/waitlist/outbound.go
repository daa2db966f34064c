package waitlist

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/commit-waitlist/pkg/utils"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxUpstreamBody caps how much of an upstream response is read into error details.
const maxUpstreamBody = 64 << 10

// NewOutboundClient is shared by the webhook forwarder and the REST store.
// Requests are bounded by their context; timeout is a backstop.
func NewOutboundClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	var rt http.RoundTripper = transport
	if utils.IsTracingEnabled() {
		rt = otelhttp.NewTransport(transport)
	}

	return &http.Client{Transport: rt, Timeout: timeout}
}

// detachedContext survives client disconnects but keeps parent's deadline and values.
func detachedContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if deadline, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, deadline)
	}
	return context.WithCancel(ctx)
}

func readUpstreamBody(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	return strings.TrimSpace(string(body))
}

func isSuccessStatus(code int) bool {
	return code >= 200 && code < 300
}
