package restyutil

import (
	"net/http/cookiejar"
	"time"

	"tnfirefly-backend/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "TNFirefly-GovernorTracker/1.0 (info@tnfirefly.com)"

type Options struct {
	// overrides the polite self-identifying default
	UserAgent string
	// per-request deadline, sources get 15-60s depending on how
	// slow their report pages render
	Timeout time.Duration
	// minimum spacing between requests for rate-sensitive hosts,
	// zero disables the limiter
	Delay time.Duration
	// routes the transport through the cloudflare bypass for
	// aggregator hosts that fingerprint plain Go clients
	BypassCloudflare bool
	// some sources (the TN campaign-finance portal) require a
	// session cookie picked up from the search page
	CookieJar bool
}

// NewClient builds the resty client every adapter fetches through.
// The returned client is instrumented, blocking scrapes show up as
// http spans under the given tracer name.
func NewClient(tracerName string, opts Options) *resty.Client {
	client := resty.New()

	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	client.SetHeader("User-Agent", ua)

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 15
	}
	client.SetTimeout(timeout)

	if opts.CookieJar {
		jar, err := cookiejar.New(nil)
		if err == nil {
			client.SetCookieJar(jar)
		}
	}

	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	if opts.Delay > 0 {
		limiter := rate.NewLimiter(rate.Every(opts.Delay), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, tracerName)
	return client
}
