package scrape

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/mpapenbr/greenhell-go/log"
)

var tracer = otel.Tracer("greenhell.scrape")

const (
	DefaultTimeout = 10 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"
)

// Fetcher returns the parsed document for an url
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// FetchError is returned when a page could not be retrieved.
type FetchError struct {
	URL        string
	StatusCode int // 0 if no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type RestyFetcher struct {
	client *resty.Client
	l      *log.Logger
}

type FetcherOption func(f *RestyFetcher)

// WithTimeout bounds every single request. Values <= 0 are ignored.
func WithTimeout(timeout time.Duration) FetcherOption {
	return func(f *RestyFetcher) {
		if timeout > 0 {
			f.client.SetTimeout(timeout)
		}
	}
}

func WithLogger(l *log.Logger) FetcherOption {
	return func(f *RestyFetcher) {
		f.l = l
	}
}

func NewFetcher(opts ...FetcherOption) *RestyFetcher {
	client := resty.New()
	client.SetHeader("user-agent", userAgent)
	client.SetHeader("accept", "text/html,application/xhtml+xml")
	client.SetTimeout(DefaultTimeout)

	ret := &RestyFetcher{client: client, l: log.Default().Named("scrape")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (f *RestyFetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "fetch")
	defer span.End()
	span.SetAttributes(attribute.String("url", url))

	start := time.Now()
	res, err := f.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return nil, &FetchError{URL: url, Err: err}
	}
	f.l.Debug("page fetched",
		log.String("url", url),
		log.Int("status", res.StatusCode()),
		log.Duration("duration", time.Since(start)))

	if res.StatusCode() != http.StatusOK {
		span.SetStatus(codes.Error, "unexpected status")
		return nil, &FetchError{
			URL:        url,
			StatusCode: res.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", res.Status()),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, &FetchError{URL: url, Err: err}
	}
	return doc, nil
}

// ParseDocument is a helper to create a document from raw html
func ParseDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewBufferString(html))
}
