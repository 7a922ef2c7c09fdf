package completion

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/mpapenbr/greenhell-go/log"
)

const DefaultRetryInterval = 500 * time.Millisecond

type retryCompleter struct {
	next       Completer
	maxRetries uint64
	interval   time.Duration
}

// WithRetry wraps c so that failed calls are attempted up to maxRetries more
// times with exponential backoff. API errors which are not retryable end the
// sequence immediately. With maxRetries == 0 c is returned unchanged.
func WithRetry(c Completer, maxRetries uint64, initialInterval time.Duration) Completer {
	if maxRetries == 0 {
		return c
	}
	if initialInterval <= 0 {
		initialInterval = DefaultRetryInterval
	}
	return &retryCompleter{next: c, maxRetries: maxRetries, interval: initialInterval}
}

func (r *retryCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	l := log.GetFromContext(ctx).Named("completion")
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.interval

	var ret string
	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		var err error
		ret, err = r.next.Complete(ctx, prompt)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return backoff.Permanent(err)
		}
		l.Warn("completion attempt failed",
			log.Int("attempt", attempt),
			log.ErrorField(err))
		return err
	}, backoff.WithContext(backoff.WithMaxRetries(b, r.maxRetries), ctx))
	return ret, err
}
