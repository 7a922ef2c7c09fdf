package utils

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"time"

	"github.com/mpapenbr/greenhell-go/log"
)

const DefaultServiceWait = 60 * time.Second

var dbURLRegex = regexp.MustCompile(
	`^postgres(?:ql)?://(?:.*@)?(?P<addr>(?P<host>[^:/?]*)(:(?P<port>\d+))?)(?:[/?].*)?$`)

func WaitForTCP(ctx context.Context, addr string, timeout time.Duration) error {
	timeoutReached := time.Now().Add(timeout)
	start := time.Now()
	log.Debug("wait for tcp connection",
		log.String("addr", addr),
		log.String("timeout", timeout.String()))
	var d net.Dialer
	for time.Now().Before(timeoutReached) {
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err == nil {
			conn.Close()

			log.Debug("tcp connection successful",
				log.String("addr", addr),
				log.String("duration", time.Since(start).String()))
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}
	}
	return fmt.Errorf("%s could not be reached after %v", addr, timeout)
}

// WaitForDB waits until the host of dbURL accepts tcp connections.
// wait is a duration string, invalid values fall back to DefaultServiceWait.
func WaitForDB(ctx context.Context, dbURL, wait string) error {
	timeout, err := time.ParseDuration(wait)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = DefaultServiceWait
	}
	addr := ExtractFromDBURL(dbURL)
	if addr == "" {
		// key/value connection strings are not inspected
		return nil
	}
	return WaitForTCP(ctx, addr, timeout)
}

// ExtractFromDBURL returns host:port of a postgres url. The default port
// is used if the url does not contain one.
func ExtractFromDBURL(url string) string {
	param := resolveRegex(dbURLRegex, url)
	if len(param) == 0 || param["host"] == "" {
		return ""
	}
	if port, ok := param["port"]; ok && port != "" {
		return param["addr"] // if port is found, the addr contains our wanted value
	} else {
		return fmt.Sprintf("%s:5432", param["host"])
	}
}

func resolveRegex(compRegEx *regexp.Regexp, url string) (paramsMap map[string]string) {
	match := compRegEx.FindStringSubmatch(url)
	if match == nil {
		return nil
	}
	paramsMap = make(map[string]string)
	for i, name := range compRegEx.SubexpNames() {
		if i > 0 && name != "" {
			paramsMap[name] = match[i]
		}
	}
	return paramsMap
}
