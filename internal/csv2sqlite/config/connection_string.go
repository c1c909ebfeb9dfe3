package config

import (
	"errors"
	"net/url"

	"github.com/ATechAdventurer/csv2sqlite/internal/convert"
)

// connectionString is a parsed NSQLite server connection string used as
// a remote sink.
type connectionString struct {
	Protocol  string
	Host      string
	Port      string
	AuthToken string
}

// String returns the string representation of the connection string
// with the auth token masked.
func (c connectionString) String() string {
	addr := c.Protocol + "://" + c.Host
	if c.Port != "" {
		addr += ":" + c.Port
	}
	if c.AuthToken == "" {
		return addr
	}
	return addr + "?authToken=****"
}

// parseConnectionString parses the given NSQLite connection string.
func parseConnectionString(raw string) (connectionString, error) {
	parsedURL, err := url.Parse(raw)
	if err != nil {
		return connectionString{}, err
	}

	protocol := parsedURL.Scheme
	if protocol != "http" && protocol != "https" {
		return connectionString{}, errors.New("invalid protocol, must be http or https")
	}

	host := parsedURL.Hostname()
	if host == "" {
		return connectionString{}, errors.New("missing host")
	}

	return connectionString{
		Protocol:  protocol,
		Host:      host,
		Port:      parsedURL.Port(),
		AuthToken: parsedURL.Query().Get("authToken"),
	}, nil
}

// RedactSinkPath returns the sink path safe for printing: database file
// paths are returned as is and connection strings get their auth token
// masked.
func RedactSinkPath(path string) string {
	if !convert.IsRemoteSink(path) {
		return path
	}
	cs, err := parseConnectionString(path)
	if err != nil {
		return path
	}
	return cs.String()
}
