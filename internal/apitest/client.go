package apitest

import (
	"errors"
	"net"
	"time"

	"github.com/fastygo/trucar/internal/infrastructure/apiclient"
)

// Client returns an API client talking to s.
func (s *Server) Client() *apiclient.Client {
	return apiclient.New(apiclient.Options{
		BaseURL: s.BaseURL(),
		Timeout: 2 * time.Second,
		Dial:    s.Dial,
	})
}

// ErrOffline is what the Offline client's dialer fails with.
var ErrOffline = errors.New("network is unreachable")

// Offline returns a client whose every request fails before reaching a server.
func Offline() *apiclient.Client {
	return apiclient.New(apiclient.Options{
		BaseURL: "http://trucar.test" + Prefix,
		Timeout: time.Second,
		Dial: func(string) (net.Conn, error) {
			return nil, ErrOffline
		},
	})
}
