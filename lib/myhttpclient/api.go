package myhttpclient

import (
	"context"
	"time"
)

//go:generate mockgen -source=api.go -package myhttpclient -destination httpsender_mock.go HTTPSender
type HTTPSender interface {
	Send(c context.Context, method string, url string, body []byte) (int, []byte, error)
}

// Credentials are attached to every request when non-empty.
type Credentials struct {
	Token    string
	DeviceID string
}

func New(credentials Credentials, timeout time.Duration) HTTPSender {
	return newJSONHTTPClient(credentials, timeout)
}
