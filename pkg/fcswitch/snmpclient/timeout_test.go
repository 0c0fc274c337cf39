package snmpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vpbank/check_fcswitch/models"
)

// netTimeout is a net.Error whose Timeout result is fixed.
type netTimeout struct{ timeout bool }

func (e netTimeout) Error() string { return "i/o failure" }

func (e netTimeout) Timeout() bool { return e.timeout }

func (e netTimeout) Temporary() bool { return false }

var _ net.Error = netTimeout{}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"net.Error timeout", netTimeout{timeout: true}, true},
		{"wrapped net.Error timeout", fmt.Errorf("read udp: %w", netTimeout{timeout: true}), true},
		{"net.Error without timeout", netTimeout{timeout: false}, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped deadline exceeded", fmt.Errorf("get: %w", context.DeadlineExceeded), true},
		{"gosnmp request timeout", errors.New("request timeout (after 2 retries)"), true},
		{"connection refused", errors.New("read udp 127.0.0.1:161: connection refused"), false},
		{"cancelled", context.Canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isTimeout(tt.err))
		})
	}
}

func TestSNMPClientWrap(t *testing.T) {
	c := NewSNMPClient(models.Endpoint{Host: "192.0.2.10", Community: "public"}, nil, nil)

	err := c.wrap("get", ".1.3.6.1.2.1.1.1.0", errors.New("request timeout (after 2 retries)"))
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Contains(t, err.Error(), "192.0.2.10")

	refused := errors.New("connection refused")
	err = c.wrap("walk", ".1.3.6.1.2.1.2.2.1.2", refused)
	assert.ErrorIs(t, err, refused)
	assert.NotErrorIs(t, err, ErrTimeout)
}

func TestSNMPClientCancelledContext(t *testing.T) {
	c := NewSNMPClient(models.Endpoint{Host: "192.0.2.10"}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, ".1.3.6.1.2.1.1.1.0")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = c.Walk(ctx, ".1.3.6.1.2.1.2.2.1.2")
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoError(t, c.Close())
}
