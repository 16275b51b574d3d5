package backend

import (
	"context"
	"net"
	"time"
)

const DefaultProbeTimeout = time.Second

// IsListening reports whether something accepts TCP connections on the
// endpoint. Refused, unreachable and timed out all read as false.
func IsListening(ctx context.Context, ep Endpoint, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", ep.Addr())
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}
