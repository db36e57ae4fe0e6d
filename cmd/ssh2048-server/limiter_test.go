package main

import (
	"net"
	"testing"
)

func TestConnectionLimiter(t *testing.T) {
	limiter := newConnectionLimiter(2)
	ip := "10.0.0.1"

	if _, ok := limiter.acquire(ip); !ok {
		t.Fatal("first connection must be accepted")
	}
	if _, ok := limiter.acquire(ip); !ok {
		t.Fatal("second connection must be accepted")
	}
	if current, ok := limiter.acquire(ip); ok || current != 2 {
		t.Fatalf("third connection must be denied, got ok=%v current=%d", ok, current)
	}
	if _, ok := limiter.acquire("10.0.0.2"); !ok {
		t.Error("limits are per IP")
	}

	limiter.release(ip)
	if limiter.count(ip) != 1 {
		t.Errorf("expected 1 connection after release, got %d", limiter.count(ip))
	}
	limiter.release(ip)
	if _, tracked := limiter.ipCounter[ip]; tracked {
		t.Error("IPs without connections must be forgotten")
	}
}

func TestGetIP(t *testing.T) {
	tcp := &net.TCPAddr{IP: net.ParseIP("192.168.1.5"), Port: 4242}
	if got := getIP(tcp); got != "192.168.1.5" {
		t.Errorf("getIP(tcp) = %q", got)
	}

	unix := &net.UnixAddr{Name: "/tmp/sock", Net: "unix"}
	if got := getIP(unix); got != "/tmp/sock" {
		t.Errorf("getIP(unix) = %q", got)
	}
}
