package main

import (
	"fmt"
	"net"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// connectionLimiter caps concurrent SSH sessions per remote IP.
type connectionLimiter struct {
	maxConnectionsPerIP int

	ipMutex   sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(maxConnectionsPerIP int) *connectionLimiter {
	return &connectionLimiter{
		maxConnectionsPerIP: maxConnectionsPerIP,
		ipCounter:           make(map[string]int),
	}
}

func getIP(addr net.Addr) string {
	if tcpAddr, ok := addr.(*net.TCPAddr); ok {
		return tcpAddr.IP.String()
	}
	return addr.String()
}

// acquire reserves a slot for ip and reports the count before the attempt.
func (l *connectionLimiter) acquire(ip string) (int, bool) {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()

	current := l.ipCounter[ip]
	if current >= l.maxConnectionsPerIP {
		return current, false
	}
	l.ipCounter[ip]++
	return current, true
}

func (l *connectionLimiter) release(ip string) {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()

	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
}

func (l *connectionLimiter) count(ip string) int {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()
	return l.ipCounter[ip]
}

func (l *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s.RemoteAddr())

		current, ok := l.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", current+1, "current_limit", l.maxConnectionsPerIP)
			wish.Fatalln(s, fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.", current+1, l.maxConnectionsPerIP))
			return
		}
		defer func() {
			l.release(ip)
			log.Info("Connection closed", "ip", ip, "count_after", l.count(ip))
		}()

		log.Info("Connection accepted", "ip", ip, "current_count", current+1, "limit", l.maxConnectionsPerIP)
		next(s)
	}
}
