package utils

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// ClientIP extracts the client IP address, preferring proxy headers
// over the raw connection address. X-Real-IP is checked first, then
// the first public address in X-Forwarded-For, then gin's own
// resolution of the remote address.
func ClientIP(c *gin.Context) string {
	realIP := strings.TrimSpace(c.Request.Header.Get("X-Real-IP"))
	if realIP != "" && isValidIP(realIP) && !isPrivateIP(net.ParseIP(realIP)) {
		return realIP
	}

	forwarded := c.Request.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		for _, ipStr := range ips {
			candidate := strings.TrimSpace(ipStr)
			if isValidIP(candidate) {
				ip := net.ParseIP(candidate)
				if !isPrivateIP(ip) && !isLoopback(candidate) {
					return candidate
				}
			}
		}
		// All hops were private, take the nearest one
		if len(ips) > 0 {
			candidate := strings.TrimSpace(ips[0])
			if isValidIP(candidate) {
				return candidate
			}
		}
	}

	return c.ClientIP()
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}

func isLoopback(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}

func isPrivateIP(ip net.IP) bool {
	if ip == nil {
		return false
	}

	privateRanges := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
	}

	for _, cidr := range privateRanges {
		_, subnet, _ := net.ParseCIDR(cidr)
		if subnet.Contains(ip) {
			return true
		}
	}

	return false
}
