package utils

import (
	"net"
	"net/url"
	"strings"
)

var privateRanges = []*net.IPNet{
	mustParseCIDR("10.0.0.0/8"),
	mustParseCIDR("172.16.0.0/12"),
	mustParseCIDR("192.168.0.0/16"),
	mustParseCIDR("127.0.0.0/8"),
	mustParseCIDR("169.254.0.0/16"),
	mustParseCIDR("::1/128"),
	mustParseCIDR("fe80::/10"),
	mustParseCIDR("fc00::/7"),
}

// IsAllowedOrigin checks whether an Origin header value should be trusted.
// It allows localhost, private/RFC1918 IPs, link-local IPs, .local hostnames,
// and single-label hostnames (no dots). Public internet origins are blocked.
func IsAllowedOrigin(origin string) bool {
	if origin == "" {
		return false
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}

	hostname := parsed.Hostname()

	if hostname == "localhost" {
		return true
	}
	if strings.HasSuffix(hostname, ".local") {
		return true
	}
	if !strings.Contains(hostname, ".") {
		return true
	}

	if ip := net.ParseIP(hostname); ip != nil {
		return isPrivateIP(ip)
	}
	return false
}

func isPrivateIP(ip net.IP) bool {
	for _, network := range privateRanges {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}

func mustParseCIDR(s string) *net.IPNet {
	_, network, err := net.ParseCIDR(s)
	if err != nil {
		panic(err)
	}
	return network
}
