package jsonrpc

import (
	"net"
	"net/http"
	"strings"

	"starledger/logx"
)

// JSON-RPC Method name constants
const (
	// Chain methods
	MethodChainInitialize        = "chain.initialize"
	MethodChainGetBlockByHash    = "chain.getblockbyhash"
	MethodChainGetBlockByHeight  = "chain.getblockbyheight"
	MethodChainGetStarsByAddress = "chain.getstarsbyaddress"
	MethodChainValidate          = "chain.validate"

	// Ownership methods
	MethodOwnershipRequestChallenge = "ownership.requestchallenge"
	MethodOwnershipSubmitStar       = "ownership.submitstar"

	// Health methods
	MethodHealthCheck = "health.check"
)

func extractClientIPFromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	logx.Debug("RPC", "RemoteAddr:", r.RemoteAddr)
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && net.ParseIP(host) != nil {
		return host
	}
	return "unknown"
}
