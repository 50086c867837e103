// Package common contains shared constants and sentinel errors used across
// parkgate components.
package common

// ProxyBasePath is the same-origin path prefix the gateway serves and the
// client dials; everything after it is relayed to the parking backend.
const ProxyBasePath = "/api/proxy"

// AuthorizationHeader carries the bearer access token on outbound requests.
const AuthorizationHeader = "Authorization"
