package common

// AccessTokenHeaderName is the HTTP header that carries the session token.
// The existing web client sends the raw token in the Authorization header
// without a scheme prefix, so the value is treated as an opaque string.
const AccessTokenHeaderName = "Authorization"
