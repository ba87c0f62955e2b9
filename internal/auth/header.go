package auth

import (
	"encoding/base64"
	"strings"
)

const (
	schemeBearer = "Bearer"
	schemeBasic  = "Basic"
)

// ParseAuthorizationHeader splits an Authorization header into scheme and
// credential and returns the credential verbatim. The header must consist of
// exactly two space-separated segments and the scheme must match exactly:
// "Bearer" when bearer is true, "Basic" otherwise.
func ParseAuthorizationHeader(header string, bearer bool) (string, error) {
	parts := strings.Split(header, " ")

	prefix := schemeBasic
	if bearer {
		prefix = schemeBearer
	}

	if len(parts) != 2 || parts[0] != prefix {
		return "", ErrMalformedHeader
	}
	return parts[1], nil
}

// DecodeBasicCredentials decodes a base64 basic credential into its email and
// password halves. The decoded text must contain exactly one colon.
func DecodeBasicCredentials(encoded string) (email, password string, err error) {
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrMalformedHeader
	}

	parts := strings.Split(string(decoded), ":")
	if len(parts) != 2 {
		return "", "", ErrMalformedHeader
	}
	return parts[0], parts[1], nil
}
