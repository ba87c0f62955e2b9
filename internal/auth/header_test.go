package auth

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		bearer  bool
		want    string
		wantErr bool
	}{
		{name: "bearer ok", header: "Bearer abc.def.ghi", bearer: true, want: "abc.def.ghi"},
		{name: "basic ok", header: "Basic xyz", bearer: false, want: "xyz"},
		{name: "basic where bearer expected", header: "Basic xyz", bearer: true, wantErr: true},
		{name: "bearer where basic expected", header: "Bearer xyz", bearer: false, wantErr: true},
		{name: "three segments", header: "Bearer a b", bearer: true, wantErr: true},
		{name: "no space", header: "Bearerabc", bearer: true, wantErr: true},
		{name: "lowercase scheme", header: "bearer abc", bearer: true, wantErr: true},
		{name: "empty", header: "", bearer: true, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAuthorizationHeader(tc.header, tc.bearer)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrMalformedHeader)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeBasicCredentials(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("user@example.com:secret"))

	email, password, err := DecodeBasicCredentials(encoded)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", email)
	assert.Equal(t, "secret", password)
}

func TestDecodeBasicCredentialsRejectsBadInput(t *testing.T) {
	tests := []struct {
		name    string
		encoded string
	}{
		{name: "no colon", encoded: base64.StdEncoding.EncodeToString([]byte("nocolon"))},
		{name: "two colons", encoded: base64.StdEncoding.EncodeToString([]byte("a:b:c"))},
		{name: "not base64", encoded: "%%%not-base64%%%"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := DecodeBasicCredentials(tc.encoded)
			assert.ErrorIs(t, err, ErrMalformedHeader)
		})
	}
}
