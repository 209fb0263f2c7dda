package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ipv4", "192.168.1.47", "192.168.1.0"},
		{"ipv4 with port", "10.0.12.9:52311", "10.0.12.0"},
		{"ipv4 mapped ipv6", "::ffff:172.16.4.20", "172.16.4.0"},
		{"ipv6", "2001:db8:85a3::8a2e:370:7334", "2001:db8:85a3::"},
		{"ipv6 with port", "[2001:db8:85a3::1]:8080", "2001:db8:85a3::"},
		{"empty", "", "unknown"},
		{"unknown", "unknown", "unknown"},
		{"garbage", "not-an-ip", "invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnonymizeIP(tt.in))
		})
	}
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***", MaskEmail("no-at-sign"))
	assert.Equal(t, "***", MaskEmail("@example.com"))
}

func TestMaskTail(t *testing.T) {
	assert.Equal(t, "*******4567", MaskTail("+1555234567", 4))
	assert.Equal(t, "***", MaskTail("abc", 4))
	assert.Equal(t, "", MaskTail("", 4))
}
