package hostutil

import "testing"

func TestIsIPAddress_IPv4(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"192.168.1.1", true},
		{"255.255.255.255", true},
		{"0.0.0.0", true},
		{"256.1.1.1", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{"01a.2.3.4", false},
	}
	for _, c := range cases {
		if got := IsIPAddress(c.host); got != c.want {
			t.Errorf("IsIPAddress(%q) = %v, want %v", c.host, got, c.want)
		}
	}
}

func TestIsIPAddress_IPv6(t *testing.T) {
	cases := []struct {
		host string
		want bool
	}{
		{"2001:0db8:0000:0000:0000:ff00:0042:8329", true},
		{"fe80:0:0:0:0:0:0:1", true},
		{"::1", true},
		{"::", true},
		// Compressed forms other than the two shorthand literals are not
		// expanded and fail classification.
		{"2001:db8::1", false},
		{"fe80::", false},
	}
	for _, c := range cases {
		if got := IsIPAddress(c.host); got != c.want {
			t.Errorf("IsIPAddress(%q) = %v, want %v", c.host, got, c.want)
		}
	}
}

func TestIsIPAddress_Domains(t *testing.T) {
	for _, host := range []string{"bilibili.com", "localhost", "example.com:443", ""} {
		if IsIPAddress(host) {
			t.Errorf("IsIPAddress(%q) = true, want false", host)
		}
	}
}

func TestExtractRootDomain(t *testing.T) {
	cases := []struct {
		host string
		want string
	}{
		{"www.bilibili.com:443", "bilibili.com"},
		{"www.bilibili.com", "bilibili.com"},
		{"bilibili.com", "bilibili.com"},
		{"a.b.example.co", "example.co"}, // last two labels only
		{"192.168.1.1", ""},
		{"192.168.1.1:8080", ""},
		{"::1", ""},
		{"localhost", ""}, // no TLD
		{"localhost:9090", ""},
		{"", ""},
		{"under_score.com", ""}, // invalid label character
	}
	for _, c := range cases {
		if got := ExtractRootDomain(c.host); got != c.want {
			t.Errorf("ExtractRootDomain(%q) = %q, want %q", c.host, got, c.want)
		}
	}
}

func TestExtractRootDomain_CompressedIPv6FailsBothStages(t *testing.T) {
	// Not classified as an IP, then fails the domain pattern: same outcome.
	if got := ExtractRootDomain("2001:db8::1"); got != "" {
		t.Errorf("ExtractRootDomain(compressed IPv6) = %q, want empty", got)
	}
}
