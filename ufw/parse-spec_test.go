package ufw

import "testing"

func TestParseSpec_SingleTokens(t *testing.T) {
	tests := []struct {
		token string
		want  Rule
	}{
		{"8080", Rule{Port: 8080, Protocol: ProtoAny, Action: ActionAllow}},
		{"!8080", Rule{Port: 8080, Protocol: ProtoAny, Action: ActionDeny}},
		{"8081/udp", Rule{Port: 8081, Protocol: ProtoUDP, Action: ActionAllow}},
		{"!8082/tcp", Rule{Port: 8082, Protocol: ProtoTCP, Action: ActionDeny}},
		{"443/TCP", Rule{Port: 443, Protocol: ProtoTCP, Action: ActionAllow}},
		{"1", Rule{Port: 1, Protocol: ProtoAny, Action: ActionAllow}},
		{"65535", Rule{Port: 65535, Protocol: ProtoAny, Action: ActionAllow}},
	}

	for _, tt := range tests {
		res := ParseSpec(tt.token)
		if len(res.Errors) != 0 {
			t.Errorf("ParseSpec(%q) errors = %v, want none", tt.token, res.Errors)
			continue
		}
		if len(res.Candidates) != 1 {
			t.Errorf("ParseSpec(%q) candidates = %d, want 1", tt.token, len(res.Candidates))
			continue
		}
		if res.Candidates[0] != tt.want {
			t.Errorf("ParseSpec(%q) = %+v, want %+v", tt.token, res.Candidates[0], tt.want)
		}
	}
}

func TestParseSpec_InvalidTokens(t *testing.T) {
	tests := []struct {
		token  string
		reason string
	}{
		{"0", "invalid port"},
		{"65536", "invalid port"},
		{"-1", "invalid port"},
		{"+8080", "invalid port"},
		{"abc", "invalid port"},
		{"!", "invalid port"},
		{"/tcp", "invalid port"},
		{"8080/icmp", "invalid protocol"},
		{"8080/", "invalid protocol"},
	}

	for _, tt := range tests {
		res := ParseSpec(tt.token)
		if len(res.Candidates) != 0 {
			t.Errorf("ParseSpec(%q) candidates = %v, want none", tt.token, res.Candidates)
			continue
		}
		if len(res.Errors) != 1 {
			t.Errorf("ParseSpec(%q) errors = %d, want 1", tt.token, len(res.Errors))
			continue
		}
		if res.Errors[0].Token != tt.token || res.Errors[0].Reason != tt.reason {
			t.Errorf("ParseSpec(%q) error = %+v, want reason %q", tt.token, res.Errors[0], tt.reason)
		}
	}
}

func TestParseSpec_AllowLine(t *testing.T) {
	res := ParseSpec("8080 8081/udp 8082/tcp 8083")
	want := []Rule{
		{Port: 8080, Protocol: ProtoAny, Action: ActionAllow},
		{Port: 8081, Protocol: ProtoUDP, Action: ActionAllow},
		{Port: 8082, Protocol: ProtoTCP, Action: ActionAllow},
		{Port: 8083, Protocol: ProtoAny, Action: ActionAllow},
	}
	assertCandidates(t, res, want)
}

func TestParseSpec_MixedPolarityLine(t *testing.T) {
	res := ParseSpec("!8080 8081/udp !8082/tcp 8083")
	want := []Rule{
		{Port: 8080, Protocol: ProtoAny, Action: ActionDeny},
		{Port: 8081, Protocol: ProtoUDP, Action: ActionAllow},
		{Port: 8082, Protocol: ProtoTCP, Action: ActionDeny},
		{Port: 8083, Protocol: ProtoAny, Action: ActionAllow},
	}
	assertCandidates(t, res, want)
}

func TestParseSpec_EmptyLineIsNoOp(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		res := ParseSpec(line)
		if len(res.Candidates) != 0 || len(res.Errors) != 0 {
			t.Errorf("ParseSpec(%q) = %+v, want empty result", line, res)
		}
	}
}

func TestParseSpec_BadTokenDoesNotHideGoodOnes(t *testing.T) {
	res := ParseSpec("99999 8080")
	if len(res.Candidates) != 1 || res.Candidates[0].Port != 8080 {
		t.Errorf("candidates = %+v, want just port 8080", res.Candidates)
	}
	if len(res.Errors) != 1 || res.Errors[0].Token != "99999" {
		t.Errorf("errors = %+v, want just token 99999", res.Errors)
	}
}

func assertCandidates(t *testing.T, res ParseResult, want []Rule) {
	t.Helper()
	if len(res.Errors) != 0 {
		t.Fatalf("errors = %v, want none", res.Errors)
	}
	if len(res.Candidates) != len(want) {
		t.Fatalf("candidates = %d, want %d", len(res.Candidates), len(want))
	}
	for i := range want {
		if res.Candidates[i] != want[i] {
			t.Errorf("candidate[%d] = %+v, want %+v", i, res.Candidates[i], want[i])
		}
	}
}
