package ufw

import "testing"

func TestRule_Spec(t *testing.T) {
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Port: 8080, Protocol: ProtoAny, Action: ActionAllow}, "8080"},
		{Rule{Port: 22, Protocol: ProtoTCP, Action: ActionDeny}, "22/tcp"},
		{Rule{Port: 53, Protocol: ProtoUDP, Action: ActionAllow}, "53/udp"},
	}
	for _, tt := range tests {
		if got := tt.rule.Spec(); got != tt.want {
			t.Errorf("Spec() = %q, want %q", got, tt.want)
		}
	}
}

func TestRule_Command(t *testing.T) {
	rule := Rule{Port: 8082, Protocol: ProtoTCP, Action: ActionDeny}
	if got := rule.Command(); got != "deny 8082/tcp" {
		t.Errorf("Command() = %q, want %q", got, "deny 8082/tcp")
	}
}

func TestRule_Conflicts(t *testing.T) {
	tests := []struct {
		a, b Rule
		want bool
	}{
		{Rule{Port: 8080, Protocol: ProtoAny}, Rule{Port: 8080, Protocol: ProtoTCP}, true},
		{Rule{Port: 8080, Protocol: ProtoAny}, Rule{Port: 8080, Protocol: ProtoUDP}, true},
		{Rule{Port: 8080, Protocol: ProtoTCP}, Rule{Port: 8080, Protocol: ProtoAny}, true},
		{Rule{Port: 8080, Protocol: ProtoTCP}, Rule{Port: 8080, Protocol: ProtoTCP}, true},
		{Rule{Port: 8080, Protocol: ProtoAny}, Rule{Port: 8080, Protocol: ProtoAny}, true},
		{Rule{Port: 8080, Protocol: ProtoTCP}, Rule{Port: 8080, Protocol: ProtoUDP}, false},
		{Rule{Port: 8080, Protocol: ProtoAny}, Rule{Port: 8081, Protocol: ProtoAny}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Conflicts(tt.b); got != tt.want {
			t.Errorf("%v.Conflicts(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
		// Conflict detection is symmetric.
		if got := tt.b.Conflicts(tt.a); got != tt.want {
			t.Errorf("%v.Conflicts(%v) = %v, want %v", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestRule_InvertedTwiceRestoresAction(t *testing.T) {
	rule := Rule{Port: 8080, Protocol: ProtoTCP, Action: ActionAllow}
	if rule.Inverted().Action != ActionDeny {
		t.Error("Inverted() of allow should deny")
	}
	if rule.Inverted().Inverted() != rule {
		t.Error("double Inverted() should restore the original rule")
	}
}

func TestRule_StatusLabel(t *testing.T) {
	if got := (Rule{Action: ActionAllow}).StatusLabel(); got != "ALLOWED" {
		t.Errorf("StatusLabel() = %q, want ALLOWED", got)
	}
	if got := (Rule{Action: ActionDeny}).StatusLabel(); got != "DENIED" {
		t.Errorf("StatusLabel() = %q, want DENIED", got)
	}
}
