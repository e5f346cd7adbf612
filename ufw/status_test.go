package ufw

import "testing"

const sampleStatus = `Status: active

     To                         Action      From
     --                         ------      ----
[ 1] 22/tcp                     ALLOW IN    Anywhere
[ 2] 8080                       DENY IN     Anywhere
[ 3] 53/udp                     ALLOW IN    Anywhere
[ 4] Nginx Full                 ALLOW IN    Anywhere
[ 5] 192.168.1.0/24 443/tcp     ALLOW IN    Anywhere
[ 6] 22/tcp (v6)                ALLOW IN    Anywhere (v6)
[ 7] 8080 (v6)                  DENY IN     Anywhere (v6)
`

func TestParseStatus(t *testing.T) {
	rules := ParseStatus(sampleStatus)

	want := []Rule{
		{Port: 22, Protocol: ProtoTCP, Action: ActionAllow},
		{Port: 8080, Protocol: ProtoAny, Action: ActionDeny},
		{Port: 53, Protocol: ProtoUDP, Action: ActionAllow},
	}
	if len(rules) != len(want) {
		t.Fatalf("ParseStatus() = %d rules (%+v), want %d", len(rules), rules, len(want))
	}
	for i := range want {
		if rules[i] != want[i] {
			t.Errorf("rules[%d] = %+v, want %+v", i, rules[i], want[i])
		}
	}
}

func TestParseStatus_InactiveOutput(t *testing.T) {
	if rules := ParseStatus("Status: inactive\n"); len(rules) != 0 {
		t.Errorf("ParseStatus(inactive) = %+v, want none", rules)
	}
}

func TestParseStatus_EmptyRuleTable(t *testing.T) {
	out := "Status: active\n\n     To                         Action      From\n     --                         ------      ----\n"
	if rules := ParseStatus(out); len(rules) != 0 {
		t.Errorf("ParseStatus(no rules) = %+v, want none", rules)
	}
}
