package alert

import (
	"strings"
	"testing"
)

func TestParseEmails(t *testing.T) {
	input := `# comment line
from: alerts@example.com

ops@example.com
OPS@example.com
not-an-email
second@example.org
`
	list := parseEmails(strings.NewReader(input))

	if list.From != "alerts@example.com" {
		t.Errorf("From = %q, want alerts@example.com", list.From)
	}
	want := []string{"ops@example.com", "second@example.org"}
	if len(list.To) != len(want) {
		t.Fatalf("To = %v, want %v", list.To, want)
	}
	for i := range want {
		if list.To[i] != want[i] {
			t.Errorf("To[%d] = %q, want %q", i, list.To[i], want[i])
		}
	}
}

func TestParseEmails_DefaultFrom(t *testing.T) {
	list := parseEmails(strings.NewReader("ops@example.com\n"))
	if list.From != defaultFrom {
		t.Errorf("From = %q, want default %q", list.From, defaultFrom)
	}
}

func TestSubmissionBody(t *testing.T) {
	body := submissionBody("testhost", []Change{})
	if !strings.Contains(body, "testhost") {
		t.Errorf("body missing host name:\n%s", body)
	}
}
