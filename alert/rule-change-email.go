package alert

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/RasseTheBoy/ufw-tui/ufw"
)

type Change struct {
	Verb string // added | toggled | deleted
	Rule ufw.Rule
}

// NotifySubmission emails a summary of the changes one editor action pushed
// through the gateway. Best effort: missing API key or recipients simply
// means no mail, and failures are logged rather than surfaced to the
// editor.
func NotifySubmission(host string, changes []Change) {
	if os.Getenv("SENDGRID_API_KEY") == "" || len(changes) == 0 {
		return
	}

	subject := fmt.Sprintf("ufw-tui: %d rule change(s) on %s", len(changes), host)
	if err := SendMail(subject, submissionBody(host, changes)); err != nil {
		log.Printf("WARNING: Failed to send rule change alert: %v", err)
	}
}

func submissionBody(host string, changes []Change) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following firewall changes were applied on %s at %s:\n\n",
		host, time.Now().Format("2006-01-02 15:04:05"))
	for _, change := range changes {
		fmt.Fprintf(&b, "  %s %s\n", change.Verb, change.Rule.Command())
	}
	b.WriteString("\nThis message was sent automatically by ufw-tui.\n")
	return b.String()
}
