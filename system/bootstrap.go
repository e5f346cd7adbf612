package system

import (
	"encoding/base64"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/RasseTheBoy/ufw-tui/alert"
	"github.com/RasseTheBoy/ufw-tui/audit"
	"github.com/RasseTheBoy/ufw-tui/system/local"
	"github.com/RasseTheBoy/ufw-tui/system/ssh"
	"github.com/RasseTheBoy/ufw-tui/tui"
	"github.com/RasseTheBoy/ufw-tui/ufw"
)

const Version = "1.0.0"

var skipTermCheck = flag.Bool("skip-term-check", false, "Skip the terminal size check")
var sshMode = flag.Bool("ssh", false, "Manage UFW on a remote host over SSH")
var email = flag.Bool("email", false, "Edit the alert recipient list")
var sendgridKey = flag.Bool("sendgrid", false, "Add/Edit the SendGrid API key")
var emailTest = flag.Bool("emailtest", false, "Test if emailing works")
var verifyAudit = flag.Bool("verify-audit", false, "Verify the audit log chain and exit")
var help = flag.Bool("help", false, "Show help")
var version = flag.Bool("version", false, "Show version")

func RunTUIMode() {
	flag.Parse()
	local.InitPaths()

	if *help {
		flag.PrintDefaults()
		return
	}
	if *version {
		fmt.Println(Version)
		return
	}
	if *email {
		if err := local.EditEmailList(); err != nil {
			fmt.Println(err)
		}
		return
	}
	if *sendgridKey {
		if err := local.EditSendgridAPI(); err != nil {
			fmt.Println(err)
		}
		return
	}

	if err := local.EnsureConfig(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if *verifyAudit {
		key, err := auditKey()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err = audit.Verify(local.AuditLogPath(), key); err != nil {
			fmt.Println("Audit log verification FAILED:", err)
			os.Exit(1)
		}
		fmt.Println("Audit log verified OK")
		return
	}
	if *emailTest {
		if err := alert.SendMail("ufw-tui test email", "Emailing from ufw-tui works."); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("Test email sent!")
		return
	}

	if *sshMode {
		client, err := ssh.InputSSH()
		if err != nil {
			fmt.Println("SSH Connection Failed:", err)
			return
		}
		defer client.Close()
		ssh.SetSSHStatus(true)
	}

	if !*skipTermCheck && !local.TermCheck() {
		return
	}

	auditLog := openAuditLog()
	if auditLog != nil {
		defer auditLog.Close()
	}

	if err := tui.RunTUI(ufw.CommandGateway{}, auditLog); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func auditKey() ([]byte, error) {
	raw := strings.TrimSpace(os.Getenv("UFWTUI_AUDIT_KEY"))
	if raw == "" {
		return nil, errors.New("UFWTUI_AUDIT_KEY not set, run the application normally once to generate it")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Hand-edited keys may not be base64; use them as-is.
		return []byte(raw), nil
	}
	return key, nil
}

// openAuditLog never blocks the editor: a missing key or unwritable log
// only disables auditing with a warning.
func openAuditLog() *audit.Log {
	key, err := auditKey()
	if err != nil {
		fmt.Println("WARNING: audit logging disabled:", err)
		return nil
	}
	auditLog, err := audit.Open(local.AuditLogPath(), key)
	if err != nil {
		fmt.Println("WARNING: audit logging disabled:", err)
		return nil
	}
	return auditLog
}
