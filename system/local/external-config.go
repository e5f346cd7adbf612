package local

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/joho/godotenv"
)

var (
	baseCfgPath string
	varDir      string
	auditDir    string
)

const emailListTemplate = `# ufw-tui alert recipients, one address per line.
# Optional sender override: from:alerts@example.com
`

func InitPaths() {
	baseCfgPath = filepath.Join(GlobalUserCfgDir, "ufw-tui")
	varDir = filepath.Join(baseCfgPath, "vars")
	auditDir = filepath.Join(baseCfgPath, "audit")
}

func AuditLogPath() string {
	return filepath.Join(auditDir, "changes.jsonl")
}

// EnsureConfig creates the config tree on first run and loads the env files
// (audit HMAC key, optional SendGrid API key) into the process environment.
func EnsureConfig() error {
	for _, dir := range []string{baseCfgPath, varDir, auditDir} {
		if _, err := os.Stat(dir); err != nil {
			if err = os.MkdirAll(dir, 0700); err != nil {
				return fmt.Errorf("unable to create config dir %s: %w", dir, err)
			}
		}
	}

	emailList := filepath.Join(baseCfgPath, "emails.txt")
	if _, err := os.Stat(emailList); err != nil {
		if err = os.WriteFile(emailList, []byte(emailListTemplate), 0600); err != nil {
			return fmt.Errorf("unable to create email list: %w", err)
		}
	}

	auditKeyEnv := filepath.Join(varDir, "auditkey.env")
	if _, err := os.Stat(auditKeyEnv); err != nil {
		key := make([]byte, 32)
		if _, err = rand.Read(key); err != nil {
			return fmt.Errorf("unable to generate audit key: %w", err)
		}
		env := map[string]string{"UFWTUI_AUDIT_KEY": base64.StdEncoding.EncodeToString(key)}
		if err = godotenv.Write(env, auditKeyEnv); err != nil {
			return fmt.Errorf("unable to save audit key: %w", err)
		}
	}
	if err := godotenv.Load(auditKeyEnv); err != nil {
		return fmt.Errorf("unable to load audit key: %w", err)
	}

	sgEnv := filepath.Join(varDir, "sendgrid.env")
	if _, err := os.Stat(sgEnv); err == nil {
		if err = godotenv.Load(sgEnv); err != nil {
			return fmt.Errorf("unable to load SendGrid env file: %w", err)
		}
	}
	return nil
}

func EditEmailList() error {
	emailList := filepath.Join(baseCfgPath, "emails.txt")
	if _, err := os.Stat(emailList); err != nil {
		return errors.New("unable to find email list, run application normally (without flags) to recreate it")
	}

	if err := newEditor(emailList); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func EditSendgridAPI() error {
	sgEnv := filepath.Join(varDir, "sendgrid.env")
	if _, err := os.Stat(sgEnv); err != nil {
		if err = godotenv.Write(map[string]string{"SENDGRID_API_KEY": ""}, sgEnv); err != nil {
			return fmt.Errorf("unable to create SendGrid env file: %w", err)
		}
	}

	if err := newEditor(sgEnv); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return godotenv.Load(sgEnv)
}

func newEditor(file string) error {
	editor, err := findEditor()
	if err != nil {
		return fmt.Errorf("failed to find editor: %v", err)
	}
	if err = CommandLiveOutput(fmt.Sprintf("%s %s", editor, file)); err != nil {
		return fmt.Errorf("failed to launch editor: %v", err)
	}
	return nil
}

func findEditor() (string, error) {
	possibleEditors := []string{"vim", "nano", "nvim", "vi", "emacs"}
	for _, editor := range possibleEditors {
		if _, err := exec.LookPath(editor); err == nil {
			return editor, nil
		}
	}
	return "", errors.New("please install a terminal text editor")
}
