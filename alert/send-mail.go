package alert

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const listPath = ".config/ufw-tui/emails.txt"
const defaultFrom = "ufw-tui@localhost"
const batchSize = 900

type recipientList struct {
	From string
	To   []string
}

func loadEmails() (recipientList, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return recipientList{}, fmt.Errorf("unable to determine user home directory: %w", err)
	}

	file, err := os.Open(filepath.Join(home, listPath))
	if err != nil {
		return recipientList{}, fmt.Errorf("unable to open email list: %w", err)
	}
	defer file.Close()

	return parseEmails(file), nil
}

func parseEmails(r io.Reader) recipientList {
	list := recipientList{From: defaultFrom}
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "from:"); ok {
			from := strings.TrimSpace(rest)
			if emailRegex.MatchString(strings.ToLower(from)) {
				list.From = from
			} else {
				log.Printf("WARNING: Skipping invalid from address: %s", from)
			}
			continue
		}

		low := strings.ToLower(line)
		if !emailRegex.MatchString(low) {
			log.Printf("WARNING: Skipping invalid email: %s", line)
			continue
		}
		if _, ok := seen[low]; ok {
			continue
		}
		seen[low] = struct{}{}
		list.To = append(list.To, low)
	}
	return list
}

func batches[T any](in []T, n int) [][]T {
	if n <= 0 {
		return [][]T{in}
	}
	var out [][]T
	for i := 0; i < len(in); i += n {
		j := i + n
		if j > len(in) {
			j = len(in)
		}
		out = append(out, in[i:j])
	}
	return out
}

// SendMail pushes one plain-text message to every configured recipient.
func SendMail(subject, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return errors.New("unable to find SendGrid API key")
	}

	list, err := loadEmails()
	if err != nil {
		return err
	}
	if len(list.To) == 0 {
		return errors.New("no alert recipients configured")
	}

	client := sendgrid.NewSendClient(apiKey)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	for _, batch := range batches(list.To, batchSize) {
		message := mail.NewV3Mail()
		message.SetFrom(mail.NewEmail("ufw-tui", list.From))
		message.Subject = subject
		message.AddContent(mail.NewContent("text/plain", body))

		personalization := mail.NewPersonalization()
		personalization.AddTos(mail.NewEmail("", list.From))
		for _, addr := range batch {
			personalization.AddBCCs(mail.NewEmail("", addr))
		}
		message.AddPersonalizations(personalization)

		resp, err := client.SendWithContext(ctx, message)
		if err != nil {
			return fmt.Errorf("unable to send alert email: %w", err)
		}
		if resp.StatusCode >= 300 {
			return fmt.Errorf("alert email rejected with status %d: %s", resp.StatusCode, resp.Body)
		}
	}
	return nil
}
