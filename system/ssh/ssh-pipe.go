package ssh

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/RasseTheBoy/ufw-tui/system/local"
	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// InputSSH prompts for the connection details of the remote host before the
// TUI starts, then opens the session the gateway will run ufw through.
func InputSSH() (*ssh.Client, error) {
	reader := bufio.NewReader(os.Stdin)

	host := readRequired(reader, "Host: ")
	portStr := readLine(reader, "Port (22): ")
	port := 22
	if portStr != "" {
		p, err := strconv.ParseInt(portStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid port: %v", err)
		}
		port = int(p)
	}
	user := readRequired(reader, "User: ")

	return Connect(host, user, port)
}

func Connect(host, user string, port int) (*ssh.Client, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	khPath := findKnownHostsPath()

	if err := ensureKnownHostsExists(khPath); err != nil {
		return nil, fmt.Errorf("cannot ensure known_hosts file exists: %w", err)
	}

	baseHK, err := knownhosts.New(khPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create knownhosts callback: %w", err)
	}

	cfg := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{ssh.PasswordCallback(func() (string, error) {
			fmt.Print("SSH password: ")
			pwd, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			return strings.TrimSpace(pwd), nil
		})},
		HostKeyCallback: trustOnFirstUse(baseHK, khPath),
		Timeout:         time.Second * 12,
	}

	client, err := dialSSH(addr, cfg, time.Second*7)
	if err != nil {
		return nil, err
	}

	GlobalClient = client
	GlobalHost = host
	return client, nil
}

func dialSSH(addr string, cfg *ssh.ClientConfig, connectTimeout time.Duration) (*ssh.Client, error) {
	conn, err := net.DialTimeout("tcp", addr, connectTimeout)
	if err != nil {
		return nil, fmt.Errorf("unable to reach %s: %w", addr, err)
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return ssh.NewClient(sshConn, chans, reqs), nil
}

// trustOnFirstUse wraps the knownhosts callback: an unknown host key may be
// accepted interactively and is then recorded, a changed key is always
// refused.
func trustOnFirstUse(base ssh.HostKeyCallback, khPath string) ssh.HostKeyCallback {
	return func(hostname string, remote net.Addr, key ssh.PublicKey) error {
		err := base(hostname, remote, key)
		if err == nil {
			return nil
		}

		var keyErr *knownhosts.KeyError
		if !errors.As(err, &keyErr) {
			return err
		}
		if len(keyErr.Want) > 0 {
			return fmt.Errorf("host key for %s has CHANGED, refusing to connect: %w", hostname, err)
		}

		fmt.Printf("Unknown host %s with key fingerprint %s\n", hostname, ssh.FingerprintSHA256(key))
		fmt.Print("Trust this host and record its key? (y/N) ")
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if strings.TrimSpace(answer) != "y" {
			return errors.New("host key not trusted")
		}

		return appendKnownHost(khPath, hostname, remote, key)
	}
}

func appendKnownHost(khPath, hostname string, remote net.Addr, key ssh.PublicKey) error {
	file, err := os.OpenFile(khPath, os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return fmt.Errorf("cannot open known_hosts for writing: %w", err)
	}
	defer file.Close()

	addrs := []string{hostname}
	if remote != nil && remote.String() != hostname {
		addrs = append(addrs, remote.String())
	}
	_, err = fmt.Fprintln(file, knownhosts.Line(addrs, key))
	return err
}

func findKnownHostsPath() string {
	home := local.GlobalUserHomeDir
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".ssh", "known_hosts")
}

func ensureKnownHostsExists(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	return file.Close()
}

func readLine(reader *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	text, _ := reader.ReadString('\n')
	return strings.TrimSpace(text)
}

func readRequired(reader *bufio.Reader, prompt string) string {
	for {
		val := readLine(reader, prompt)
		if val != "" {
			return val
		}
		fmt.Println("This field is required. Please enter a value: ")
	}
}
