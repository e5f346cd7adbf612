package ufw

import (
	"fmt"

	"github.com/RasseTheBoy/ufw-tui/system/local"
	"github.com/RasseTheBoy/ufw-tui/system/ssh"
)

// Gateway is the boundary to the firewall engine. Every call is synchronous
// and atomic per rule: either the engine's configuration changed and the
// call succeeded, or it is untouched and an error comes back.
type Gateway interface {
	ListRules() ([]Rule, error)
	ApplyAdd(rule Rule) error
	ApplyToggle(rule Rule) (Rule, error)
	ApplyDelete(rule Rule) error
}

type GatewayError struct {
	Op   string
	Rule Rule
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("ufw %s %s failed: %v", e.Op, e.Rule.Spec(), e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }

// CommandGateway drives the ufw binary through a bash pipe, on this host or
// over the established SSH session when SSH mode is active.
type CommandGateway struct{}

func (CommandGateway) run(cmd string) (string, error) {
	if ssh.GetSSHStatus() {
		if err := ssh.Checkup(); err != nil {
			return "", err
		}
		return ssh.CommandStream(cmd)
	}
	return local.RunCommand(cmd)
}

func (g CommandGateway) ListRules() ([]Rule, error) {
	out, err := g.run("ufw status numbered | grep -v \"(v6)\"")
	if err != nil {
		return nil, fmt.Errorf("unable to read ufw status: %w", err)
	}
	return ParseStatus(out), nil
}

func (g CommandGateway) ApplyAdd(rule Rule) error {
	if _, err := g.run(fmt.Sprintf("ufw %s", rule.Command())); err != nil {
		return &GatewayError{Op: string(rule.Action), Rule: rule, Err: err}
	}
	return nil
}

// ApplyToggle reapplies the rule with its action inverted; ufw updates the
// existing rule for the same port/protocol in place.
func (g CommandGateway) ApplyToggle(rule Rule) (Rule, error) {
	flipped := rule.Inverted()
	if _, err := g.run(fmt.Sprintf("ufw %s", flipped.Command())); err != nil {
		return Rule{}, &GatewayError{Op: "toggle", Rule: rule, Err: err}
	}
	return flipped, nil
}

func (g CommandGateway) ApplyDelete(rule Rule) error {
	if _, err := g.run(fmt.Sprintf("ufw delete %s", rule.Command())); err != nil {
		return &GatewayError{Op: "delete", Rule: rule, Err: err}
	}
	return nil
}
