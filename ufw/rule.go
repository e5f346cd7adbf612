package ufw

import (
	"fmt"
	"strconv"
)

type Protocol string

const (
	ProtoAny Protocol = "any"
	ProtoTCP Protocol = "tcp"
	ProtoUDP Protocol = "udp"
)

type Action string

const (
	ActionAllow Action = "allow"
	ActionDeny  Action = "deny"
)

func (a Action) Invert() Action {
	if a == ActionAllow {
		return ActionDeny
	}
	return ActionAllow
}

// Rule is one single-port packet-filter directive.
type Rule struct {
	Port     int
	Protocol Protocol
	Action   Action
}

// Spec renders the port[/proto] form that "ufw allow" and "ufw deny" accept.
func (r Rule) Spec() string {
	if r.Protocol == ProtoAny {
		return strconv.Itoa(r.Port)
	}
	return fmt.Sprintf("%d/%s", r.Port, r.Protocol)
}

// Command renders the full "allow 8080/tcp" form used in notices and audit entries.
func (r Rule) Command() string {
	return fmt.Sprintf("%s %s", r.Action, r.Spec())
}

func (r Rule) StatusLabel() string {
	if r.Action == ActionAllow {
		return "ALLOWED"
	}
	return "DENIED"
}

// Conflicts reports whether two rules share an identity key. The "any"
// protocol subsumes both tcp and udp on the same port.
func (r Rule) Conflicts(other Rule) bool {
	if r.Port != other.Port {
		return false
	}
	return r.Protocol == other.Protocol || r.Protocol == ProtoAny || other.Protocol == ProtoAny
}

func (r Rule) Inverted() Rule {
	r.Action = r.Action.Invert()
	return r
}
