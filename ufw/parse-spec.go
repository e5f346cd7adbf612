package ufw

import (
	"fmt"
	"strconv"
	"strings"
)

type TokenError struct {
	Token  string
	Reason string
}

func (e TokenError) Error() string {
	return fmt.Sprintf("%s: %s", e.Token, e.Reason)
}

// ParseResult carries the candidates of one submission line. Each token is
// classified independently; a bad token never hides the good ones.
type ParseResult struct {
	Candidates []Rule
	Errors     []TokenError
}

// ParseSpec parses a whitespace-separated line of [!]<port>[/<protocol>]
// tokens. A leading "!" denies, absence allows; an omitted protocol suffix
// means the rule is unqualified. An empty line is a valid no-op.
func ParseSpec(line string) ParseResult {
	var res ParseResult
	for _, token := range strings.Fields(line) {
		rule, terr := parseToken(token)
		if terr != nil {
			res.Errors = append(res.Errors, *terr)
			continue
		}
		res.Candidates = append(res.Candidates, rule)
	}
	return res
}

func parseToken(token string) (Rule, *TokenError) {
	rest := token
	action := ActionAllow
	if strings.HasPrefix(rest, "!") {
		action = ActionDeny
		rest = rest[1:]
	}

	portPart, protoPart, hasProto := strings.Cut(rest, "/")
	port, ok := parsePort(portPart)
	if !ok {
		return Rule{}, &TokenError{Token: token, Reason: "invalid port"}
	}

	proto := ProtoAny
	if hasProto {
		switch strings.ToLower(protoPart) {
		case "tcp":
			proto = ProtoTCP
		case "udp":
			proto = ProtoUDP
		default:
			return Rule{}, &TokenError{Token: token, Reason: "invalid protocol"}
		}
	}

	return Rule{Port: port, Protocol: proto, Action: action}, nil
}

func parsePort(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}
