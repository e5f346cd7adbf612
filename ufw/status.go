package ufw

import (
	"bufio"
	"regexp"
	"strings"
)

var leadingNum = regexp.MustCompile(`^\[\s*(\d+)\]\s+`)
var colSplit = regexp.MustCompile(`\s{2,}`)

// ParseStatus extracts single-port rules from "ufw status numbered" output.
// IPv6 duplicate lines and rules this tool does not manage (app profiles,
// IP-scoped or ranged rules) are skipped rather than treated as errors.
func ParseStatus(stdout string) []Rule {
	sc := bufio.NewScanner(strings.NewReader(stdout))
	foundCols := false
	var rules []Rule

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		if !foundCols {
			if strings.HasPrefix(line, "To") && strings.Contains(line, "Action") && strings.Contains(line, "From") {
				foundCols = true
			}
			continue
		}

		if allDashes(line) {
			continue
		}

		m := leadingNum.FindStringSubmatch(line)
		if len(m) != 2 {
			continue
		}
		rest := strings.TrimSpace(line[len(m[0]):])
		if strings.Contains(rest, "(v6)") {
			continue
		}

		fields := splitColumns(rest)
		if len(fields) < 2 {
			continue
		}

		rule, ok := parseStatusRule(fields[0], fields[1])
		if !ok {
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

func parseStatusRule(to, action string) (Rule, bool) {
	portPart, protoPart, hasProto := strings.Cut(to, "/")
	port, ok := parsePort(portPart)
	if !ok {
		return Rule{}, false
	}

	proto := ProtoAny
	if hasProto {
		switch strings.ToLower(protoPart) {
		case "tcp":
			proto = ProtoTCP
		case "udp":
			proto = ProtoUDP
		default:
			return Rule{}, false
		}
	}

	// The action column reads "ALLOW IN", "DENY", "ALLOW OUT" etc.
	var act Action
	switch strings.Fields(action)[0] {
	case "ALLOW":
		act = ActionAllow
	case "DENY":
		act = ActionDeny
	default:
		return Rule{}, false
	}

	return Rule{Port: port, Protocol: proto, Action: act}, true
}

func allDashes(s string) bool {
	for _, r := range s {
		if r != '-' && r != '—' {
			return false
		}
	}
	return len(s) > 0
}

func splitColumns(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return colSplit.Split(s, -1)
}
