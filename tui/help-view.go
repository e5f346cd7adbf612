package tui

import "strings"

func helpView() string {
	var b strings.Builder
	b.WriteString("\n  " + titleStyle.Render("Help") + "\n\n")
	for _, line := range []string{
		"↑ / ↓  : Navigate",
		"← / →  : Jump a page",
		"SPACE  : Toggle selected port",
		"a      : Add new ports (`!8080 8081/udp` denies 8080, allows 8081/udp)",
		"d      : Delete selected port",
		"h      : This help",
		"q      : Quit",
	} {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n  " + hintStyle.Render("Press any key to continue...") + "\n")
	return b.String()
}
