package local

import (
	"fmt"
	"os"

	"github.com/charmbracelet/x/term"
)

// TermCheck ensures the terminal is large enough to render the rule list
// before the TUI takes over the screen.
func TermCheck() bool {
	w, h, err := getTermSize()
	if err != nil {
		fmt.Println("Unable to get terminal size:", err)
		return false
	}
	safeW, safeH := 80, 24
	if w < safeW || h < safeH {
		fmt.Printf("Your terminal size is too small (%dx%d). Please enlarge your terminal window (need at least %dx%d)!\n", w, h, safeW, safeH)
		return false
	}
	return true
}

func getTermSize() (width, height int, err error) {
	return term.GetSize(uintptr(int(os.Stdout.Fd())))
}
