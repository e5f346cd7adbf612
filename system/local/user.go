package local

import (
	"errors"
	"fmt"
	"os"
	"os/user"
)

var GlobalUserHomeDir string
var GlobalUserCfgDir string

func RequireRoot() {
	if os.Geteuid() != 0 {
		fmt.Println("ufw-tui requires root/sudo privileges! (try: sudo " + os.Args[0] + ")")
		os.Exit(77)
	}

	home, cfg, err := getNonRootUserHome()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	GlobalUserHomeDir = home
	GlobalUserCfgDir = cfg
}

func getNonRootUserHome() (string, string, error) {
	sudoUser := os.Getenv("SUDO_USER")
	if sudoUser == "" {
		return "", "", errors.New("unable to derive $SUDO_USER")
	}

	usrlkp, err := user.Lookup(sudoUser)
	if err != nil {
		return "", "", fmt.Errorf("unable to lookup evoking user %s: %v", sudoUser, err)
	}

	return usrlkp.HomeDir, fmt.Sprintf("%s/.config", usrlkp.HomeDir), nil
}

// Actor names the operator for audit entries: the sudo-invoking user when
// known, otherwise the effective user.
func Actor() string {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" {
		return sudoUser
	}
	if usr, err := user.Current(); err == nil {
		return usr.Username
	}
	return "unknown"
}
