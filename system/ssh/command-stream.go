package ssh

import (
	"bytes"
	"errors"
	"fmt"
)

func CommandStream(cmd string) (string, error) {
	session, err := GlobalClient.NewSession()
	if err != nil {
		return "", err
	}
	defer session.Close()

	var stdout, stderr bytes.Buffer
	session.Stdout = &stdout
	session.Stderr = &stderr

	if err = session.Run(cmd); err != nil {
		return "", errors.New(fmt.Sprint("stderr:", stderr.String()))
	}
	return stdout.String(), nil
}
