package boinc

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Boinc drives the local BOINC client through its command line tool.
type Boinc struct {
	path string
	run  func(name string, args ...string) error
}

func New(path string) *Boinc {
	return &Boinc{
		path: path,
		run:  run,
	}
}

// Args returns the run mode arguments for the decision.
func Args(allow bool, runtime time.Duration) []string {
	if allow {
		return []string{"--set_run_mode", "auto", strconv.Itoa(int(runtime / time.Second))}
	}
	return []string{"--set_run_mode", "never"}
}

func (b *Boinc) AllowCompute(allow bool, runtime time.Duration) error {
	args := Args(allow, runtime)
	logrus.Infof("boinc: %s %s", b.path, strings.Join(args, " "))
	err := b.run(b.path, args...)
	if err != nil {
		return fmt.Errorf("error running %s: %w", b.path, err)
	}
	return nil
}

// run does not inspect the exit code, only whether the client could be started.
func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if len(out) > 0 {
		logrus.Debugf("boinc: %s", bytes.TrimSpace(out))
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logrus.Warnf("boinc: exited with code %d", exitErr.ExitCode())
		return nil
	}
	return err
}
