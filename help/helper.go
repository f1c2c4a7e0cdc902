package help

import (
	"os"
	"os/user"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

func Dbg(format string, a ...any) {
	logrus.Debugf(format, a...)
}

func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	// Windows fallback
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "." // last resort: current dir
}

// DataDir holds the config file and the log file.
func DataDir() string {
	return filepath.Join(HomeDir(), ".ttdmon")
}
