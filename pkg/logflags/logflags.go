package logflags

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var input = false
var extract = false
var report = false
var shell = false

// logOut is where enabled loggers write, stderr if nil.
var logOut io.Writer

func makeLogger(flag bool, fields logrus.Fields) *logrus.Entry {
	logger := logrus.New().WithFields(fields)
	logger.Logger.Level = logrus.DebugLevel
	if !flag {
		logger.Logger.Level = logrus.PanicLevel
	}
	if logOut != nil {
		logger.Logger.Out = logOut
	} else {
		logger.Logger.Out = os.Stderr
	}
	return logger
}

// Input returns true if loading the dump should be logged.
func Input() bool {
	return input
}

// InputLogger returns a logger for the input loader.
func InputLogger() *logrus.Entry {
	return makeLogger(Input(), logrus.Fields{"layer": "input"})
}

// Extract returns true if row extraction should be logged.
func Extract() bool {
	return extract
}

// ExtractLogger returns a logger for row extraction.
func ExtractLogger() *logrus.Entry {
	return makeLogger(Extract(), logrus.Fields{"layer": "extract"})
}

// Report returns true if counting and ranking should be logged.
func Report() bool {
	return report
}

// ReportLogger returns a logger for counting and ranking.
func ReportLogger() *logrus.Entry {
	return makeLogger(Report(), logrus.Fields{"layer": "report"})
}

// Shell returns true if the interactive explorer should log.
func Shell() bool {
	return shell
}

// ShellLogger returns a logger for the interactive explorer.
func ShellLogger() *logrus.Entry {
	return makeLogger(Shell(), logrus.Fields{"layer": "shell"})
}

var errLogstrWithoutLog = errors.New("--log-output specified without --log")

// Setup sets the component flags based on the contents of logstr.
// An empty logstr with logFlag set enables every component.
func Setup(logFlag bool, logstr string) error {
	input, extract, report, shell = false, false, false, false
	if !logFlag {
		if logstr != "" {
			return errLogstrWithoutLog
		}
		return nil
	}
	if logstr == "" {
		logstr = "input,extract,report,shell"
	}
	v := strings.Split(logstr, ",")
	for _, logcmd := range v {
		switch strings.TrimSpace(logcmd) {
		case "input":
			input = true
		case "extract":
			extract = true
		case "report":
			report = true
		case "shell":
			shell = true
		}
	}
	return nil
}

// SetOutput redirects enabled loggers to w, nil restores stderr.
func SetOutput(w io.Writer) {
	logOut = w
}
