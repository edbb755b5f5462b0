package cmd

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// logLevelValue lets --log-level reject unknown levels at parse time.
type logLevelValue logrus.Level

func (levelVal *logLevelValue) String() string {
	return logrus.Level(*levelVal).String()
}

func (levelVal *logLevelValue) Set(value string) error {
	level, err := logrus.ParseLevel(value)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", value)
	}
	*levelVal = logLevelValue(level)
	return nil
}

func (levelVal *logLevelValue) Type() string {
	return "logrus.Level"
}
