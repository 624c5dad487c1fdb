package db

import (
	"io"

	"github.com/sirupsen/logrus"
)

// CloseClient closes c and logs the outcome. Meant for shutdown paths where the error has nowhere to go.
func CloseClient(name string, c io.Closer) {
	if c == nil {
		logrus.Infof("`%s` Nothing to Close", name)
		return
	}
	if err := c.Close(); err != nil {
		logrus.Warnf("Failed to Close `%s`: %v", name, err)
	} else {
		logrus.Infof("`%s` Closed", name)
	}
}
