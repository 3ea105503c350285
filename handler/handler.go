// Package handler exposes the request queue over a local HTTP listener.
package handler

import (
	"github.com/sirupsen/logrus"

	"restqueue/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
