// Package queue implements a serialized HTTP dispatcher. Callers submit
// requests through a Submitter and read the outcome from a one-shot
// Receiver; a single dispatch loop executes the requests one at a time.
package queue

import (
	"github.com/sirupsen/logrus"

	"restqueue/logging"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}
