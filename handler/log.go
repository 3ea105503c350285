package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

func logRequest(req *http.Request) {
	log.WithFields(logrus.Fields{
		"remote": req.RemoteAddr,
		"method": req.Method,
		"path":   req.URL.Path,
	}).Info("Request served")
}

// logAndReturnError writes httpResponseStr to the client. The optional
// consoleStr is logged instead of it when given.
func logAndReturnError(w http.ResponseWriter, httpResponseStr string, code int, consoleStr ...string) {
	msg := httpResponseStr
	if len(consoleStr) > 0 {
		msg = consoleStr[0]
	}
	log.WithField("status", code).Error(msg)
	http.Error(w, httpResponseStr, code)
}
