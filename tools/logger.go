package tools

import (
	"fmt"
	"time"

	"github.com/golang/glog"
)

var isEnabled = true
var printTimestamp = true

// Every message goes to glog only. Skips LogOutput and the sink itself.
var logSink = func(msg string) {
	glog.InfoDepth(2, msg)
}

func EnableLogger() {
	isEnabled = true
}

func DisableLogger() {
	isEnabled = false
}

func EnableLoggerTimestamp() {
	printTimestamp = true
}

func DisableLoggerTimestamp() {
	printTimestamp = false
}

func LogOutput(val ...interface{}) {
	if !isEnabled {
		return
	}
	msg := fmt.Sprintln(val...)
	if printTimestamp {
		msg = "[" + time.Now().Format("2006-01-02 15.04:05.000") + "] " + msg
	}
	logSink(msg)
}
