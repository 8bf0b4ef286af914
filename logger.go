package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"treasureisland/proto"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger
	// debugPacketDumpLen limits how many bytes of a frame are logged.
	// A value of 0 dumps the entire frame.
	debugPacketDumpLen = 64
)

func setupLogging(debug bool) {
	logDir := filepath.Join(baseDir, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
	}
	ts := time.Now().Format("20060102-150405")

	errPath := filepath.Join(logDir, fmt.Sprintf("error-%s.log", ts))
	errFile, err := os.Create(errPath)
	var errWriter io.Writer = os.Stdout
	if err == nil {
		errWriter = io.MultiWriter(os.Stdout, errFile)
	}
	errorLogger = log.New(errWriter, "", log.LstdFlags)
	log.SetOutput(errWriter)

	setDebugLogging(debug)
}

func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
	addMessage(fmt.Sprintf(format, v...))
}

func logWarn(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf("warning: "+format, v...)
	}
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

// logDebugPacket dumps a raw frame or message. Server frames are labelled
// with the effect the receiver gives them, client messages with their text.
func logDebugPacket(prefix string, data []byte) {
	if debugLogger == nil || len(data) == 0 {
		return
	}
	debugLogger.Printf("%s %s % x", prefix, describePacket(data), truncateDump(data[1:]))
}

func describePacket(data []byte) string {
	tag := data[0]
	switch len(data) {
	case proto.FrameSize:
		kind := proto.Classify(tag)
		if !proto.Known(tag) {
			return fmt.Sprintf("%v (unrecognised action %d)", kind, tag)
		}
		return kind.String()
	case proto.MessageSize:
		var raw [proto.MessageSize]byte
		copy(raw[:], data)
		m := proto.DecodeMessage(raw)
		if m.Action == proto.ActionSendUsername {
			return fmt.Sprintf("username %q", m.Text())
		}
		return fmt.Sprintf("action %d", m.Action)
	}
	return fmt.Sprintf("%d bytes, tag %d", len(data), tag)
}

func truncateDump(b []byte) []byte {
	if debugPacketDumpLen > 0 && len(b) > debugPacketDumpLen {
		return b[:debugPacketDumpLen]
	}
	return b
}

func setDebugLogging(enabled bool) {
	if enabled {
		logDir := filepath.Join(baseDir, "logs")
		if err := os.MkdirAll(logDir, 0755); err != nil {
			fmt.Printf("could not create log directory: %v\n", err)
		}
		ts := time.Now().Format("20060102-150405")
		dbgPath := filepath.Join(logDir, fmt.Sprintf("debug-%s.log", ts))
		dbgFile, err := os.Create(dbgPath)
		var dbgWriter io.Writer
		if err == nil {
			dbgWriter = io.MultiWriter(os.Stdout, dbgFile)
		} else {
			dbgWriter = os.Stdout
		}
		debugLogger = log.New(dbgWriter, "", log.LstdFlags)
	} else {
		debugLogger = nil
	}
}
