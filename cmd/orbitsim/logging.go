package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const (
	logDirName  = "logs"
	logFileName = "orbitsim.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging sends the standard logger to <dataDir>/logs/orbitsim.log when
// debug is set and discards it otherwise. A log file over maxLogSize is
// rotated to orbitsim.log.old first. Problems are reported to warn and leave
// logging disabled or unrotated. The caller closes the returned file.
func setupLogging(dataDir string, debug bool, warn io.Writer) *os.File {
	if !debug {
		log.SetOutput(io.Discard)
		return nil
	}

	dir := filepath.Join(dataDir, logDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Fprintf(warn, "warning: cannot create log directory: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	path := filepath.Join(dir, logFileName)
	if info, err := os.Stat(path); err == nil && info.Size() > maxLogSize {
		if err := os.Rename(path, path+".old"); err != nil {
			fmt.Fprintf(warn, "warning: cannot rotate log file: %v\n", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		fmt.Fprintf(warn, "warning: cannot open log file: %v\n", err)
		log.SetOutput(io.Discard)
		return nil
	}

	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.Lshortfile)
	log.Printf("orbitsim started, data dir %s", dataDir)
	return f
}

// closeLogging closes the file opened by setupLogging, if any, and discards
// further log output.
func closeLogging() {
	if logFile == nil {
		return
	}
	log.SetOutput(io.Discard)
	logFile.Close()
	logFile = nil
}
