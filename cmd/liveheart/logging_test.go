package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

func TestSetupLoggingDisabledByDefault(t *testing.T) {
	logFile := setupLogging(false)
	if logFile != nil {
		t.Error("setupLogging(false) returned a file")
		logFile.Close()
	}

	// Verify log output is discarded
	output := log.Writer()
	if output != io.Discard {
		t.Errorf("log output = %v, want io.Discard", output)
	}
}

func TestSetupLoggingEnabledWithDebug(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("setupLogging(true) returned nil")
	}
	defer logFile.Close()

	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		t.Error("logs directory was not created")
	}

	logPath := filepath.Join(logDir, logFileName)
	if _, err := os.Stat(logPath); os.IsNotExist(err) {
		t.Error("log file was not created")
	}

	log.Println("test log message")

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat log file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("log file is empty")
	}
}

func TestSetupLoggingRotation(t *testing.T) {
	defer os.RemoveAll(logDir)

	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("create logs directory: %v", err)
	}

	logPath := filepath.Join(logDir, logFileName)

	largeFile, err := os.Create(logPath)
	if err != nil {
		t.Fatalf("create large log file: %v", err)
	}

	data := make([]byte, maxLogSize+1)
	if _, err := largeFile.Write(data); err != nil {
		t.Fatalf("write log file: %v", err)
	}
	largeFile.Close()

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("setupLogging(true) returned nil")
	}
	defer logFile.Close()

	entries, err := os.ReadDir(logDir)
	if err != nil {
		t.Fatalf("read logs directory: %v", err)
	}

	rotatedFound := false
	for _, entry := range entries {
		if entry.Name() != logFileName && filepath.Ext(entry.Name()) == ".log" {
			rotatedFound = true
			break
		}
	}

	if !rotatedFound {
		t.Error("no rotated log file found")
	}

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("stat new log file: %v", err)
	}
	if info.Size() > maxLogSize {
		t.Errorf("new log file size = %d, want at most %d", info.Size(), maxLogSize)
	}
}

func TestSetupLoggingNeverUsesTerminal(t *testing.T) {
	defer os.RemoveAll(logDir)

	logFile := setupLogging(true)
	if logFile == nil {
		t.Fatal("setupLogging(true) returned nil")
	}
	defer logFile.Close()

	output := log.Writer()
	if output == os.Stdout {
		t.Error("log output is stdout")
	}
	if output == os.Stderr {
		t.Error("log output is stderr")
	}
}
