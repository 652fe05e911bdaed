package mylog

import (
	"context"
	"fmt"
	"log"
	"os"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newStandardLogger
	}
}

type standardLogger struct {
	componentName string
}

func newStandardLogger(componentName string) Logger {
	return standardLogger{
		componentName: componentName,
	}
}

func (l standardLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if !enabled(severity) {
		return
	}
	log.Print(l.format(traceLabel, severity, fmt.Sprintf(format, a...)))
}

func (l standardLogger) format(traceLabel string, severity Severity, message string) string {
	if traceLabel == "" {
		return fmt.Sprintf("%-5s %s: %s", severity, l.componentName, message)
	}
	return fmt.Sprintf("%-5s %s [%s]: %s", severity, l.componentName, traceLabel, message)
}
