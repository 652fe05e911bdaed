package mylog

import (
	"context"
	"os"
	"strings"
)

type Severity string

const (
	SeverityDebug Severity = "DEBUG"
	SeverityInfo  Severity = "INFO"
	SeverityWarn  Severity = "WARN"
	SeverityError Severity = "ERROR"
)

var severityRank = map[Severity]int{
	SeverityDebug: 0,
	SeverityInfo:  1,
	SeverityWarn:  2,
	SeverityError: 3,
}

// Entries below LOG_LEVEL are dropped, INFO when unset or unknown
var minimumSeverity = parseSeverity(os.Getenv("LOG_LEVEL"))

func parseSeverity(level string) Severity {
	severity := Severity(strings.ToUpper(strings.TrimSpace(level)))
	if _, known := severityRank[severity]; !known {
		return SeverityInfo
	}
	return severity
}

func enabled(severity Severity) bool {
	rank, known := severityRank[severity]
	return !known || rank >= severityRank[minimumSeverity]
}

var New func(name string) Logger

type Logger interface {
	Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any)
}
