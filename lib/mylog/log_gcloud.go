package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/MarcGrol/shopreconciler/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newGloudLogger
		// Disable log prefixes such as the default timestamp.
		// Prefix text prevents the message from being parsed as JSON.
		// A timestamp is added when shipping logs to Cloud Logging.
		log.SetFlags(0)
	}
}

type structuredLogger struct {
	componentName string
}

func newGloudLogger(componentName string) Logger {
	return structuredLogger{
		componentName: componentName,
	}
}

func (l structuredLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if !enabled(severity) {
		return
	}
	trace, _ := ctx.Value(mycontext.CtxTraceContext{}).(string)
	e := entry{
		Component: l.componentName,
		Trace:     trace,
		Severity:  cloudSeverity(severity),
		Message:   l.componentName + ": " + fmt.Sprintf(format, a...),
	}
	if traceLabel != "" {
		e.Labels = map[string]string{"reference": traceLabel}
	}
	log.Println(e.String())
}

// Cloud Logging knows WARNING, not WARN
func cloudSeverity(severity Severity) string {
	if severity == SeverityWarn {
		return "WARNING"
	}
	return string(severity)
}

type entry struct {
	Component string            `json:"component,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
	Trace     string            `json:"logging.googleapis.com/trace,omitempty"`
	Severity  string            `json:"severity,omitempty"`
	Message   string            `json:"message"`
}

func (e entry) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		log.Printf("error marshalling log record: %v", err)
	}

	return string(out)
}
