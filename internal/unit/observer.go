package unit

import (
	"strconv"

	"glslu/internal/diag"
	"glslu/internal/trace"
)

// TraceObserver mirrors every committed diagnostic as a trace point.
type TraceObserver struct {
	Tracer trace.Tracer
}

func (o TraceObserver) OnDiagnostic(concern, severity, category string, line diag.ErrorLine) {
	if o.Tracer == nil || !o.Tracer.Enabled() {
		return
	}
	extra := map[string]string{
		"concern":  concern,
		"severity": severity,
		"category": category,
	}
	if len(line.Fragments) > 0 {
		f := line.Fragments[0]
		extra["file"] = f.File
		extra["line"] = strconv.FormatUint(uint64(f.Line), 10)
	}
	trace.Point(o.Tracer, trace.ScopeDiag, "diagnostic", line.String(), extra)
}

// Observers fans a diagnostic out to several observers; nil entries are skipped.
type Observers []diag.Observer

func (obs Observers) OnDiagnostic(concern, severity, category string, line diag.ErrorLine) {
	for _, o := range obs {
		if o != nil {
			o.OnDiagnostic(concern, severity, category, line)
		}
	}
}
