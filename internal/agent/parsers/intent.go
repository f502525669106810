package parsers

import (
	"regexp"
	"strings"

	"github.com/vupatil1992/Hospital-patient-booking-agent/internal/agent/model"
)

// The extraction rules are deliberately small and independent: a
// self-identification phrase for the name, a catalog-tag substring scan for
// the reason and a numeric token for the time. Each rule can miss without
// affecting the others; a missed field simply stays empty on the Intent.
var (
	namePattern    = regexp.MustCompile(`(?i)\b(?:my name is|name is|i am|i'm)\s+([A-Za-z]+)`)
	rawTimePattern = regexp.MustCompile(`(?i)\b\d{1,2}(?::\d{2})?\s*(?:am|pm)?\b`)
)

// ExtractIntent derives the structured booking intent from the accumulated
// patient-side conversation text. It is re-run over the full history every
// turn, so a name or reason given earlier stays visible even when later
// messages omit it. reasons is the ordered catalog tag list; the first tag
// found as a substring of the lowercased history wins.
func ExtractIntent(history string, reasons []string) model.Intent {
	var intent model.Intent

	if m := namePattern.FindStringSubmatch(history); m != nil {
		intent.PatientName = m[1]
	}

	lowered := strings.ToLower(history)
	for _, reason := range reasons {
		if reason == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(reason)) {
			intent.Reason = reason
			break
		}
	}

	if raw := firstTimeToken(history); raw != "" {
		intent.RawTime = raw
		intent.CanonicalTime = NormalizeTime(raw)
	}

	return intent
}

// firstTimeToken returns the first token that looks like a time expression.
// A bare number with neither minutes nor a meridiem marker is still accepted
// ("I need a flu appointment at 3"), matching how patients actually type.
func firstTimeToken(history string) string {
	return strings.TrimSpace(rawTimePattern.FindString(history))
}
