package score

import (
	"fmt"
	"strings"

	"github.com/calscribe/calscribe/internal/model"
)

// classifyPair checks a candidate/reference pair against the tolerance
// profile and returns the mismatch reasons, empty for a true positive.
//
// An action mismatch short-circuits: the remaining checks compare fields
// that only make sense for the same kind of calendar operation. Every other
// failing check accumulates its own reason. validIDCount bounds the 1-based
// integer ID domain of the calendar context; zero disables the range check
// but not the presence check.
func classifyPair(actual model.ExtractedEvent, expected Reference, tol Tolerance, validIDCount int) []string {
	var reasons []string

	if actual.Action != expected.Action {
		reasons = append(reasons, fmt.Sprintf("action: expected %q, got %q", expected.Action, actual.Action))
		return reasons
	}

	if tol.Level == LevelStrict {
		if !strings.EqualFold(strings.TrimSpace(actual.Title), strings.TrimSpace(expected.Title)) {
			reasons = append(reasons, fmt.Sprintf("title (strict exact): expected %q, got %q", expected.Title, actual.Title))
		}
	} else {
		if ratio := titleRatio(actual.Title, expected.Title); ratio < tol.TitleRatioMin {
			reasons = append(reasons, fmt.Sprintf("title: ratio=%.1f < %.0f (expected %q, got %q)",
				ratio, tol.TitleRatioMin, expected.Title, actual.Title))
		}
	}

	if reason := checkTimeTolerance(actual.StartTime, expected.StartTime, tol, "start_time"); reason != "" {
		reasons = append(reasons, reason)
	}
	if reason := checkTimeTolerance(actual.EndTime, expected.EndTime, tol, "end_time"); reason != "" {
		reasons = append(reasons, reason)
	}

	if expected.ExistingEventIDRequired {
		switch {
		case actual.ExistingEventID == nil:
			reasons = append(reasons, "existing_event_id is required but was not set")
		case validIDCount > 0 && (*actual.ExistingEventID < 1 || *actual.ExistingEventID > validIDCount):
			reasons = append(reasons, fmt.Sprintf("existing_event_id=%d is outside the valid context IDs 1..%d",
				*actual.ExistingEventID, validIDCount))
		}
	}

	for _, required := range expected.AttendeesContain {
		if !attendeesContain(actual.Attendees, required) {
			reasons = append(reasons, fmt.Sprintf("attendees: %q not found in %v", required, actual.Attendees))
		}
	}

	if expected.Location != "" {
		if ratio := titleRatio(actual.Location, expected.Location); ratio < tol.TitleRatioMin {
			reasons = append(reasons, fmt.Sprintf("location: ratio=%.1f < %.0f (expected %q, got %q)",
				ratio, tol.TitleRatioMin, expected.Location, actual.Location))
		}
	}

	return reasons
}

// checkTimeTolerance returns a mismatch reason, or "" when the timestamps
// are within tolerance. An unspecified expected time skips the check.
func checkTimeTolerance(actualISO, expectedISO string, tol Tolerance, label string) string {
	if expectedISO == "" {
		return ""
	}
	if actualISO == "" {
		return fmt.Sprintf("%s: expected %q but got none", label, expectedISO)
	}

	actual, err := model.ParseTimestamp(actualISO)
	if err != nil {
		return fmt.Sprintf("%s: cannot parse actual %q", label, actualISO)
	}
	expected, err := model.ParseTimestamp(expectedISO)
	if err != nil {
		return fmt.Sprintf("%s: cannot parse expected %q", label, expectedISO)
	}

	diff := expected.Sub(actual)
	if diff < 0 {
		diff = -diff
	}
	if diff > tol.TimeTolerance {
		return fmt.Sprintf("%s: difference %s exceeds tolerance %s (actual=%q, expected=%q)",
			label, diff, tol.TimeTolerance, actualISO, expectedISO)
	}

	return ""
}

func attendeesContain(attendees []string, required string) bool {
	req := strings.ToLower(required)
	for _, a := range attendees {
		if strings.Contains(strings.ToLower(a), req) {
			return true
		}
	}
	return false
}
