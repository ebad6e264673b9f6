package attendance

import "strings"

// ReasonCode is the closed set of upstream rejection reasons. Codes the
// portal sends that are not listed here map to ReasonUnknown.
type ReasonCode string

const (
	ReasonEventExpired   ReasonCode = "EVENT_EXPIRED"
	ReasonInvalidEvent   ReasonCode = "INVALID_EVENT"
	ReasonAlreadyMarked  ReasonCode = "ALREADY_MARKED"
	ReasonSessionExpired ReasonCode = "SESSION_EXPIRED"
	ReasonNotEnrolled    ReasonCode = "NOT_ENROLLED"
	ReasonUnknown        ReasonCode = "UNKNOWN"
)

// reasonAliases maps normalized upstream spellings to reason codes. The
// portal is inconsistent about casing and separators across endpoints.
var reasonAliases = map[string]ReasonCode{
	"EVENT_EXPIRED":        ReasonEventExpired,
	"EXPIRED":              ReasonEventExpired,
	"QR_EXPIRED":           ReasonEventExpired,
	"INVALID_EVENT":        ReasonInvalidEvent,
	"INVALID_QR":           ReasonInvalidEvent,
	"EVENT_NOT_FOUND":      ReasonInvalidEvent,
	"ALREADY_MARKED":       ReasonAlreadyMarked,
	"ATTENDANCE_MARKED":    ReasonAlreadyMarked,
	"DUPLICATE":            ReasonAlreadyMarked,
	"SESSION_EXPIRED":      ReasonSessionExpired,
	"UNAUTHORIZED":         ReasonSessionExpired,
	"INVALID_SESSION":      ReasonSessionExpired,
	"NOT_ENROLLED":         ReasonNotEnrolled,
	"NOT_REGISTERED":       ReasonNotEnrolled,
	"STUDENT_NOT_IN_CLASS": ReasonNotEnrolled,
}

// ParseReasonCode maps a raw upstream status string into the closed set.
func ParseReasonCode(raw string) ReasonCode {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)
	if code, ok := reasonAliases[normalized]; ok {
		return code
	}
	return ReasonUnknown
}

// IsSuccessStatus reports whether a raw upstream status means the
// attendance was recorded.
func IsSuccessStatus(raw string) bool {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCESS", "OK", "MARKED":
		return true
	}
	return false
}
