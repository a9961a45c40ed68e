package parser

import (
	"errors"
	"regexp"
	"strings"

	"lead-distribution-backend/internal/models"
)

var (
	// ErrNoModeMarker means the document carries neither distribution
	// marker, so there is no way to tell how its numbers should be handled.
	ErrNoModeMarker = errors.New("document has no distribution mode marker")
	// ErrNoAssignments means a marker was found but no usable phone
	// numbers followed it.
	ErrNoAssignments = errors.New("document contains no phone numbers")
)

const (
	coldCallingMarker = "random data"
	targetedMarker    = "targeted data"
)

var (
	// <marker>(<name>), e.g. "Random Data(Ahmed)". Either marker opens
	// a new name group.
	nameLineRe = regexp.MustCompile(`(?i)^(?:random data|targeted data)\((.+)\)$`)
	digitRunRe = regexp.MustCompile(`^[0-9]{10,11}$`)
	phoneRe    = regexp.MustCompile(`^01[0-9]{8,9}$`)
)

// ParsedAssignment groups the phone numbers listed under one name line.
// Transient parse output, never persisted as-is.
type ParsedAssignment struct {
	EmployeeNameHint string   `json:"employee_name_hint"`
	PhoneNumbers     []string `json:"phone_numbers"`
}

type ParseResult struct {
	AssignmentMode string             `json:"assignment_mode"`
	Assignments    []ParsedAssignment `json:"assignments"`
}

// ParseDocument turns extracted document text into grouped lead
// assignments. Lines that are neither a name line nor a bare 10-11
// digit run are ignored. Numbers are NOT validated here; callers use
// IsValidPhoneNumber when they want the strict check.
func ParseDocument(text string) (*ParseResult, error) {
	mode, err := detectMode(text)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{AssignmentMode: mode}

	current := ""
	var numbers []string

	flush := func() {
		if current != "" && len(numbers) > 0 {
			result.Assignments = append(result.Assignments, ParsedAssignment{
				EmployeeNameHint: current,
				PhoneNumbers:     numbers,
			})
		}
		numbers = nil
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if m := nameLineRe.FindStringSubmatch(line); m != nil {
			flush()
			current = strings.TrimSpace(m[1])
			continue
		}
		if current != "" && digitRunRe.MatchString(line) {
			numbers = append(numbers, line)
		}
	}
	flush()

	if len(result.Assignments) == 0 {
		return nil, ErrNoAssignments
	}
	return result, nil
}

// detectMode scans for the mode markers case-insensitively. When both
// appear, cold-calling wins; the upstream documents always put the
// governing marker first and it has always been the cold-calling one.
func detectMode(text string) (string, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, coldCallingMarker):
		return models.ModeColdCalling, nil
	case strings.Contains(lower, targetedMarker):
		return models.ModeTargeted, nil
	default:
		return "", ErrNoModeMarker
	}
}

// IsValidPhoneNumber reports whether s is "01" followed by 8-9 more
// digits. Stricter than the parser's 10-11 digit rule on purpose:
// enforcement is the caller's decision.
func IsValidPhoneNumber(s string) bool {
	return phoneRe.MatchString(s)
}

// CountNumbers totals the phone numbers across all assignments.
func CountNumbers(result *ParseResult) int {
	total := 0
	for _, a := range result.Assignments {
		total += len(a.PhoneNumbers)
	}
	return total
}
