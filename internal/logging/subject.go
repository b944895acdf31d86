package logging

import "strings"

// FormatSubject builds the subject/question/stage line used in console output.
func FormatSubject(subject, questionID, stage string) string {
	subject = strings.TrimSpace(subject)
	questionID = strings.TrimSpace(questionID)
	stage = strings.TrimSpace(stage)
	parts := make([]string, 0, 2)
	if subject != "" {
		var formatted string
		if len(subject) > 1 {
			formatted = strings.ToUpper(subject[:1]) + strings.ToLower(subject[1:])
		} else {
			formatted = strings.ToUpper(subject)
		}
		parts = append(parts, formatted)
	}
	switch {
	case questionID != "" && stage != "":
		parts = append(parts, questionID+" ("+stage+")")
	case questionID != "":
		parts = append(parts, questionID)
	case stage != "":
		parts = append(parts, stage)
	}
	return strings.Join(parts, " · ")
}
