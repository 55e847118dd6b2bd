package contact

import "strings"

// SkipReason explains why a line produced no Record.
type SkipReason string

const (
	SkipTooFewFields SkipReason = "too_few_fields"
	SkipInvalidEmail SkipReason = "invalid_email"
	SkipDuplicate    SkipReason = "duplicate"
)

// ParseLine parses one line of the form "Name <email>, phone" or
// "Name, email, phone". It reports false when the line has fewer than two
// non-empty comma-separated fields or when its email does not validate.
func ParseLine(line string) (Record, bool) {
	r, reason := parseLine(line)
	return r, reason == ""
}

func parseLine(line string) (Record, SkipReason) {
	var fields []string
	for _, f := range strings.Split(line, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	if len(fields) < 2 {
		return Record{}, SkipTooFewFields
	}

	name, candidate := splitNameEmail(fields[0])
	if !hasBrackets(fields[0]) {
		// Without brackets the email is assumed to be the second field.
		candidate = fields[1]
	}

	email := CleanEmail(candidate)
	if email == "" {
		return Record{}, SkipInvalidEmail
	}

	return Record{
		Name:  name,
		Email: email,
		Phone: NormalizePhone(fields[len(fields)-1]),
	}, ""
}

func hasBrackets(s string) bool {
	return strings.Contains(s, "<") && strings.Contains(s, ">")
}

// splitNameEmail splits `"Name" <email>` into its name and raw email
// candidate. A field without brackets is all name.
func splitNameEmail(field string) (name, email string) {
	if !hasBrackets(field) {
		return unquote(field), ""
	}
	open := strings.Index(field, "<")
	end := strings.Index(field, ">")
	if end > open {
		email = field[open+1 : end]
	}
	return unquote(field[:open]), email
}

func unquote(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"`)
}
