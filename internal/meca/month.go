// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package meca

import "regexp"

// datePattern matches publication dates in YYYY-MM-DD form.
var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// monthNames maps month numbers 1-12 to the folder naming used by the
// bioRxiv monthly deposit bucket.
var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthFolder converts a publication date to the S3 month folder name,
// e.g. "2024-12-18" -> "December_2024". The second return value is false
// when the date does not parse; callers treat that as "cannot locate
// archive", not as an error.
func MonthFolder(date string) (string, bool) {
	m := datePattern.FindStringSubmatch(date)
	if m == nil {
		return "", false
	}
	month := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	if month < 1 || month > 12 {
		return "", false
	}
	return monthNames[month-1] + "_" + m[1], true
}
