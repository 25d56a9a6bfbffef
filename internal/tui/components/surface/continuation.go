package surface

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	bulletPattern  = regexp.MustCompile(`^(\s*)([-*+]|>)( \[[ xX]\])? `)
	orderedPattern = regexp.MustCompile(`^(\s*)(\d+)\. `)
)

// ContinueLine splits the current line at the cursor, continuing list and
// quote markup onto the new line: bullets and quotes repeat their marker,
// checkboxes continue unchecked, ordered items increment. Pressing enter on a
// line that holds nothing but its marker clears the marker instead.
func (m Model) ContinueLine() Model {
	m = m.deleteSelection()

	line := []rune(m.content[m.cursor.Row])
	before := string(line[:m.cursor.Col])
	after := string(line[m.cursor.Col:])

	marker := continuationMarker(before)
	if marker != "" && after == "" && markerOnly(before) {
		// Marker-only line: terminate the list instead of continuing it.
		m.content[m.cursor.Row] = ""
		m.cursor.Col = 0
		return m.adjustScroll()
	}

	m.content[m.cursor.Row] = before

	next := make([]string, 0, len(m.content)+1)
	next = append(next, m.content[:m.cursor.Row+1]...)
	next = append(next, marker+after)
	next = append(next, m.content[m.cursor.Row+1:]...)
	m.content = next

	m.cursor.Row++
	m.cursor.Col = len([]rune(marker))
	return m.adjustScroll()
}

// markerOnly reports whether the line holds nothing beyond its list or quote
// marker.
func markerOnly(line string) bool {
	if match := bulletPattern.FindString(line); match != "" {
		return strings.TrimSpace(line[len(match):]) == ""
	}
	if match := orderedPattern.FindString(line); match != "" {
		return strings.TrimSpace(line[len(match):]) == ""
	}
	return false
}

// continuationMarker returns the markup to seed the next line with, or "" when
// the line is not a list or quote item.
func continuationMarker(line string) string {
	if match := bulletPattern.FindStringSubmatch(line); match != nil {
		if match[3] != "" {
			// Checkbox items continue unchecked.
			return match[1] + match[2] + " [ ] "
		}
		return match[1] + match[2] + " "
	}
	if match := orderedPattern.FindStringSubmatch(line); match != nil {
		n, err := strconv.Atoi(match[2])
		if err != nil {
			return ""
		}
		return match[1] + strconv.Itoa(n+1) + ". "
	}
	return ""
}
