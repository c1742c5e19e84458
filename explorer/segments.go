// explorer/segments.go
package explorer

import "strings"

// trimURL drops the query string, fragment and any trailing slashes.
func trimURL(rawURL string) string {
	if i := strings.IndexAny(rawURL, "?#"); i >= 0 {
		rawURL = rawURL[:i]
	}
	return strings.TrimRight(strings.TrimSpace(rawURL), "/")
}

// splitSegments splits the trimmed URL on "/". Scheme and empty segments are kept so that
// indices line up with the raw text.
func splitSegments(rawURL string) []string {
	return strings.Split(trimURL(rawURL), "/")
}

// lastSegment returns the final path segment of rawURL.
func lastSegment(rawURL string) string {
	segments := splitSegments(rawURL)
	return segments[len(segments)-1]
}

// lookback returns the two segments preceding entityName. The preceding segment is taken
// relative to the first segment equal to entityName, and the one before that relative to the
// first occurrence of the preceding segment in what remains. Only two levels are examined.
func lookback(segments []string, entityName string) (prev string, twoPrev string) {
	idx := indexOf(segments, entityName)
	if idx <= 0 {
		return "", ""
	}
	prev = segments[idx-1]

	prevIdx := indexOf(segments[:idx], prev)
	if prevIdx <= 0 {
		return prev, ""
	}
	return prev, segments[prevIdx-1]
}

func indexOf(segments []string, name string) int {
	for i, s := range segments {
		if s == name {
			return i
		}
	}
	return -1
}
