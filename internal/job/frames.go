package job

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	frameRangePattern  = regexp.MustCompile(`^(\d+)-(\d+):?(\d+)?`)
	frameSinglePattern = regexp.MustCompile(`^(\d+)$`)
	badNameChars       = regexp.MustCompile(`[#%:£¬?\\/"<>|]+`)
)

// ValidateFrameList accepts items like "5" or "1-100" or "1-100:2".
// One valid item is enough; submissions with none are refused.
func ValidateFrameList(items []string) error {
	for _, item := range items {
		if frameSinglePattern.MatchString(item) || frameRangePattern.MatchString(item) {
			return nil
		}
	}
	return fmt.Errorf("no valid frame list format found")
}

// ValidateFileName refuses names the farm's path handling chokes on.
func ValidateFileName(name string) error {
	for _, r := range name {
		if r > 126 || r < 32 {
			return fmt.Errorf("one or more non-english characters found in the file name")
		}
	}

	if badNameChars.MatchString(name) {
		return fmt.Errorf(`one or more of the following characters found in the file name : [#%%:£¬?\/"<>|]`)
	}
	return nil
}

// CleanJobName strips the extension and every farm-hostile character,
// falling back to "untitled" when nothing survives.
func CleanJobName(name string) string {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	for _, bad := range []string{"#", "%", ":", "£", "¬", "?", "\\", "/", "'", `"`, "<", ">", "|", " ", "."} {
		base = strings.ReplaceAll(base, bad, "")
	}

	if base == "" {
		return "untitled"
	}
	return base
}

// ListToRange collapses a comma-separated frame list into range
// notation for display: "1,2,3,7" becomes "1-3,7".
func ListToRange(list string) string {
	parts := strings.Split(list, ",")
	frames := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return list
		}
		frames = append(frames, n)
	}

	if len(frames) == 0 {
		return list
	}

	var ranges []string
	start, prev := frames[0], frames[0]
	flush := func() {
		if start == prev {
			ranges = append(ranges, strconv.Itoa(start))
		} else {
			ranges = append(ranges, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, f := range frames[1:] {
		if f == prev+1 {
			prev = f
			continue
		}
		flush()
		start, prev = f, f
	}
	flush()

	return strings.Join(ranges, ",")
}
