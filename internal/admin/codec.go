package admin

import "strings"

const (
	colorSeparator = ","
	imageSeparator = "|"
)

// SplitColors turns the comma-joined form value into the color sequence.
// The split is exact: no trimming and no dropping of empty entries, so that
// JoinColors(SplitColors(s)) == s.
func SplitColors(value string) []string {
	return strings.Split(value, colorSeparator)
}

func JoinColors(colors []string) string {
	return strings.Join(colors, colorSeparator)
}

// SplitImages turns the pipe-joined form value into the image sequence.
func SplitImages(value string) []string {
	return strings.Split(value, imageSeparator)
}

func JoinImages(images []string) string {
	return strings.Join(images, imageSeparator)
}
