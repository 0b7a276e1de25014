package content

import "github.com/morikuni/failure"

const (
	NotFound           failure.StringCode = "NotFound"
	OriginUnavailable  failure.StringCode = "OriginUnavailable"
	InvalidFrontmatter failure.StringCode = "InvalidFrontmatter"
	InvalidRecord      failure.StringCode = "InvalidRecord"
)
