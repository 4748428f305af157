package dotstrap

import (
	"embed"
)

//go:embed topics/*.md
var topicFiles embed.FS

const topicsDir = "topics"
