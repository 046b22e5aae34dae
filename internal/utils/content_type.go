package utils

import (
	"path"
	"strings"
)

// contentTypes is the fixed extension → MIME lookup used when serving
// attachments. Unknown extensions fall back to octet-stream so the
// browser offers a download instead of mis-rendering.
var contentTypes = map[string]string{
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".heic": "image/heic",
	".svg":  "image/svg+xml",
	".txt":  "text/plain",
	".csv":  "text/csv",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

const DefaultContentType = "application/octet-stream"

// ContentTypeForPath maps a storage object key to a Content-Type by its
// file extension, case-insensitively.
func ContentTypeForPath(objectPath string) string {
	ext := strings.ToLower(path.Ext(objectPath))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return DefaultContentType
}
