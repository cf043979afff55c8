package filter

import (
	"path"
	"strings"
)

// binaryExtensions is the deny-list of extensions for content that is never
// worth decoding: images, archives, compiled artifacts, media, fonts, and
// binary databases.
var binaryExtensions = map[string]struct{}{
	".png":     {},
	".jpg":     {},
	".jpeg":    {},
	".gif":     {},
	".bmp":     {},
	".ico":     {},
	".svg":     {},
	".webp":    {},
	".zip":     {},
	".tar":     {},
	".gz":      {},
	".bz2":     {},
	".7z":      {},
	".rar":     {},
	".pdf":     {},
	".doc":     {},
	".docx":    {},
	".xls":     {},
	".xlsx":    {},
	".ppt":     {},
	".pptx":    {},
	".exe":     {},
	".dll":     {},
	".so":      {},
	".dylib":   {},
	".o":       {},
	".a":       {},
	".lib":     {},
	".mp3":     {},
	".wav":     {},
	".flac":    {},
	".aac":     {},
	".ogg":     {},
	".wma":     {},
	".mp4":     {},
	".mov":     {},
	".avi":     {},
	".mkv":     {},
	".webm":    {},
	".flv":     {},
	".class":   {},
	".jar":     {},
	".pyc":     {},
	".pyo":     {},
	".pyd":     {},
	".db":      {},
	".sqlite":  {},
	".sqlite3": {},
	".ttf":     {},
	".otf":     {},
	".woff":    {},
	".woff2":   {},
	".eot":     {},
}

// IsBinaryExt reports whether the path's extension is on the binary
// deny-list. The comparison is case-insensitive.
func IsBinaryExt(p string) bool {
	_, ok := binaryExtensions[strings.ToLower(path.Ext(p))]
	return ok
}
