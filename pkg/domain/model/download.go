package model

// DownloadResult represents the result of a ZIP download and extraction
type DownloadResult struct {
	SourceURL   string   // URL the archive was fetched from
	ArchivePath string   // Temporary archive location, removed after extraction
	DestDir     string   // Directory the entries were extracted into
	Downloaded  int64    // Archive size in bytes
	Files       []string // List of extracted files
	Size        int64    // Total uncompressed size in bytes
}
