package models

// AudioDescriptor is one resolved call recording. DownloadURL is always
// derived from the source path, the filename and the owning server's
// public endpoint; it is never stored remotely.
type AudioDescriptor struct {
	Filename      string `json:"filename"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Size          string `json:"size"` // human-readable, e.g. "200.00 KB"
	SizeBytes     int64  `json:"sizeBytes,omitempty"`
	Duration      string `json:"duration,omitempty"` // m:ss, estimated from size
	DownloadURL   string `json:"downloadUrl,omitempty"`
	AgentCode     string `json:"agentCode,omitempty"`
	ExtensionCode string `json:"extensionCode,omitempty"`
	SourcePath    string `json:"sourcePath,omitempty"`
	ServerID      string `json:"serverId,omitempty"`
}

// Key identifies a descriptor for deduplication. Two hits produced by
// different candidate numbers or fallback passes collapse when both the
// filename and the download URL match.
func (a AudioDescriptor) Key() string {
	return a.Filename + "|" + a.DownloadURL
}
