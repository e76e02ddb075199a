package domain

import "time"

// PortfolioItem is a vendor portfolio image held in object storage.
type PortfolioItem struct {
	ID          string    `json:"id"`
	VendorID    string    `json:"vendorId"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	MimeType    string    `json:"mimeType"`
	StoragePath string    `json:"storagePath"`
	Caption     string    `json:"caption,omitempty"`
	URL         string    `json:"url,omitempty"`
	UploadedAt  time.Time `json:"uploadedAt"`
}
