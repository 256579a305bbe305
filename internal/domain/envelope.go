package domain

// Message is the payload of delete endpoints.
type Message struct {
	Message string `json:"message"`
}

// UploadedImages is the payload of the image upload endpoint.
type UploadedImages struct {
	UploadedURLs []string `json:"uploadedUrls"`
}

// Health is the payload of GET /health on the backend.
type Health struct {
	OK        bool   `json:"ok"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}
