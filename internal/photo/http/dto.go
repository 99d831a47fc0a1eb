package http

type PhotoUploadResponse struct {
	PhotoID      string  `json:"photo_id"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnail_url"`
}
