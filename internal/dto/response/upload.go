package response

type UploadResponse struct {
	URL string `json:"url"`
}
