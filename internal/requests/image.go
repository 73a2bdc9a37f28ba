package requests

// ListImagesRequest represents the listing query parameters
type ListImagesRequest struct {
	Page    int `query:"page" json:"page" validate:"min=1"`
	PerPage int `query:"per_page" json:"per_page" validate:"min=1,max=100"`
}
