package dto

type UploadRequest struct {
	Filename    string   `validate:"required"`
	ContentType string   `validate:"required"`
	Size        int64    `validate:"gt=0"`
	Specs       []string `validate:"dive,required"`
}

type GetImageRequest struct {
	ID string `validate:"required"`
}

type GetThumbnailRequest struct {
	ID   string `validate:"required"`
	Spec string `validate:"required"`
}

type DeleteRequest struct {
	ID string `validate:"required"`
}

type PlanRequest struct {
	Width  int      `json:"width" validate:"required,gt=0"`
	Height int      `json:"height" validate:"required,gt=0"`
	Specs  []string `json:"specs" validate:"dive,required"`
}
