package dto

type SubscribeRequest struct {
	Email  string `json:"email" validate:"required,email,max=255"`
	Locale string `json:"locale" validate:"omitempty,oneof=ar en"`
}

func (r SubscribeRequest) Validate() error {
	return validate.Struct(r)
}

type SubscribeResponse struct {
	Message string `json:"message"`
}
