package customer

type CustomerRequest struct {
	FullName    string `json:"full_name" validate:"required,max=150"`
	Gender      string `json:"gender" validate:"omitempty,oneof=Male Female"`
	DateOfBirth string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Nationality string `json:"nationality" validate:"max=100"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Email       string `json:"email" validate:"required,email"`
	HomeAddress string `json:"home_address"`
}

type SearchQuery struct {
	Q               string `form:"q"`
	IncludeInactive bool   `form:"include_inactive"`
	Limit           int    `form:"limit"`
	Offset          int    `form:"offset"`
}
