package dto

// CreatePersonRequest carries the admin "add person" form. The picture arrives
// separately as a multipart file.
type CreatePersonRequest struct {
	BadgeCode     string `json:"badge_code" form:"badge_code" validate:"required"`
	FirstName     string `json:"first_name" form:"first_name" validate:"required"`
	MiddleName    string `json:"middle_name" form:"middle_name"`
	LastName      string `json:"last_name" form:"last_name" validate:"required"`
	DisplayName   string `json:"display_name" form:"display_name"`
	Status        string `json:"status" form:"status"`
	Role          string `json:"role" form:"role"`
	Company       string `json:"company" form:"company"`
	Address       string `json:"address" form:"address"`
	ContactNumber string `json:"contact_number" form:"contact_number"`
	IDNumber      string `json:"id_number" form:"id_number"`
	RegisteredOn  string `json:"registered_on" form:"registered_on"` // YYYY-MM-DD
}

// UpdatePersonRequest: zero-value fields are left untouched.
type UpdatePersonRequest struct {
	FirstName     string `json:"first_name" form:"first_name"`
	MiddleName    string `json:"middle_name" form:"middle_name"`
	LastName      string `json:"last_name" form:"last_name"`
	DisplayName   string `json:"display_name" form:"display_name"`
	Status        string `json:"status" form:"status"`
	Role          string `json:"role" form:"role"`
	Company       string `json:"company" form:"company"`
	Address       string `json:"address" form:"address"`
	ContactNumber string `json:"contact_number" form:"contact_number"`
	IDNumber      string `json:"id_number" form:"id_number"`
}

// RegistryStats mirrors the admin dashboard counters.
type RegistryStats struct {
	TotalPeople    int64 `json:"total_people"`
	ActivePeople   int64 `json:"active_people"`
	InactivePeople int64 `json:"inactive_people"`
	CheckedIn      int64 `json:"checked_in"`
}
