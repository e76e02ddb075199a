package domain

type User struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Role     UserRole         `json:"role"`
	Business *BusinessDetails `json:"business,omitempty"`
}

// BusinessDetails is carried only by vendor registrations.
type BusinessDetails struct {
	BusinessName string `json:"business_name"`
	Category     string `json:"category"`
	Description  string `json:"description,omitempty"`
	Location     string `json:"location,omitempty"`
}

type UserRole string

const (
	RoleUser   UserRole = "user"
	RoleVendor UserRole = "vendor"
	RoleAdmin  UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleVendor, RoleAdmin:
		return true
	default:
		return false
	}
}

type LoginInput struct {
	Email    string   `json:"email"`
	Password string   `json:"password"`
	Role     UserRole `json:"role"`
}

type RegisterInput struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     UserRole         `json:"role"`
	Business *BusinessDetails `json:"business,omitempty"`
}
