package domain

// Role is the platform-wide user role. Hosts can list properties and receive
// booking earnings; admins operate the back-office.
type Role string

const (
	RoleUser  Role = "user"
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string to a Role, defaulting to RoleUser for
// anything unrecognized.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleHost:
		return RoleHost
	case RoleAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

type User struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	PhoneNumber  string `json:"phone_number"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	AvatarURL    string `json:"avatar_url"`
	Role         Role   `json:"role"`
	CreatedOn    string `json:"created_on"`
	UpdatedOn    string `json:"updated_on"`
}

// PaymentAccount is a payout destination registered by a host. Withdrawal
// requests must reference one of the host's accounts; verification is
// informational and does not gate withdrawals.
type PaymentAccount struct {
	ID            string `json:"id"`
	HostID        string `json:"host_id"`
	Provider      string `json:"provider"`
	AccountNumber string `json:"account_number"`
	HolderName    string `json:"holder_name"`
	Verified      bool   `json:"verified"`
	CreatedOn     string `json:"created_on"`
}
