package enum

import (
	"encoding/json"
	"fmt"
)

// UserRole decides which screens a user may reach.
type UserRole int

const (
	UserRoleDriver UserRole = 0
	UserRoleAdmin  UserRole = 1
)

func (r UserRole) String() string {
	switch r {
	case UserRoleDriver:
		return "driver"
	case UserRoleAdmin:
		return "admin"
	}
	return fmt.Sprintf("UserRole(%d)", int(r))
}

// ParseUserRole parses the lowercase role name.
func ParseUserRole(s string) (UserRole, error) {
	switch s {
	case "driver":
		return UserRoleDriver, nil
	case "admin":
		return UserRoleAdmin, nil
	}
	return UserRoleDriver, fmt.Errorf("unknown user role %q", s)
}

func (r UserRole) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *UserRole) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*r = UserRole(i)
		return nil
	}
	role, err := ParseUserRole(str)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
