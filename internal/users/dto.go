package users

import (
	"strings"

	"github.com/itaoit/itstock-backend/pkg/enums"
	"github.com/itaoit/itstock-backend/pkg/sheets/sheetdb"
)

// User is one account row including its password hash. Never serialized to
// clients; use UserDTO for that.
type User struct {
	Username     string
	DisplayName  string
	Role         enums.Role
	PasswordHash string
	Active       bool
}

// UserDTO is the client-facing view of an account.
type UserDTO struct {
	Username    string     `json:"username"`
	DisplayName string     `json:"display_name"`
	Role        enums.Role `json:"role"`
	Active      bool       `json:"active"`
}

// DTO strips the password hash.
func (u User) DTO() UserDTO {
	return UserDTO{
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Active:      u.Active,
	}
}

// FromRow maps a tab row into a User.
func FromRow(row sheetdb.Row) User {
	return User{
		Username:     row[sheetdb.ColUserName],
		DisplayName:  row[sheetdb.ColUserDisplay],
		Role:         enums.Role(row[sheetdb.ColUserRole]),
		PasswordHash: row[sheetdb.ColUserHash],
		Active:       !strings.EqualFold(row[sheetdb.ColUserActive], "N"),
	}
}

// ToRow maps the user back into tab cells.
func (u User) ToRow() sheetdb.Row {
	active := "Y"
	if !u.Active {
		active = "N"
	}
	return sheetdb.Row{
		sheetdb.ColUserName:    u.Username,
		sheetdb.ColUserDisplay: u.DisplayName,
		sheetdb.ColUserRole:    string(u.Role),
		sheetdb.ColUserHash:    u.PasswordHash,
		sheetdb.ColUserActive:  active,
	}
}
