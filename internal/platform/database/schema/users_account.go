// Copyright (c) 2026 ERApp. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// UserAccountTable represents the 'users.account' table
type UserAccountTable struct {
	Table                 string
	ID                    string
	Email                 string
	Password              string
	Name                  string
	Role                  string
	BloodGroup            string
	Address               string
	Allergies             string
	EmergencyContactName  string
	EmergencyContactPhone string
	CreatedAt             string
	UpdatedAt             string
}

// UserAccount is the schema definition for users.account
var UserAccount = UserAccountTable{
	Table:                 "users.account",
	ID:                    "id",
	Email:                 "email",
	Password:              "passwordhash",
	Name:                  "name",
	Role:                  "role",
	BloodGroup:            "bloodgroup",
	Address:               "address",
	Allergies:             "allergies",
	EmergencyContactName:  "emergencycontactname",
	EmergencyContactPhone: "emergencycontactphone",
	CreatedAt:             "createdat",
	UpdatedAt:             "updatedat",
}

// Columns returns all standard column names in scan order
func (t UserAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Password, t.Name, t.Role, t.BloodGroup, t.Address,
		t.Allergies, t.EmergencyContactName, t.EmergencyContactPhone,
		t.CreatedAt, t.UpdatedAt,
	}
}
