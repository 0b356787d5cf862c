package models

// User is an account holder. Users are provisioned out of band; the API key
// is a pre-issued opaque token and there is no signup or password flow.
type User struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	APIKey string `json:"-" gorm:"size:64;uniqueIndex;not null"`
	Name   string `json:"name" gorm:"size:128;not null"`
}

// UserCompact is the embedded author/liker representation used in responses.
type UserCompact struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name}
}

// UserProfile is the serialized profile returned by the user endpoints.
type UserProfile struct {
	ID        uint          `json:"id"`
	Name      string        `json:"name"`
	Followers []UserCompact `json:"followers"`
	Following []UserCompact `json:"following"`
}
