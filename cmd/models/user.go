package models

// User is a registered account. Password holds a bcrypt hash and is never
// serialized back to clients.
type User struct {
    UserID         uint    `gorm:"column:user_id;primaryKey" json:"user_id"`
    Username       string  `gorm:"column:username;size:255;not null;uniqueIndex" json:"username"`
    Password       string  `gorm:"column:password;size:255;not null" json:"-"`
    Bio            *string `gorm:"column:bio;type:text" json:"bio,omitempty"`
    ProfilePicture *string `gorm:"column:profile_picture;size:500" json:"profile_picture,omitempty"`
}

func (User) TableName() string {
    return "users"
}
