package models

import "golang.org/x/crypto/bcrypt"

// User is a registered student account. The password is kept only as a
// bcrypt hash and is never serialized to clients.
type User struct {
	ID           uint    `json:"id" db:"id" gorm:"primaryKey;autoIncrement;not null"`
	Username     string  `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string  `json:"-" db:"password_hash" gorm:"type:text;not null"`
	FullName     *string `json:"full_name,omitempty" db:"full_name" gorm:"type:text"`
	Phone        *string `json:"phone,omitempty" db:"phone" gorm:"type:text;uniqueIndex"`
	Email        string  `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Year         *int    `json:"year,omitempty" db:"year" gorm:"type:integer"`
	Branch       *string `json:"branch,omitempty" db:"branch" gorm:"type:text"`
	Bio          *string `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	InstituteID  *uint   `json:"institute_id,omitempty" db:"institute_id" gorm:"index"`

	Institute   *Institute      `json:"institute,omitempty" gorm:"foreignKey:InstituteID;references:ID"`
	Skills      []UserSkill     `json:"skills,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	Memberships []ProjectMember `json:"memberships,omitempty" gorm:"foreignKey:UserID;references:ID"`
}

// SetPassword replaces the stored credential with a bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether plain matches the stored hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}
