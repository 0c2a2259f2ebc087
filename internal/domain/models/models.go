package models

import (
	"reviewhub/proj/internal/domain/fields"
	"time"
)

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MinScore          = 1
	MaxScore          = 10
)

type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Bio              string    `json:"bio"`
	Role             string    `json:"role"`
	IsStaff          bool      `json:"-"`
	ConfirmationCode string    `json:"-"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// AnonymousUser marks a request that carried no valid bearer token.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == nil || u == AnonymousUser || u.ID == 0
}

type Category struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Genre struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Title struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Year        int32          `json:"year"`
	Description string         `json:"description"`
	Category    *Category      `json:"category"`
	Genres      []Genre        `json:"genres"`
	Rating      *fields.Rating `json:"rating"` // derived, nil when the title has no reviews
}

type Review struct {
	ID      int64     `json:"id"`
	TitleID int64     `json:"-"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`

	AuthorID int64 `json:"-"`
}

type Comment struct {
	ID       int64     `json:"id"`
	ReviewID int64     `json:"-"`
	Author   string    `json:"author"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`

	AuthorID int64 `json:"-"`
}
