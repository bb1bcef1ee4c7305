package models

// User is a registered account; Id is the uuid carried in JWT claims and
// used as the player id once seated.
type User struct {
	Id       string
	Email    string
	Password string
}

// UserDto is the register/login request body.
type UserDto struct {
	Email string `json:"email"`
	Pass  string `json:"pass"`
}
