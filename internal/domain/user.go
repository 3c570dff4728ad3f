package domain

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

type User struct {
	IDUsuario int64     `json:"id_usuario"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	CreatedAt time.Time `json:"created_at"`
}

// FirstName returns the first word of Nombre with the initial letter
// upper-cased and the rest lowered, or "Usuario" when no name is known.
func (u *User) FirstName() string {
	if u == nil {
		return "Usuario"
	}
	name := strings.TrimSpace(u.Nombre)
	if name == "" {
		return "Usuario"
	}
	first := strings.Fields(name)[0]
	r, size := utf8.DecodeRuneInString(first)
	return string(unicode.ToUpper(r)) + strings.ToLower(first[size:])
}
