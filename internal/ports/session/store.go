package session

// Identity son los datos del usuario logueado que viajan junto al token.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// Store guarda el bearer token de la sesión.
// Una lectura fallida cuenta como "sin sesión".
type Store interface {
	Save(token string) error
	Read() (string, bool)
	Clear() error
	IsActive() bool

	SaveIdentity(id Identity) error
	ReadIdentity() (Identity, bool)
}
