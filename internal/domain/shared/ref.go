package shared

import (
	"bytes"
	"encoding/json"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID es un identificador que puede llegar como "abc" o como {"$oid":"abc"}.
type ID string

func (id ID) String() string { return string(id) }

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var oid struct {
		OID string `json:"$oid"`
	}
	if err := json.Unmarshal(b, &oid); err != nil {
		return err
	}
	*id = ID(normalizeOID(oid.OID))
	return nil
}

// NewID genera un id con formato ObjectID (24 hex), como los del server.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

func normalizeOID(s string) string {
	s = strings.TrimSpace(s)
	if oid, err := primitive.ObjectIDFromHex(s); err == nil {
		return oid.Hex()
	}
	return s
}

// Ref es una relación que el server manda como id "pelado" o como objeto poblado.
// Ambos intentos de decode son independientes; si ninguno sirve queda vacía.
type Ref[T any] struct {
	ID      string
	Details *T
}

// RefTo arma una referencia solo con id.
func RefTo[T any](id string) Ref[T] {
	return Ref[T]{ID: id}
}

// Populated arma una referencia poblada.
func Populated[T any](id string, details T) Ref[T] {
	return Ref[T]{ID: id, Details: &details}
}

func (r Ref[T]) IsZero() bool { return r.ID == "" && r.Details == nil }

// Nunca devuelve error: la población la decide el server y varía por endpoint.
func (r *Ref[T]) UnmarshalJSON(b []byte) error {
	*r = Ref[T]{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.ID = s
	}

	if b[0] != '{' {
		return nil
	}

	var raw struct {
		OID   *string `json:"$oid"`
		MID   *ID     `json:"_id"`
		Plain *string `json:"id"`
	}
	_ = json.Unmarshal(b, &raw)

	if raw.OID != nil {
		r.ID = normalizeOID(*raw.OID)
		return nil
	}

	var details T
	if err := json.Unmarshal(b, &details); err == nil {
		r.Details = &details
	}

	switch {
	case raw.MID != nil && *raw.MID != "":
		r.ID = string(*raw.MID)
	case raw.Plain != nil && *raw.Plain != "":
		r.ID = *raw.Plain
	}
	return nil
}

func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.Details != nil:
		return json.Marshal(r.Details)
	case r.ID != "":
		return json.Marshal(r.ID)
	default:
		return []byte("null"), nil
	}
}

// GeoPoint es un Point GeoJSON: coordinates = [lng, lat].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

func NewPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

func (p GeoPoint) Longitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[0]
}

func (p GeoPoint) Latitude() float64 {
	if len(p.Coordinates) < 2 {
		return 0
	}
	return p.Coordinates[1]
}
