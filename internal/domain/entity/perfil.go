package entity

// Perfil es la identidad del trabajador que opera el punto de venta,
// normalizada desde la respuesta de /worker/getByEmail. La saga lo usa en
// cada llamada para idTrabajador e idSucursal.
type Perfil struct {
	ID         int64   `json:"idTrabajador"`
	IDSucursal int64   `json:"idSucursal"`
	Email      string  `json:"email"`
	Persona    Persona `json:"persona"`
}

// Nombre devuelve el nombre visible del trabajador.
func (p Perfil) Nombre() string { return p.Persona.NombreCompleto() }
