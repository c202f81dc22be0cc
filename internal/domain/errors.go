package domain

import "errors"

// Errores de dominio del motor de matching. Ninguno es fatal: cada modo de
// fallo tiene un comportamiento degradado definido en la capa de servicio.
var (
	// ErrNotFound - perfil o registro de match inexistente.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePair - ya existe un registro no vencido para el par.
	ErrDuplicatePair = errors.New("duplicate pair")

	// ErrNotAuthorized - el actor no es uno de los dos participantes.
	ErrNotAuthorized = errors.New("not authorized for this match")
)
