package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidMagnitude  = errors.New("la cantidad debe ser un entero positivo")
	ErrInvalidDirection  = errors.New("tipo de movimiento desconocido")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrTransient envuelve fallos de almacenamiento; el llamador puede reintentar la operación completa.
	ErrTransient = errors.New("fallo transitorio de almacenamiento")
)
