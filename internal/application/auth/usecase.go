// Package auth define el contrato del Identity Gate: a partir de una credencial bearer
// obtiene el tenant verificado. La emisión de credenciales (registro, login) es externa.
package auth

import (
	"fmt"

	"github.com/jhoicas/stockledger/internal/domain"
	"github.com/jhoicas/stockledger/internal/domain/entity"
	"github.com/jhoicas/stockledger/pkg/jwt"
)

// TokenVerifier valida una credencial y devuelve el tenant.
// Cualquier fallo de validación se reporta como domain.ErrUnauthorized.
type TokenVerifier interface {
	Verify(token string) (*entity.Tenant, error)
}

// JWTConfig configuración para validar tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// JWTVerifier implementa TokenVerifier con tokens HS256.
type JWTVerifier struct {
	cfg JWTConfig
}

var _ TokenVerifier = (*JWTVerifier)(nil)

// NewJWTVerifier construye el verificador.
func NewJWTVerifier(cfg JWTConfig) *JWTVerifier {
	return &JWTVerifier{cfg: cfg}
}

// Verify valida firma, expiración y emisor; exige user_id. Sin nombre visible se usa el id como actor.
func (v *JWTVerifier) Verify(token string) (*entity.Tenant, error) {
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	userID, name, err := jwt.Parse(v.cfg.Secret, v.cfg.Issuer, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if name == "" {
		name = userID
	}
	return &entity.Tenant{ID: userID, DisplayName: name}, nil
}
