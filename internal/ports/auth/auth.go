package auth

import "context"

// Claims es lo que el resto del servicio sabe del usuario autenticado.
// Para vacunas solo importa UserID (dueño de la mascota).
type Claims struct {
	UserID   string
	Email    string
	TenantID string
}

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// VerifierFunc adapta una función a AuthVerifier (tests, verificadores estáticos).
type VerifierFunc func(ctx context.Context, token string) (Claims, error)

func (f VerifierFunc) Verify(ctx context.Context, token string) (Claims, error) {
	return f(ctx, token)
}
