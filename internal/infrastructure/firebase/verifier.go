// Package firebase adapta el SDK de Firebase Auth al puerto identity.TokenVerifier.
package firebase

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/tu-usuario/punto-venta/internal/application/identity"
	"github.com/tu-usuario/punto-venta/pkg/config"
	"google.golang.org/api/option"
)

var _ identity.TokenVerifier = (*Verifier)(nil)

// Verifier verifica ID tokens contra Firebase Auth.
type Verifier struct {
	client *auth.Client
}

// NewVerifier inicializa el cliente de Firebase Auth. Si no se configura un
// archivo de credenciales se usan las Application Default Credentials.
func NewVerifier(ctx context.Context, cfg config.FirebaseConfig) (*Verifier, error) {
	fbCfg := &firebase.Config{ProjectID: cfg.ProjectID}
	var app *firebase.App
	var err error
	if cfg.CredentialsFile != "" {
		app, err = firebase.NewApp(ctx, fbCfg, option.WithCredentialsFile(cfg.CredentialsFile))
	} else {
		app, err = firebase.NewApp(ctx, fbCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("firebase app init: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth init: %w", err)
	}
	return &Verifier{client: client}, nil
}

// Verify valida el ID token y extrae uid, email y nombre de sus claims.
func (v *Verifier) Verify(ctx context.Context, idToken string) (*identity.Principal, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return nil, fmt.Errorf("token sin uid")
	}
	principal := &identity.Principal{UID: uid}
	if email, ok := token.Claims["email"].(string); ok {
		principal.Email = strings.TrimSpace(email)
	}
	if name, ok := token.Claims["name"].(string); ok {
		principal.Name = strings.TrimSpace(name)
	}
	return principal, nil
}
