package auth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/GoSim-25-26J-441/showcase-backend/config"
)

// TokenVerifier checks a Firebase ID token. *fbauth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// revocationChecker also rejects tokens of disabled or signed-out accounts.
type revocationChecker struct {
	client *fbauth.Client
}

func (r revocationChecker) VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error) {
	return r.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
}

// NewTokenVerifier builds the verifier used by FirebaseResolver. With
// CheckRevoked set every request costs a round trip to Firebase.
func NewTokenVerifier(ctx context.Context, cfg *config.FirebaseConfig) (TokenVerifier, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, option.WithCredentialsFile(cfg.CredentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	if cfg.CheckRevoked {
		return revocationChecker{client: client}, nil
	}
	return client, nil
}
