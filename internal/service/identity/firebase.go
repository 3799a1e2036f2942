// Package identity verifies bearer tokens issued by Firebase Authentication.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"SignalStories/internal/domain/models"
)

// ErrUnauthorized is returned for a missing or rejected token.
var ErrUnauthorized = errors.New("unauthorized")

type tokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseConfig carries the service account fields.
type FirebaseConfig struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string
}

// FirebaseVerifier implements repository.IdentityVerifier.
type FirebaseVerifier struct {
	verifier tokenVerifier
}

// NewFirebase initialises the Firebase app once. Without a client email the
// verifier runs unauthenticated, which is enough to check ID token signatures.
func NewFirebase(ctx context.Context, cfg FirebaseConfig) (*FirebaseVerifier, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("firebase: project id is required")
	}

	var opt option.ClientOption
	if cfg.ClientEmail != "" {
		creds, err := serviceAccountJSON(cfg)
		if err != nil {
			return nil, err
		}
		opt = option.WithCredentialsJSON(creds)
	} else {
		opt = option.WithoutAuthentication()
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("firebase: init app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: init auth: %w", err)
	}
	return &FirebaseVerifier{verifier: client}, nil
}

// Verify checks the ID token and returns its subject.
func (f *FirebaseVerifier) Verify(ctx context.Context, token string) (*models.AuthenticatedUser, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	t, err := f.verifier.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	email, _ := t.Claims["email"].(string)
	return &models.AuthenticatedUser{UID: t.UID, Email: email}, nil
}

func serviceAccountJSON(cfg FirebaseConfig) ([]byte, error) {
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("firebase: private key is required with a client email")
	}
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   cfg.ProjectID,
		"client_email": cfg.ClientEmail,
		"private_key":  cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
}
