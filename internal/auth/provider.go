// Package auth supplies bearer credentials to the HTTP clients. Callers
// inject a Provider instead of reading tokens from ambient state at each
// request site.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// ErrNoCredential indicates no provider in the chain has a token.
var ErrNoCredential = errors.New("no api credential configured")

// Provider returns the bearer token for the current user.
type Provider interface {
	Token(ctx context.Context) (string, error)
}

// Static is a fixed token, typically from config or a flag.
type Static string

func (s Static) Token(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoCredential
	}
	return strings.TrimSpace(string(s)), nil
}

// Env reads the token from an environment variable on every call.
type Env string

func (e Env) Token(context.Context) (string, error) {
	v := strings.TrimSpace(os.Getenv(string(e)))
	if v == "" {
		return "", ErrNoCredential
	}
	return v, nil
}

// File reads the token from a file, such as one written by the web app's
// token export. A missing file counts as no credential.
type File string

func (f File) Token(context.Context) (string, error) {
	if f == "" {
		return "", ErrNoCredential
	}
	data, err := os.ReadFile(string(f))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoCredential
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	v := strings.TrimSpace(string(data))
	if v == "" {
		return "", ErrNoCredential
	}
	return v, nil
}

// Chain tries each provider in order and returns the first token found.
type Chain []Provider

func (c Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		tok, err := p.Token(ctx)
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, ErrNoCredential) {
			return "", err
		}
	}
	return "", ErrNoCredential
}

// None never has a token. Requests go out unauthenticated.
type None struct{}

func (None) Token(context.Context) (string, error) { return "", ErrNoCredential }

// Authorize sets the Authorization header on req from p. A provider with no
// credential leaves the request unauthenticated so the server decides;
// any other provider failure is returned.
func Authorize(ctx context.Context, req *http.Request, p Provider) error {
	if p == nil {
		return nil
	}
	tok, err := p.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return nil
		}
		return fmt.Errorf("resolving credential: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+tok)
	return nil
}
