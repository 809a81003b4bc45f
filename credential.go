package kustoclient

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

// TokenCredential is the narrow interface Conn consumes for acquiring a
// bearer token, satisfied directly by azcore.TokenCredential.
type TokenCredential interface {
	GetToken(ctx context.Context, options policy.TokenRequestOptions) (azcore.AccessToken, error)
}

// tokenProvider adapts a TokenCredential plus a resource's scope into the
// header value conn.send attaches to every request.
type tokenProvider struct {
	cred   TokenCredential
	scopes []string
}

func newTokenProvider(cred TokenCredential, resourceURI string) *tokenProvider {
	return &tokenProvider{cred: cred, scopes: []string{resourceURI + "/.default"}}
}

// authorizationRequired reports whether requests need a bearer token at
// all - false for an anonymous/test connection with no credential.
func (t *tokenProvider) authorizationRequired() bool {
	return t.cred != nil
}

// token acquires a fresh bearer token. It never logs the token itself.
func (t *tokenProvider) token(ctx context.Context) (string, error) {
	at, err := t.cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: t.scopes})
	if err != nil {
		return "", err
	}
	return at.Token, nil
}

// DefaultCredential returns azidentity's DefaultAzureCredential, chaining
// environment, managed identity, and Azure CLI credential sources in order.
func DefaultCredential() (TokenCredential, error) {
	return azidentity.NewDefaultAzureCredential(nil)
}

// AppKeyCredential authenticates as an AAD application via a client
// secret.
func AppKeyCredential(tenantID, clientID, clientSecret string) (TokenCredential, error) {
	return azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, nil)
}

// ManagedIdentityCredential authenticates as the given user-assigned
// managed identity, or the system-assigned identity if clientID is empty.
func ManagedIdentityCredential(clientID string) (TokenCredential, error) {
	opts := &azidentity.ManagedIdentityCredentialOptions{}
	if clientID != "" {
		opts.ID = azidentity.ClientID(clientID)
	}
	return azidentity.NewManagedIdentityCredential(opts)
}
