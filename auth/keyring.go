// Package auth provides a high-level API for persisting and retrieving the service token from the system keyring.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/downify/downify/constant"
	"github.com/downify/downify/log"
	"github.com/zalando/go-keyring"
)

const user = "service-token"

// ErrEmptyToken is returned when an empty token is stored.
var ErrEmptyToken = errors.New("token cannot be empty")

// SetToken persists the service bearer token to the system keyring.
func SetToken(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrEmptyToken
	}

	if err := keyring.Set(constant.Downify, user, token); err != nil {
		log.Error("failed to save token to keyring: " + err.Error())
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Token retrieves the stored token. A missing token is not an error and yields an empty string.
func Token() (string, error) {
	token, err := keyring.Get(constant.Downify, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		log.Infof("keyring unavailable: %v", err)
		return "", err
	}
	return token, nil
}

// DeleteToken removes the token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(constant.Downify, user)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
