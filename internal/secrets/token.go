package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "jobtrack"

// GetBoardToken returns the job-board API token stored under the configured
// keychain account. Missing token is not an error for callers that can run
// anonymously; they get "".
func GetBoardToken(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", nil
	}
	tok, err := keyring.Get(KeyringService, keyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func SetBoardToken(keyringAccount, token string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, token)
}

func DeleteBoardToken(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
