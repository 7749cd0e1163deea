package repository

import (
	"trade_bridge/internal/model"
	"trade_bridge/pkg/crypto"
)

// secretCipher applies at-rest encryption to a credential pair before it
// reaches a persistent store. A nil key is a passthrough, for deployments
// that accept plaintext storage.
type secretCipher struct {
	key []byte
}

func newSecretCipher(key []byte) (secretCipher, error) {
	if len(key) != 0 && len(key) != 32 {
		return secretCipher{}, crypto.ErrInvalidKeyLength
	}
	return secretCipher{key: key}, nil
}

func (c secretCipher) seal(cred model.Credential) (model.Credential, error) {
	if c.key == nil {
		return cred, nil
	}
	apiKey, err := crypto.Encrypt(cred.APIKey, c.key)
	if err != nil {
		return model.Credential{}, err
	}
	apiSecret, err := crypto.Encrypt(cred.APISecret, c.key)
	if err != nil {
		return model.Credential{}, err
	}
	return model.Credential{APIKey: apiKey, APISecret: apiSecret}, nil
}

func (c secretCipher) open(cred model.Credential) (model.Credential, error) {
	if c.key == nil {
		return cred, nil
	}
	apiKey, err := crypto.Decrypt(cred.APIKey, c.key)
	if err != nil {
		return model.Credential{}, err
	}
	apiSecret, err := crypto.Decrypt(cred.APISecret, c.key)
	if err != nil {
		return model.Credential{}, err
	}
	return model.Credential{APIKey: apiKey, APISecret: apiSecret}, nil
}
