package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"trade_bridge/internal/adaptor"
	"trade_bridge/internal/model"
)

const credentialDocID = "exchange"

var _ adaptor.CredentialRepository = (*CredentialMongoRepository)(nil)

// CredentialMongoRepository persists the singleton pair as one upserted
// document.
type CredentialMongoRepository struct {
	collection *mongo.Collection
	cipher     secretCipher
}

func NewCredentialMongoRepository(db *mongo.Database, encryptionKey []byte) (*CredentialMongoRepository, error) {
	cipher, err := newSecretCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	return &CredentialMongoRepository{
		collection: db.Collection("credentials"),
		cipher:     cipher,
	}, nil
}

func (r *CredentialMongoRepository) Get(ctx context.Context) (*model.Credential, error) {
	var doc struct {
		APIKey    string `bson:"api_key"`
		APISecret string `bson:"api_secret"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": credentialDocID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	opened, err := r.cipher.open(model.Credential{APIKey: doc.APIKey, APISecret: doc.APISecret})
	if err != nil {
		return nil, err
	}
	return &opened, nil
}

func (r *CredentialMongoRepository) Set(ctx context.Context, cred model.Credential) error {
	sealed, err := r.cipher.seal(cred)
	if err != nil {
		return err
	}

	_, err = r.collection.ReplaceOne(ctx,
		bson.M{"_id": credentialDocID},
		bson.M{
			"_id":        credentialDocID,
			"api_key":    sealed.APIKey,
			"api_secret": sealed.APISecret,
		},
		options.Replace().SetUpsert(true),
	)
	return err
}
