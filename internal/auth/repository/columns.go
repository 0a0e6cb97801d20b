package repository

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	authDomain "github.com/allisson/webhooks/internal/auth/domain"
	apperrors "github.com/allisson/webhooks/internal/errors"
)

// Column order shared by every INSERT and SELECT in this package.
const (
	clientColumnList = "id, secret, name, is_active, policies, created_at"
	tokenColumnList  = "id, token_hash, client_id, expires_at, revoked_at, created_at"
)

// lookupError turns sql.ErrNoRows into the domain's not-found error.
func lookupError(err, notFound error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return apperrors.Wrap(err, "failed to get "+what)
}

// binaryID encodes id for a BINARY(16) column.
func binaryID(id uuid.UUID, what string) ([]byte, error) {
	raw, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal "+what+" id")
	}
	return raw, nil
}

func parseBinaryID(raw []byte, dst *uuid.UUID, what string) error {
	if err := dst.UnmarshalBinary(raw); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal "+what+" id")
	}
	return nil
}

func encodePolicies(client *authDomain.Client) ([]byte, error) {
	raw, err := json.Marshal(client.Policies)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client policies")
	}
	return raw, nil
}

func decodePolicies(raw []byte, client *authDomain.Client) error {
	if err := json.Unmarshal(raw, &client.Policies); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal client policies")
	}
	return nil
}
