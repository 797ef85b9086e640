package proto

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// CreateAlias binds an alias to the sender's address.
type CreateAlias struct {
	Alias Alias
}

func NewCreateAlias(alias Alias) *CreateAlias {
	return &CreateAlias{Alias: alias}
}

func (tx *CreateAlias) Type() TransactionType {
	return CreateAliasTransaction
}

func (tx *CreateAlias) Valid(_ byte, scheme Scheme) error {
	if err := tx.Alias.Valid(); err != nil {
		return err
	}
	if tx.Alias.Scheme != scheme {
		return errors.Errorf("alias %s belongs to network '%c', expected '%c'", tx.Alias.String(), tx.Alias.Scheme, scheme)
	}
	return nil
}

func (tx *CreateAlias) clone() (TransactionData, error) {
	c := *tx
	return &c, nil
}

func (tx *CreateAlias) writeBody(s *serializer.Serializer, _ byte) error {
	b, err := tx.Alias.MarshalBinary()
	if err != nil {
		return err
	}
	return s.BytesWithUInt16Len(b)
}

// The node reports only the alias name, the network comes from the envelope.
type createAliasJSON struct {
	Alias string `json:"alias"`
}

func (tx *CreateAlias) MarshalJSON() ([]byte, error) {
	return json.Marshal(createAliasJSON{Alias: tx.Alias.Alias})
}

func (tx *CreateAlias) UnmarshalJSON(value []byte) error {
	var tmp struct {
		createAliasJSON
		ChainID byte `json:"chainId"`
	}
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to unmarshal CreateAlias from JSON")
	}
	tx.Alias = Alias{Version: aliasVersion, Scheme: tmp.ChainID, Alias: tmp.Alias}
	return nil
}
