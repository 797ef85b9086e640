package proto

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// ValueType is the tag byte of data entries and function call arguments.
type ValueType byte

const (
	Integer ValueType = iota
	Boolean
	Binary
	String
)

func (vt ValueType) String() string {
	switch vt {
	case Integer:
		return "integer"
	case Boolean:
		return "boolean"
	case Binary:
		return "binary"
	case String:
		return "string"
	default:
		return ""
	}
}

// DataEntry is a typed key-value pair stored in the sender's account.
type DataEntry interface {
	GetKey() string
	GetValueType() ValueType
	valueSize() int
	writeValue(s *serializer.Serializer) error
	clone() DataEntry
}

type IntegerDataEntry struct {
	Key   string
	Value int64
}

func (e *IntegerDataEntry) GetKey() string {
	return e.Key
}

func (e *IntegerDataEntry) GetValueType() ValueType {
	return Integer
}

func (e *IntegerDataEntry) valueSize() int {
	return 8
}

func (e *IntegerDataEntry) writeValue(s *serializer.Serializer) error {
	return s.Int64(e.Value)
}

func (e *IntegerDataEntry) clone() DataEntry {
	c := *e
	return &c
}

func (e *IntegerDataEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		K string `json:"key"`
		T string `json:"type"`
		V int64  `json:"value"`
	}{e.Key, e.GetValueType().String(), e.Value})
}

func (e *IntegerDataEntry) UnmarshalJSON(value []byte) error {
	tmp := struct {
		K string `json:"key"`
		V int64  `json:"value"`
	}{}
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to deserialize integer data entry from JSON")
	}
	e.Key = tmp.K
	e.Value = tmp.V
	return nil
}

type BooleanDataEntry struct {
	Key   string
	Value bool
}

func (e *BooleanDataEntry) GetKey() string {
	return e.Key
}

func (e *BooleanDataEntry) GetValueType() ValueType {
	return Boolean
}

func (e *BooleanDataEntry) valueSize() int {
	return 1
}

func (e *BooleanDataEntry) writeValue(s *serializer.Serializer) error {
	return s.Bool(e.Value)
}

func (e *BooleanDataEntry) clone() DataEntry {
	c := *e
	return &c
}

func (e *BooleanDataEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		K string `json:"key"`
		T string `json:"type"`
		V bool   `json:"value"`
	}{e.Key, e.GetValueType().String(), e.Value})
}

func (e *BooleanDataEntry) UnmarshalJSON(value []byte) error {
	tmp := struct {
		K string `json:"key"`
		V bool   `json:"value"`
	}{}
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to deserialize boolean data entry from JSON")
	}
	e.Key = tmp.K
	e.Value = tmp.V
	return nil
}

// BinaryDataEntry keeps its value as BASE64 with a prefix in JSON.
type BinaryDataEntry struct {
	Key   string
	Value []byte
}

func (e *BinaryDataEntry) GetKey() string {
	return e.Key
}

func (e *BinaryDataEntry) GetValueType() ValueType {
	return Binary
}

func (e *BinaryDataEntry) valueSize() int {
	return len(e.Value)
}

func (e *BinaryDataEntry) writeValue(s *serializer.Serializer) error {
	return s.BytesWithUInt16Len(e.Value)
}

func (e *BinaryDataEntry) clone() DataEntry {
	return &BinaryDataEntry{Key: e.Key, Value: slices.Clone(e.Value)}
}

func (e *BinaryDataEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		K string `json:"key"`
		T string `json:"type"`
		V Script `json:"value"`
	}{e.Key, e.GetValueType().String(), Script(e.Value)})
}

func (e *BinaryDataEntry) UnmarshalJSON(value []byte) error {
	tmp := struct {
		K string `json:"key"`
		V Script `json:"value"`
	}{}
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to deserialize binary data entry from JSON")
	}
	e.Key = tmp.K
	e.Value = tmp.V
	return nil
}

type StringDataEntry struct {
	Key   string
	Value string
}

func (e *StringDataEntry) GetKey() string {
	return e.Key
}

func (e *StringDataEntry) GetValueType() ValueType {
	return String
}

func (e *StringDataEntry) valueSize() int {
	return len(e.Value)
}

func (e *StringDataEntry) writeValue(s *serializer.Serializer) error {
	return s.StringWithUInt16Len(e.Value)
}

func (e *StringDataEntry) clone() DataEntry {
	c := *e
	return &c
}

func (e *StringDataEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		K string `json:"key"`
		T string `json:"type"`
		V string `json:"value"`
	}{e.Key, e.GetValueType().String(), e.Value})
}

func (e *StringDataEntry) UnmarshalJSON(value []byte) error {
	tmp := struct {
		K string `json:"key"`
		V string `json:"value"`
	}{}
	if err := json.Unmarshal(value, &tmp); err != nil {
		return errors.Wrap(err, "failed to deserialize string data entry from JSON")
	}
	e.Key = tmp.K
	e.Value = tmp.V
	return nil
}

type dataEntryType struct {
	Type string `json:"type"`
}

func guessDataEntryType(t dataEntryType) (DataEntry, error) {
	switch t.Type {
	case "integer":
		return &IntegerDataEntry{}, nil
	case "boolean":
		return &BooleanDataEntry{}, nil
	case "binary":
		return &BinaryDataEntry{}, nil
	case "string":
		return &StringDataEntry{}, nil
	default:
		return nil, errors.Errorf("unsupported data entry type '%s'", t.Type)
	}
}

type DataEntries []DataEntry

func (e *DataEntries) UnmarshalJSON(data []byte) error {
	wrapError := func(err error) error { return errors.Wrap(err, "failed to unmarshal DataEntries from JSON") }
	var ets []dataEntryType
	if err := json.Unmarshal(data, &ets); err != nil {
		return wrapError(err)
	}
	entries := make([]DataEntry, len(ets))
	for i, row := range ets {
		et, err := guessDataEntryType(row)
		if err != nil {
			return wrapError(err)
		}
		entries[i] = et
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return wrapError(err)
	}
	*e = entries
	return nil
}

// Data writes key-value entries into the sender's account storage.
type Data struct {
	Entries DataEntries `json:"data"`
}

func NewData(entries ...DataEntry) *Data {
	return &Data{Entries: entries}
}

func (tx *Data) Type() TransactionType {
	return DataTransaction
}

func (tx *Data) Valid(_ byte, _ Scheme) error {
	if l := len(tx.Entries); l > maxEntries {
		return errs.NewTooBigArray("number of data entries " + strconv.Itoa(l) + " is greater than " + strconv.Itoa(maxEntries))
	}
	keys := make(map[string]struct{}, len(tx.Entries))
	for i, e := range tx.Entries {
		if isNil(e) {
			return errs.NewEmptyDataKey("data entry " + strconv.Itoa(i) + " is nil")
		}
		k := e.GetKey()
		if k == "" {
			return errs.NewEmptyDataKey("empty data entry key")
		}
		if l := len(k); l > maxKeySize {
			return errs.NewTooLongData("data entry key of " + strconv.Itoa(l) + " bytes is longer than " + strconv.Itoa(maxKeySize))
		}
		if l := e.valueSize(); l > maxValueSize {
			return errs.NewTooLongData("value of '" + k + "' has " + strconv.Itoa(l) + " bytes, more than " + strconv.Itoa(maxValueSize))
		}
		if _, ok := keys[k]; ok {
			return errs.NewDuplicatedDataKeys("duplicated data entry key '" + k + "'")
		}
		keys[k] = struct{}{}
	}
	return nil
}

func (tx *Data) clone() (TransactionData, error) {
	if tx.Entries == nil {
		return &Data{}, nil
	}
	entries := make(DataEntries, len(tx.Entries))
	for i, e := range tx.Entries {
		if !isNil(e) {
			entries[i] = e.clone()
		}
	}
	return &Data{Entries: entries}, nil
}

func (tx *Data) writeBody(s *serializer.Serializer, _ byte) error {
	if err := s.Uint16(uint16(len(tx.Entries))); err != nil {
		return err
	}
	for i, e := range tx.Entries {
		if isNil(e) {
			return errors.Errorf("data entry %d is nil", i)
		}
		if err := s.StringWithUInt16Len(e.GetKey()); err != nil {
			return err
		}
		if err := s.Byte(byte(e.GetValueType())); err != nil {
			return err
		}
		if err := e.writeValue(s); err != nil {
			return err
		}
	}
	return nil
}
