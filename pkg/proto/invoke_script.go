package proto

import (
	"encoding/json"
	"slices"
	"strconv"

	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/errs"
	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Argument is a typed argument of a dApp function call.
type Argument interface {
	GetValueType() ValueType
	writeValue(s *serializer.Serializer) error
	clone() Argument
}

type IntegerArgument struct {
	Value int64
}

func (a *IntegerArgument) GetValueType() ValueType {
	return Integer
}

func (a *IntegerArgument) writeValue(s *serializer.Serializer) error {
	return s.Int64(a.Value)
}

func (a *IntegerArgument) clone() Argument {
	c := *a
	return &c
}

func (a *IntegerArgument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		T string `json:"type"`
		V int64  `json:"value"`
	}{a.GetValueType().String(), a.Value})
}

type BooleanArgument struct {
	Value bool
}

func (a *BooleanArgument) GetValueType() ValueType {
	return Boolean
}

func (a *BooleanArgument) writeValue(s *serializer.Serializer) error {
	return s.Bool(a.Value)
}

func (a *BooleanArgument) clone() Argument {
	c := *a
	return &c
}

func (a *BooleanArgument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		T string `json:"type"`
		V bool   `json:"value"`
	}{a.GetValueType().String(), a.Value})
}

type BinaryArgument struct {
	Value []byte
}

func (a *BinaryArgument) GetValueType() ValueType {
	return Binary
}

func (a *BinaryArgument) writeValue(s *serializer.Serializer) error {
	return s.BytesWithUInt32Len(a.Value)
}

func (a *BinaryArgument) clone() Argument {
	return &BinaryArgument{Value: slices.Clone(a.Value)}
}

func (a *BinaryArgument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		T string `json:"type"`
		V Script `json:"value"`
	}{a.GetValueType().String(), Script(a.Value)})
}

type StringArgument struct {
	Value string
}

func (a *StringArgument) GetValueType() ValueType {
	return String
}

func (a *StringArgument) writeValue(s *serializer.Serializer) error {
	return s.StringWithUInt32Len(a.Value)
}

func (a *StringArgument) clone() Argument {
	c := *a
	return &c
}

func (a *StringArgument) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		T string `json:"type"`
		V string `json:"value"`
	}{a.GetValueType().String(), a.Value})
}

type Arguments []Argument

func (a *Arguments) UnmarshalJSON(data []byte) error {
	wrapError := func(err error) error { return errors.Wrap(err, "failed to unmarshal Arguments from JSON") }
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return wrapError(err)
	}
	args := make(Arguments, len(raw))
	for i, r := range raw {
		var t dataEntryType
		if err := json.Unmarshal(r, &t); err != nil {
			return wrapError(err)
		}
		arg, err := unmarshalArgument(t.Type, r)
		if err != nil {
			return wrapError(err)
		}
		args[i] = arg
	}
	*a = args
	return nil
}

func unmarshalArgument(t string, r json.RawMessage) (Argument, error) {
	switch t {
	case "integer":
		var v struct {
			Value int64 `json:"value"`
		}
		err := json.Unmarshal(r, &v)
		return &IntegerArgument{Value: v.Value}, err
	case "boolean":
		var v struct {
			Value bool `json:"value"`
		}
		err := json.Unmarshal(r, &v)
		return &BooleanArgument{Value: v.Value}, err
	case "binary":
		var v struct {
			Value Script `json:"value"`
		}
		err := json.Unmarshal(r, &v)
		return &BinaryArgument{Value: v.Value}, err
	case "string":
		var v struct {
			Value string `json:"value"`
		}
		err := json.Unmarshal(r, &v)
		return &StringArgument{Value: v.Value}, err
	default:
		return nil, errors.Errorf("unsupported argument type '%s'", t)
	}
}

// FunctionCall names a callable function of a dApp and its arguments.
type FunctionCall struct {
	Name      string    `json:"function"`
	Arguments Arguments `json:"args"`
}

func (fc *FunctionCall) valid() error {
	if l := len(fc.Name); l == 0 || l > maxFunctionNameBytes {
		return errs.NewInvalidName("function name length should be between 1 and " + strconv.Itoa(maxFunctionNameBytes) + " bytes")
	}
	if l := len(fc.Arguments); l > maxArguments {
		return errs.NewTooBigArray("number of arguments " + strconv.Itoa(l) + " is greater than " + strconv.Itoa(maxArguments))
	}
	for i, a := range fc.Arguments {
		if isNil(a) {
			return errors.Errorf("argument %d of function '%s' is nil", i, fc.Name)
		}
	}
	return nil
}

func (fc *FunctionCall) clone() *FunctionCall {
	c := &FunctionCall{Name: fc.Name}
	if fc.Arguments != nil {
		c.Arguments = make(Arguments, len(fc.Arguments))
		for i, a := range fc.Arguments {
			if !isNil(a) {
				c.Arguments[i] = a.clone()
			}
		}
	}
	return c
}

func (fc *FunctionCall) write(s *serializer.Serializer) error {
	if err := s.StringWithUInt16Len(fc.Name); err != nil {
		return err
	}
	if err := s.Uint32(uint32(len(fc.Arguments))); err != nil {
		return err
	}
	for i, a := range fc.Arguments {
		if isNil(a) {
			return errors.Errorf("argument %d of function '%s' is nil", i, fc.Name)
		}
		if err := s.Byte(byte(a.GetValueType())); err != nil {
			return err
		}
		if err := a.writeValue(s); err != nil {
			return err
		}
	}
	return nil
}

// InvokeScript calls a dApp function, attaching payments. A nil FunctionCall invokes the default function.
type InvokeScript struct {
	DApp         Recipient     `json:"dApp"`
	FunctionCall *FunctionCall `json:"call"`
	Payments     []Amount      `json:"payment"`
}

func NewInvokeScript(dApp Recipient, call *FunctionCall, payments ...Amount) *InvokeScript {
	return &InvokeScript{DApp: dApp, FunctionCall: call, Payments: payments}
}

func (tx *InvokeScript) Type() TransactionType {
	return InvokeScriptTransaction
}

func (tx *InvokeScript) Valid(_ byte, scheme Scheme) error {
	if err := validRecipient(tx.DApp, scheme); err != nil {
		return err
	}
	if tx.FunctionCall != nil {
		if err := tx.FunctionCall.valid(); err != nil {
			return err
		}
	}
	if l := len(tx.Payments); l > maxPayments {
		return errs.NewTooBigArray("number of payments " + strconv.Itoa(l) + " is greater than " + strconv.Itoa(maxPayments))
	}
	for _, p := range tx.Payments {
		if err := validPositive(p.Value, "payment"); err != nil {
			return err
		}
	}
	return nil
}

func (tx *InvokeScript) clone() (TransactionData, error) {
	c := *tx
	if tx.FunctionCall != nil {
		c.FunctionCall = tx.FunctionCall.clone()
	}
	c.Payments = slices.Clone(tx.Payments)
	return &c, nil
}

func (tx *InvokeScript) writeBody(s *serializer.Serializer, _ byte) error {
	if err := tx.DApp.write(s); err != nil {
		return err
	}
	if tx.FunctionCall == nil {
		if err := s.Bool(false); err != nil {
			return err
		}
	} else {
		if err := s.Bool(true); err != nil {
			return err
		}
		if err := tx.FunctionCall.write(s); err != nil {
			return err
		}
	}
	if err := s.Uint16(uint16(len(tx.Payments))); err != nil {
		return err
	}
	for _, p := range tx.Payments {
		if err := p.write(s); err != nil {
			return err
		}
	}
	return nil
}
