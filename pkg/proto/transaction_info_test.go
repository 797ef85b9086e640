package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/go-test/deep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wavesplatform/wavestx/pkg/crypto"
	"github.com/wavesplatform/wavestx/pkg/errs"
)

func confirmedJSON(t *testing.T, st SignedTransaction, extra map[string]any) []byte {
	js, err := json.Marshal(st)
	require.NoError(t, err)
	r, err := mergeJSON(json.RawMessage(js), extra)
	require.NoError(t, err)
	return r
}

func TestTransactionInfoRoundTrip(t *testing.T) {
	kp := testKeyPair()
	recipient := NewRecipientFromAddress(testAddress(t, "recipient"))
	alias, err := NewAlias(TestNetScheme, "alice")
	require.NoError(t, err)
	assetID, err := crypto.NewDigestFromBase58(testLeaseID)
	require.NoError(t, err)
	buy, buyer := testOrder(t, "buyer", Buy)
	sell, seller := testOrder(t, "seller", Sell)
	buy, err = buy.Sign(buyer.Secret)
	require.NoError(t, err)
	sell, err = sell.Sign(seller.Secret)
	require.NoError(t, err)

	tests := []struct {
		data    TransactionData
		version byte
	}{
		{NewTransfer(recipient, NewAmount(10, NewOptionalAssetFromDigest(assetID)), []byte("memo")), 3},
		{NewReissue(assetID, 100, false), 3},
		{NewBurn(assetID, 100), 3},
		{NewLease(recipient, 100), 3},
		{NewLeaseCancel(MustIDFromBase58(testLeaseID)), 3},
		{NewCreateAlias(*alias), 3},
		{NewMassTransfer(NewOptionalAssetWaves(), []MassTransferEntry{{Recipient: recipient, Amount: 5}}, nil), 2},
		{NewData(&IntegerDataEntry{Key: "k", Value: 7}, &BinaryDataEntry{Key: "b", Value: []byte{1}}), 2},
		{NewIssue("asset", "description", 1000, 2, true, nil), 3},
		{NewInvokeScript(recipient, &FunctionCall{Name: "f", Arguments: Arguments{&StringArgument{Value: "x"}}},
			NewWavesAmount(1)), 2},
		{NewExchange(buy, sell, 100000, 10, 1, 1), 2},
	}
	for _, tc := range tests {
		t.Run(tc.data.Type().String(), func(t *testing.T) {
			st, err := buildTx(t, tc.data, tc.version).Sign(kp.Secret)
			require.NoError(t, err)
			id, err := st.ID()
			require.NoError(t, err)
			js := confirmedJSON(t, st, map[string]any{"height": 1234, "applicationStatus": "succeeded"})

			var ti TransactionInfo
			require.NoError(t, json.Unmarshal(js, &ti))
			assert.Equal(t, id, ti.ID)
			assert.Equal(t, SucceedStatus, ti.Status)
			assert.Equal(t, uint32(1234), ti.Height)
			assert.Equal(t, tc.data.Type(), ti.Type)
			assert.Equal(t, tc.data.Type(), ti.Data.Type())
			assert.Equal(t, tc.version, ti.Version)
			assert.Equal(t, TestNetScheme, ti.ChainID)
			assert.Equal(t, kp.Public, ti.SenderPK)
			assert.Equal(t, NewWavesAmount(testFee), ti.Fee)
			assert.Equal(t, testTimestamp, ti.Timestamp)
			assert.Equal(t, st.Proofs(), ti.Proofs)

			restored, err := ti.SignedTransaction()
			require.NoError(t, err)
			restoredID, err := restored.ID()
			require.NoError(t, err)
			assert.Equal(t, id, restoredID)
			ok, err := restored.Verify(kp.Public)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	}
}

func TestTransactionInfoPostExecutionFields(t *testing.T) {
	kp := testKeyPair()
	recipient := NewRecipientFromAddress(testAddress(t, "recipient"))
	sign := func(data TransactionData) SignedTransaction {
		st, err := buildTx(t, data, 3).Sign(kp.Secret)
		require.NoError(t, err)
		return st
	}

	js := confirmedJSON(t, sign(NewLease(recipient, 100)), map[string]any{"status": "canceled"})
	var ti TransactionInfo
	require.NoError(t, json.Unmarshal(js, &ti))
	li, err := ti.LeaseInfo()
	require.NoError(t, err)
	assert.Equal(t, "canceled", li.Status)
	assert.Equal(t, uint64(100), li.Amount)
	assert.Equal(t, UnknownStatus, ti.Status)

	mt := NewMassTransfer(NewOptionalAssetWaves(), []MassTransferEntry{
		{Recipient: recipient, Amount: 5},
		{Recipient: recipient, Amount: 6},
	}, nil)
	js = confirmedJSON(t, sign(mt), map[string]any{"transferCount": 2, "totalAmount": 11})
	require.NoError(t, json.Unmarshal(js, &ti))
	mti, err := ti.MassTransferInfo()
	require.NoError(t, err)
	assert.Equal(t, 2, mti.TransferCount)
	total, err := mt.TotalAmount()
	require.NoError(t, err)
	assert.Equal(t, total, mti.TotalAmount)

	stateChanges := json.RawMessage(`{"data":[],"transfers":[]}`)
	js = confirmedJSON(t, sign(NewInvokeScript(recipient, nil)), map[string]any{
		"stateChanges":      stateChanges,
		"applicationStatus": "script_execution_failed",
	})
	require.NoError(t, json.Unmarshal(js, &ti))
	isi, err := ti.InvokeScriptInfo()
	require.NoError(t, err)
	assert.JSONEq(t, string(stateChanges), string(isi.StateChanges))
	assert.Nil(t, isi.FunctionCall)
	assert.Equal(t, ScriptExecutionFailedStatus, ti.Status)

	issue := sign(NewIssue("asset", "", 1, 0, false, nil))
	issueID, err := issue.ID()
	require.NoError(t, err)
	js = confirmedJSON(t, issue, map[string]any{"assetId": issueID.String()})
	require.NoError(t, json.Unmarshal(js, &ti))
	ii, err := ti.IssueInfo()
	require.NoError(t, err)
	assert.Equal(t, issueID.Digest(), ii.AssetID)
	assert.Equal(t, "asset", ii.Name)

	d := NewData(&BooleanDataEntry{Key: "flag", Value: true})
	js = confirmedJSON(t, sign(d), nil)
	require.NoError(t, json.Unmarshal(js, &ti))
	di, err := ti.DataInfo()
	require.NoError(t, err)
	if diff := deep.Equal(d.Entries, di.Entries); diff != nil {
		t.Error(diff)
	}
}

func TestTransactionInfoExchangeOrderIDs(t *testing.T) {
	buy, buyer := testOrder(t, "buyer", Buy)
	sell, seller := testOrder(t, "seller", Sell)
	buy, err := buy.Sign(buyer.Secret)
	require.NoError(t, err)
	sell, err = sell.Sign(seller.Secret)
	require.NoError(t, err)
	st, err := buildTx(t, NewExchange(buy, sell, 100000, 10, 1, 1), 2).Sign(testKeyPair().Secret)
	require.NoError(t, err)

	var ti TransactionInfo
	require.NoError(t, json.Unmarshal(confirmedJSON(t, st, nil), &ti))
	ei, err := ti.ExchangeInfo()
	require.NoError(t, err)
	buyID, err := buy.ID()
	require.NoError(t, err)
	sellID, err := sell.ID()
	require.NoError(t, err)
	assert.Equal(t, buyID, ei.Order1ID)
	assert.Equal(t, sellID, ei.Order2ID)
	assert.Equal(t, *buy, *ei.Order1)
}

const leaseCancelInfoTemplate = `{
  "type": 9,
  "id": "%[1]s",
  "sender": "3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW",
  "senderPublicKey": "%[2]s",
  "fee": 100000,
  "feeAssetId": null,
  "timestamp": 1658233335000,
  "signature": "%[3]s",
  "version": 1,
  "leaseId": "%[4]s",
  "chainId": 84,
  "height": 2183924,
  "applicationStatus": "succeeded",
  "lease": {
    "id": "%[4]s",
    "originTransactionId": "%[4]s",
    "sender": "3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW",
    "recipient": "3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW",
    "amount": 1000000,
    "height": 2183000,
    "status": "canceled"
  }
}`

func TestTransactionInfoVersion1Signature(t *testing.T) {
	kp := testKeyPair()
	tx := buildTx(t, NewLeaseCancel(MustIDFromBase58(testLeaseID)), 1)
	st, err := tx.Sign(kp.Secret)
	require.NoError(t, err)
	id, err := st.ID()
	require.NoError(t, err)
	js := fmt.Sprintf(leaseCancelInfoTemplate, id.String(), kp.Public.String(), st.Proofs().Proofs[0].String(), testLeaseID)

	var ti TransactionInfo
	require.NoError(t, json.Unmarshal([]byte(js), &ti))
	assert.Equal(t, uint32(2183924), ti.Height)
	assert.Equal(t, st.Proofs(), ti.Proofs)

	lci, err := ti.LeaseCancelInfo()
	require.NoError(t, err)
	assert.Equal(t, MustIDFromBase58(testLeaseID), lci.LeaseID)
	require.NotNil(t, lci.Lease)
	assert.Equal(t, uint64(1000000), lci.Lease.Amount)
	assert.Equal(t, "canceled", lci.Lease.Status)
	assert.Equal(t, MustAddressFromString("3MtQQX9NwYH5URGGcS2e6ptEgV7wTFesaRW"), lci.Lease.Sender)

	restored, err := ti.SignedTransaction()
	require.NoError(t, err)
	ok, err := restored.Verify(kp.Public)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = ti.TransferInfo()
	var wt *errs.WrongTransactionType
	require.True(t, errors.As(err, &wt))
	assert.Equal(t, byte(TransferTransaction), wt.Expected)
	assert.Equal(t, byte(LeaseCancelTransaction), wt.Actual)
}

func TestTransactionInfoLegacyWithoutChainID(t *testing.T) {
	kp := testKeyPair()
	recipient := NewRecipientFromAddress(testAddress(t, "recipient"))
	st, err := buildTx(t, NewTransfer(recipient, NewWavesAmount(500), nil), 1).Sign(kp.Secret)
	require.NoError(t, err)
	js, err := json.Marshal(st)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(js, &m))
	delete(m, "chainId")
	delete(m, "proofs")
	m["signature"] = st.Proofs().Proofs[0].String()
	m["sender"] = testAddress(t, testSeed).String()
	js, err = json.Marshal(m)
	require.NoError(t, err)

	var ti TransactionInfo
	require.NoError(t, json.Unmarshal(js, &ti))
	assert.Equal(t, TestNetScheme, ti.ChainID)
	restored, err := ti.SignedTransaction()
	require.NoError(t, err)
	ok, err := restored.Verify(kp.Public)
	require.NoError(t, err)
	assert.True(t, ok)
	id, err := st.ID()
	require.NoError(t, err)
	rid, err := restored.ID()
	require.NoError(t, err)
	assert.Equal(t, id, rid)
}

func TestTransactionInfoUnsupportedType(t *testing.T) {
	var ti TransactionInfo
	err := json.Unmarshal([]byte(`{"type":13,"id":"`+testLeaseID+`"}`), &ti)
	assert.Error(t, err)

	_, err = (&TransactionInfo{}).Transaction()
	assert.Error(t, err)
	_, err = (&TransactionInfo{}).DataInfo()
	assert.ErrorIs(t, err, errs.WrongTransactionType{})
}

func TestApplicationStatus(t *testing.T) {
	tests := []struct {
		text   string
		status ApplicationStatus
	}{
		{"succeeded", SucceedStatus},
		{"script_execution_failed", ScriptExecutionFailedStatus},
		{"elided", UnknownStatus},
		{"", UnknownStatus},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.status, NewApplicationStatus(tc.text))
		var s ApplicationStatus
		require.NoError(t, json.Unmarshal([]byte(`"`+tc.text+`"`), &s))
		assert.Equal(t, tc.status, s)
	}
	var s ApplicationStatus
	require.NoError(t, json.Unmarshal([]byte("null"), &s))
	assert.Equal(t, UnknownStatus, s)
	js, err := json.Marshal(ScriptExecutionFailedStatus)
	require.NoError(t, err)
	assert.Equal(t, `"script_execution_failed"`, string(js))
}
