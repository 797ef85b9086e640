package proto

import (
	"github.com/pkg/errors"

	"github.com/wavesplatform/wavestx/pkg/libs/serializer"
)

// Exchange fills a pair of opposite orders at the given price and amount.
type Exchange struct {
	Order1         *Order `json:"order1"`
	Order2         *Order `json:"order2"`
	Price          uint64 `json:"price"`
	Amount         uint64 `json:"amount"`
	BuyMatcherFee  uint64 `json:"buyMatcherFee"`
	SellMatcherFee uint64 `json:"sellMatcherFee"`
}

func NewExchange(order1, order2 *Order, price, amount, buyMatcherFee, sellMatcherFee uint64) *Exchange {
	return &Exchange{
		Order1:         order1,
		Order2:         order2,
		Price:          price,
		Amount:         amount,
		BuyMatcherFee:  buyMatcherFee,
		SellMatcherFee: sellMatcherFee,
	}
}

func (tx *Exchange) Type() TransactionType {
	return ExchangeTransaction
}

// BuyOrder returns whichever of the two orders buys.
func (tx *Exchange) BuyOrder() *Order {
	if tx.Order1 != nil && tx.Order1.OrderType == Buy {
		return tx.Order1
	}
	return tx.Order2
}

func (tx *Exchange) SellOrder() *Order {
	if tx.Order1 != nil && tx.Order1.OrderType == Sell {
		return tx.Order1
	}
	return tx.Order2
}

func (tx *Exchange) Valid(_ byte, _ Scheme) error {
	if tx.Order1 == nil || tx.Order2 == nil {
		return errors.New("exchange requires two orders")
	}
	if err := tx.Order1.Valid(); err != nil {
		return errors.Wrap(err, "invalid first order")
	}
	if err := tx.Order2.Valid(); err != nil {
		return errors.Wrap(err, "invalid second order")
	}
	if tx.Order1.OrderType == tx.Order2.OrderType {
		return errors.New("orders of exchange should be of opposite types")
	}
	if tx.Order1.AssetPair != tx.Order2.AssetPair {
		return errors.New("orders of exchange should have the same asset pair")
	}
	if err := validPositive(tx.Price, "price"); err != nil {
		return err
	}
	return validPositive(tx.Amount, "amount")
}

func (tx *Exchange) clone() (TransactionData, error) {
	c := *tx
	for _, o := range []**Order{&c.Order1, &c.Order2} {
		if *o == nil {
			continue
		}
		oc, err := (*o).Clone()
		if err != nil {
			return nil, err
		}
		*o = oc
	}
	return &c, nil
}

func (tx *Exchange) writeBody(s *serializer.Serializer, _ byte) error {
	for _, o := range []*Order{tx.Order1, tx.Order2} {
		b, err := o.MarshalBinary()
		if err != nil {
			return err
		}
		if err := s.BytesWithUInt32Len(b); err != nil {
			return err
		}
	}
	if err := s.Uint64(tx.Price); err != nil {
		return err
	}
	if err := s.Uint64(tx.Amount); err != nil {
		return err
	}
	if err := s.Uint64(tx.BuyMatcherFee); err != nil {
		return err
	}
	return s.Uint64(tx.SellMatcherFee)
}
