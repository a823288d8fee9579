package service

import (
	midtrans "github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapTokenizer creates a hosted-payment token for an order. Satisfied by
// MidtransGateway; tests substitute a stub.
type SnapTokenizer interface {
	SnapToken(orderCode string, grossAmount int64, name, email string) (string, error)
}

type MidtransGateway struct {
	client snap.Client
}

func NewMidtransGateway(serverKey string) *MidtransGateway {
	g := &MidtransGateway{}
	g.client.New(serverKey, midtrans.Sandbox)
	return g
}

func (g *MidtransGateway) SnapToken(orderCode string, grossAmount int64, name, email string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderCode,
			GrossAmt: grossAmount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: name,
			Email: email,
		},
	}

	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}
