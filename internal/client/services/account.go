package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/jwtx"
)

const accountsBaseURL = "/api/v1/web/accounts"

// AccountService covers everything behind the customer's account screen:
// statements, transactions, wallet, payment cards, vehicles and existing
// orders.
type AccountService interface {
	Statements(ctx context.Context) ([]models.Statement, error)
	DownloadStatement(ctx context.Context, invoiceID string) ([]byte, error)
	Transactions(ctx context.Context) ([]models.Transaction, error)
	DownloadTransactions(ctx context.Context, from, to string) ([]byte, error)
	WalletTopUp(ctx context.Context, amount float64) (*models.Profile, error)
	InitCard(ctx context.Context) (*models.InitCardResponse, error)
	AddCard(ctx context.Context, sid string) (*models.Profile, error)
	SetDefaultCard(ctx context.Context, cardID string) (*models.Profile, error)
	DeleteCard(ctx context.Context, cardID string) (*models.Profile, error)
	HppStatus(ctx context.Context, sid string) (*models.HppStatusResponse, error)
	DeleteVehicle(ctx context.Context, plate string) (*models.Profile, error)
	CancelSubscription(ctx context.Context, orderID string) (*models.Profile, error)
	SetOrderPaymentPriority(ctx context.Context, orderID, priority string) (*models.Profile, error)
}

type accountService struct {
	client *api.Client
}

// NewAccountService constructs an AccountService bound to the given API client.
func NewAccountService(client *api.Client) AccountService {
	return &accountService{client: client}
}

func (s *accountService) userID() (string, error) {
	id, err := jwtx.UserID(s.client.Session().AccessToken())
	if err != nil {
		return "", fmt.Errorf("unable to find the user: %w", err)
	}
	return id, nil
}

func (s *accountService) Statements(ctx context.Context) ([]models.Statement, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out []models.Statement
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%s/statements", accountsBaseURL, id), &out); err != nil {
		return nil, fmt.Errorf("statements error: %w", err)
	}
	return out, nil
}

// DownloadStatement returns the invoice PDF bytes.
func (s *accountService) DownloadStatement(ctx context.Context, invoiceID string) ([]byte, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	data, err := s.client.GetBlob(ctx, fmt.Sprintf("%s/%s/statements/%s/download", accountsBaseURL, id, invoiceID))
	if err != nil {
		return nil, fmt.Errorf("statement download error: %w", err)
	}
	return data, nil
}

func (s *accountService) Transactions(ctx context.Context) ([]models.Transaction, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out []models.Transaction
	if err := s.client.Get(ctx, fmt.Sprintf("%s/%s/transactions/find", accountsBaseURL, id), &out); err != nil {
		return nil, fmt.Errorf("transactions error: %w", err)
	}
	return out, nil
}

// DownloadTransactions returns the CSV export, optionally bounded to a
// date range. Both bounds must be set for the range to apply.
func (s *accountService) DownloadTransactions(ctx context.Context, from, to string) ([]byte, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/%s/transactions/download/", accountsBaseURL, id)
	if from != "" && to != "" {
		endpoint += "?from=" + url.QueryEscape(from) + "&to=" + url.QueryEscape(to)
	}

	data, err := s.client.GetBlob(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("transactions download error: %w", err)
	}
	return data, nil
}

func (s *accountService) WalletTopUp(ctx context.Context, amount float64) (*models.Profile, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.Profile
	body := map[string]float64{"amount": amount}
	if err := s.client.Post(ctx, fmt.Sprintf("%s/%s/wallet-topup", accountsBaseURL, id), body, &out); err != nil {
		return nil, fmt.Errorf("wallet top-up error: %w", err)
	}
	return &out, nil
}

// InitCard opens a hosted payment page session for adding a card.
func (s *accountService) InitCard(ctx context.Context) (*models.InitCardResponse, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.InitCardResponse
	if err := s.client.Post(ctx, fmt.Sprintf("%s/%s/payment-methods/cards/init", accountsBaseURL, id), nil, &out); err != nil {
		return nil, fmt.Errorf("card init error: %w", err)
	}
	return &out, nil
}

// AddCard registers the card captured in hosted payment page session sid.
func (s *accountService) AddCard(ctx context.Context, sid string) (*models.Profile, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.Profile
	body := map[string]string{"sid": sid}
	if err := s.client.Post(ctx, fmt.Sprintf("%s/%s/payment-methods/cards", accountsBaseURL, id), body, &out); err != nil {
		return nil, fmt.Errorf("card add error: %w", err)
	}
	return &out, nil
}

func (s *accountService) SetDefaultCard(ctx context.Context, cardID string) (*models.Profile, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.Profile
	endpoint := fmt.Sprintf("%s/%s/payment-methods/cards/%s/set-default", accountsBaseURL, id, cardID)
	if err := s.client.Post(ctx, endpoint, map[string]string{}, &out); err != nil {
		return nil, fmt.Errorf("set default card error: %w", err)
	}
	return &out, nil
}

func (s *accountService) DeleteCard(ctx context.Context, cardID string) (*models.Profile, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.Profile
	endpoint := fmt.Sprintf("%s/%s/payment-methods/cards/%s", accountsBaseURL, id, cardID)
	if err := s.client.Delete(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("card delete error: %w", err)
	}
	return &out, nil
}

// HppStatus polls a hosted payment page session.
func (s *accountService) HppStatus(ctx context.Context, sid string) (*models.HppStatusResponse, error) {
	var out models.HppStatusResponse
	if err := s.client.Get(ctx, "/api/v1/hpp/"+sid, &out); err != nil {
		return nil, fmt.Errorf("hpp status error: %w", err)
	}
	return &out, nil
}

func (s *accountService) DeleteVehicle(ctx context.Context, plate string) (*models.Profile, error) {
	id, err := s.userID()
	if err != nil {
		return nil, err
	}

	var out models.Profile
	endpoint := fmt.Sprintf("%s/%s/vehicles/%s", accountsBaseURL, id, url.PathEscape(plate))
	if err := s.client.Delete(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("vehicle delete error: %w", err)
	}
	return &out, nil
}

func (s *accountService) CancelSubscription(ctx context.Context, orderID string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"cancel": "cancel"}
	if err := s.client.Post(ctx, fmt.Sprintf("%s/orders/%s/cancel", webBaseURL, orderID), body, &out); err != nil {
		return nil, fmt.Errorf("subscription cancel error: %w", err)
	}
	return &out, nil
}

func (s *accountService) SetOrderPaymentPriority(ctx context.Context, orderID, priority string) (*models.Profile, error) {
	var out models.Profile
	body := map[string]string{"priority": priority}
	endpoint := fmt.Sprintf("%s/orders/%s/payment-methods/priority", webBaseURL, orderID)
	if err := s.client.Post(ctx, endpoint, body, &out); err != nil {
		return nil, fmt.Errorf("payment priority error: %w", err)
	}
	return &out, nil
}
