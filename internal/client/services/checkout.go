package services

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/models"
	"github.com/mpavlovs/parkgate/internal/netx"
)

// CheckoutService drives the purchase flow: price breakdown, validation,
// payment, order lookup and attaching the locally staged documents to a
// created order.
type CheckoutService interface {
	Breakdown(ctx context.Context, offerID string, topUp float64, entry, exit string) (*models.Breakdown, error)
	Validate(ctx context.Context, data *models.PurchaseData) error
	InitPurchaseCard(ctx context.Context) (*models.InitCardResponse, error)
	Purchase(ctx context.Context, data *models.PurchaseData) (*models.PurchaseResponse, error)
	OrderByID(ctx context.Context, orderID string) (*models.Order, error)
	UploadOrderFiles(ctx context.Context, orderID string, files []models.StoredFile) ([]string, error)
}

type checkoutService struct {
	client *api.Client
}

// NewCheckoutService constructs a CheckoutService bound to the given API client.
func NewCheckoutService(client *api.Client) CheckoutService {
	return &checkoutService{client: client}
}

func (s *checkoutService) Breakdown(ctx context.Context, offerID string, topUp float64, entry, exit string) (*models.Breakdown, error) {
	body := map[string]any{
		"offerId": offerID,
		"options": map[string]any{
			"wallet": map[string]any{"topUpAmount": topUp},
		},
		"validity": map[string]any{"entry": entry, "exit": exit},
	}

	var out models.Breakdown
	if err := s.client.Post(ctx, webBaseURL+"/orders/calculate-breakdown", body, &out); err != nil {
		return nil, fmt.Errorf("breakdown error: %w", err)
	}
	return &out, nil
}

func (s *checkoutService) Validate(ctx context.Context, data *models.PurchaseData) error {
	if err := s.client.Post(ctx, webBaseURL+"/orders/validate", data, nil); err != nil {
		return fmt.Errorf("order validation error: %w", err)
	}
	return nil
}

// InitPurchaseCard opens a hosted payment page session for paying with a
// new card during checkout (no account required).
func (s *checkoutService) InitPurchaseCard(ctx context.Context) (*models.InitCardResponse, error) {
	var out models.InitCardResponse
	if err := s.client.Post(ctx, webBaseURL+"/orders/purchase/cards/init", nil, &out); err != nil {
		return nil, fmt.Errorf("purchase card init error: %w", err)
	}
	return &out, nil
}

// Purchase submits the order. When the backend issues guest-session
// credentials with the created order, they are stored so follow-up calls
// run authenticated.
func (s *checkoutService) Purchase(ctx context.Context, data *models.PurchaseData) (*models.PurchaseResponse, error) {
	var out models.PurchaseResponse
	if err := s.client.Post(ctx, webBaseURL+"/orders/purchase", data, &out); err != nil {
		return nil, fmt.Errorf("purchase error: %w", err)
	}

	if out.Credentials.AccessToken != "" && out.Credentials.RefreshToken != "" {
		s.client.Session().SetPair(out.Credentials.AccessToken, out.Credentials.RefreshToken)
	}
	return &out, nil
}

func (s *checkoutService) OrderByID(ctx context.Context, orderID string) (*models.Order, error) {
	var out models.Order
	if err := s.client.Get(ctx, fmt.Sprintf("%s/orders/%s/public", webBaseURL, orderID), &out); err != nil {
		return nil, fmt.Errorf("order error: %w", err)
	}
	return &out, nil
}

// UploadOrderFiles pushes staged documents to the backend in three steps:
// allocate one presigned slot per file, PUT the decoded bytes to each slot's
// URL, then attach the returned file ids to the order. The local cache is
// left untouched; clearing it stays a user decision.
func (s *checkoutService) UploadOrderFiles(ctx context.Context, orderID string, files []models.StoredFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}

	slotReqs := make([]models.UploadSlotRequest, 0, len(files))
	for _, f := range files {
		slotReqs = append(slotReqs, models.UploadSlotRequest{ContentType: f.Type})
	}

	var slots []models.UploadSlot
	if err := s.client.Post(ctx, webBaseURL+"/files/create", slotReqs, &slots); err != nil {
		return nil, fmt.Errorf("file slot allocation error: %w", err)
	}
	if len(slots) != len(files) {
		return nil, fmt.Errorf("slot count mismatch: requested %d, got %d", len(files), len(slots))
	}

	fileIDs := make([]string, 0, len(slots))
	for i, slot := range slots {
		data, err := base64.StdEncoding.DecodeString(files[i].Data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode file %s: %w", files[i].Name, err)
		}
		if err := netx.UploadToPresignedURL(ctx, slot.UploadURL, files[i].Type, data); err != nil {
			return nil, fmt.Errorf("failed to upload file %s: %w", files[i].Name, err)
		}
		fileIDs = append(fileIDs, slot.FileID)
	}

	body := map[string]any{"fileIds": fileIDs}
	if err := s.client.Post(ctx, fmt.Sprintf("%s/orders/%s/files", webBaseURL, orderID), body, nil); err != nil {
		return nil, fmt.Errorf("file attach error: %w", err)
	}

	return fileIDs, nil
}
