package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/models"
)

// CatalogService lists and resolves purchasable offers. All catalog
// endpoints are public; no session is required.
type CatalogService interface {
	Offers(ctx context.Context, offerType, entry, exit, tags string) ([]models.OfferTile, error)
	OfferByID(ctx context.Context, id string) (*models.OfferTile, error)
}

type catalogService struct {
	client *api.Client
}

// NewCatalogService constructs a CatalogService bound to the given API client.
func NewCatalogService(client *api.Client) CatalogService {
	return &catalogService{client: client}
}

// Offers lists offers of the given type, optionally narrowed by entry/exit
// times and tags.
func (s *catalogService) Offers(ctx context.Context, offerType, entry, exit, tags string) ([]models.OfferTile, error) {
	endpoint := webBaseURL + "/offers?type=" + url.QueryEscape(offerType)
	if entry != "" {
		endpoint += "&entry=" + url.QueryEscape(entry)
	}
	if exit != "" {
		endpoint += "&exit=" + url.QueryEscape(exit)
	}
	if tags != "" {
		endpoint += "&tags=" + url.QueryEscape(tags)
	}

	var out []models.OfferTile
	if err := s.client.Get(ctx, endpoint, &out); err != nil {
		return nil, fmt.Errorf("offers error: %w", err)
	}
	return out, nil
}

func (s *catalogService) OfferByID(ctx context.Context, id string) (*models.OfferTile, error) {
	var out models.OfferTile
	if err := s.client.Get(ctx, webBaseURL+"/offers/"+id, &out); err != nil {
		return nil, fmt.Errorf("offer error: %w", err)
	}
	return &out, nil
}
