package cli

import (
	"context"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/api"
	"github.com/mpavlovs/parkgate/internal/client/models"
)

// CheckoutCmd walks the purchase flow for one offer: price breakdown,
// contact details, payment selection, validation, purchase, and finally
// uploading any staged documents to the created order.
func (a *App) CheckoutCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: checkout <offerId>")
		return
	}
	offerID := args[0]

	cmdCtx, cancel := a.cmdCtx(ctx)
	defer cancel()

	offer, err := a.catalog.OfferByID(cmdCtx, offerID)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	from, err := GetSimpleText(a.reader, "Valid from (RFC3339)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	to, err := GetSimpleText(a.reader, "Valid to (RFC3339)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	breakdown, err := a.checkout.Breakdown(cmdCtx, offerID, 0, from, to)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	for _, item := range breakdown.Items {
		fmt.Fprintf(a.out, "  %-30s %.2f\n", item.Name, item.Price.IncVat)
	}
	fmt.Fprintf(a.out, "  Total: %.2f\n", breakdown.Total.IncVat)

	data, err := a.collectPurchaseData(offer, from, to)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if err := a.checkout.Validate(cmdCtx, data); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	resp, err := a.checkout.Purchase(cmdCtx, data)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}
	fmt.Fprintf(a.out, "Order %s created (%s)\n", resp.Order.ShortID, resp.Order.Result.Status)

	if offer.Options.Files != nil && offer.Options.Files.Enabled {
		staged := a.cache.Files()
		if len(staged) > 0 {
			if _, err := a.checkout.UploadOrderFiles(cmdCtx, resp.Order.ID, staged); err != nil {
				fmt.Fprintln(a.out, api.UserMessage(err))
				return
			}
			fmt.Fprintf(a.out, "Uploaded %d document(s)\n", len(staged))
		}
	}
}

func (a *App) collectPurchaseData(offer *models.OfferTile, from, to string) (*models.PurchaseData, error) {
	firstName, err := GetSimpleText(a.reader, "First name", a.out)
	if err != nil {
		return nil, err
	}
	lastName, err := GetSimpleText(a.reader, "Last name", a.out)
	if err != nil {
		return nil, err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return nil, err
	}
	phone, err := GetSimpleText(a.reader, "Phone", a.out)
	if err != nil {
		return nil, err
	}

	data := &models.PurchaseData{
		OfferID: offer.ID,
		Contact: models.Contact{
			FirstName: firstName,
			LastName:  lastName,
			Email:     email,
			Phone:     phone,
		},
		Vehicles: []models.Vehicle{},
		Cards:    []models.Card{},
		Services: []string{},
		Validity: models.Validity{From: from, To: to},
	}

	if offer.Options.Plate.Enabled {
		plate, err := GetSimpleText(a.reader, "Vehicle plate", a.out)
		if err != nil {
			return nil, err
		}
		if plate != "" {
			data.Vehicles = append(data.Vehicles, models.Vehicle{Plate: &plate, IsDefault: true})
		}
	}

	choice, err := GetSimpleText(a.reader, "Pay with (new/exist)", a.out)
	if err != nil {
		return nil, err
	}
	switch choice {
	case "exist":
		token, err := GetSimpleText(a.reader, "Card token", a.out)
		if err != nil {
			return nil, err
		}
		data.PaymentMethod.ExistCard = &models.PurchaseExistCard{Token: token}
	default:
		initResp, err := a.checkout.InitPurchaseCard(context.Background())
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(a.out, "Open this URL to enter card details:\n  %s\n", initResp.URL)
		if _, err := GetSimpleText(a.reader, "Press Enter when done", a.out); err != nil {
			return nil, err
		}
		data.PaymentMethod.NewCard = &models.PurchaseNewCard{Sid: initResp.Sid}
	}

	return data, nil
}

func (a *App) OrderCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: order <id>")
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	order, err := a.checkout.OrderByID(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	fmt.Fprintf(a.out, "%s  %s\n", order.ShortID, order.Offer.Name)
	fmt.Fprintf(a.out, "Valid %s -> %s\n", order.Validity.From, order.Validity.To)
	fmt.Fprintf(a.out, "Total %.2f, status %s\n", order.Price.Total, order.Result.Status)
}
