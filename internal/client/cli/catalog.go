package cli

import (
	"context"
	"fmt"

	"github.com/mpavlovs/parkgate/internal/client/api"
)

func (a *App) OffersCmd(ctx context.Context, args []string) {
	offerType := "all"
	if len(args) > 0 {
		offerType = args[0]
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	offers, err := a.catalog.Offers(ctx, offerType, "", "", "")
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	for _, o := range offers {
		spot := ""
		if o.Spot.Name != nil {
			spot = *o.Spot.Name
		}
		fmt.Fprintf(a.out, "%s  %-30s %-12s %-20s %.2f\n", o.ID, o.Name, o.Type, spot, o.Price.Amount)
	}
}

func (a *App) OfferCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: offer <id>")
		return
	}

	ctx, cancel := a.cmdCtx(ctx)
	defer cancel()

	o, err := a.catalog.OfferByID(ctx, args[0])
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err))
		return
	}

	fmt.Fprintf(a.out, "%s (%s)\n", o.Name, o.Type)
	if o.Subtitle != nil {
		fmt.Fprintln(a.out, *o.Subtitle)
	}
	fmt.Fprintf(a.out, "Price: %.2f (%s)\n", o.Price.Amount, o.Price.Type)
	if o.Options.Files != nil && o.Options.Files.Enabled {
		required := "optional"
		if o.Options.Files.Required {
			required = "required"
		}
		fmt.Fprintf(a.out, "Supporting documents: %s (use 'addfile' before checkout)\n", required)
	}
}
